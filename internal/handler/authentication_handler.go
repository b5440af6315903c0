package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"reading-log-server/config"
	"reading-log-server/internal/model/requestresponse"
	"reading-log-server/internal/ports"
	"reading-log-server/internal/service"
)

const refreshCookieName = "refreshToken"
const refreshCookieMaxAge = 7 * 24 * 60 * 60 // 7 дней

type AuthenticationHandler struct {
	ports.AuthenticationService
	cfg *config.AppConfig
}

func NewAuthenticationHandler(authenticationService *service.AuthenticationService, cfg *config.AppConfig) *AuthenticationHandler {
	return &AuthenticationHandler{
		authenticationService,
		cfg,
	}
}

// Register создает нового пользователя по username, email и password.
// Пароль в ответ не попадает
func (h *AuthenticationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		sendErrorResponse(w, http.StatusBadRequest, "нужны username, email и password")
		return
	}

	user, err := h.AuthenticationService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "email уже занят"):
			sendErrorResponse(w, http.StatusBadRequest, "email уже занят")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	sendJSON(w, http.StatusCreated, requestresponse.UserDataFromModel(user))
}

// Login выполняет аутентификацию по email и паролю.
// Access токен уходит в теле ответа, refresh токен — в HTTP-only cookie
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Email == "" || req.Password == "" {
		sendErrorResponse(w, http.StatusBadRequest, "email и password обязательны")
		return
	}

	user, tokens, err := h.AuthenticationService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, http.StatusNotFound, "пользователь не найден")
		case strings.Contains(err.Error(), "неверный логин или пароль"):
			sendErrorResponse(w, http.StatusUnauthorized, "неверный логин или пароль")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	h.setRefreshCookie(w, tokens.RefreshToken)

	sendJSON(w, http.StatusOK, requestresponse.AuthResponse{
		User:        requestresponse.UserDataFromModel(user),
		AccessToken: tokens.AccessToken,
	})
}

// RefreshToken обменивает refresh токен на новый access токен.
// Токен берется из первого непустого источника: cookie, тело запроса,
// заголовок Authorization — порядок фиксированный
func (h *AuthenticationHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	token := h.extractRefreshToken(r)
	if token == "" {
		sendErrorResponse(w, http.StatusUnauthorized, "нет refresh токена")
		return
	}

	accessToken, err := h.AuthenticationService.RefreshAccessToken(r.Context(), token)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "невалидный токен"),
			strings.Contains(err.Error(), "неучтенный refresh токен"):
			sendErrorResponse(w, http.StatusForbidden, "невалидный refresh токен")
		case strings.Contains(err.Error(), "пользователь не найден"):
			sendErrorResponse(w, http.StatusNotFound, "пользователь не найден")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	sendJSON(w, http.StatusOK, requestresponse.RefreshTokenResponse{AccessToken: accessToken})
}

// Logout завершает все сессии пользователя по access токену из заголовка
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		sendErrorResponse(w, http.StatusUnauthorized, "нет access токена")
		return
	}
	accessToken := strings.TrimPrefix(authHeader, "Bearer ")

	if err := h.AuthenticationService.Logout(r.Context(), accessToken); err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "невалидный токен"):
			sendErrorResponse(w, http.StatusForbidden, "невалидный токен")
		case strings.Contains(err.Error(), "пользователь не найден"):
			sendErrorResponse(w, http.StatusNotFound, "пользователь не найден")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	sendJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "пользователь вышел из системы"})
}

// GoogleLogin : вход через Google по credential провайдера.
// Любая ошибка проверки у провайдера отдается одним и тем же 400,
// детали отказа наружу не уходят
func (h *AuthenticationHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.GoogleLoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Credential == "" {
		sendErrorResponse(w, http.StatusBadRequest, "нужен credential")
		return
	}

	user, tokens, err := h.AuthenticationService.GoogleLogin(r.Context(), req.Credential)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "невалидный credential"):
			sendErrorResponse(w, http.StatusBadRequest, "невалидный credential")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	h.setRefreshCookie(w, tokens.RefreshToken)

	sendJSON(w, http.StatusOK, requestresponse.AuthResponse{
		User:        requestresponse.UserDataFromModel(user),
		AccessToken: tokens.AccessToken,
	})
}

func (h *AuthenticationHandler) setRefreshCookie(w http.ResponseWriter, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   refreshCookieMaxAge,
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteStrictMode,
	})
}

// extractRefreshToken : cookie, потом тело, потом bearer заголовок
func (h *AuthenticationHandler) extractRefreshToken(r *http.Request) string {
	if cookie, err := r.Cookie(refreshCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	var req requestresponse.RefreshTokenRequest
	// тело может быть пустым, это не ошибка
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.RefreshToken != "" {
		return req.RefreshToken
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}
