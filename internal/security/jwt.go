package security

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"reading-log-server/config"
	"reading-log-server/internal/model"
	"reading-log-server/internal/util"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	UserContextKey contextKey = "user"
)

type Claims struct {
	UserUUID string `json:"user_uuid"`
	jwt.RegisteredClaims
}

type JWTService struct {
	*config.JWTConfig
}

func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{cfg}
}

// GenerateToken подписывает токен с полезной нагрузкой {user_uuid} и
// стандартными полями iat/exp, вычисленными из ttl
func (service *JWTService) GenerateToken(userUUID string, secretKey []byte, ttl string) (string, time.Time, error) {
	timeDuration, err := time.ParseDuration(ttl)
	if err != nil {
		return "", time.Time{}, util.LogError("ошибка парсинга TTL", err)
	}

	expireAt := time.Now().Add(timeDuration)
	claims := Claims{
		UserUUID: userUUID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expireAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "reading-log-server",
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := jwtToken.SignedString(secretKey)
	if err != nil {
		return "", time.Time{}, util.LogError("ошибка подписи токена", err)
	}

	return signed, expireAt, nil
}

// GenerateAccessRefreshTokens выдает пару токенов для пользователя.
// Access токен живет коротко и нигде не хранится, refresh подписывается
// отдельным секретом и сохраняется значением в списке токенов владельца
func (service *JWTService) GenerateAccessRefreshTokens(userUUID string) (*model.TokensPair, *model.RefreshToken, error) {
	accessToken, _, err := service.GenerateToken(userUUID, []byte(service.AccessSecretKey), service.AccessTokenTTL)
	if err != nil {
		return nil, nil, util.LogError("ошибка генерации access токена", err)
	}

	refreshTokenStr, expireAt, err := service.GenerateToken(userUUID, []byte(service.RefreshSecretKey), service.RefreshTokenTTL)
	if err != nil {
		return nil, nil, util.LogError("ошибка генерации refresh токена", err)
	}

	refreshToken := &model.RefreshToken{
		UserUUID: userUUID,
		Token:    refreshTokenStr,
		ExpireAt: expireAt,
	}

	return &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenStr,
	}, refreshToken, nil
}

// GenerateAccessToken выдает только access токен: операция refresh
// не ротирует refresh токен, владелец пользуется им до logout или истечения
func (service *JWTService) GenerateAccessToken(userUUID string) (string, error) {
	accessToken, _, err := service.GenerateToken(userUUID, []byte(service.AccessSecretKey), service.AccessTokenTTL)
	if err != nil {
		return "", util.LogError("ошибка генерации access токена", err)
	}
	return accessToken, nil
}

func (service *JWTService) ValidateJWT(jwtTokenStr string, secretKey []byte) (*Claims, error) {
	var claims = &Claims{}

	jwtToken, err := jwt.ParseWithClaims(jwtTokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return secretKey, nil
	})

	if err != nil || jwtToken.Valid == false {
		return nil, util.LogError("невалидный токен", err)
	}

	return claims, nil
}

// ParseAccessToken проверяет access токен секретом access токенов
func (service *JWTService) ParseAccessToken(tokenStr string) (*Claims, error) {
	return service.ValidateJWT(tokenStr, []byte(service.AccessSecretKey))
}

// ParseRefreshToken проверяет refresh токен секретом refresh токенов
func (service *JWTService) ParseRefreshToken(tokenStr string) (*Claims, error) {
	return service.ValidateJWT(tokenStr, []byte(service.RefreshSecretKey))
}

// JWTMiddleware закрывает группу маршрутов проверкой access токена.
// Маршруты /api/auth и /api/media в эти группы не входят,
// поэтому проверка для них не выполняется вовсе
func JWTMiddleware(secretKey []byte, jwtService *JWTService) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(handleAuthentication(secretKey, jwtService, next))
	}
}

func handleAuthentication(secretKey []byte, jwtService *JWTService, next http.Handler) func(writer http.ResponseWriter, request *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		authorizationHeader := request.Header.Get("Authorization")
		if !strings.HasPrefix(authorizationHeader, "Bearer ") {
			http.Error(writer, "unauthorized", http.StatusUnauthorized)
			return
		}

		token := strings.TrimPrefix(authorizationHeader, "Bearer ")

		claims, err := jwtService.ValidateJWT(token, secretKey)
		if err != nil {
			log.Printf("невалидный токен: %v", err)
			http.Error(writer, "невалидный токен", http.StatusUnauthorized)
			return
		}

		req := request.WithContext(context.WithValue(request.Context(), UserContextKey, claims))
		next.ServeHTTP(writer, req)
	}
}

func GetClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(UserContextKey).(*Claims)
	if !ok || claims == nil {
		return nil, fmt.Errorf("пользователь не авторизован")
	}
	return claims, nil
}
