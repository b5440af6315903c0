package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"reading-log-server/internal/model"
	"reading-log-server/internal/ports"
	"reading-log-server/internal/security"
	"reading-log-server/internal/util"

	"github.com/google/uuid"
)

type AuthenticationService struct {
	jwtRepoInterface    ports.JWTRepositoryInterface
	jwtServiceInterface ports.JWTServiceInterface
	userRepository      ports.UserRepository
	googleVerifier      ports.GoogleVerifierInterface
}

func NewAuthenticationService(
	repo ports.JWTRepositoryInterface,
	service ports.JWTServiceInterface,
	userInterface ports.UserRepository,
	googleVerifier ports.GoogleVerifierInterface,
) *AuthenticationService {
	return &AuthenticationService{
		repo,
		service,
		userInterface,
		googleVerifier,
	}
}

// Register создает пользователя с солёным хэшем пароля.
// Токены при регистрации не выдаются, клиент логинится отдельным запросом
func (s *AuthenticationService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	exists, err := s.userRepository.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("[AuthService] ошибка проверки email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("[AuthService] email уже занят")
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("[AuthService] не удалось создать хэш пароля: %w", err)
	}

	user := &model.User{
		UUID:         uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: sql.NullString{String: hash, Valid: true},
	}

	created, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("[AuthService] ошибка создания пользователя: %w", err)
	}

	return created, nil
}

// Login выдает пару токенов и дописывает refresh токен в список пользователя.
// У одного пользователя может быть несколько действующих refresh токенов:
// по одному на устройство
func (s *AuthenticationService) Login(ctx context.Context, email, password string) (*model.User, *model.TokensPair, error) {
	user, err := s.userRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("[AuthService] пользователь не найден: %w", err)
	}

	if !security.CheckPassword(password, user.PasswordHash.String) {
		return nil, nil, fmt.Errorf("[AuthService] неверный логин или пароль")
	}

	tokens, refreshToken, err := s.jwtServiceInterface.GenerateAccessRefreshTokens(user.UUID)
	if err != nil {
		return nil, nil, fmt.Errorf("[AuthService] ошибка генерации токенов: %w", err)
	}

	if err := s.jwtRepoInterface.SaveRefreshToken(ctx, refreshToken); err != nil {
		return nil, nil, fmt.Errorf("[AuthService] ошибка сохранения refresh токена: %w", err)
	}

	return user, tokens, nil
}

// RefreshAccessToken обменивает действующий refresh токен на новый access токен.
// Выполняет следующие требования к операции refresh:
//  1. Подпись и срок действия проверяются секретом refresh токенов.
//  2. Токен должен числиться в списке владельца. Если подпись верна,
//     а токена в списке нет, значит он уже был инвалидирован или вообще
//     не выдавался этому пользователю: список очищается целиком,
//     на всех устройствах потребуется новый вход.
//  3. Сам refresh токен не ротируется, им можно пользоваться до logout
//     или истечения срока.
//
// Параметры:
//   - ctx: контекст выполнения (для отмены и таймаутов)
//   - refreshToken: предъявленный refresh токен
//
// Возвращает:
//   - новый access токен
//   - ошибку, если не удалось обновить токен
func (s *AuthenticationService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtServiceInterface.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", util.LogError("[AuthService] невалидный токен", err)
	}

	userUUID := claims.UserUUID

	user, err := s.userRepository.FindByUUID(ctx, userUUID)
	if err != nil {
		return "", fmt.Errorf("[AuthService] пользователь не найден: %w", err)
	}

	registered, err := s.jwtRepoInterface.Exists(ctx, user.UUID, refreshToken)
	if err != nil {
		return "", fmt.Errorf("[AuthService] ошибка проверки refresh токена: %w", err)
	}

	if !registered {
		// Сигнал компрометации: отзываем все токены до ответа клиенту
		log.Printf("[AuthService] предъявлен неучтенный refresh токен пользователя %s, список очищается", userUUID)
		if err := s.jwtRepoInterface.DeleteAllForUser(ctx, userUUID); err != nil {
			return "", fmt.Errorf("[AuthService] не удалось очистить список токенов: %w", err)
		}
		return "", fmt.Errorf("[AuthService] неучтенный refresh токен")
	}

	accessToken, err := s.jwtServiceInterface.GenerateAccessToken(userUUID)
	if err != nil {
		return "", fmt.Errorf("[AuthService] ошибка генерации токенов: %w", err)
	}

	return accessToken, nil
}

// Logout очищает весь список refresh токенов пользователя.
// Выход глобальный: разлогиниваются все устройства сразу
func (s *AuthenticationService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.jwtServiceInterface.ParseAccessToken(accessToken)
	if err != nil {
		return util.LogError("[AuthService] невалидный токен", err)
	}

	user, err := s.userRepository.FindByUUID(ctx, claims.UserUUID)
	if err != nil {
		return fmt.Errorf("[AuthService] пользователь не найден: %w", err)
	}

	if err := s.jwtRepoInterface.DeleteAllForUser(ctx, user.UUID); err != nil {
		return fmt.Errorf("[AuthService] не удалось очистить список токенов: %w", err)
	}

	return nil
}

// GoogleLogin проверяет credential у провайдера и дальше ведет себя как Login.
// Нового пользователя создает без пароля, существующему привязывает
// google_id и дозаполняет аватар, если его не было
func (s *AuthenticationService) GoogleLogin(ctx context.Context, credential string) (*model.User, *model.TokensPair, error) {
	payload, err := s.googleVerifier.VerifyIDToken(ctx, credential)
	if err != nil {
		return nil, nil, fmt.Errorf("[AuthService] невалидный credential: %w", err)
	}

	user, err := s.userRepository.FindByEmail(ctx, payload.Email)
	switch {
	case err == nil:
		if !user.GoogleID.Valid {
			if err := s.userRepository.LinkGoogleAccount(ctx, user.UUID, payload.Sub); err != nil {
				return nil, nil, fmt.Errorf("[AuthService] не удалось привязать google аккаунт: %w", err)
			}
			if !user.ProfilePicture.Valid && payload.Picture != "" {
				if err := s.userRepository.UpdateProfilePicture(ctx, user.UUID, payload.Picture); err != nil {
					return nil, nil, fmt.Errorf("[AuthService] не удалось обновить аватар: %w", err)
				}
				user.ProfilePicture = sql.NullString{String: payload.Picture, Valid: true}
			}
			user.GoogleID = sql.NullString{String: payload.Sub, Valid: true}
		}
	case errors.Is(err, sql.ErrNoRows):
		newUser := &model.User{
			UUID:     uuid.New().String(),
			Username: payload.Name,
			Email:    payload.Email,
			GoogleID: sql.NullString{String: payload.Sub, Valid: true},
		}
		if payload.Picture != "" {
			newUser.ProfilePicture = sql.NullString{String: payload.Picture, Valid: true}
		}

		user, err = s.userRepository.CreateUser(ctx, newUser)
		if err != nil {
			return nil, nil, fmt.Errorf("[AuthService] ошибка создания пользователя: %w", err)
		}
	default:
		return nil, nil, fmt.Errorf("[AuthService] ошибка поиска пользователя: %w", err)
	}

	tokens, refreshToken, err := s.jwtServiceInterface.GenerateAccessRefreshTokens(user.UUID)
	if err != nil {
		return nil, nil, fmt.Errorf("[AuthService] ошибка генерации токенов: %w", err)
	}

	if err := s.jwtRepoInterface.SaveRefreshToken(ctx, refreshToken); err != nil {
		return nil, nil, fmt.Errorf("[AuthService] ошибка сохранения refresh токена: %w", err)
	}

	return user, tokens, nil
}
