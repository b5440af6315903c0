package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"reading-log-server/internal/model"
	"reading-log-server/internal/ports"

	"github.com/google/uuid"
)

type UserService struct {
	userRepository ports.UserRepository
	mediaStorage   ports.MediaStorage
}

func NewUserService(userRepository ports.UserRepository, mediaStorage ports.MediaStorage) *UserService {
	return &UserService{
		userRepository: userRepository,
		mediaStorage:   mediaStorage,
	}
}

func (s *UserService) GetUser(ctx context.Context, userUUID string) (*model.User, error) {
	user, err := s.userRepository.FindByUUID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("[UserService] пользователь не найден: %w", err)
	}

	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.userRepository.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("[UserService] не удалось получить список пользователей: %w", err)
	}

	return users, nil
}

// UpdateUser меняет username и email. Пустые поля остаются прежними
func (s *UserService) UpdateUser(ctx context.Context, userUUID, username, email string) (*model.User, error) {
	user, err := s.userRepository.FindByUUID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("[UserService] пользователь не найден: %w", err)
	}

	if username != "" {
		user.Username = username
	}
	if email != "" {
		user.Email = email
	}

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("[UserService] не удалось обновить пользователя: %w", err)
	}

	return user, nil
}

// UploadProfilePicture кладет аватар в хранилище и возвращает публичный путь
func (s *UserService) UploadProfilePicture(ctx context.Context, userUUID, filename, contentType string, file io.Reader) (string, error) {
	user, err := s.userRepository.FindByUUID(ctx, userUUID)
	if err != nil {
		return "", fmt.Errorf("[UserService] пользователь не найден: %w", err)
	}

	key := uuid.New().String() + filepath.Ext(filename)
	if err := s.mediaStorage.UploadObject(ctx, key, contentType, file); err != nil {
		return "", fmt.Errorf("[UserService] не удалось загрузить аватар: %w", err)
	}

	publicPath := MediaPublicPath(key)
	if err := s.userRepository.UpdateProfilePicture(ctx, user.UUID, publicPath); err != nil {
		return "", fmt.Errorf("[UserService] не удалось обновить аватар: %w", err)
	}

	return publicPath, nil
}

func (s *UserService) DeleteUser(ctx context.Context, userUUID string) error {
	if err := s.userRepository.DeleteUser(ctx, userUUID); err != nil {
		return fmt.Errorf("[UserService] пользователь не найден: %w", err)
	}

	return nil
}
