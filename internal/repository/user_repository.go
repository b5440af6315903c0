package repository

import (
	"context"
	"database/sql"
	"errors"

	"reading-log-server/config"
	"reading-log-server/internal/model"
	"reading-log-server/internal/util"
)

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

// CreateUser : сохраняет нового пользователя
func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
	INSERT INTO users (uuid, username, email, password_hash, profile_picture, google_id)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING uuid, username, email, password_hash, profile_picture, google_id, created_at
	`

	createdUser := &model.User{}
	err := r.DB.QueryRowxContext(ctx, query,
		user.UUID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.ProfilePicture,
		user.GoogleID,
	).StructScan(createdUser)

	if err != nil {
		return nil, util.LogError("[UserRepo] ошибка вставки данных в БД", err)
	}

	return createdUser, nil
}

// FindByUUID : ищет пользователя по UUID
func (r *UserRepository) FindByUUID(ctx context.Context, uuid string) (*model.User, error) {
	query := `SELECT uuid, username, email, password_hash, profile_picture, google_id, created_at FROM users WHERE uuid = $1`
	var user model.User
	err := r.DB.GetContext(ctx, &user, query, uuid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.LogError("[UserRepo] пользователь не найден", err)
		}
		return nil, util.LogError("[UserRepo] не удалось найти пользователя в БД", err)
	}
	return &user, nil
}

// FindByEmail : ищет пользователя по email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT uuid, username, email, password_hash, profile_picture, google_id, created_at FROM users WHERE email = $1`
	var user model.User
	err := r.DB.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.LogError("[UserRepo] пользователь не найден", err)
		}
		return nil, util.LogError("[UserRepo] не удалось найти пользователя по email", err)
	}
	return &user, nil
}

// ExistsByEmail : проверяет, занят ли email
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`
	err := r.DB.GetContext(ctx, &exists, query, email)
	if err != nil {
		return false, util.LogError("[UserRepo] ошибка проверки существования email", err)
	}
	return exists, nil
}

// UpdateUser : обновляет username и email
func (r *UserRepository) UpdateUser(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET username = $2, email = $3
		WHERE uuid = $1
	`
	result, err := r.DB.ExecContext(ctx, query, user.UUID, user.Username, user.Email)
	if err != nil {
		return util.LogError("[UserRepo] не удалось обновить пользователя", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[UserRepo] не удалось проверить, обновлен ли пользователь", err)
	}
	if rowsAffected == 0 {
		return util.LogError("[UserRepo] пользователь не найден", sql.ErrNoRows)
	}

	return nil
}

// UpdateProfilePicture : меняет путь к аватару
func (r *UserRepository) UpdateProfilePicture(ctx context.Context, uuid, path string) error {
	query := `UPDATE users SET profile_picture = $2 WHERE uuid = $1`
	_, err := r.DB.ExecContext(ctx, query, uuid, path)
	if err != nil {
		return util.LogError("[UserRepo] не удалось обновить аватар", err)
	}
	return nil
}

// LinkGoogleAccount : привязывает google_id к существующему пользователю
func (r *UserRepository) LinkGoogleAccount(ctx context.Context, uuid, googleID string) error {
	query := `UPDATE users SET google_id = $2 WHERE uuid = $1`
	_, err := r.DB.ExecContext(ctx, query, uuid, googleID)
	if err != nil {
		return util.LogError("[UserRepo] не удалось привязать google аккаунт", err)
	}
	return nil
}

// DeleteUser : удаляет пользователя по его UUID
func (r *UserRepository) DeleteUser(ctx context.Context, uuid string) error {
	query := `DELETE FROM users WHERE uuid = $1`
	result, err := r.DB.ExecContext(ctx, query, uuid)
	if err != nil {
		return util.LogError("[UserRepo] не удалось удалить пользователя", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[UserRepo] не удалось проверить, удален ли пользователь", err)
	}
	if rowsAffected == 0 {
		return util.LogError("[UserRepo] пользователь не найден", sql.ErrNoRows)
	}

	return nil
}

// ListUsers : вывод списка пользователей
func (r *UserRepository) ListUsers(ctx context.Context) ([]*model.User, error) {
	query := `
        SELECT uuid, username, email, password_hash, profile_picture, google_id, created_at
        FROM users
        ORDER BY created_at ASC
    `

	var users []*model.User
	err := r.DB.SelectContext(ctx, &users, query)
	if err != nil {
		return nil, util.LogError("[UserRepo] не удалось получить список пользователей", err)
	}

	return users, nil
}
