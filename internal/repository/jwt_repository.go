package repository

import (
	"context"

	"reading-log-server/config"
	"reading-log-server/internal/model"
	"reading-log-server/internal/util"
)

// JWTRepository хранит списки действующих refresh токенов.
// Каждая строка refresh_tokens — один элемент списка владельца,
// порядок вставки задается created_at. Добавление, проверка членства
// и полная очистка выполняются одним SQL-запросом, поэтому
// read-modify-write гонки на списке нет
type JWTRepository struct {
	*config.Database
}

func NewJWTRepository(database *config.Database) *JWTRepository {
	return &JWTRepository{database}
}

// SaveRefreshToken добавляет токен в конец списка пользователя
func (r *JWTRepository) SaveRefreshToken(ctx context.Context, refreshToken *model.RefreshToken) error {
	query := `INSERT INTO refresh_tokens (user_uuid, token, expire_at)
				VALUES ($1, $2, $3)
	`

	_, err := r.DB.ExecContext(ctx, query,
		refreshToken.UserUUID,
		refreshToken.Token,
		refreshToken.ExpireAt,
	)

	if err != nil {
		return util.LogError("[JWTRepo] ошибка вставки данных в БД", err)
	}

	return nil
}

// Exists проверяет членство токена в списке пользователя
func (r *JWTRepository) Exists(ctx context.Context, userUUID, token string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM refresh_tokens WHERE user_uuid = $1 AND token = $2)`

	var exists bool
	err := r.DB.GetContext(ctx, &exists, query, userUUID, token)
	if err != nil {
		return false, util.LogError("[JWTRepo] ошибка проверки refresh токена", err)
	}

	return exists, nil
}

// DeleteAllForUser очищает весь список пользователя: глобальный logout
// и реакция на предъявление неучтенного токена
func (r *JWTRepository) DeleteAllForUser(ctx context.Context, userUUID string) error {
	query := `DELETE FROM refresh_tokens WHERE user_uuid = $1`

	_, err := r.DB.ExecContext(ctx, query, userUUID)
	if err != nil {
		return util.LogError("[JWTRepo] не удалось очистить список токенов", err)
	}

	return nil
}
