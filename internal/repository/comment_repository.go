package repository

import (
	"context"
	"database/sql"
	"errors"

	"reading-log-server/config"
	"reading-log-server/internal/model"
	"reading-log-server/internal/util"
)

type CommentRepository struct {
	*config.Database
}

func NewCommentRepository(database *config.Database) *CommentRepository {
	return &CommentRepository{database}
}

// Create : сохраняет новый комментарий
func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	query := `
	INSERT INTO comments (uuid, post_uuid, user_uuid, content)
	VALUES ($1, $2, $3, $4)
	RETURNING uuid, post_uuid, user_uuid, content, created_at
	`

	created := &model.Comment{}
	err := r.DB.QueryRowxContext(ctx, query,
		comment.UUID,
		comment.PostUUID,
		comment.UserUUID,
		comment.Content,
	).StructScan(created)

	if err != nil {
		return nil, util.LogError("[CommentRepo] ошибка вставки данных в БД", err)
	}

	return created, nil
}

// Update : меняет текст комментария и возвращает обновленную запись
func (r *CommentRepository) Update(ctx context.Context, uuid, content string) (*model.Comment, error) {
	query := `
	UPDATE comments
	SET content = $2
	WHERE uuid = $1
	RETURNING uuid, post_uuid, user_uuid, content, created_at
	`

	updated := &model.Comment{}
	err := r.DB.QueryRowxContext(ctx, query, uuid, content).StructScan(updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.LogError("[CommentRepo] комментарий не найден", err)
		}
		return nil, util.LogError("[CommentRepo] не удалось обновить комментарий", err)
	}

	return updated, nil
}

// Delete : удаляет комментарий, false — если его не было
func (r *CommentRepository) Delete(ctx context.Context, uuid string) (bool, error) {
	query := `DELETE FROM comments WHERE uuid = $1`

	result, err := r.DB.ExecContext(ctx, query, uuid)
	if err != nil {
		return false, util.LogError("[CommentRepo] не удалось удалить комментарий", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, util.LogError("[CommentRepo] не удалось проверить, удален ли комментарий", err)
	}

	return rowsAffected > 0, nil
}

// ListByPost : комментарии поста с именем автора, свежие первыми
func (r *CommentRepository) ListByPost(ctx context.Context, postUUID string) ([]model.CommentForPost, error) {
	query := `
	SELECT c.uuid, c.user_uuid, u.username, c.content
	FROM comments c
	JOIN users u ON u.uuid = c.user_uuid
	WHERE c.post_uuid = $1
	ORDER BY c.created_at DESC
	`

	var comments []model.CommentForPost
	err := r.DB.SelectContext(ctx, &comments, query, postUUID)
	if err != nil {
		return nil, util.LogError("[CommentRepo] не удалось получить комментарии поста", err)
	}

	return comments, nil
}

// ListAll : все комментарии
func (r *CommentRepository) ListAll(ctx context.Context) ([]model.Comment, error) {
	query := `SELECT uuid, post_uuid, user_uuid, content, created_at FROM comments ORDER BY created_at DESC`

	var comments []model.Comment
	err := r.DB.SelectContext(ctx, &comments, query)
	if err != nil {
		return nil, util.LogError("[CommentRepo] не удалось получить комментарии", err)
	}

	return comments, nil
}
