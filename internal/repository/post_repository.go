package repository

import (
	"context"
	"database/sql"
	"errors"

	"reading-log-server/config"
	"reading-log-server/internal/model"
	"reading-log-server/internal/util"
)

type PostRepository struct {
	*config.Database
}

func NewPostRepository(database *config.Database) *PostRepository {
	return &PostRepository{database}
}

// Create : сохраняет новый пост
func (r *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	query := `
	INSERT INTO posts (uuid, user_uuid, book_title, content, image_url, author_name, reading_progress)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING uuid, user_uuid, book_title, content, image_url, author_name, reading_progress, created_at
	`

	createdPost := &model.Post{}
	err := r.DB.QueryRowxContext(ctx, query,
		post.UUID,
		post.UserUUID,
		post.BookTitle,
		post.Content,
		post.ImageURL,
		post.AuthorName,
		post.ReadingProgress,
	).StructScan(createdPost)

	if err != nil {
		return nil, util.LogError("[PostRepo] ошибка вставки данных в БД", err)
	}

	return createdPost, nil
}

// GetByUUID : ищет пост вместе с числом комментариев
func (r *PostRepository) GetByUUID(ctx context.Context, uuid string) (*model.Post, error) {
	query := `
	SELECT p.uuid, p.user_uuid, p.book_title, p.content, p.image_url, p.author_name, p.reading_progress, p.created_at,
		(SELECT COUNT(*) FROM comments c WHERE c.post_uuid = p.uuid) AS comment_count
	FROM posts p
	WHERE p.uuid = $1
	`

	var post model.Post
	err := r.DB.GetContext(ctx, &post, query, uuid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.LogError("[PostRepo] пост не найден", err)
		}
		return nil, util.LogError("[PostRepo] не удалось найти пост в БД", err)
	}

	return &post, nil
}

// ListFeed : страница ленты, свежие посты первыми.
// Вторым значением возвращает общее число постов
func (r *PostRepository) ListFeed(ctx context.Context, page, limit int) ([]model.Post, int, error) {
	query := `
	SELECT p.uuid, p.user_uuid, p.book_title, p.content, p.image_url, p.author_name, p.reading_progress, p.created_at,
		(SELECT COUNT(*) FROM comments c WHERE c.post_uuid = p.uuid) AS comment_count
	FROM posts p
	ORDER BY p.created_at DESC
	LIMIT $1 OFFSET $2
	`

	var posts []model.Post
	err := r.DB.SelectContext(ctx, &posts, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, util.LogError("[PostRepo] не удалось получить ленту", err)
	}

	var total int
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM posts`); err != nil {
		return nil, 0, util.LogError("[PostRepo] не удалось посчитать посты", err)
	}

	return posts, total, nil
}

// ListByUser : посты одного пользователя с той же пагинацией, что и лента
func (r *PostRepository) ListByUser(ctx context.Context, userUUID string, page, limit int) ([]model.Post, int, error) {
	query := `
	SELECT p.uuid, p.user_uuid, p.book_title, p.content, p.image_url, p.author_name, p.reading_progress, p.created_at,
		(SELECT COUNT(*) FROM comments c WHERE c.post_uuid = p.uuid) AS comment_count
	FROM posts p
	WHERE p.user_uuid = $1
	ORDER BY p.created_at DESC
	LIMIT $2 OFFSET $3
	`

	var posts []model.Post
	err := r.DB.SelectContext(ctx, &posts, query, userUUID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, util.LogError("[PostRepo] не удалось получить посты пользователя", err)
	}

	var total int
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM posts WHERE user_uuid = $1`, userUUID); err != nil {
		return nil, 0, util.LogError("[PostRepo] не удалось посчитать посты пользователя", err)
	}

	return posts, total, nil
}

// Update : перезаписывает изменяемые поля поста
func (r *PostRepository) Update(ctx context.Context, post *model.Post) error {
	query := `
	UPDATE posts
	SET book_title = $2, content = $3, image_url = $4, author_name = $5, reading_progress = $6
	WHERE uuid = $1
	`

	result, err := r.DB.ExecContext(ctx, query,
		post.UUID,
		post.BookTitle,
		post.Content,
		post.ImageURL,
		post.AuthorName,
		post.ReadingProgress,
	)
	if err != nil {
		return util.LogError("[PostRepo] не удалось обновить пост", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[PostRepo] не удалось проверить, обновлен ли пост", err)
	}
	if rowsAffected == 0 {
		return util.LogError("[PostRepo] пост не найден", sql.ErrNoRows)
	}

	return nil
}

// Delete : удаляет пост, лайки и комментарии уходят каскадом
func (r *PostRepository) Delete(ctx context.Context, uuid string) error {
	query := `DELETE FROM posts WHERE uuid = $1`

	result, err := r.DB.ExecContext(ctx, query, uuid)
	if err != nil {
		return util.LogError("[PostRepo] не удалось удалить пост", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[PostRepo] не удалось проверить, удален ли пост", err)
	}
	if rowsAffected == 0 {
		return util.LogError("[PostRepo] пост не найден", sql.ErrNoRows)
	}

	return nil
}

// ListLikes : список пользователей, лайкнувших пост, в порядке лайков
func (r *PostRepository) ListLikes(ctx context.Context, postUUID string) ([]string, error) {
	query := `SELECT user_uuid FROM post_likes WHERE post_uuid = $1 ORDER BY created_at ASC`

	var likes []string
	err := r.DB.SelectContext(ctx, &likes, query, postUUID)
	if err != nil {
		return nil, util.LogError("[PostRepo] не удалось получить лайки", err)
	}

	return likes, nil
}

// HasLike : проверяет членство пользователя в лайках поста
func (r *PostRepository) HasLike(ctx context.Context, postUUID, userUUID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM post_likes WHERE post_uuid = $1 AND user_uuid = $2)`

	var exists bool
	err := r.DB.GetContext(ctx, &exists, query, postUUID, userUUID)
	if err != nil {
		return false, util.LogError("[PostRepo] ошибка проверки лайка", err)
	}

	return exists, nil
}

func (r *PostRepository) AddLike(ctx context.Context, postUUID, userUUID string) error {
	query := `INSERT INTO post_likes (post_uuid, user_uuid) VALUES ($1, $2) ON CONFLICT DO NOTHING`

	_, err := r.DB.ExecContext(ctx, query, postUUID, userUUID)
	if err != nil {
		return util.LogError("[PostRepo] не удалось сохранить лайк", err)
	}

	return nil
}

func (r *PostRepository) RemoveLike(ctx context.Context, postUUID, userUUID string) error {
	query := `DELETE FROM post_likes WHERE post_uuid = $1 AND user_uuid = $2`

	_, err := r.DB.ExecContext(ctx, query, postUUID, userUUID)
	if err != nil {
		return util.LogError("[PostRepo] не удалось удалить лайк", err)
	}

	return nil
}
