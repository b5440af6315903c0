package model

import (
	"database/sql"
	"time"
)

// Post сериализуется в JSON только внутрь Redis-кэша,
// наружу посты уходят через requestresponse.PostResponse
type Post struct {
	UUID            string         `db:"uuid" json:"uuid"`
	UserUUID        string         `db:"user_uuid" json:"user_uuid"`
	BookTitle       string         `db:"book_title" json:"book_title"`
	Content         sql.NullString `db:"content" json:"content"`
	ImageURL        string         `db:"image_url" json:"image_url"`
	AuthorName      sql.NullString `db:"author_name" json:"author_name"`
	ReadingProgress sql.NullInt64  `db:"reading_progress" json:"reading_progress"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`

	// Заполняются отдельными запросами, в таблице posts их нет
	Likes        []string `db:"-" json:"likes"`
	CommentCount int      `db:"comment_count" json:"comment_count"`
}

// PostUpdate : изменяемые поля поста; пустые значения не трогают текущие
type PostUpdate struct {
	BookTitle       string
	Content         string
	ImageURL        string
	AuthorName      string
	ReadingProgress *int64
}
