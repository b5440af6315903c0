package requestresponse

import (
	"reading-log-server/internal/model"
	"time"
)

// PostResponse : описывает пост для JSON-ответа
type PostResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	BookTitle       string    `json:"bookTitle"`
	Content         string    `json:"content,omitempty"`
	ImageURL        string    `json:"imageUrl"`
	AuthorName      string    `json:"authorName,omitempty"`
	ReadingProgress int64     `json:"readingProgress,omitempty"`
	Likes           []string  `json:"likes"`
	CommentCount    int       `json:"commentCount"`
	CreatedAt       time.Time `json:"createdAt"`
}

// PostResponseFromModel : конвертирует model.Post в PostResponse
func PostResponseFromModel(post *model.Post) PostResponse {
	likes := post.Likes
	if likes == nil {
		likes = []string{}
	}
	return PostResponse{
		ID:              post.UUID,
		UserID:          post.UserUUID,
		BookTitle:       post.BookTitle,
		Content:         post.Content.String,
		ImageURL:        post.ImageURL,
		AuthorName:      post.AuthorName.String,
		ReadingProgress: post.ReadingProgress.Int64,
		Likes:           likes,
		CommentCount:    post.CommentCount,
		CreatedAt:       post.CreatedAt,
	}
}

// FeedResponse : страница ленты с общим числом страниц
type FeedResponse struct {
	Posts      []PostResponse `json:"posts"`
	TotalPages int            `json:"totalPages"`
}
