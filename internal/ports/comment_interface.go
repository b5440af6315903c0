package ports

import (
	"context"

	"reading-log-server/internal/model"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) (*model.Comment, error)
	Update(ctx context.Context, uuid, content string) (*model.Comment, error)
	Delete(ctx context.Context, uuid string) (bool, error)
	ListByPost(ctx context.Context, postUUID string) ([]model.CommentForPost, error)
	ListAll(ctx context.Context) ([]model.Comment, error)
}

type CommentService interface {
	CreateComment(ctx context.Context, userUUID, postUUID, content string) (*model.Comment, error)
	UpdateComment(ctx context.Context, uuid, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, uuid string) error
	ListByPost(ctx context.Context, postUUID string) ([]model.CommentForPost, error)
	ListAll(ctx context.Context) ([]model.Comment, error)
}
