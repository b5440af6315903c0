package ports

import (
	"context"

	"reading-log-server/internal/model"
)

// PostRepository : SQL слой постов и лайков
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	GetByUUID(ctx context.Context, uuid string) (*model.Post, error)
	ListFeed(ctx context.Context, page, limit int) ([]model.Post, int, error)
	ListByUser(ctx context.Context, userUUID string, page, limit int) ([]model.Post, int, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, uuid string) error
	ListLikes(ctx context.Context, postUUID string) ([]string, error)
	HasLike(ctx context.Context, postUUID, userUUID string) (bool, error)
	AddLike(ctx context.Context, postUUID, userUUID string) error
	RemoveLike(ctx context.Context, postUUID, userUUID string) error
}

type PostService interface {
	CreatePost(ctx context.Context, post *model.Post, image *model.ImageUpload) (*model.Post, error)
	GetPost(ctx context.Context, uuid string) (*model.Post, error)
	GetFeed(ctx context.Context, page int) ([]model.Post, int, error)
	GetUserPosts(ctx context.Context, userUUID string, page int) ([]model.Post, int, error)
	UpdatePost(ctx context.Context, uuid, userUUID string, update *model.PostUpdate, image *model.ImageUpload) (*model.Post, error)
	DeletePost(ctx context.Context, uuid, userUUID string) error
	ToggleLike(ctx context.Context, postUUID, userUUID string) (bool, error)
}
