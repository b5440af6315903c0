package ports

import (
	"context"

	"reading-log-server/internal/model"
)

// CacheRepository : Redis слой
type CacheRepository interface {
	SetPost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, uuid string) (*model.Post, error)
	DeletePost(ctx context.Context, uuid string) error
}
