package ports

import (
	"context"
	"io"
	"time"
)

// MediaStorage : объектное хранилище загруженных изображений
type MediaStorage interface {
	UploadObject(ctx context.Context, key, contentType string, body io.Reader) error
	GeneratePresignedGetURL(ctx context.Context, key string, expire time.Duration) (string, error)
	DeleteObject(ctx context.Context, key string) error
}
