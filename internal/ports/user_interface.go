package ports

import (
	"context"
	"io"

	"reading-log-server/internal/model"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	FindByUUID(ctx context.Context, uuid string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateUser(ctx context.Context, user *model.User) error
	UpdateProfilePicture(ctx context.Context, uuid, path string) error
	LinkGoogleAccount(ctx context.Context, uuid, googleID string) error
	DeleteUser(ctx context.Context, uuid string) error
	ListUsers(ctx context.Context) ([]*model.User, error)
}

type UserService interface {
	GetUser(ctx context.Context, uuid string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	UpdateUser(ctx context.Context, uuid, username, email string) (*model.User, error)
	UploadProfilePicture(ctx context.Context, uuid, filename, contentType string, file io.Reader) (string, error)
	DeleteUser(ctx context.Context, uuid string) error
}
