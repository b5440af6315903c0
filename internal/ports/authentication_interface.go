package ports

import (
	"context"

	"reading-log-server/internal/model"
)

type AuthenticationService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, *model.TokensPair, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, accessToken string) error
	GoogleLogin(ctx context.Context, credential string) (*model.User, *model.TokensPair, error)
}
