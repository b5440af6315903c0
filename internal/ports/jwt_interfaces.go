package ports

import (
	"context"

	"reading-log-server/internal/model"
	"reading-log-server/internal/security"
)

// JWTRepositoryInterface : операции над списком действующих refresh токенов пользователя
type JWTRepositoryInterface interface {
	SaveRefreshToken(ctx context.Context, token *model.RefreshToken) error
	Exists(ctx context.Context, userUUID, token string) (bool, error)
	DeleteAllForUser(ctx context.Context, userUUID string) error
}

type JWTServiceInterface interface {
	GenerateAccessRefreshTokens(userUUID string) (*model.TokensPair, *model.RefreshToken, error)
	GenerateAccessToken(userUUID string) (string, error)
	ValidateJWT(tokenString string, secret []byte) (*security.Claims, error)
	ParseAccessToken(tokenStr string) (*security.Claims, error)
	ParseRefreshToken(tokenStr string) (*security.Claims, error)
}

// GoogleVerifierInterface : внешний сервис проверки ID токена провайдера
type GoogleVerifierInterface interface {
	VerifyIDToken(ctx context.Context, credential string) (*security.GooglePayload, error)
}
