package requestresponse

import (
	"reading-log-server/internal/model"
	"time"
)

// RegisterRequest : тело запроса регистрации
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest : тело запроса на аутентификацию
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleLoginRequest : вход через Google, credential — это ID token провайдера
type GoogleLoginRequest struct {
	Credential string `json:"credential"`
}

// RefreshTokenRequest : запрос на обновление access токена
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// UserData : данные пользователя без пароля и списка токенов
type UserData struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// UserDataFromModel : конвертирует model.User в UserData
func UserDataFromModel(user *model.User) UserData {
	return UserData{
		ID:             user.UUID,
		Username:       user.Username,
		Email:          user.Email,
		ProfilePicture: user.ProfilePictureOrEmpty(),
		CreatedAt:      user.CreatedAt,
	}
}

// AuthResponse : ответ на успешный login / google login
type AuthResponse struct {
	User        UserData `json:"user"`
	AccessToken string   `json:"accessToken"`
}

// RefreshTokenResponse : ответ на успешное обновление
type RefreshTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// MessageResponse : общий ответ для подтверждения действий
type MessageResponse struct {
	Message string `json:"message"`
}
