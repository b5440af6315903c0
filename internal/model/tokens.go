package model

import "time"

// RefreshToken : одна запись из списка действующих refresh токенов пользователя.
// Токен хранится значением: refresh признается валидным только если
// подпись и срок действия в порядке И он присутствует в списке владельца
type RefreshToken struct {
	UserUUID  string    `db:"user_uuid"`
	Token     string    `db:"token"`
	ExpireAt  time.Time `db:"expire_at"`
	CreatedAt time.Time `db:"created_at"`
}

// TokensPair содержит пару access и refresh токенов
type TokensPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
