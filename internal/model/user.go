package model

import (
	"database/sql"
	"time"
)

type User struct {
	UUID           string         `db:"uuid" json:"id"`
	Username       string         `db:"username" json:"username"`
	Email          string         `db:"email" json:"email"`
	PasswordHash   sql.NullString `db:"password_hash" json:"-"`
	ProfilePicture sql.NullString `db:"profile_picture" json:"-"`
	GoogleID       sql.NullString `db:"google_id" json:"-"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}

// ProfilePictureOrEmpty возвращает путь к аватару или пустую строку
func (u *User) ProfilePictureOrEmpty() string {
	if u.ProfilePicture.Valid {
		return u.ProfilePicture.String
	}
	return ""
}

// IsFederated : пользователь создан через Google-вход, пароля у него нет
func (u *User) IsFederated() bool {
	return !u.PasswordHash.Valid
}
