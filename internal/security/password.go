package security

import (
	"reading-log-server/internal/util"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword : одноразовое медленное хэширование пароля с солью
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", util.LogError("ошибка хэширования пароля", err)
	}
	return string(hash), nil
}

// CheckPassword сравнивает пароль с хэшем.
// На битом хэше возвращает false, а не ошибку
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
