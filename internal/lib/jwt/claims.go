package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims описывает полезную нагрузку токена.
type Claims struct {
	UserID               int64  `json:"userId"`   // Идентификатор пользователя
	Username             string `json:"username"` // Имя пользователя
	Role                 string `json:"role"`     // Роль пользователя
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}
