// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и статус.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

// Статусы учётной записи пользователя.
const (
	// StatusDisabled — учётная запись заблокирована.
	StatusDisabled = 0
	// StatusEnabled — учётная запись активна.
	StatusEnabled = 1
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int64  // Уникальный идентификатор пользователя
	Username     string // Имя пользователя (уникальное)
	PasswordHash string // Хэш пароля пользователя
	Nickname     string // Отображаемое имя
	Email        string // Электронная почта
	Phone        string // Телефон
	Avatar       string // Ссылка на аватар
	Status       int    // Статус (0 — заблокирован, 1 — активен)
	Role         string // Роль пользователя, admin или USER
}

// UserInfo публичный срез данных пользователя, возвращаемый клиенту.
// Никогда не содержит хэш пароля.
type UserInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
	Role     string `json:"role"`
}

// Info возвращает публичный срез данных пользователя.
func (u *User) Info() UserInfo {
	return UserInfo{
		ID:       u.ID,
		Username: u.Username,
		Nickname: u.Nickname,
		Email:    u.Email,
		Avatar:   u.Avatar,
		Role:     u.Role,
	}
}
