// Package storage объявляет общие ошибки хранилищ пользователей.
// Конкретные реализации живут в подпакетах repository (PostgreSQL)
// и memstore (карта в памяти для разработки и тестов).
package storage

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь с таким именем не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken возвращается при попытке создать пользователя с занятым именем.
	ErrUsernameTaken = errors.New("username already taken")
)
