// Package cached добавляет к хранилищу пользователей сквозной кэш в Redis.
// Чтение по username идёт через кэш, запись нового пользователя
// инвалидирует соответствующий ключ.
package cached

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/travel-assistant/internal/cache"
	"github.com/magabrotheeeer/travel-assistant/internal/lib/sl"
	"github.com/magabrotheeeer/travel-assistant/internal/models"
)

// userKeyTTL срок жизни закэшированной записи пользователя.
const userKeyTTL = 5 * time.Minute

// UserRepository контракт нижележащего хранилища пользователей.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (int64, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// UserStore хранилище пользователей со сквозным кэшем.
type UserStore struct {
	repo  UserRepository
	cache *cache.Cache
	log   *slog.Logger
}

// New оборачивает repo кэшем. Ошибки кэша не фатальны: промах или сбой
// Redis всегда приводит к походу в хранилище.
func New(repo UserRepository, c *cache.Cache, log *slog.Logger) *UserStore {
	return &UserStore{repo: repo, cache: c, log: log}
}

func userKey(username string) string {
	return fmt.Sprintf("user:%s", username)
}

// CreateUser сохраняет пользователя и инвалидирует его ключ в кэше.
func (s *UserStore) CreateUser(ctx context.Context, user models.User) (int64, error) {
	id, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return 0, err
	}
	if err := s.cache.Invalidate(ctx, userKey(user.Username)); err != nil {
		s.log.Warn("failed to invalidate user cache", sl.Err(err))
	}
	return id, nil
}

// GetUserByUsername возвращает пользователя, используя кэш при попадании.
func (s *UserStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var cachedUser models.User
	found, err := s.cache.Get(ctx, userKey(username), &cachedUser)
	if err != nil {
		s.log.Warn("user cache read failed", sl.Err(err))
	}
	if found {
		return &cachedUser, nil
	}

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, userKey(username), user, userKeyTTL); err != nil {
		s.log.Warn("user cache write failed", sl.Err(err))
	}
	return user, nil
}
