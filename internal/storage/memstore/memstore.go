// Package memstore реализует хранилище пользователей в памяти.
// Это заглушка реальной базы данных для разработки и тестов:
// карта по username под RWMutex, безопасная для конкурентного доступа.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/magabrotheeeer/travel-assistant/internal/lib/password"
	"github.com/magabrotheeeer/travel-assistant/internal/models"
	"github.com/magabrotheeeer/travel-assistant/internal/storage"
)

// Store хранит пользователей в памяти, ключ — username.
type Store struct {
	mu     sync.RWMutex
	users  map[string]models.User
	nextID int64
}

// New создаёт пустое хранилище.
func New() *Store {
	return &Store{
		users:  make(map[string]models.User),
		nextID: 1,
	}
}

// NewSeeded создаёт хранилище с тестовым пользователем test/123456.
func NewSeeded() (*Store, error) {
	const op = "memstore.NewSeeded"
	s := New()
	hash, err := password.GetHash("123456")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	_, err = s.CreateUser(context.Background(), models.User{
		Username:     "test",
		PasswordHash: hash,
		Nickname:     "Test User",
		Email:        "test@example.com",
		Status:       models.StatusEnabled,
		Role:         "USER",
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

// CreateUser сохраняет нового пользователя и возвращает его ID.
// Возвращает storage.ErrUsernameTaken при занятом имени.
func (s *Store) CreateUser(ctx context.Context, user models.User) (int64, error) {
	const op = "memstore.CreateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Username]; ok {
		return 0, fmt.Errorf("%s: %w", op, storage.ErrUsernameTaken)
	}
	user.ID = s.nextID
	s.nextID++
	s.users[user.Username] = user
	return user.ID, nil
}

// GetUserByUsername возвращает пользователя по его username.
// Возвращает storage.ErrUserNotFound, если пользователя нет.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "memstore.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[username]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}
	return &user, nil
}
