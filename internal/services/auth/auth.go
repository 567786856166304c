// Package auth содержит логику бизнес-уровня для работы с пользователями
// и аутентификацией: вход, регистрация, обновление и проверка токенов.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/travel-assistant/internal/lib/jwt"
	"github.com/magabrotheeeer/travel-assistant/internal/lib/password"
	"github.com/magabrotheeeer/travel-assistant/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/travel-assistant/internal/lib/sl"
	"github.com/magabrotheeeer/travel-assistant/internal/models"
)

// DefaultRole роль, назначаемая при регистрации.
const DefaultRole = "USER"

var (
	// ErrInvalidCredentials возвращается при неверном пароле или неизвестном имени.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserDisabled возвращается для заблокированной учётной записи.
	ErrUserDisabled = errors.New("user disabled")
	// ErrPasswordMismatch возвращается, когда пароль и подтверждение не совпадают.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrTokenInvalid возвращается при недействительном refresh токене.
	ErrTokenInvalid = errors.New("refresh token invalid")
)

// UserRepository описывает контракт для работы с пользователями в хранилище.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (int64, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// EventPublisher публикует события о регистрации пользователей.
type EventPublisher interface {
	PublishUserRegistered(event rabbitmq.UserRegisteredEvent) error
}

// RegisterRequest входные данные регистрации.
type RegisterRequest struct {
	Username        string
	Password        string
	ConfirmPassword string
	Nickname        string
	Email           string
}

// Service отвечает за регистрацию, авторизацию и валидацию JWT.
//
// Токены не хранятся на сервере: access и refresh токены самодостаточны,
// refresh токен не ротируется и не отзывается до естественного истечения.
type Service struct {
	users        UserRepository
	accessMaker  jwt.Maker
	refreshMaker jwt.Maker
	events       EventPublisher // может быть nil, публикация необязательна
	log          *slog.Logger
}

// New создает новый экземпляр Service. events может быть nil.
func New(users UserRepository, accessMaker, refreshMaker jwt.Maker, events EventPublisher, log *slog.Logger) *Service {
	return &Service{
		users:        users,
		accessMaker:  accessMaker,
		refreshMaker: refreshMaker,
		events:       events,
		log:          log,
	}
}

// Login проверяет пароль пользователя и выпускает пару токенов.
//
// Возвращает storage.ErrUserNotFound, ErrUserDisabled или
// ErrInvalidCredentials; в ответе никогда нет хэша пароля.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (*models.LoginResponse, error) {
	const op = "auth.Login"
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if user.Status == models.StatusDisabled {
		return nil, fmt.Errorf("%s: %w", op, ErrUserDisabled)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	accessToken, err := s.accessMaker.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	refreshToken, err := s.refreshMaker.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	info := user.Info()
	return &models.LoginResponse{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessMaker.TTL().Seconds()),
		User:         &info,
	}, nil
}

// Register создает нового пользователя с хэшированием пароля и дефолтной ролью.
//
// Возвращает storage.ErrUsernameTaken или ErrPasswordMismatch. Токены при
// регистрации не выпускаются, клиент выполняет вход отдельно.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (int64, error) {
	const op = "auth.Register"
	if req.Password != req.ConfirmPassword {
		return 0, fmt.Errorf("%s: %w", op, ErrPasswordMismatch)
	}
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	nickname := req.Nickname
	if nickname == "" {
		nickname = req.Username
	}
	user := models.User{
		Username:     req.Username,
		PasswordHash: hashed,
		Nickname:     nickname,
		Email:        req.Email,
		Status:       models.StatusEnabled,
		Role:         DefaultRole,
	}
	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if s.events != nil {
		event := rabbitmq.UserRegisteredEvent{
			UserID:   id,
			Username: req.Username,
			Email:    req.Email,
		}
		if err := s.events.PublishUserRegistered(event); err != nil {
			s.log.Warn("failed to publish user.registered event", sl.Err(err))
		}
	}
	return id, nil
}

// Refresh выпускает новый access токен по действительному refresh токену.
//
// Любая причина отказа в разборе (подпись, структура, истечение) сводится
// к ErrTokenInvalid. Refresh токен не ротируется.
func (s *Service) Refresh(_ context.Context, refreshToken string) (*models.LoginResponse, error) {
	const op = "auth.Refresh"
	claims, err := s.refreshMaker.ParseToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrTokenInvalid)
	}

	accessToken, err := s.accessMaker.GenerateToken(claims.UserID, claims.Username, claims.Role)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.LoginResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.accessMaker.TTL().Seconds()),
	}, nil
}

// Validate проверяет access токен как чистый предикат: любая ошибка
// разбора сводится к false.
func (s *Service) Validate(_ context.Context, token string) bool {
	_, err := s.accessMaker.ParseToken(token)
	return err == nil
}
