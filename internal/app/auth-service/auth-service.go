// Package authservice собирает HTTP-сервис аутентификации:
// хранилище пользователей, кодек токенов, бизнес-логику и маршруты.
package authservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/travel-assistant/internal/cache"
	"github.com/magabrotheeeer/travel-assistant/internal/config"
	"github.com/magabrotheeeer/travel-assistant/internal/lib/jwt"
	"github.com/magabrotheeeer/travel-assistant/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/travel-assistant/internal/lib/sl"
	"github.com/magabrotheeeer/travel-assistant/internal/migrations"
	authservices "github.com/magabrotheeeer/travel-assistant/internal/services/auth"
	"github.com/magabrotheeeer/travel-assistant/internal/storage/cached"
	"github.com/magabrotheeeer/travel-assistant/internal/storage/memstore"
	"github.com/magabrotheeeer/travel-assistant/internal/storage/repository"
)

// App HTTP-сервис аутентификации с корректным завершением.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *repository.Storage // nil при работе на memstore
	amqpConn *amqp.Connection    // nil, если RabbitMQ не настроен
}

// New инициализирует сервис по конфигурации.
//
// При пустой строке подключения к базе используется хранилище в памяти
// с тестовым пользователем — режим разработки, не продакшен.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.authservice.New"

	users, db, err := buildUserRepository(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	accessMaker, err := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	refreshMaker, err := jwt.NewMaker(cfg.JWTSecretKey, cfg.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var events authservices.EventPublisher
	var amqpConn *amqp.Connection
	if cfg.AMQPConnectionString != "" {
		conn, ch, err := rabbitmq.Connect(cfg.AMQPConnectionString)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		amqpConn = conn
		events = rabbitmq.NewPublisher(ch)
	}

	service := authservices.New(users, accessMaker, refreshMaker, events, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, service)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		amqpConn: amqpConn,
	}, nil
}

// buildUserRepository выбирает хранилище пользователей: PostgreSQL с
// миграциями (и кэшем Redis, когда он настроен) или memstore.
func buildUserRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (authservices.UserRepository, *repository.Storage, error) {
	if cfg.StorageConnectionString == "" {
		logger.Warn("no storage configured, using in-memory user store with seeded test user")
		store, err := memstore.NewSeeded()
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	}

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, nil, err
	}

	if cfg.AddressRedis == "" {
		return db, db, nil
	}
	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, nil, err
	}
	return cached.New(db, cacheRedis, logger), db, nil
}

// Run запускает сервер и корректно гасит его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.db != nil {
			if closeErr := a.db.DB.Close(); closeErr != nil {
				a.logger.Error("failed to close database", sl.Err(closeErr))
			}
		}
		if a.amqpConn != nil {
			_ = a.amqpConn.Close()
		}
		return err
	}
}
