// Package gatewayapp собирает пограничный шлюз: фильтр аутентификации,
// ограничитель потока и обратный прокси к нижестоящим сервисам.
package gatewayapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/travel-assistant/internal/config"
	"github.com/magabrotheeeer/travel-assistant/internal/gateway"
	"github.com/magabrotheeeer/travel-assistant/internal/lib/jwt"
)

// App пограничный шлюз с корректным завершением.
type App struct {
	server *http.Server
	logger *slog.Logger
}

// New инициализирует шлюз по конфигурации.
//
// Секретный ключ проверяется здесь: со слишком коротким ключом шлюз
// не стартует. Фильтр аутентификации ставится до любых решений
// о маршрутизации.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.gateway.New"

	maker, err := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	proxy, err := gateway.NewProxy(cfg.Gateway.Routes, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      newRouter(maker, cfg, proxy, logger),
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
	}, nil
}

// newRouter собирает цепочку middleware шлюза. Recoverer стоит раньше
// фильтра и ограничителя, чтобы паника в них не роняла процесс.
// Путь /metrics входит в список публичных: скрейпер Prometheus не
// предъявляет токен.
func newRouter(maker jwt.Maker, cfg *config.Config, proxy http.Handler, logger *slog.Logger) chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(gateway.AuthFilter(maker, gateway.FilterConfig{
		Header:       cfg.Header,
		BearerPrefix: cfg.BearerPrefix,
		PublicPaths:  cfg.Gateway.PublicPaths,
	}, logger))
	router.Use(gateway.RateLimitMiddleware(logger))

	router.Handle("/metrics", promhttp.Handler())
	router.NotFound(proxy.ServeHTTP)
	return router
}

// Run запускает шлюз и корректно гасит его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("gateway starting on", slog.String("address", a.server.Addr))
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
		a.logger.Info("shutting down gateway gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}
