// Package authservice предоставляет маршруты сервиса аутентификации.
package authservice

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/travel-assistant/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/travel-assistant/internal/http/handlers/auth/refresh"
	"github.com/magabrotheeeer/travel-assistant/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/travel-assistant/internal/http/handlers/auth/validate"
	"github.com/magabrotheeeer/travel-assistant/internal/http/handlers/health"
	authservices "github.com/magabrotheeeer/travel-assistant/internal/services/auth"
)

// RegisterRoutes регистрирует все маршруты сервиса аутентификации.
func RegisterRoutes(r chi.Router, logger *slog.Logger, service *authservices.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", login.New(logger, service).ServeHTTP)
		r.Post("/register", register.New(logger, service).ServeHTTP)
		r.Post("/refresh", refresh.New(logger, service).ServeHTTP)
		r.Get("/validate", validate.New(logger, service).ServeHTTP)
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
