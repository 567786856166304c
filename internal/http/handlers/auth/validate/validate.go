// Package validate реализует HTTP-обработчик проверки access токена.
// Результат — булев предикат: любая причина недействительности даёт false.
package validate

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/travel-assistant/internal/http/response"
)

// Service описывает интерфейс проверки токена.
type Service interface {
	Validate(ctx context.Context, token string) bool
}

type Handler struct {
	log  *slog.Logger
	auth Service
}

func New(log *slog.Logger, auth Service) *Handler {
	return &Handler{
		log:  log,
		auth: auth,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.validate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	authHeader := r.Header.Get("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	valid := token != "" && token != authHeader && h.auth.Validate(r.Context(), token)

	log.Info("token validated", slog.Bool("valid", valid))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"valid": valid,
	}))
}
