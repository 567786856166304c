// Package refresh реализует HTTP-обработчик обновления access токена
// по refresh токену из заголовка Authorization.
package refresh

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/travel-assistant/internal/http/response"
	"github.com/magabrotheeeer/travel-assistant/internal/lib/sl"
	"github.com/magabrotheeeer/travel-assistant/internal/models"
	authservice "github.com/magabrotheeeer/travel-assistant/internal/services/auth"
)

// Service описывает интерфейс обновления токена.
type Service interface {
	Refresh(ctx context.Context, refreshToken string) (*models.LoginResponse, error)
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
	const op = "handlers.auth.refresh"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		log.Warn("missing or invalid authorization header")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("missing or invalid authorization header"))
		return
	}
	refreshToken := strings.TrimPrefix(authHeader, "Bearer ")

	resp, err := h.auth.Refresh(r.Context(), refreshToken)
	if err != nil {
		if errors.Is(err, authservice.ErrTokenInvalid) {
			log.Warn("refresh rejected: invalid token")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("refresh token invalid"))
			return
		}
		log.Error("refresh failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("access token refreshed")
	render.JSON(w, r, resp)
}
