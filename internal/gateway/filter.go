package gateway

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/travel-assistant/internal/lib/jwt"
	"github.com/magabrotheeeer/travel-assistant/internal/lib/sl"
	"github.com/magabrotheeeer/travel-assistant/internal/models"
)

// Причины отказа, уходящие клиенту в теле 401 ответа.
const (
	ReasonMissingCredentials = "missing credentials"
	ReasonInvalidToken       = "invalid token"
	ReasonTokenExpired       = "token expired"
)

// FilterConfig настройки фильтра аутентификации. Все поля неизменяемы
// после старта и безопасны для конкурентного чтения.
type FilterConfig struct {
	Header       string   // Имя заголовка с токеном, по умолчанию Authorization
	BearerPrefix string   // Префикс перед токеном, по умолчанию "Bearer "
	PublicPaths  []string // Фрагменты публичных путей, без аутентификации
}

// rejection фиксированная структура тела ответа 401.
type rejection struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AuthFilter возвращает middleware, которое проверяет JWT на каждом
// защищённом пути до любых решений о маршрутизации.
//
// Публичные пути пропускаются без проверок и без заголовков идентичности.
// Для защищённых путей токен извлекается из настроенного заголовка,
// проверяется, и в исходящий запрос добавляются X-User-Id и X-Username,
// а идентичность привязывается к контексту запроса.
func AuthFilter(maker jwt.Maker, cfg FilterConfig, log *slog.Logger) func(http.Handler) http.Handler {
	header := cfg.Header
	if header == "" {
		header = "Authorization"
	}
	prefix := cfg.BearerPrefix
	if prefix == "" {
		prefix = "Bearer "
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "gateway.AuthFilter"
			path := r.URL.Path

			log := log.With(
				slog.String("op", op),
				slog.String("path", path),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if isPublic(path, cfg.PublicPaths) {
				requestsTotal.WithLabelValues("public").Inc()
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get(header)
			if !strings.HasPrefix(authHeader, prefix) {
				log.Warn("request without credentials")
				reject(w, ReasonMissingCredentials)
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, prefix)

			claims, err := maker.ParseToken(tokenStr)
			if err != nil {
				if errors.Is(err, jwt.ErrExpired) {
					log.Warn("token expired")
					reject(w, ReasonTokenExpired)
					return
				}
				log.Warn("token rejected", sl.Err(err))
				reject(w, ReasonInvalidToken)
				return
			}

			r.Header.Set("X-User-Id", strconv.FormatInt(claims.UserID, 10))
			r.Header.Set("X-Username", claims.Username)

			loginUser := models.LoginUser{
				UserID:   claims.UserID,
				Username: claims.Username,
				Role:     claims.Role,
			}
			ctx := WithLoginUser(r.Context(), loginUser)

			requestsTotal.WithLabelValues("forwarded").Inc()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// isPublic сообщает, входит ли путь в список публичных.
// Совпадение по вхождению фрагмента, как в таблице маршрутов шлюза.
func isPublic(path string, publicPaths []string) bool {
	for _, p := range publicPaths {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}

// reject отправляет фиксированный 401 ответ и учитывает отказ в метриках.
func reject(w http.ResponseWriter, reason string) {
	requestsTotal.WithLabelValues("rejected").Inc()
	rejectionsTotal.WithLabelValues(reason).Inc()

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(rejection{
		Code:    http.StatusUnauthorized,
		Message: reason,
	})
}
