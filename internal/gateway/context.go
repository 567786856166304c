// Package gateway реализует пограничный фильтр аутентификации и
// обратный прокси к нижестоящим сервисам. Фильтр стоит первым в цепочке:
// неаутентифицированный трафик не достигает бизнес-логики.
package gateway

import (
	"context"

	"github.com/magabrotheeeer/travel-assistant/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserKey — ключ идентичности текущего запроса в контексте.
//
// Идентичность живёт только в контексте запроса и никогда не
// складывается в разделяемое между запросами состояние.
const UserKey Key = "login_user"

// WithLoginUser привязывает идентичность запроса к контексту.
func WithLoginUser(ctx context.Context, user models.LoginUser) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// LoginUserFromContext возвращает идентичность текущего запроса.
// Второе значение false означает, что запрос пришёл по публичному пути
// или фильтр ещё не отработал.
func LoginUserFromContext(ctx context.Context) (models.LoginUser, bool) {
	user, ok := ctx.Value(UserKey).(models.LoginUser)
	return user, ok
}
