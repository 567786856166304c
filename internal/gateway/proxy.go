package gateway

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/travel-assistant/internal/config"
	"github.com/magabrotheeeer/travel-assistant/internal/http/response"
	"github.com/magabrotheeeer/travel-assistant/internal/lib/sl"
)

// route скомпилированное правило маршрутизации.
type route struct {
	prefix string
	proxy  *httputil.ReverseProxy
}

// Proxy направляет запросы нижестоящим сервисам по префиксу пути.
// Таблица маршрутов неизменяема после старта.
type Proxy struct {
	routes []route
	log    *slog.Logger
}

// NewProxy собирает таблицу маршрутов из конфигурации.
// Порядок маршрутов значим: выигрывает первый подошедший префикс.
func NewProxy(routes []config.Route, log *slog.Logger) (*Proxy, error) {
	const op = "gateway.NewProxy"
	p := &Proxy{log: log}
	for _, r := range routes {
		target, err := url.Parse(r.Target)
		if err != nil {
			return nil, fmt.Errorf("%s: route %s: %w", op, r.Prefix, err)
		}
		rp := httputil.NewSingleHostReverseProxy(target)
		rp.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
			log.Error("downstream request failed",
				slog.String("path", r.URL.Path), sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
		}
		p.routes = append(p.routes, route{prefix: r.Prefix, proxy: rp})
	}
	return p, nil
}

// ServeHTTP проксирует запрос первому маршруту с подходящим префиксом,
// добавляя X-Request-Id, если клиент его не прислал.
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("X-Request-Id") == "" {
		r.Header.Set("X-Request-Id", uuid.NewString())
	}

	for _, rt := range p.routes {
		if strings.HasPrefix(r.URL.Path, rt.prefix) {
			rt.proxy.ServeHTTP(w, r)
			return
		}
	}

	p.log.Warn("no route for path", slog.String("path", r.URL.Path))
	w.WriteHeader(http.StatusNotFound)
	render.JSON(w, r, response.Error("no route for path"))
}
