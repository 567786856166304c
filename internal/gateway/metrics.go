package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_requests_total",
		Help: "Количество запросов через шлюз по исходу: public, forwarded, rejected.",
	}, []string{"outcome"})

	rejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_rejections_total",
		Help: "Количество отклонённых запросов по причине отказа.",
	}, []string{"reason"})
)
