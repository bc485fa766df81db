package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_client_requests_total",
			Help: "Total number of backend API calls issued by the client.",
		},
		[]string{"code", "method", "path"},
	)
	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_client_request_duration_seconds",
			Help:    "Duration of backend API calls in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	tokenRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "token_refresh_total",
			Help: "Silent access-token refresh attempts by outcome.",
		},
		[]string{"outcome"},
	)

	storeIntentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_intents_total",
			Help: "Intents dispatched into the global store.",
		},
		[]string{"intent"},
	)
)

func ObserveAPIRequest(method, path string, statusCode int, duration time.Duration) {
	apiRequestsTotal.WithLabelValues(strconv.Itoa(statusCode), method, path).Inc()
	apiRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func ObserveTokenRefresh(outcome string) {
	tokenRefreshTotal.WithLabelValues(outcome).Inc()
}

func ObserveIntent(intent string) {
	storeIntentsTotal.WithLabelValues(intent).Inc()
}

// http.Handler for the Prometheus /metrics endpoint
func Handler() http.Handler {

	return promhttp.Handler()
}
