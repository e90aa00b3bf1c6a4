package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BackendRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_backend_request_duration_seconds",
		Help:    "Latency of calls to backend services",
		Buckets: prometheus.DefBuckets,
	}, []string{"service", "operation", "outcome"})

	BackendErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_backend_errors_total",
		Help: "Total number of failed backend calls by error kind",
	}, []string{"service", "kind"})

	CartAddsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cart_adds_total",
		Help: "Add-to-cart attempts by result",
	}, []string{"result"})

	CartFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cart_fetches_total",
		Help: "Cart reconciling fetches by result",
	}, []string{"result"})

	OrderCancelsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_order_cancels_total",
		Help: "Order cancel attempts by result",
	}, []string{"result"})

	StaleCompletionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_stale_completions_total",
		Help: "Fetch completions discarded because a newer fetch already applied",
	}, []string{"view"})

	ListingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_listings_total",
		Help: "Product listings served by kind and state",
	}, []string{"kind", "state"})

	SessionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_sessions_total",
		Help: "Session lifecycle events",
	}, []string{"event"})

	ActiveSessionStates = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_active_session_states",
		Help: "Sessions with in-memory cart/order state",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
