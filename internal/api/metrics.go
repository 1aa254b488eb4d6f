package api

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "relocation_quest"

type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	sessionFailures *prometheus.CounterVec
}

// NewMetrics registers the HTTP metrics on reg. Tests pass a fresh
// registry so repeated construction does not collide.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		sessionFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "session_failures_total",
				Help:      "Requests rejected by session resolution",
			},
			[]string{"reason"},
		),
	}
}

// Middleware labels by route template, not raw path, to keep cardinality
// bounded.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			m.requestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
			m.requestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

func (m *Metrics) recordSessionFailure(reason string) {
	m.sessionFailures.WithLabelValues(reason).Inc()
}
