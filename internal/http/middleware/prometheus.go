package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

const procedureParam = "procedure"

// PrometheusMiddleware records request counts and latency per route.
type PrometheusMiddleware struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewPrometheusMiddleware registers the HTTP collectors on reg.
func NewPrometheusMiddleware(reg prometheus.Registerer) (*PrometheusMiddleware, error) {
	m := &PrometheusMiddleware{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed.",
		}, []string{"method", "path", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
	if err := reg.Register(m.requests); err != nil {
		return nil, err
	}
	if err := reg.Register(m.latency); err != nil {
		return nil, err
	}
	return m, nil
}

// Handler returns the fiber middleware. Scrapes of /metrics are not counted.
func (m *PrometheusMiddleware) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start).Seconds()

		status := statusOf(c, err)
		path := routeLabel(c, status)

		m.requests.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		m.latency.WithLabelValues(c.Method(), path).Observe(elapsed)
		return err
	}
}

// statusOf reports the status the error handler will write for err.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

// routeLabel keeps label cardinality bounded: the matched route pattern,
// except that known RPC procedures get their own series.
func routeLabel(c *fiber.Ctx, status int) string {
	if proc := c.Params(procedureParam); proc != "" && status != fiber.StatusNotFound {
		return "/rpc/" + proc
	}
	if p := c.Route().Path; p != "" {
		return p
	}
	return c.Path()
}
