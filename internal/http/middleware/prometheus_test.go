package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMetricsApp(t *testing.T) (*fiber.App, *PrometheusMiddleware) {
	t.Helper()
	m, err := NewPrometheusMiddleware(prometheus.NewRegistry())
	require.NoError(t, err)

	app := fiber.New()
	app.Use(m.Handler())
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/metrics", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/attachments/:id/content", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Delete("/api/cron/cleanup", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusUnauthorized, "no")
	})
	app.Post("/rpc/:procedure", func(c *fiber.Ctx) error {
		if c.Params("procedure") == "tasks.list" {
			return c.SendStatus(fiber.StatusOK)
		}
		return c.SendStatus(fiber.StatusNotFound)
	})
	return app, m
}

func TestNewPrometheusMiddleware_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	_, err = NewPrometheusMiddleware(reg)
	assert.Error(t, err)
}

func TestPrometheusMiddleware_Labels(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		labels []string
	}{
		{"plain route", "GET", "/health", []string{"GET", "/health", "200"}},
		{"route pattern", "GET", "/attachments/a1/content", []string{"GET", "/attachments/:id/content", "200"}},
		{"fiber error status", "DELETE", "/api/cron/cleanup", []string{"DELETE", "/api/cron/cleanup", "401"}},
		{"known procedure", "POST", "/rpc/tasks.list", []string{"POST", "/rpc/tasks.list", "200"}},
		{"unknown procedure", "POST", "/rpc/nope.nope", []string{"POST", "/rpc/:procedure", "404"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, m := newMetricsApp(t)
			_, err := app.Test(httptest.NewRequest(tt.method, tt.target, nil))
			require.NoError(t, err)

			assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(tt.labels...)))
			assert.Equal(t, 1, testutil.CollectAndCount(m.latency))
		})
	}
}

func TestPrometheusMiddleware_SkipsMetrics(t *testing.T) {
	app, m := newMetricsApp(t)
	_, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)

	assert.Zero(t, testutil.CollectAndCount(m.requests))
	assert.Zero(t, testutil.CollectAndCount(m.latency))
}

func TestPrometheusMiddleware_Accumulates(t *testing.T) {
	app, m := newMetricsApp(t)
	for i := 0; i < 3; i++ {
		_, err := app.Test(httptest.NewRequest("POST", "/rpc/tasks.list", nil))
		require.NoError(t, err)
	}
	assert.Equal(t, 3.0, testutil.ToFloat64(m.requests.WithLabelValues("POST", "/rpc/tasks.list", "200")))
}
