package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"taskboard/docs"
	"taskboard/internal/auth"
	"taskboard/internal/http/middleware"
	"taskboard/internal/service"
)

// Deps carries everything RegisterRoutes wires into handlers.
type Deps struct {
	DB          *sql.DB
	Services    Services
	Maintenance service.MaintenanceService
	Verifier    auth.Verifier
	CronSecret  string
	Gatherer    prometheus.Gatherer
	Log         logrus.FieldLogger
}

const docsPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Taskboard API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) *RPC {
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.Send(docs.OpenAPI)
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		return c.Type("html").SendString(docsPage)
	})

	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())

	if d.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	cron := app.Group("/api/cron", middleware.CronAuth(d.CronSecret, unauthorized))
	for _, job := range cronJobs(d.Maintenance) {
		cron.Post("/"+job.name, runCron(job, d.Log))
		cron.Get("/"+job.name, cronStatus(job))
	}

	rpc := NewRPC(d.Services, d.Log)
	session := middleware.Session(d.Verifier, unauthorized)
	app.Post("/rpc/attachments.upload", session, rpc.Upload())
	app.Get("/attachments/:id/content", session, rpc.Download())
	app.Post("/rpc/:procedure", session, rpc.Dispatch())
	return rpc
}
