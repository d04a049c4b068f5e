package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"taskboard/internal/service"
)

// cronJob is one maintenance endpoint: its name, the pass it runs and the
// response key carrying the number of affected tasks.
type cronJob struct {
	name string
	key  string
	run  func(ctx context.Context) (int, error)
}

func cronJobs(m service.MaintenanceService) []cronJob {
	return []cronJob{
		{name: service.JobCleanup, key: "deleted", run: m.PurgeTrash},
		{name: service.JobRecurrence, key: "created", run: m.GenerateRecurring},
		{name: service.JobArchive, key: "moved", run: m.ArchiveCompleted},
	}
}

func runCron(job cronJob, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		n, err := job.run(c.UserContext())
		if err != nil {
			return fail(c, log.WithField("job", job.name), err)
		}
		return c.JSON(fiber.Map{"success": true, job.key: n})
	}
}

func cronStatus(job cronJob) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "endpoint": job.name})
	}
}
