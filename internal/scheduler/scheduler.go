// Package scheduler runs the maintenance passes in-process on cron schedules,
// as an alternative to calling the /api/cron endpoints from outside.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"taskboard/internal/config"
	"taskboard/internal/service"
)

// Scheduler owns the cron runner and its three maintenance entries.
type Scheduler struct {
	cron *cron.Cron
	log  logrus.FieldLogger
}

// New registers the maintenance jobs on standard five-field cron specs
// evaluated in loc. Overlapping runs of one job are skipped.
func New(cfg config.CronConfig, jobs service.MaintenanceService, log logrus.FieldLogger, loc *time.Location) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	log = log.WithField("component", "scheduler")
	cl := cron.PrintfLogger(log)
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	entries := []struct {
		name string
		spec string
		run  func(context.Context) (int, error)
	}{
		{service.JobCleanup, cfg.CleanupSchedule, jobs.PurgeTrash},
		{service.JobRecurrence, cfg.RecurrenceSchedule, jobs.GenerateRecurring},
		{service.JobArchive, cfg.ArchiveSchedule, jobs.ArchiveCompleted},
	}
	for _, e := range entries {
		run := e.run
		if _, err := c.AddFunc(e.spec, func() {
			// Results and failures are logged by the job itself.
			_, _ = run(context.Background())
		}); err != nil {
			return nil, fmt.Errorf("schedule %s %q: %w", e.name, e.spec, err)
		}
		log.WithFields(logrus.Fields{"job": e.name, "schedule": e.spec}).Info("job scheduled")
	}
	return &Scheduler{cron: c, log: log}, nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.WithField("event", "scheduler_started").Info("scheduler started")
}

// Stop prevents new runs and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
