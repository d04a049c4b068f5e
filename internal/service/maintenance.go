package service

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"taskboard/internal/lock"
	"taskboard/internal/model"
	"taskboard/internal/recurrence"
	"taskboard/internal/repository"
	"taskboard/internal/storage"
)

// Maintenance job names, used for locks, metrics and logs.
const (
	JobCleanup    = "cleanup"
	JobRecurrence = "recurrence"
	JobArchive    = "archive-completed"
)

// JobMetrics counts maintenance runs and the rows they touched.
type JobMetrics struct {
	runs  *prometheus.CounterVec
	items *prometheus.CounterVec
}

// NewJobMetrics registers the maintenance job collectors on reg.
func NewJobMetrics(reg prometheus.Registerer) (*JobMetrics, error) {
	m := &JobMetrics{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taskboard_job_runs_total",
				Help: "Maintenance job runs by outcome.",
			},
			[]string{"job", "outcome"},
		),
		items: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taskboard_job_items_total",
				Help: "Rows deleted, created or moved by maintenance jobs.",
			},
			[]string{"job"},
		),
	}
	for _, c := range []prometheus.Collector{m.runs, m.items} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MaintenanceConfig tunes the maintenance passes.
type MaintenanceConfig struct {
	TrashRetentionDays int
	LockTTL            time.Duration
	// Location is the fallback zone for rules without a valid time zone and
	// defines "today" for archiving.
	Location *time.Location
}

// MaintenanceService runs the periodic passes. Every pass is idempotent; a
// pass that finds its lock taken by another run does nothing and reports 0.
type MaintenanceService interface {
	// PurgeTrash hard-deletes tasks trashed longer than the retention period.
	PurgeTrash(ctx context.Context) (int, error)

	// GenerateRecurring creates today's task for every due recurrence rule.
	GenerateRecurring(ctx context.Context) (int, error)

	// ArchiveCompleted moves tasks completed before today into the last
	// column of their board.
	ArchiveCompleted(ctx context.Context) (int, error)
}

type maintenanceService struct {
	tasks   repository.TaskRepository
	rules   repository.RecurrenceRepository
	locker  lock.Locker
	sweeper objectSweeper
	metrics *JobMetrics
	log     logrus.FieldLogger
	cfg     MaintenanceConfig
	now     func() time.Time
}

// NewMaintenanceService constructs a new MaintenanceService. metrics may be nil.
func NewMaintenanceService(
	tasks repository.TaskRepository,
	rules repository.RecurrenceRepository,
	store storage.Storage,
	locker lock.Locker,
	metrics *JobMetrics,
	log logrus.FieldLogger,
	cfg MaintenanceConfig,
) MaintenanceService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.TrashRetentionDays <= 0 {
		cfg.TrashRetentionDays = 7
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 10 * time.Minute
	}
	if locker == nil {
		locker = lock.Noop{}
	}
	return &maintenanceService{
		tasks:   tasks,
		rules:   rules,
		locker:  locker,
		sweeper: objectSweeper{store: store, log: log},
		metrics: metrics,
		log:     log.WithField("component", "maintenance"),
		cfg:     cfg,
		now:     time.Now,
	}
}

// run wraps a job with its lock, a span, metrics and logging.
func (s *maintenanceService) run(ctx context.Context, job string, fn func(ctx context.Context) (int, error)) (int, error) {
	ctx, span := otel.Tracer("taskboard/maintenance").Start(ctx, "job "+job)
	defer span.End()

	start := time.Now()
	log := s.log.WithField("job", job)

	release, err := s.locker.Acquire(ctx, job, s.cfg.LockTTL)
	if errors.Is(err, lock.ErrLocked) {
		log.WithField("event", "job_skipped").Info("job already running elsewhere")
		s.observe(job, "skipped", 0)
		return 0, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.observe(job, "error", 0)
		return 0, err
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			log.WithError(err).Warn("lock release failed")
		}
	}()

	n, err := fn(ctx)
	span.SetAttributes(attribute.Int("job.items", n))
	fields := logrus.Fields{"items": n, "duration_ms": time.Since(start).Milliseconds()}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.observe(job, "error", n)
		log.WithFields(fields).WithField("event", "job_failed").WithError(err).Error("job failed")
		return n, err
	}
	s.observe(job, "success", n)
	log.WithFields(fields).WithField("event", "job_done").Info("job finished")
	return n, nil
}

func (s *maintenanceService) observe(job, outcome string, n int) {
	if s.metrics == nil {
		return
	}
	s.metrics.runs.WithLabelValues(job, outcome).Inc()
	s.metrics.items.WithLabelValues(job).Add(float64(n))
}

func (s *maintenanceService) PurgeTrash(ctx context.Context) (int, error) {
	return s.run(ctx, JobCleanup, func(ctx context.Context) (int, error) {
		cutoff := s.now().UTC().AddDate(0, 0, -s.cfg.TrashRetentionDays)
		res, err := s.tasks.PurgeTrashed(ctx, cutoff)
		if err != nil {
			return 0, err
		}
		s.sweeper.sweep(ctx, res.AttachmentKeys)
		return res.Deleted, nil
	})
}

func (s *maintenanceService) GenerateRecurring(ctx context.Context) (int, error) {
	return s.run(ctx, JobRecurrence, func(ctx context.Context) (int, error) {
		rules, err := s.rules.ListActive(ctx)
		if err != nil {
			return 0, err
		}
		now := s.now()
		created := 0
		for _, rule := range rules {
			if !recurrence.ShouldGenerate(rule, now, s.cfg.Location) {
				continue
			}
			if rule.ProjectTrashed && rule.ProjectID != nil {
				s.log.WithFields(logrus.Fields{"job": JobRecurrence, "rule_id": rule.ID, "project_id": *rule.ProjectID}).
					Warn("rule project is in the trash, generating into the inbox")
			}
			loc := recurrence.Location(rule.Timezone, s.cfg.Location)
			ok, err := s.rules.GenerateTask(ctx, rule.ID, taskFromRule(rule, now),
				recurrence.DayStart(now, loc), recurrence.LocalDate(now, loc), now)
			if err != nil {
				// One broken rule must not block the others.
				s.log.WithFields(logrus.Fields{"job": JobRecurrence, "rule_id": rule.ID}).WithError(err).Error("task generation failed")
				continue
			}
			if ok {
				created++
			}
		}
		return created, nil
	})
}

// taskFromRule builds the task a rule spawns, due now, in the rule's target list.
// A rule whose project is trashed feeds the inbox instead.
func taskFromRule(rule model.RecurrenceRule, now time.Time) *model.Task {
	due := now.UTC()
	t := &model.Task{
		UserID:      rule.UserID,
		Title:       rule.Title,
		Description: rule.Description,
		Priority:    rule.Priority,
		Tags:        rule.Tags,
		DueDate:     &due,
	}
	if !rule.ProjectTrashed {
		t.ProjectID = rule.ProjectID
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	if t.ProjectID == nil {
		section := model.SectionInbox
		if rule.Section != nil && *rule.Section != "" {
			section = *rule.Section
		}
		t.Section = &section
	}
	return t
}

func (s *maintenanceService) ArchiveCompleted(ctx context.Context) (int, error) {
	return s.run(ctx, JobArchive, func(ctx context.Context) (int, error) {
		return s.tasks.ArchiveCompleted(ctx, recurrence.DayStart(s.now(), s.cfg.Location))
	})
}
