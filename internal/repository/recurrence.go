package repository

import (
	"context"
	"time"

	"taskboard/internal/model"
)

// RecurrenceRepository defines data access for recurrence rules.
type RecurrenceRepository interface {
	List(ctx context.Context, userID string) ([]model.RecurrenceRule, error)
	FindByID(ctx context.Context, userID, id string) (*model.RecurrenceRule, error)
	Create(ctx context.Context, r *model.RecurrenceRule) (*model.RecurrenceRule, error)
	Update(ctx context.Context, r *model.RecurrenceRule) (*model.RecurrenceRule, error)
	Delete(ctx context.Context, userID, id string) error

	// ListActive returns the active rules of every user.
	ListActive(ctx context.Context) ([]model.RecurrenceRule, error)

	// GenerateTask creates t for the rule unless a task of the rule was already
	// created since dayStart or already carries generatedOn, and stamps the
	// rule's last_generated_at. It reports whether a task was created.
	GenerateTask(ctx context.Context, ruleID string, t *model.Task, dayStart, generatedOn, now time.Time) (bool, error)
}
