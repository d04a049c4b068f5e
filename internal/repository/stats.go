package repository

import (
	"context"

	"taskboard/internal/model"
)

// StatsRepository aggregates task counters, optionally narrowed to one project.
type StatsRepository interface {
	Counters(ctx context.Context, userID string, projectID *string, w StatsWindow) (*model.TaskCounters, error)
	ByPriority(ctx context.Context, userID string, projectID *string) ([]model.PriorityCount, error)

	// Daily returns created/completed counts per local calendar day since
	// w.DailyFrom. Days without activity are omitted.
	Daily(ctx context.Context, userID string, projectID *string, w StatsWindow) ([]model.DailyActivity, error)
}
