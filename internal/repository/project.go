package repository

import (
	"context"
	"time"

	"taskboard/internal/model"
)

// ProjectRepository defines data access for projects using SQL queries only.
type ProjectRepository interface {
	// List returns the user's live projects in position order with open task counts.
	List(ctx context.Context, userID string) ([]model.Project, error)

	// ListTrashed returns soft-deleted projects, most recently deleted first.
	ListTrashed(ctx context.Context, userID string) ([]model.Project, error)

	// FindByID returns a project, deleted or not.
	FindByID(ctx context.Context, userID, id string) (*model.Project, error)

	// Create appends the project to the end of the user's list and creates its
	// board columns from the given templates, atomically.
	Create(ctx context.Context, p *model.Project, columns []model.ColumnTemplate) (*model.Project, error)

	// Update stores name, description, color and archived.
	Update(ctx context.Context, p *model.Project) (*model.Project, error)

	// SoftDelete trashes the project and its live tasks, tagging the tasks with
	// the project as their origin.
	SoftDelete(ctx context.Context, userID, id string, now time.Time) error

	// Restore clears the project's deleted_at and restores the tasks it trashed.
	Restore(ctx context.Context, userID, id string) error

	// HardDelete removes the project permanently. Its tasks are detached and
	// trashed, or deleted, depending on mode.
	HardDelete(ctx context.Context, userID, id string, mode model.ProjectHardDeleteMode, now time.Time) error

	// Reorder assigns positions 0..n-1 following ids.
	Reorder(ctx context.Context, userID string, ids []string) error
}
