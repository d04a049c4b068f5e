package repository

import (
	"context"
	"time"

	"taskboard/internal/model"
)

// TaskRepository defines data access for tasks.
type TaskRepository interface {
	// List returns tasks matching the filter, ordered by position.
	List(ctx context.Context, userID string, f model.TaskFilter) ([]model.Task, error)

	// Calendar returns live tasks with a due, start or end date inside [from, to).
	Calendar(ctx context.Context, userID string, from, to time.Time) ([]model.Task, error)

	FindByID(ctx context.Context, userID, id string) (*model.Task, error)

	// Create appends the task to the end of its list.
	Create(ctx context.Context, t *model.Task) (*model.Task, error)

	// Update stores the non-location fields: title, description, priority, tags,
	// dates and completion note.
	Update(ctx context.Context, t *model.Task) (*model.Task, error)

	// Move places the task in dest. With index the task is inserted there and
	// the destination list is renumbered; without it the task goes to the end.
	Move(ctx context.Context, userID, id string, dest model.Placement, index *int) (*model.Task, error)

	// MoveMany appends every task to the end of dest, in the given order.
	MoveMany(ctx context.Context, userID string, ids []string, dest model.Placement) (int, error)

	// SetCompleted marks tasks completed at completedAt, or open when nil.
	SetCompleted(ctx context.Context, userID string, ids []string, completedAt *time.Time, note *string) (int, error)

	SetDueDate(ctx context.Context, userID string, ids []string, due *time.Time) (int, error)

	SoftDelete(ctx context.Context, userID string, ids []string, now time.Time) (int, error)
	Restore(ctx context.Context, userID, id string) error

	// Delete removes tasks permanently.
	Delete(ctx context.Context, userID string, ids []string) (int, error)

	// Reorder assigns positions 0..n-1 following ids.
	Reorder(ctx context.Context, userID string, ids []string) error

	// PurgeTrashed deletes every task trashed before cutoff and returns the
	// object keys of their attachments.
	PurgeTrashed(ctx context.Context, cutoff time.Time) (*PurgeResult, error)

	// ArchiveCompleted moves tasks completed before the cutoff into the last
	// column of their board.
	ArchiveCompleted(ctx context.Context, before time.Time) (int, error)
}
