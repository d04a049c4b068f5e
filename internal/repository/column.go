package repository

import (
	"context"

	"taskboard/internal/model"
)

// ColumnRepository defines data access for board columns.
type ColumnRepository interface {
	// List returns the columns of a project, or of the user's inbox when
	// projectID is nil, in position order with open task counts.
	List(ctx context.Context, userID string, projectID *string) ([]model.BoardColumn, error)

	FindByID(ctx context.Context, userID, id string) (*model.BoardColumn, error)

	// Create appends the column to the end of its board.
	Create(ctx context.Context, c *model.BoardColumn) (*model.BoardColumn, error)

	// CreateDefaults appends one column per template to a board, atomically.
	CreateDefaults(ctx context.Context, userID string, projectID *string, templates []model.ColumnTemplate) ([]model.BoardColumn, error)

	// Update stores name and color.
	Update(ctx context.Context, c *model.BoardColumn) (*model.BoardColumn, error)

	// Delete unassigns the column's tasks and removes the column.
	Delete(ctx context.Context, userID, id string) error

	// Reorder assigns positions 0..n-1 following ids.
	Reorder(ctx context.Context, userID string, ids []string) error
}
