package repository

import (
	"context"
	"time"

	"taskboard/internal/model"
)

// SectionRepository defines data access for project sections. Ownership is
// checked through the parent project.
type SectionRepository interface {
	List(ctx context.Context, userID, projectID string) ([]model.ProjectSection, error)
	FindByID(ctx context.Context, userID, id string) (*model.ProjectSection, error)

	// Create appends the section to the end of its project.
	Create(ctx context.Context, userID string, s *model.ProjectSection) (*model.ProjectSection, error)
	Update(ctx context.Context, userID string, s *model.ProjectSection) (*model.ProjectSection, error)

	// Delete removes the section. Its tasks either leave the section or are trashed.
	Delete(ctx context.Context, userID, id string, mode model.SectionDeleteMode, now time.Time) error

	Reorder(ctx context.Context, userID string, ids []string) error
}
