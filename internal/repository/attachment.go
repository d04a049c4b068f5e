package repository

import (
	"context"

	"taskboard/internal/model"
)

// AttachmentRepository defines data access for attachment metadata.
type AttachmentRepository interface {
	Create(ctx context.Context, a *model.Attachment) (*model.Attachment, error)

	// FindByID returns an attachment whose task belongs to the user.
	FindByID(ctx context.Context, userID, id string) (*model.Attachment, error)

	ListByTask(ctx context.Context, taskID string) ([]model.Attachment, error)

	// Delete removes an attachment row. Missing rows are not an error.
	Delete(ctx context.Context, id string) error

	// KeysByTasks returns the object keys of all attachments of the given tasks.
	KeysByTasks(ctx context.Context, userID string, taskIDs []string) ([]string, error)

	// KeysByProject returns the object keys of all attachments of a project's tasks.
	KeysByProject(ctx context.Context, userID, projectID string) ([]string, error)
}
