package postgres

import (
	"context"
	"database/sql"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// AttachmentPostgres is a PostgreSQL implementation of repository.AttachmentRepository.
type AttachmentPostgres struct {
	db *sql.DB
}

// NewAttachmentPostgres creates a new AttachmentPostgres repository.
func NewAttachmentPostgres(db *sql.DB) *AttachmentPostgres {
	return &AttachmentPostgres{db: db}
}

var _ repository.AttachmentRepository = (*AttachmentPostgres)(nil)

const attachmentColumns = `a.id, a.task_id, a.filename, a.mime_type, a.size, a.s3_key, a.created_at`

func scanAttachment(row rowScanner) (*model.Attachment, error) {
	var a model.Attachment
	if err := row.Scan(&a.ID, &a.TaskID, &a.Filename, &a.MimeType, &a.Size, &a.S3Key, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new attachment row and returns the stored record.
func (r *AttachmentPostgres) Create(ctx context.Context, a *model.Attachment) (*model.Attachment, error) {
	const q = `
		INSERT INTO attachments (task_id, filename, mime_type, size, s3_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, task_id, filename, mime_type, size, s3_key, created_at
	`
	return scanAttachment(r.db.QueryRowContext(ctx, q, a.TaskID, a.Filename, a.MimeType, a.Size, a.S3Key))
}

// FindByID fetches an attachment of one of the user's tasks.
func (r *AttachmentPostgres) FindByID(ctx context.Context, userID, id string) (*model.Attachment, error) {
	const q = `
		SELECT ` + attachmentColumns + `
		FROM attachments a
		JOIN tasks t ON t.id = a.task_id
		WHERE a.id = $1 AND t.user_id = $2
	`
	return scanAttachment(r.db.QueryRowContext(ctx, q, id, userID))
}

// ListByTask returns a task's attachments, oldest first.
func (r *AttachmentPostgres) ListByTask(ctx context.Context, taskID string) ([]model.Attachment, error) {
	const q = `SELECT ` + attachmentColumns + ` FROM attachments a WHERE a.task_id = $1 ORDER BY a.created_at, a.id`
	rows, err := r.db.QueryContext(ctx, q, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Attachment, 0)
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// Delete removes an attachment by ID. It does not return an error if the row does not exist.
func (r *AttachmentPostgres) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM attachments WHERE id = $1`, id)
	return err
}

// KeysByTasks returns the object keys of the given tasks' attachments.
func (r *AttachmentPostgres) KeysByTasks(ctx context.Context, userID string, taskIDs []string) ([]string, error) {
	const q = `
		SELECT a.s3_key FROM attachments a
		JOIN tasks t ON t.id = a.task_id
		WHERE t.user_id = $1 AND ` + inIDs
	return r.keys(ctx, q, userID, ids(taskIDs))
}

// KeysByProject returns the object keys of attachments of tasks in or trashed from a project.
func (r *AttachmentPostgres) KeysByProject(ctx context.Context, userID, projectID string) ([]string, error) {
	const q = `
		SELECT a.s3_key FROM attachments a
		JOIN tasks t ON t.id = a.task_id
		WHERE t.user_id = $1 AND (t.project_id = $2 OR t.deleted_from_project_id = $2)`
	return r.keys(ctx, q, userID, projectID)
}

func (r *AttachmentPostgres) keys(ctx context.Context, q string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		out = append(out, key)
	}
	return out, rows.Err()
}
