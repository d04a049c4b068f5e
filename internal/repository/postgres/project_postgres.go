package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"taskboard/internal/database"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// ProjectPostgres is a PostgreSQL implementation of repository.ProjectRepository.
type ProjectPostgres struct {
	db *sql.DB
}

// NewProjectPostgres creates a new ProjectPostgres repository.
func NewProjectPostgres(db *sql.DB) *ProjectPostgres {
	return &ProjectPostgres{db: db}
}

var _ repository.ProjectRepository = (*ProjectPostgres)(nil)

const projectColumns = `p.id, p.user_id, p.name, p.description, p.color, p.position, p.archived, p.deleted_at, p.created_at, p.updated_at`

func scanProject(row rowScanner, extra ...any) (*model.Project, error) {
	var p model.Project
	dest := []any{&p.ID, &p.UserID, &p.Name, &p.Description, &p.Color, &p.Position, &p.Archived, &p.DeletedAt, &p.CreatedAt, &p.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns live projects with their open task counts.
func (r *ProjectPostgres) List(ctx context.Context, userID string) ([]model.Project, error) {
	const q = `
		SELECT ` + projectColumns + `,
		       (SELECT COUNT(*) FROM tasks t
		        WHERE t.project_id = p.id AND t.completed_at IS NULL AND t.deleted_at IS NULL)
		FROM projects p
		WHERE p.user_id = $1 AND p.deleted_at IS NULL
		ORDER BY p.position, p.created_at
	`
	return r.list(ctx, q, userID, true)
}

// ListTrashed returns soft-deleted projects.
func (r *ProjectPostgres) ListTrashed(ctx context.Context, userID string) ([]model.Project, error) {
	const q = `
		SELECT ` + projectColumns + `
		FROM projects p
		WHERE p.user_id = $1 AND p.deleted_at IS NOT NULL
		ORDER BY p.deleted_at DESC
	`
	return r.list(ctx, q, userID, false)
}

func (r *ProjectPostgres) list(ctx context.Context, q, userID string, withCount bool) ([]model.Project, error) {
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Project, 0)
	for rows.Next() {
		var count int
		var extra []any
		if withCount {
			extra = append(extra, &count)
		}
		p, err := scanProject(rows, extra...)
		if err != nil {
			return nil, err
		}
		p.OpenTaskCount = count
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByID fetches a single project by its ID.
func (r *ProjectPostgres) FindByID(ctx context.Context, userID, id string) (*model.Project, error) {
	const q = `SELECT ` + projectColumns + ` FROM projects p WHERE p.id = $1 AND p.user_id = $2`
	return scanProject(r.db.QueryRowContext(ctx, q, id, userID))
}

// Create inserts the project at the end of the user's list together with its board columns.
func (r *ProjectPostgres) Create(ctx context.Context, p *model.Project, columns []model.ColumnTemplate) (*model.Project, error) {
	const q = `
		INSERT INTO projects (user_id, name, description, color, position)
		VALUES ($1, $2, $3, $4,
		        (SELECT COALESCE(MAX(position), -1) + 1 FROM projects WHERE user_id = $1 AND deleted_at IS NULL))
		RETURNING id, user_id, name, description, color, position, archived, deleted_at, created_at, updated_at
	`
	var out *model.Project
	err := database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		out, err = scanProject(tx.QueryRowContext(ctx, q, p.UserID, p.Name, p.Description, p.Color))
		if err != nil {
			return err
		}
		_, err = insertColumns(ctx, tx, p.UserID, &out.ID, columns)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update stores the editable project fields.
func (r *ProjectPostgres) Update(ctx context.Context, p *model.Project) (*model.Project, error) {
	const q = `
		UPDATE projects p
		SET name = $3, description = $4, color = $5, archived = $6, updated_at = now()
		WHERE p.id = $1 AND p.user_id = $2
		RETURNING ` + projectColumns
	return scanProject(r.db.QueryRowContext(ctx, q, p.ID, p.UserID, p.Name, p.Description, p.Color, p.Archived))
}

// SoftDelete trashes the project and tags its live tasks with it as their origin.
func (r *ProjectPostgres) SoftDelete(ctx context.Context, userID, id string, now time.Time) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := execOne(ctx, tx,
			`UPDATE projects SET deleted_at = $3, updated_at = $3 WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`,
			id, userID, now); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			UPDATE tasks SET deleted_at = $3, deleted_from_project_id = $1, updated_at = $3
			WHERE project_id = $1 AND user_id = $2 AND deleted_at IS NULL`,
			id, userID, now)
		return err
	})
}

// Restore brings back the project and exactly the tasks its soft delete trashed.
func (r *ProjectPostgres) Restore(ctx context.Context, userID, id string) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := execOne(ctx, tx,
			`UPDATE projects SET deleted_at = NULL, updated_at = now() WHERE id = $1 AND user_id = $2 AND deleted_at IS NOT NULL`,
			id, userID); err != nil {
			return err
		}
		restored, err := updateReturningIDs(ctx, tx, `
			UPDATE tasks SET deleted_at = NULL, deleted_from_project_id = NULL, updated_at = now()
			WHERE deleted_from_project_id = $1 AND user_id = $2
			RETURNING id`,
			id, userID)
		if err != nil {
			return err
		}
		return appendTasks(ctx, tx, restored)
	})
}

// HardDelete removes the project. In TRASH_TASKS mode its tasks survive in the
// trash as inbox tasks without any reference to the project.
func (r *ProjectPostgres) HardDelete(ctx context.Context, userID, id string, mode model.ProjectHardDeleteMode, now time.Time) error {
	var taskQ string
	switch mode {
	case model.HardDeleteAll:
		taskQ = `DELETE FROM tasks WHERE user_id = $2 AND (project_id = $1 OR deleted_from_project_id = $1)`
	case model.HardDeleteTrashTasks, "":
		taskQ = `
			UPDATE tasks
			SET section = 'inbox', project_id = NULL, project_section_id = NULL, board_column_id = NULL,
			    deleted_from_project_id = NULL, deleted_at = COALESCE(deleted_at, $3), updated_at = $3
			WHERE user_id = $2 AND (project_id = $1 OR deleted_from_project_id = $1)`
	default:
		return fmt.Errorf("unknown hard delete mode %q", mode)
	}

	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT true FROM projects WHERE id = $1 AND user_id = $2 FOR UPDATE`, id, userID).Scan(&exists); err != nil {
			return err
		}
		args := []any{id, userID}
		if mode != model.HardDeleteAll {
			args = append(args, now)
		}
		if _, err := tx.ExecContext(ctx, taskQ, args...); err != nil {
			return err
		}
		return execOne(ctx, tx, `DELETE FROM projects WHERE id = $1 AND user_id = $2`, id, userID)
	})
}

// Reorder assigns positions following ids.
func (r *ProjectPostgres) Reorder(ctx context.Context, userID string, list []string) error {
	return reorder(ctx, r.db, "projects", "user_id = $3", userID, list)
}
