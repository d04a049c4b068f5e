package postgres

import (
	"context"
	"database/sql"

	"taskboard/internal/database"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// ColumnPostgres is a PostgreSQL implementation of repository.ColumnRepository.
type ColumnPostgres struct {
	db *sql.DB
}

// NewColumnPostgres creates a new ColumnPostgres repository.
func NewColumnPostgres(db *sql.DB) *ColumnPostgres {
	return &ColumnPostgres{db: db}
}

var _ repository.ColumnRepository = (*ColumnPostgres)(nil)

const columnColumns = `c.id, c.user_id, c.project_id, c.section, c.name, c.color, c.position, c.created_at`

// boardOf matches the columns of one board: a project when $2 is set, else the inbox.
const boardOf = `c.user_id = $1 AND ((CAST($2 AS uuid) IS NULL AND c.project_id IS NULL AND c.section = 'inbox') OR c.project_id = $2)`

func scanColumn(row rowScanner, extra ...any) (*model.BoardColumn, error) {
	var c model.BoardColumn
	dest := []any{&c.ID, &c.UserID, &c.ProjectID, &c.Section, &c.Name, &c.Color, &c.Position, &c.CreatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns the columns of a project board, or the inbox board when projectID is nil.
func (r *ColumnPostgres) List(ctx context.Context, userID string, projectID *string) ([]model.BoardColumn, error) {
	const q = `
		SELECT ` + columnColumns + `,
		       (SELECT COUNT(*) FROM tasks t
		        WHERE t.board_column_id = c.id AND t.completed_at IS NULL AND t.deleted_at IS NULL)
		FROM board_columns c
		WHERE ` + boardOf + `
		ORDER BY c.position, c.created_at
	`
	rows, err := r.db.QueryContext(ctx, q, userID, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.BoardColumn, 0)
	for rows.Next() {
		var count int
		c, err := scanColumn(rows, &count)
		if err != nil {
			return nil, err
		}
		c.OpenTaskCount = count
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID fetches a single column by its ID.
func (r *ColumnPostgres) FindByID(ctx context.Context, userID, id string) (*model.BoardColumn, error) {
	const q = `SELECT ` + columnColumns + ` FROM board_columns c WHERE c.id = $1 AND c.user_id = $2`
	return scanColumn(r.db.QueryRowContext(ctx, q, id, userID))
}

// Create appends the column to its board.
func (r *ColumnPostgres) Create(ctx context.Context, c *model.BoardColumn) (*model.BoardColumn, error) {
	color := ""
	if c.Color != nil {
		color = *c.Color
	}
	out, err := insertColumns(ctx, r.db, c.UserID, c.ProjectID, []model.ColumnTemplate{{Name: c.Name, Color: color}})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// CreateDefaults appends the template columns to a board in one transaction.
func (r *ColumnPostgres) CreateDefaults(ctx context.Context, userID string, projectID *string, templates []model.ColumnTemplate) ([]model.BoardColumn, error) {
	var out []model.BoardColumn
	err := database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		out, err = insertColumns(ctx, tx, userID, projectID, templates)
		return err
	})
	return out, err
}

// insertColumns appends one column per template to the end of a board.
// A nil projectID targets the user's inbox board.
func insertColumns(ctx context.Context, db database.DBTX, userID string, projectID *string, templates []model.ColumnTemplate) ([]model.BoardColumn, error) {
	const q = `
		INSERT INTO board_columns (user_id, project_id, section, name, color, position)
		VALUES ($1, $2, CASE WHEN CAST($2 AS uuid) IS NULL THEN 'inbox' END, $3, NULLIF($4, ''),
		        (SELECT COALESCE(MAX(c.position), -1) + 1 FROM board_columns c WHERE ` + boardOf + `))
		RETURNING id, user_id, project_id, section, name, color, position, created_at
	`
	out := make([]model.BoardColumn, 0, len(templates))
	for _, t := range templates {
		c, err := scanColumn(db.QueryRowContext(ctx, q, userID, projectID, t.Name, t.Color))
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}

// Update stores name and color.
func (r *ColumnPostgres) Update(ctx context.Context, c *model.BoardColumn) (*model.BoardColumn, error) {
	const q = `
		UPDATE board_columns c SET name = $3, color = $4
		WHERE c.id = $1 AND c.user_id = $2
		RETURNING ` + columnColumns
	return scanColumn(r.db.QueryRowContext(ctx, q, c.ID, c.UserID, c.Name, c.Color))
}

// Delete unassigns the column's tasks, appending them to the unassigned list,
// and removes it.
func (r *ColumnPostgres) Delete(ctx context.Context, userID, id string) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		moved, err := updateReturningIDs(ctx, tx,
			`UPDATE tasks SET board_column_id = NULL, updated_at = now() WHERE board_column_id = $1 AND user_id = $2 RETURNING id`,
			id, userID)
		if err != nil {
			return err
		}
		if err := appendTasks(ctx, tx, moved); err != nil {
			return err
		}
		return execOne(ctx, tx, `DELETE FROM board_columns WHERE id = $1 AND user_id = $2`, id, userID)
	})
}

// Reorder assigns positions following ids.
func (r *ColumnPostgres) Reorder(ctx context.Context, userID string, list []string) error {
	return reorder(ctx, r.db, "board_columns", "user_id = $3", userID, list)
}
