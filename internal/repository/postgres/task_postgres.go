package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/database"
	"taskboard/internal/model"
	"taskboard/internal/ordering"
	"taskboard/internal/repository"
)

// TaskPostgres is a PostgreSQL implementation of repository.TaskRepository.
type TaskPostgres struct {
	db *sql.DB
}

// NewTaskPostgres creates a new TaskPostgres repository.
func NewTaskPostgres(db *sql.DB) *TaskPostgres {
	return &TaskPostgres{db: db}
}

var _ repository.TaskRepository = (*TaskPostgres)(nil)

const taskSelect = `
	SELECT t.id, t.user_id, t.title, t.description, t.priority, array_to_json(t.tags)::text,
	       t.section, t.project_id, t.project_section_id, t.board_column_id,
	       t.due_date, t.start_date, t.end_date, t.position, t.completed_at, t.completion_note,
	       t.deleted_at, t.deleted_from_project_id, t.recurrence_rule_id, t.created_at, t.updated_at,
	       p.id, p.name, p.color, c.id, c.name, c.color,
	       (SELECT COUNT(*) FROM attachments a WHERE a.task_id = t.id)
	FROM tasks t
	LEFT JOIN projects p ON p.id = t.project_id
	LEFT JOIN board_columns c ON c.id = t.board_column_id`

const inIDs = `t.id IN (SELECT jsonb_array_elements_text(CAST($2 AS jsonb))::uuid)`

func scanTask(row rowScanner) (*model.Task, error) {
	var (
		t                  model.Task
		pID, pName, pColor *string
		cID, cName, cColor *string
	)
	if err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description, &t.Priority, listOf(&t.Tags),
		&t.Section, &t.ProjectID, &t.ProjectSectionID, &t.BoardColumnID,
		&t.DueDate, &t.StartDate, &t.EndDate, &t.Position, &t.CompletedAt, &t.CompletionNote,
		&t.DeletedAt, &t.DeletedFromProjectID, &t.RecurrenceRuleID, &t.CreatedAt, &t.UpdatedAt,
		&pID, &pName, &pColor, &cID, &cName, &cColor,
		&t.AttachmentCount,
	); err != nil {
		return nil, err
	}
	if pID != nil {
		t.Project = &model.ProjectRef{ID: *pID, Name: deref(pName), Color: deref(pColor)}
	}
	if cID != nil {
		t.BoardColumn = &model.ColumnRef{ID: *cID, Name: deref(cName), Color: cColor}
	}
	return &t, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r *TaskPostgres) query(ctx context.Context, q string, args ...any) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// sameList matches the tasks of one list; the list is given by four
// consecutive parameters starting at $first: section, project, project
// section and board column.
func sameList(first int) string {
	return fmt.Sprintf(`t.deleted_at IS NULL
		AND t.section IS NOT DISTINCT FROM CAST($%d AS text)
		AND t.project_id IS NOT DISTINCT FROM CAST($%d AS uuid)
		AND t.project_section_id IS NOT DISTINCT FROM CAST($%d AS uuid)
		AND t.board_column_id IS NOT DISTINCT FROM CAST($%d AS uuid)`,
		first, first+1, first+2, first+3)
}

func listArgs(p model.Placement) []any {
	return []any{p.Section, p.ProjectID, p.ProjectSectionID, p.BoardColumnID}
}

// List returns tasks matching the filter.
func (r *TaskPostgres) List(ctx context.Context, userID string, f model.TaskFilter) ([]model.Task, error) {
	where := []string{"t.user_id = $1"}
	args := []any{userID}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	order := "t.position, t.created_at"
	switch {
	case f.Deleted:
		where = append(where, "t.deleted_at IS NOT NULL")
		order = "t.deleted_at DESC"
	case f.Archived:
		where = append(where, "t.deleted_at IS NULL", "t.completed_at IS NOT NULL")
		order = "t.completed_at DESC"
	case f.Today:
		start, end := arg(f.DayStart), arg(f.DayEnd)
		where = append(where, "t.deleted_at IS NULL", "t.completed_at IS NULL",
			fmt.Sprintf("((t.due_date >= %[1]s AND t.due_date < %[2]s) OR (t.start_date < %[2]s AND COALESCE(t.end_date, t.start_date) >= %[1]s))", start, end))
		order = "t.due_date NULLS LAST, t.priority DESC, t.position"
	default:
		where = append(where, "t.deleted_at IS NULL",
			fmt.Sprintf("(t.completed_at IS NULL OR t.completed_at >= %s)", arg(f.DayStart)))
	}
	if !f.Deleted && !f.Today {
		if f.Section != nil {
			where = append(where, "t.section = "+arg(*f.Section))
		}
		if f.ProjectID != nil {
			where = append(where, "t.project_id = "+arg(*f.ProjectID))
		}
		if f.BoardColumnID != nil {
			where = append(where, "t.board_column_id = "+arg(*f.BoardColumnID))
		}
	}

	q := taskSelect + "\n\tWHERE " + strings.Join(where, " AND ") + "\n\tORDER BY " + order
	return r.query(ctx, q, args...)
}

// Calendar returns live tasks scheduled inside [from, to).
func (r *TaskPostgres) Calendar(ctx context.Context, userID string, from, to time.Time) ([]model.Task, error) {
	const q = taskSelect + `
	WHERE t.user_id = $1 AND t.deleted_at IS NULL
	  AND ((t.due_date >= $2 AND t.due_date < $3)
	       OR (t.start_date < $3 AND COALESCE(t.end_date, t.start_date) >= $2))
	ORDER BY COALESCE(t.due_date, t.start_date), t.position`
	return r.query(ctx, q, userID, from, to)
}

// FindByID fetches a single task, trashed or not.
func (r *TaskPostgres) FindByID(ctx context.Context, userID, id string) (*model.Task, error) {
	const q = taskSelect + `
	WHERE t.id = $1 AND t.user_id = $2`
	return scanTask(r.db.QueryRowContext(ctx, q, id, userID))
}

// Create inserts the task at the end of its list.
func (r *TaskPostgres) Create(ctx context.Context, t *model.Task) (*model.Task, error) {
	id, err := insertTask(ctx, r.db, t, nil)
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, t.UserID, id)
}

// insertTask appends t to its list. With generatedOn set the insert is skipped,
// yielding sql.ErrNoRows, when the rule already produced a task for that date.
func insertTask(ctx context.Context, db database.DBTX, t *model.Task, generatedOn *time.Time) (string, error) {
	q := `
		INSERT INTO tasks (section, project_id, project_section_id, board_column_id,
		                   user_id, title, description, priority, tags,
		                   due_date, start_date, end_date, recurrence_rule_id, generated_on, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, ARRAY(SELECT jsonb_array_elements_text(CAST($9 AS jsonb))),
		        $10, $11, $12, $13, $14,
		        (SELECT COALESCE(MAX(t.position), -1) + 1 FROM tasks t WHERE t.user_id = $5 AND ` + sameList(1) + `))`
	if generatedOn != nil {
		q += `
		ON CONFLICT (recurrence_rule_id, generated_on)
		WHERE recurrence_rule_id IS NOT NULL AND generated_on IS NOT NULL DO NOTHING`
	}
	q += `
		RETURNING id`

	args := append(listArgs(t.Placement()),
		t.UserID, t.Title, t.Description, t.Priority, listOf(&t.Tags),
		t.DueDate, t.StartDate, t.EndDate, t.RecurrenceRuleID, generatedOn)

	var id string
	if err := db.QueryRowContext(ctx, q, args...).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

// Update stores the non-location fields.
func (r *TaskPostgres) Update(ctx context.Context, t *model.Task) (*model.Task, error) {
	const q = `
		UPDATE tasks
		SET title = $3, description = $4, priority = $5,
		    tags = ARRAY(SELECT jsonb_array_elements_text(CAST($6 AS jsonb))),
		    due_date = $7, start_date = $8, end_date = $9, completion_note = $10, updated_at = now()
		WHERE id = $1 AND user_id = $2`
	if err := execOne(ctx, r.db, q, t.ID, t.UserID, t.Title, t.Description, t.Priority, listOf(&t.Tags),
		t.DueDate, t.StartDate, t.EndDate, t.CompletionNote); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, t.UserID, t.ID)
}

const placeTask = `
	UPDATE tasks
	SET section = $3, project_id = $4, project_section_id = $5, board_column_id = $6,
	    position = COALESCE(CAST($7 AS integer),
	        (SELECT COALESCE(MAX(t.position), -1) + 1 FROM tasks t
	         WHERE t.user_id = $2 AND t.id <> $1 AND %s)),
	    updated_at = now()
	WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`

var placeTaskQuery = fmt.Sprintf(placeTask, sameList(3))

// Move changes the task's list and position atomically. Only the destination
// list is renumbered.
func (r *TaskPostgres) Move(ctx context.Context, userID, id string, dest model.Placement, index *int) (*model.Task, error) {
	err := database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		var locked string
		if err := tx.QueryRowContext(ctx,
			`SELECT id FROM tasks WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL FOR UPDATE`,
			id, userID).Scan(&locked); err != nil {
			return err
		}

		var pos *int
		if index != nil {
			zero := 0
			pos = &zero
		}
		args := append([]any{id, userID}, listArgs(dest)...)
		if err := execOne(ctx, tx, placeTaskQuery, append(args, pos)...); err != nil {
			return err
		}
		if index == nil {
			return nil
		}

		siblings, err := listIDs(ctx, tx, userID, id, dest)
		if err != nil {
			return err
		}
		slots, err := ordering.Sequence(ordering.Insert(siblings, id, *index))
		if err != nil {
			return err
		}
		for _, s := range slots {
			if _, err := tx.ExecContext(ctx, `UPDATE tasks SET position = $1 WHERE id = $2`, s.Position, s.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, userID, id)
}

// listIDs returns the ids of dest's tasks in position order, without exclude.
func listIDs(ctx context.Context, db database.DBTX, userID, exclude string, dest model.Placement) ([]string, error) {
	q := `SELECT t.id FROM tasks t WHERE t.user_id = $1 AND t.id <> $2 AND ` + sameList(3) + ` ORDER BY t.position, t.created_at`
	rows, err := db.QueryContext(ctx, q, append([]any{userID, exclude}, listArgs(dest)...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// MoveMany appends each task to the end of dest.
func (r *TaskPostgres) MoveMany(ctx context.Context, userID string, list []string, dest model.Placement) (int, error) {
	moved := 0
	err := database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		for _, id := range list {
			args := append([]any{id, userID}, listArgs(dest)...)
			err := execOne(ctx, tx, placeTaskQuery, append(args, nil)...)
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			if err != nil {
				return err
			}
			moved++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return moved, nil
}

// SetCompleted completes or reopens tasks. A nil note keeps the stored one.
func (r *TaskPostgres) SetCompleted(ctx context.Context, userID string, list []string, completedAt *time.Time, note *string) (int, error) {
	const q = `
		UPDATE tasks t
		SET completed_at = $3, completion_note = COALESCE(CAST($4 AS text), t.completion_note), updated_at = now()
		WHERE t.user_id = $1 AND ` + inIDs + ` AND t.deleted_at IS NULL`
	return affected(r.db.ExecContext(ctx, q, userID, ids(list), completedAt, note))
}

// SetDueDate sets or clears the due date of tasks.
func (r *TaskPostgres) SetDueDate(ctx context.Context, userID string, list []string, due *time.Time) (int, error) {
	const q = `
		UPDATE tasks t SET due_date = $3, updated_at = now()
		WHERE t.user_id = $1 AND ` + inIDs + ` AND t.deleted_at IS NULL`
	return affected(r.db.ExecContext(ctx, q, userID, ids(list), due))
}

// SoftDelete moves live tasks to the trash.
func (r *TaskPostgres) SoftDelete(ctx context.Context, userID string, list []string, now time.Time) (int, error) {
	const q = `
		UPDATE tasks t SET deleted_at = $3, updated_at = $3
		WHERE t.user_id = $1 AND ` + inIDs + ` AND t.deleted_at IS NULL`
	return affected(r.db.ExecContext(ctx, q, userID, ids(list), now))
}

// restoreTask clears the trash flags. A task whose project is gone or still in
// the trash comes back in the inbox, without the project's section or column.
const restoreTask = `
	WITH target AS (
		SELECT t.id, p.id AS live_project
		FROM tasks t
		LEFT JOIN projects p ON p.id = t.project_id AND p.deleted_at IS NULL
		WHERE t.id = $1 AND t.user_id = $2 AND t.deleted_at IS NOT NULL
	)
	UPDATE tasks t
	SET deleted_at = NULL, deleted_from_project_id = NULL, updated_at = now(),
	    project_id = target.live_project,
	    section = CASE WHEN target.live_project IS NULL THEN 'inbox' END,
	    project_section_id = CASE WHEN target.live_project IS NULL THEN NULL ELSE t.project_section_id END,
	    board_column_id = CASE WHEN target.live_project IS NULL AND t.project_id IS NOT NULL
	                           THEN NULL ELSE t.board_column_id END
	FROM target
	WHERE t.id = target.id`

// Restore takes a task out of the trash and appends it to its list.
func (r *TaskPostgres) Restore(ctx context.Context, userID, id string) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := execOne(ctx, tx, restoreTask, id, userID); err != nil {
			return err
		}
		return appendTasks(ctx, tx, []string{id})
	})
}

// Delete removes tasks permanently. Attachment rows cascade.
func (r *TaskPostgres) Delete(ctx context.Context, userID string, list []string) (int, error) {
	const q = `DELETE FROM tasks t WHERE t.user_id = $1 AND ` + inIDs
	return affected(r.db.ExecContext(ctx, q, userID, ids(list)))
}

// Reorder assigns positions following ids.
func (r *TaskPostgres) Reorder(ctx context.Context, userID string, list []string) error {
	return reorder(ctx, r.db, "tasks", "user_id = $3 AND deleted_at IS NULL", userID, list)
}

// PurgeTrashed deletes tasks trashed before cutoff, across all users.
func (r *TaskPostgres) PurgeTrashed(ctx context.Context, cutoff time.Time) (*repository.PurgeResult, error) {
	out := &repository.PurgeResult{AttachmentKeys: []string{}}
	err := database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `
			SELECT a.s3_key FROM attachments a
			JOIN tasks t ON t.id = a.task_id
			WHERE t.deleted_at IS NOT NULL AND t.deleted_at < $1`, cutoff)
		if err != nil {
			return err
		}
		for rows.Next() {
			var key string
			if err := rows.Scan(&key); err != nil {
				rows.Close()
				return err
			}
			out.AttachmentKeys = append(out.AttachmentKeys, key)
		}
		if err := rows.Close(); err != nil {
			return err
		}
		if err := rows.Err(); err != nil {
			return err
		}

		out.Deleted, err = affected(tx.ExecContext(ctx,
			`DELETE FROM tasks WHERE deleted_at IS NOT NULL AND deleted_at < $1`, cutoff))
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ArchiveCompleted moves tasks completed before the cutoff to the end of the
// highest positioned column of their board, for every project and every inbox.
func (r *TaskPostgres) ArchiveCompleted(ctx context.Context, before time.Time) (int, error) {
	const q = `
		WITH done AS (
			SELECT DISTINCT ON (c.user_id, c.project_id) c.id, c.user_id, c.project_id
			FROM board_columns c
			ORDER BY c.user_id, c.project_id, c.position DESC, c.created_at DESC
		)
		UPDATE tasks t SET board_column_id = done.id, updated_at = now()
		FROM done
		WHERE t.user_id = done.user_id
		  AND t.project_id IS NOT DISTINCT FROM done.project_id
		  AND (done.project_id IS NOT NULL OR t.section = 'inbox')
		  AND t.completed_at IS NOT NULL AND t.completed_at < $1
		  AND t.deleted_at IS NULL
		  AND t.board_column_id IS DISTINCT FROM done.id
		RETURNING t.id`
	var moved []string
	err := database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		if moved, err = updateReturningIDs(ctx, tx, q, before); err != nil {
			return err
		}
		return appendTasks(ctx, tx, moved)
	})
	if err != nil {
		return 0, err
	}
	return len(moved), nil
}
