// Package postgres implements the repository interfaces on PostgreSQL with
// database/sql and hand-written, parameterized SQL.
package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/bytedance/sonic"

	"taskboard/internal/database"
	"taskboard/internal/ordering"
)

// jsonList carries a Go slice to and from a Postgres array as JSON text.
// Queries read arrays with array_to_json(col)::text and write them with
// ARRAY(SELECT jsonb_array_elements_text($n::jsonb)).
type jsonList[T any] struct {
	v *[]T
}

func listOf[T any](v *[]T) jsonList[T] { return jsonList[T]{v: v} }

func (j jsonList[T]) Value() (driver.Value, error) {
	if j.v == nil || *j.v == nil {
		return "[]", nil
	}
	b, err := sonic.Marshal(*j.v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (j jsonList[T]) Scan(src any) error {
	var raw []byte
	switch s := src.(type) {
	case nil:
		*j.v = []T{}
		return nil
	case string:
		raw = []byte(s)
	case []byte:
		raw = s
	default:
		return fmt.Errorf("jsonList: unsupported source %T", src)
	}
	out := []T{}
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return err
	}
	*j.v = out
	return nil
}

// ids passes an id list as a JSON array for "IN (SELECT jsonb_array_elements_text($n::jsonb)::uuid)".
func ids(v []string) jsonList[string] { return listOf(&v) }

// appendTasksQuery puts the live tasks in $1 behind the other members of the
// list each one belongs to now, keeping their relative order. Statements that
// merge tasks into another list run it on the ids they touched.
const appendTasksQuery = `
	WITH moved AS (
		SELECT t.id, t.user_id, t.section, t.project_id, t.project_section_id, t.board_column_id,
		       ROW_NUMBER() OVER (
		           PARTITION BY t.user_id, t.section, t.project_id, t.project_section_id, t.board_column_id
		           ORDER BY t.position, t.created_at) AS rn
		FROM tasks t
		WHERE t.id IN (SELECT jsonb_array_elements_text(CAST($1 AS jsonb))::uuid)
		  AND t.deleted_at IS NULL
	)
	UPDATE tasks t
	SET position = m.rn + (
		SELECT COALESCE(MAX(o.position), -1) FROM tasks o
		WHERE o.user_id = m.user_id AND o.deleted_at IS NULL
		  AND o.section IS NOT DISTINCT FROM m.section
		  AND o.project_id IS NOT DISTINCT FROM m.project_id
		  AND o.project_section_id IS NOT DISTINCT FROM m.project_section_id
		  AND o.board_column_id IS NOT DISTINCT FROM m.board_column_id
		  AND o.id NOT IN (SELECT id FROM moved))
	FROM moved m
	WHERE t.id = m.id`

func appendTasks(ctx context.Context, db database.DBTX, moved []string) error {
	if len(moved) == 0 {
		return nil
	}
	_, err := db.ExecContext(ctx, appendTasksQuery, ids(moved))
	return err
}

// updateReturningIDs runs an UPDATE ... RETURNING id and collects the ids.
func updateReturningIDs(ctx context.Context, db database.DBTX, q string, args ...any) ([]string, error) {
	rows, err := db.QueryContext(ctx, q, args...)
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

type rowScanner interface {
	Scan(dest ...any) error
}

// reorder assigns positions 0..n-1 to ids. ownerClause must restrict rows to the
// user passed as $3. An id that matches no row aborts the whole reorder with
// sql.ErrNoRows.
func reorder(ctx context.Context, db *sql.DB, table, ownerClause, userID string, list []string) error {
	slots, err := ordering.Sequence(list)
	if err != nil {
		return err
	}
	q := fmt.Sprintf(`UPDATE %s SET position = $1 WHERE id = $2 AND %s`, table, ownerClause)
	return database.RunInTx(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		for _, s := range slots {
			if err := execOne(ctx, tx, q, s.Position, s.ID, userID); err != nil {
				return err
			}
		}
		return nil
	})
}

// execOne runs a statement that must affect exactly one row, or none for
// sql.ErrNoRows.
func execOne(ctx context.Context, db database.DBTX, q string, args ...any) error {
	res, err := db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func affected(res sql.Result, err error) (int, error) {
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
