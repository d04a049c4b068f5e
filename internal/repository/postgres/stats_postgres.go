package postgres

import (
	"context"
	"database/sql"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// StatsPostgres is a PostgreSQL implementation of repository.StatsRepository.
type StatsPostgres struct {
	db *sql.DB
}

// NewStatsPostgres creates a new StatsPostgres repository.
func NewStatsPostgres(db *sql.DB) *StatsPostgres {
	return &StatsPostgres{db: db}
}

var _ repository.StatsRepository = (*StatsPostgres)(nil)

// scope narrows to the user ($1) and, when $2 is set, one project.
const scope = `t.user_id = $1 AND (CAST($2 AS uuid) IS NULL OR t.project_id = $2)`

// Counters returns the scalar counters in one pass over the user's tasks.
func (r *StatsPostgres) Counters(ctx context.Context, userID string, projectID *string, w repository.StatsWindow) (*model.TaskCounters, error) {
	const q = `
		SELECT
			COUNT(*) FILTER (WHERE t.deleted_at IS NULL AND t.completed_at IS NULL),
			COUNT(*) FILTER (WHERE t.deleted_at IS NULL AND t.completed_at IS NOT NULL),
			COUNT(*) FILTER (WHERE t.deleted_at IS NULL AND t.created_at >= $3),
			COUNT(*) FILTER (WHERE t.deleted_at IS NULL AND t.completed_at >= $3),
			COUNT(*) FILTER (WHERE t.deleted_at IS NULL AND t.created_at >= $4),
			COUNT(*) FILTER (WHERE t.deleted_at IS NULL AND t.completed_at >= $4),
			COUNT(*) FILTER (WHERE t.deleted_at IS NOT NULL)
		FROM tasks t
		WHERE ` + scope
	var c model.TaskCounters
	if err := r.db.QueryRowContext(ctx, q, userID, projectID, w.WeekStart, w.MonthStart).Scan(
		&c.TotalOpen, &c.TotalCompleted,
		&c.CreatedThisWeek, &c.CompletedThisWeek,
		&c.CreatedThisMonth, &c.CompletedThisMonth,
		&c.TotalDeleted,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

// ByPriority returns open task counts per priority, lowest priority first.
func (r *StatsPostgres) ByPriority(ctx context.Context, userID string, projectID *string) ([]model.PriorityCount, error) {
	const q = `
		SELECT t.priority, COUNT(*)
		FROM tasks t
		WHERE ` + scope + ` AND t.deleted_at IS NULL AND t.completed_at IS NULL
		GROUP BY t.priority
		ORDER BY t.priority`
	rows, err := r.db.QueryContext(ctx, q, userID, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.PriorityCount, 0)
	for rows.Next() {
		var pc model.PriorityCount
		if err := rows.Scan(&pc.Priority, &pc.Count); err != nil {
			return nil, err
		}
		out = append(out, pc)
	}
	return out, rows.Err()
}

// Daily returns per-day created and completed counts in the window's time zone.
func (r *StatsPostgres) Daily(ctx context.Context, userID string, projectID *string, w repository.StatsWindow) ([]model.DailyActivity, error) {
	const q = `
		WITH events AS (
			SELECT to_char(t.created_at AT TIME ZONE $4, 'YYYY-MM-DD') AS day, 1 AS created, 0 AS completed
			FROM tasks t
			WHERE ` + scope + ` AND t.deleted_at IS NULL AND t.created_at >= $3
			UNION ALL
			SELECT to_char(t.completed_at AT TIME ZONE $4, 'YYYY-MM-DD'), 0, 1
			FROM tasks t
			WHERE ` + scope + ` AND t.deleted_at IS NULL AND t.completed_at >= $3
		)
		SELECT day, SUM(created), SUM(completed)
		FROM events
		GROUP BY day
		ORDER BY day`
	rows, err := r.db.QueryContext(ctx, q, userID, projectID, w.DailyFrom, w.Timezone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.DailyActivity, 0)
	for rows.Next() {
		var d model.DailyActivity
		if err := rows.Scan(&d.Date, &d.Created, &d.Completed); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
