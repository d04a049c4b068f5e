package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"taskboard/internal/database"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// RecurrencePostgres is a PostgreSQL implementation of repository.RecurrenceRepository.
type RecurrencePostgres struct {
	db *sql.DB
}

// NewRecurrencePostgres creates a new RecurrencePostgres repository.
func NewRecurrencePostgres(db *sql.DB) *RecurrencePostgres {
	return &RecurrencePostgres{db: db}
}

var _ repository.RecurrenceRepository = (*RecurrencePostgres)(nil)

const ruleColumns = `r.id, r.user_id, r.frequency, r."interval", array_to_json(r.days_of_week)::text, r.day_of_month,
	r.title, r.description, r.priority, array_to_json(r.tags)::text, r.section, r.project_id,
	r.timezone, r.last_generated_at, r.active, r.created_at`

func scanRule(row rowScanner, extra ...func(*model.RecurrenceRule) any) (*model.RecurrenceRule, error) {
	var r model.RecurrenceRule
	dest := []any{
		&r.ID, &r.UserID, &r.Frequency, &r.Interval, listOf(&r.DaysOfWeek), &r.DayOfMonth,
		&r.Title, &r.Description, &r.Priority, listOf(&r.Tags), &r.Section, &r.ProjectID,
		&r.Timezone, &r.LastGeneratedAt, &r.Active, &r.CreatedAt,
	}
	for _, field := range extra {
		dest = append(dest, field(&r))
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &r, nil
}

func (p *RecurrencePostgres) query(ctx context.Context, q string, args ...any) ([]model.RecurrenceRule, error) {
	return p.queryWith(ctx, nil, q, args...)
}

func (p *RecurrencePostgres) queryWith(ctx context.Context, extra []func(*model.RecurrenceRule) any, q string, args ...any) ([]model.RecurrenceRule, error) {
	rows, err := p.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.RecurrenceRule, 0)
	for rows.Next() {
		r, err := scanRule(rows, extra...)
		if err != nil {
			return nil, err
		}
		items = append(items, *r)
	}
	return items, rows.Err()
}

// List returns the user's rules, newest first.
func (p *RecurrencePostgres) List(ctx context.Context, userID string) ([]model.RecurrenceRule, error) {
	const q = `SELECT ` + ruleColumns + ` FROM recurrence_rules r WHERE r.user_id = $1 ORDER BY r.created_at DESC`
	return p.query(ctx, q, userID)
}

// ListActive returns active rules of all users, flagging those whose target
// project sits in the trash.
func (p *RecurrencePostgres) ListActive(ctx context.Context) ([]model.RecurrenceRule, error) {
	const q = `
		SELECT ` + ruleColumns + `, pr.deleted_at IS NOT NULL
		FROM recurrence_rules r
		LEFT JOIN projects pr ON pr.id = r.project_id
		WHERE r.active
		ORDER BY r.created_at
	`
	trashed := func(r *model.RecurrenceRule) any { return &r.ProjectTrashed }
	return p.queryWith(ctx, []func(*model.RecurrenceRule) any{trashed}, q)
}

// FindByID fetches a single rule by its ID.
func (p *RecurrencePostgres) FindByID(ctx context.Context, userID, id string) (*model.RecurrenceRule, error) {
	const q = `SELECT ` + ruleColumns + ` FROM recurrence_rules r WHERE r.id = $1 AND r.user_id = $2`
	return scanRule(p.db.QueryRowContext(ctx, q, id, userID))
}

// Create inserts a new rule and returns the stored record.
func (p *RecurrencePostgres) Create(ctx context.Context, r *model.RecurrenceRule) (*model.RecurrenceRule, error) {
	const q = `
		INSERT INTO recurrence_rules AS r (user_id, frequency, "interval", days_of_week, day_of_month,
		                                   title, description, priority, tags, section, project_id, timezone, active)
		VALUES ($1, $2, $3, ARRAY(SELECT jsonb_array_elements_text(CAST($4 AS jsonb))::int), $5,
		        $6, $7, $8, ARRAY(SELECT jsonb_array_elements_text(CAST($9 AS jsonb))), $10, $11, $12, $13)
		RETURNING ` + ruleColumns
	return scanRule(p.db.QueryRowContext(ctx, q,
		r.UserID, r.Frequency, r.Interval, listOf(&r.DaysOfWeek), r.DayOfMonth,
		r.Title, r.Description, r.Priority, listOf(&r.Tags), r.Section, r.ProjectID, r.Timezone, r.Active))
}

// Update stores every editable field of the rule.
func (p *RecurrencePostgres) Update(ctx context.Context, r *model.RecurrenceRule) (*model.RecurrenceRule, error) {
	const q = `
		UPDATE recurrence_rules r
		SET frequency = $3, "interval" = $4,
		    days_of_week = ARRAY(SELECT jsonb_array_elements_text(CAST($5 AS jsonb))::int), day_of_month = $6,
		    title = $7, description = $8, priority = $9,
		    tags = ARRAY(SELECT jsonb_array_elements_text(CAST($10 AS jsonb))),
		    section = $11, project_id = $12, timezone = $13, active = $14
		WHERE r.id = $1 AND r.user_id = $2
		RETURNING ` + ruleColumns
	return scanRule(p.db.QueryRowContext(ctx, q,
		r.ID, r.UserID, r.Frequency, r.Interval, listOf(&r.DaysOfWeek), r.DayOfMonth,
		r.Title, r.Description, r.Priority, listOf(&r.Tags), r.Section, r.ProjectID, r.Timezone, r.Active))
}

// Delete removes a rule. Tasks it generated keep existing without the link.
func (p *RecurrencePostgres) Delete(ctx context.Context, userID, id string) error {
	return execOne(ctx, p.db, `DELETE FROM recurrence_rules WHERE id = $1 AND user_id = $2`, id, userID)
}

// GenerateTask inserts the rule's task for today and stamps the rule, once per day.
func (p *RecurrencePostgres) GenerateTask(ctx context.Context, ruleID string, t *model.Task, dayStart, generatedOn, now time.Time) (bool, error) {
	created := false
	err := database.RunInTx(ctx, p.db, func(ctx context.Context, tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM tasks WHERE recurrence_rule_id = $1 AND created_at >= $2)`,
			ruleID, dayStart).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return nil
		}

		t.RecurrenceRuleID = &ruleID
		if _, err := insertTask(ctx, tx, t, &generatedOn); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return err
		}
		created = true

		_, err := tx.ExecContext(ctx, `UPDATE recurrence_rules SET last_generated_at = $2 WHERE id = $1`, ruleID, now)
		return err
	})
	if err != nil {
		return false, err
	}
	return created, nil
}
