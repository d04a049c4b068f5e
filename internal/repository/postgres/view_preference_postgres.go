package postgres

import (
	"context"
	"database/sql"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// ViewPreferencePostgres is a PostgreSQL implementation of repository.ViewPreferenceRepository.
type ViewPreferencePostgres struct {
	db *sql.DB
}

// NewViewPreferencePostgres creates a new ViewPreferencePostgres repository.
func NewViewPreferencePostgres(db *sql.DB) *ViewPreferencePostgres {
	return &ViewPreferencePostgres{db: db}
}

var _ repository.ViewPreferenceRepository = (*ViewPreferencePostgres)(nil)

func scanPreference(row rowScanner) (*model.ViewPreference, error) {
	var p model.ViewPreference
	if err := row.Scan(&p.ID, &p.UserID, &p.Section, &p.ProjectID, &p.ViewMode); err != nil {
		return nil, err
	}
	return &p, nil
}

// Get returns the stored preference of a list.
func (r *ViewPreferencePostgres) Get(ctx context.Context, userID string, section, projectID *string) (*model.ViewPreference, error) {
	const q = `
		SELECT id, user_id, section, project_id, view_mode
		FROM view_preferences
		WHERE user_id = $1
		  AND section IS NOT DISTINCT FROM CAST($2 AS text)
		  AND project_id IS NOT DISTINCT FROM CAST($3 AS uuid)`
	return scanPreference(r.db.QueryRowContext(ctx, q, userID, section, projectID))
}

// Upsert inserts or replaces the preference of a list.
func (r *ViewPreferencePostgres) Upsert(ctx context.Context, p *model.ViewPreference) (*model.ViewPreference, error) {
	const q = `
		INSERT INTO view_preferences (user_id, section, project_id, view_mode)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, (COALESCE(section, '')), (COALESCE(project_id::text, '')))
		DO UPDATE SET view_mode = EXCLUDED.view_mode
		RETURNING id, user_id, section, project_id, view_mode`
	return scanPreference(r.db.QueryRowContext(ctx, q, p.UserID, p.Section, p.ProjectID, p.ViewMode))
}
