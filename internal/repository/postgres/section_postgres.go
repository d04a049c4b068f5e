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

// SectionPostgres is a PostgreSQL implementation of repository.SectionRepository.
type SectionPostgres struct {
	db *sql.DB
}

// NewSectionPostgres creates a new SectionPostgres repository.
func NewSectionPostgres(db *sql.DB) *SectionPostgres {
	return &SectionPostgres{db: db}
}

var _ repository.SectionRepository = (*SectionPostgres)(nil)

const sectionColumns = `s.id, s.project_id, s.name, s.position, s.created_at`

const ownedSection = `s.project_id IN (SELECT id FROM projects WHERE user_id = $2)`

func scanSection(row rowScanner) (*model.ProjectSection, error) {
	var s model.ProjectSection
	if err := row.Scan(&s.ID, &s.ProjectID, &s.Name, &s.Position, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns a project's sections in position order.
func (r *SectionPostgres) List(ctx context.Context, userID, projectID string) ([]model.ProjectSection, error) {
	const q = `
		SELECT ` + sectionColumns + `
		FROM project_sections s
		WHERE s.project_id = $1 AND ` + ownedSection + `
		ORDER BY s.position, s.created_at
	`
	rows, err := r.db.QueryContext(ctx, q, projectID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ProjectSection, 0)
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	return items, rows.Err()
}

// FindByID fetches a single section by its ID.
func (r *SectionPostgres) FindByID(ctx context.Context, userID, id string) (*model.ProjectSection, error) {
	const q = `SELECT ` + sectionColumns + ` FROM project_sections s WHERE s.id = $1 AND ` + ownedSection
	return scanSection(r.db.QueryRowContext(ctx, q, id, userID))
}

// Create appends the section to its project. A project of another user yields sql.ErrNoRows.
func (r *SectionPostgres) Create(ctx context.Context, userID string, s *model.ProjectSection) (*model.ProjectSection, error) {
	const q = `
		INSERT INTO project_sections (project_id, name, position)
		SELECT p.id, $3, (SELECT COALESCE(MAX(position), -1) + 1 FROM project_sections WHERE project_id = p.id)
		FROM projects p
		WHERE p.id = $1 AND p.user_id = $2
		RETURNING id, project_id, name, position, created_at
	`
	return scanSection(r.db.QueryRowContext(ctx, q, s.ProjectID, userID, s.Name))
}

// Update renames the section.
func (r *SectionPostgres) Update(ctx context.Context, userID string, s *model.ProjectSection) (*model.ProjectSection, error) {
	const q = `
		UPDATE project_sections s SET name = $3
		WHERE s.id = $1 AND ` + ownedSection + `
		RETURNING ` + sectionColumns
	return scanSection(r.db.QueryRowContext(ctx, q, s.ID, userID, s.Name))
}

// Delete removes the section after moving its tasks out of it or into the trash.
// Tasks moved out go to the end of the project's unsectioned list.
func (r *SectionPostgres) Delete(ctx context.Context, userID, id string, mode model.SectionDeleteMode, now time.Time) error {
	var taskQ string
	switch mode {
	case model.SectionMoveToNone, "":
		taskQ = `UPDATE tasks SET project_section_id = NULL, updated_at = $3 WHERE project_section_id = $1 AND user_id = $2 RETURNING id`
	case model.SectionTrash:
		taskQ = `
			UPDATE tasks SET project_section_id = NULL, deleted_at = COALESCE(deleted_at, $3), updated_at = $3
			WHERE project_section_id = $1 AND user_id = $2 RETURNING id`
	default:
		return fmt.Errorf("unknown section delete mode %q", mode)
	}

	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		moved, err := updateReturningIDs(ctx, tx, taskQ, id, userID, now)
		if err != nil {
			return err
		}
		if mode != model.SectionTrash {
			if err := appendTasks(ctx, tx, moved); err != nil {
				return err
			}
		}
		return execOne(ctx, tx, `DELETE FROM project_sections s WHERE s.id = $1 AND `+ownedSection, id, userID)
	})
}

// Reorder assigns positions following ids.
func (r *SectionPostgres) Reorder(ctx context.Context, userID string, list []string) error {
	return reorder(ctx, r.db, "project_sections", "project_id IN (SELECT id FROM projects WHERE user_id = $3)", userID, list)
}
