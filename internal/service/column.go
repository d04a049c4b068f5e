package service

import (
	"context"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// ColumnCreate is the input of ColumnService.Create. Without a project the
// column is added to the inbox board.
type ColumnCreate struct {
	ProjectID *string `json:"projectId" validate:"omitempty,uuid"`
	Section   *string `json:"section" validate:"omitempty,oneof=inbox"`
	Name      string  `json:"name" validate:"required,min=1,max=100"`
	Color     *string `json:"color" validate:"omitempty,hexcolor"`
}

// ColumnPatch carries the column fields to change.
type ColumnPatch struct {
	Name  *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Color Nullable[string] `json:"color"`
}

// ColumnService defines the use cases for board columns.
type ColumnService interface {
	// List returns a project's board, or the inbox board when projectID is nil.
	// The inbox board is created with the default columns on first use.
	List(ctx context.Context, userID string, projectID *string) ([]model.BoardColumn, error)
	Create(ctx context.Context, userID string, in ColumnCreate) (*model.BoardColumn, error)
	Update(ctx context.Context, userID, id string, in ColumnPatch) (*model.BoardColumn, error)

	// Delete removes the column; its tasks stay in the list without a column.
	Delete(ctx context.Context, userID, id string) error
	Reorder(ctx context.Context, userID string, ids []string) error
}

type columnService struct {
	repo     repository.ColumnRepository
	projects repository.ProjectRepository
}

// NewColumnService constructs a new ColumnService.
func NewColumnService(repo repository.ColumnRepository, projects repository.ProjectRepository) ColumnService {
	return &columnService{repo: repo, projects: projects}
}

func (s *columnService) List(ctx context.Context, userID string, projectID *string) ([]model.BoardColumn, error) {
	cols, err := s.repo.List(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if projectID != nil || len(cols) > 0 {
		return cols, nil
	}
	return s.repo.CreateDefaults(ctx, userID, nil, model.DefaultColumns)
}

func (s *columnService) Create(ctx context.Context, userID string, in ColumnCreate) (*model.BoardColumn, error) {
	if in.ProjectID != nil && in.Section != nil {
		return nil, invalidPlacement("a column belongs to a project or to the inbox, not both")
	}
	if in.ProjectID != nil {
		if _, err := s.projects.FindByID(ctx, userID, *in.ProjectID); err != nil {
			return nil, notFound("project", err)
		}
	}
	return s.repo.Create(ctx, &model.BoardColumn{
		UserID:    userID,
		ProjectID: in.ProjectID,
		Name:      in.Name,
		Color:     in.Color,
	})
}

func (s *columnService) Update(ctx context.Context, userID, id string, in ColumnPatch) (*model.BoardColumn, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	c, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, notFound("column", err)
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	in.Color.apply(&c.Color)
	out, err := s.repo.Update(ctx, c)
	if err != nil {
		return nil, notFound("column", err)
	}
	return out, nil
}

func (s *columnService) Delete(ctx context.Context, userID, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	return notFound("column", s.repo.Delete(ctx, userID, id))
}

func (s *columnService) Reorder(ctx context.Context, userID string, ids []string) error {
	return orderError("column", s.repo.Reorder(ctx, userID, ids))
}
