package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/storage"
)

// ProjectCreate is the input of ProjectService.Create.
type ProjectCreate struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Color       string  `json:"color" validate:"omitempty,hexcolor"`
}

// ProjectPatch carries the project fields to change; nil fields stay as they are.
type ProjectPatch struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Color       *string `json:"color" validate:"omitempty,hexcolor"`
	Archived    *bool   `json:"archived"`
}

// ProjectService defines the use cases for projects.
type ProjectService interface {
	List(ctx context.Context, userID string) ([]model.Project, error)
	ListTrashed(ctx context.Context, userID string) ([]model.Project, error)

	// Get returns the project with its board columns and sections.
	Get(ctx context.Context, userID, id string) (*model.ProjectDetail, error)

	// Create appends a project and gives it the default board columns.
	Create(ctx context.Context, userID string, in ProjectCreate) (*model.Project, error)
	Update(ctx context.Context, userID, id string, in ProjectPatch) (*model.Project, error)

	// SoftDelete moves the project and its live tasks to the trash.
	SoftDelete(ctx context.Context, userID, id string) error

	// Restore undoes SoftDelete, restoring exactly the tasks it trashed.
	Restore(ctx context.Context, userID, id string) error

	// HardDelete removes the project permanently; mode decides the fate of its tasks.
	HardDelete(ctx context.Context, userID, id string, mode model.ProjectHardDeleteMode) error

	Reorder(ctx context.Context, userID string, ids []string) error
}

type projectService struct {
	repo        repository.ProjectRepository
	columns     repository.ColumnRepository
	sections    repository.SectionRepository
	attachments repository.AttachmentRepository
	sweeper     objectSweeper
}

// NewProjectService constructs a new ProjectService.
func NewProjectService(
	repo repository.ProjectRepository,
	columns repository.ColumnRepository,
	sections repository.SectionRepository,
	attachments repository.AttachmentRepository,
	store storage.Storage,
	log logrus.FieldLogger,
) ProjectService {
	return &projectService{
		repo:        repo,
		columns:     columns,
		sections:    sections,
		attachments: attachments,
		sweeper:     objectSweeper{store: store, log: log},
	}
}

func (s *projectService) List(ctx context.Context, userID string) ([]model.Project, error) {
	return s.repo.List(ctx, userID)
}

func (s *projectService) ListTrashed(ctx context.Context, userID string) ([]model.Project, error) {
	return s.repo.ListTrashed(ctx, userID)
}

func (s *projectService) Get(ctx context.Context, userID, id string) (*model.ProjectDetail, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	p, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, notFound("project", err)
	}
	cols, err := s.columns.List(ctx, userID, &p.ID)
	if err != nil {
		return nil, err
	}
	secs, err := s.sections.List(ctx, userID, p.ID)
	if err != nil {
		return nil, err
	}
	return &model.ProjectDetail{Project: *p, Columns: cols, Sections: secs}, nil
}

func (s *projectService) Create(ctx context.Context, userID string, in ProjectCreate) (*model.Project, error) {
	p := &model.Project{
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
	}
	if p.Color == "" {
		p.Color = model.DefaultProjectColor
	}
	return s.repo.Create(ctx, p, model.DefaultColumns)
}

func (s *projectService) Update(ctx context.Context, userID, id string, in ProjectPatch) (*model.Project, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	p, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, notFound("project", err)
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = in.Description
	}
	if in.Color != nil {
		p.Color = *in.Color
	}
	if in.Archived != nil {
		p.Archived = *in.Archived
	}
	out, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, notFound("project", err)
	}
	return out, nil
}

func (s *projectService) SoftDelete(ctx context.Context, userID, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	return notFound("project", s.repo.SoftDelete(ctx, userID, id, time.Now().UTC()))
}

func (s *projectService) Restore(ctx context.Context, userID, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	return notFound("project", s.repo.Restore(ctx, userID, id))
}

func (s *projectService) HardDelete(ctx context.Context, userID, id string, mode model.ProjectHardDeleteMode) error {
	if id == "" {
		return ErrIDRequired
	}
	switch mode {
	case "":
		mode = model.HardDeleteTrashTasks
	case model.HardDeleteTrashTasks, model.HardDeleteAll:
	default:
		return invalidInput("unknown delete mode %q", mode)
	}

	// Detached tasks keep their attachments; deleted ones lose them.
	var keys []string
	if mode == model.HardDeleteAll {
		var err error
		if keys, err = s.attachments.KeysByProject(ctx, userID, id); err != nil {
			return err
		}
	}
	if err := s.repo.HardDelete(ctx, userID, id, mode, time.Now().UTC()); err != nil {
		return notFound("project", err)
	}
	s.sweeper.sweep(ctx, keys)
	return nil
}

func (s *projectService) Reorder(ctx context.Context, userID string, ids []string) error {
	return orderError("project", s.repo.Reorder(ctx, userID, ids))
}
