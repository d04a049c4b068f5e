package service

import (
	"context"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// SectionService defines the use cases for project sections.
type SectionService interface {
	List(ctx context.Context, userID, projectID string) ([]model.ProjectSection, error)
	Create(ctx context.Context, userID, projectID, name string) (*model.ProjectSection, error)
	Rename(ctx context.Context, userID, id, name string) (*model.ProjectSection, error)

	// Delete removes the section; mode decides whether its tasks stay in the
	// project or go to the trash.
	Delete(ctx context.Context, userID, id string, mode model.SectionDeleteMode) error
	Reorder(ctx context.Context, userID string, ids []string) error
}

type sectionService struct {
	repo repository.SectionRepository
}

// NewSectionService constructs a new SectionService.
func NewSectionService(repo repository.SectionRepository) SectionService {
	return &sectionService{repo: repo}
}

func (s *sectionService) List(ctx context.Context, userID, projectID string) ([]model.ProjectSection, error) {
	if projectID == "" {
		return nil, ErrIDRequired
	}
	return s.repo.List(ctx, userID, projectID)
}

func (s *sectionService) Create(ctx context.Context, userID, projectID, name string) (*model.ProjectSection, error) {
	if projectID == "" {
		return nil, ErrIDRequired
	}
	out, err := s.repo.Create(ctx, userID, &model.ProjectSection{ProjectID: projectID, Name: name})
	if err != nil {
		return nil, notFound("project", err)
	}
	return out, nil
}

func (s *sectionService) Rename(ctx context.Context, userID, id, name string) (*model.ProjectSection, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	out, err := s.repo.Update(ctx, userID, &model.ProjectSection{ID: id, Name: name})
	if err != nil {
		return nil, notFound("section", err)
	}
	return out, nil
}

func (s *sectionService) Delete(ctx context.Context, userID, id string, mode model.SectionDeleteMode) error {
	if id == "" {
		return ErrIDRequired
	}
	switch mode {
	case "":
		mode = model.SectionMoveToNone
	case model.SectionMoveToNone, model.SectionTrash:
	default:
		return invalidInput("unknown delete mode %q", mode)
	}
	return notFound("section", s.repo.Delete(ctx, userID, id, mode, time.Now().UTC()))
}

func (s *sectionService) Reorder(ctx context.Context, userID string, ids []string) error {
	return orderError("section", s.repo.Reorder(ctx, userID, ids))
}
