package service

import (
	"context"
	"database/sql"
	"errors"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// ViewTarget names the list a view preference applies to: the inbox section
// or a project.
type ViewTarget struct {
	Section   *string `json:"section" validate:"omitempty,oneof=inbox"`
	ProjectID *string `json:"projectId" validate:"omitempty,uuid"`
}

// ViewPreferenceService remembers the view mode per list.
type ViewPreferenceService interface {
	// Get returns the stored preference, or list mode when none exists.
	Get(ctx context.Context, userID string, target ViewTarget) (*model.ViewPreference, error)
	Set(ctx context.Context, userID string, target ViewTarget, mode model.ViewMode) (*model.ViewPreference, error)
}

type viewPreferenceService struct {
	repo repository.ViewPreferenceRepository
}

// NewViewPreferenceService constructs a new ViewPreferenceService.
func NewViewPreferenceService(repo repository.ViewPreferenceRepository) ViewPreferenceService {
	return &viewPreferenceService{repo: repo}
}

func (s *viewPreferenceService) Get(ctx context.Context, userID string, target ViewTarget) (*model.ViewPreference, error) {
	p, err := s.repo.Get(ctx, userID, target.Section, target.ProjectID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return &model.ViewPreference{Section: target.Section, ProjectID: target.ProjectID, ViewMode: model.ViewList}, nil
	case err != nil:
		return nil, err
	}
	return p, nil
}

func (s *viewPreferenceService) Set(ctx context.Context, userID string, target ViewTarget, mode model.ViewMode) (*model.ViewPreference, error) {
	if mode != model.ViewList && mode != model.ViewKanban {
		return nil, invalidInput("unknown view mode %q", mode)
	}
	return s.repo.Upsert(ctx, &model.ViewPreference{
		UserID:    userID,
		Section:   target.Section,
		ProjectID: target.ProjectID,
		ViewMode:  mode,
	})
}
