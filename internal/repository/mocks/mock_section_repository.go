package mocks

import (
	"context"
	"time"

	"taskboard/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockSectionRepository struct {
	mock.Mock
}

func (m *MockSectionRepository) List(ctx context.Context, userID, projectID string) ([]model.ProjectSection, error) {
	args := m.Called(ctx, userID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProjectSection), args.Error(1)
}

func (m *MockSectionRepository) FindByID(ctx context.Context, userID, id string) (*model.ProjectSection, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectSection), args.Error(1)
}

func (m *MockSectionRepository) Create(ctx context.Context, userID string, s *model.ProjectSection) (*model.ProjectSection, error) {
	args := m.Called(ctx, userID, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectSection), args.Error(1)
}

func (m *MockSectionRepository) Update(ctx context.Context, userID string, s *model.ProjectSection) (*model.ProjectSection, error) {
	args := m.Called(ctx, userID, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectSection), args.Error(1)
}

func (m *MockSectionRepository) Delete(ctx context.Context, userID, id string, mode model.SectionDeleteMode, now time.Time) error {
	return m.Called(ctx, userID, id, mode, now).Error(0)
}

func (m *MockSectionRepository) Reorder(ctx context.Context, userID string, ids []string) error {
	return m.Called(ctx, userID, ids).Error(0)
}
