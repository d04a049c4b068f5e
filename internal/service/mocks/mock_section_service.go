package mocks

import (
	"context"

	"taskboard/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockSectionService struct {
	mock.Mock
}

func (m *MockSectionService) section(args mock.Arguments) (*model.ProjectSection, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectSection), args.Error(1)
}

func (m *MockSectionService) List(ctx context.Context, userID, projectID string) ([]model.ProjectSection, error) {
	args := m.Called(ctx, userID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProjectSection), args.Error(1)
}

func (m *MockSectionService) Create(ctx context.Context, userID, projectID, name string) (*model.ProjectSection, error) {
	return m.section(m.Called(ctx, userID, projectID, name))
}

func (m *MockSectionService) Rename(ctx context.Context, userID, id, name string) (*model.ProjectSection, error) {
	return m.section(m.Called(ctx, userID, id, name))
}

func (m *MockSectionService) Delete(ctx context.Context, userID, id string, mode model.SectionDeleteMode) error {
	return m.Called(ctx, userID, id, mode).Error(0)
}

func (m *MockSectionService) Reorder(ctx context.Context, userID string, ids []string) error {
	return m.Called(ctx, userID, ids).Error(0)
}
