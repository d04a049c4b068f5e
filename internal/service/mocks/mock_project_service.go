package mocks

import (
	"context"

	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) projects(args mock.Arguments) ([]model.Project, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectService) project(args mock.Arguments) (*model.Project, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) List(ctx context.Context, userID string) ([]model.Project, error) {
	return m.projects(m.Called(ctx, userID))
}

func (m *MockProjectService) ListTrashed(ctx context.Context, userID string) ([]model.Project, error) {
	return m.projects(m.Called(ctx, userID))
}

func (m *MockProjectService) Get(ctx context.Context, userID, id string) (*model.ProjectDetail, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectDetail), args.Error(1)
}

func (m *MockProjectService) Create(ctx context.Context, userID string, in service.ProjectCreate) (*model.Project, error) {
	return m.project(m.Called(ctx, userID, in))
}

func (m *MockProjectService) Update(ctx context.Context, userID, id string, in service.ProjectPatch) (*model.Project, error) {
	return m.project(m.Called(ctx, userID, id, in))
}

func (m *MockProjectService) SoftDelete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockProjectService) Restore(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockProjectService) HardDelete(ctx context.Context, userID, id string, mode model.ProjectHardDeleteMode) error {
	return m.Called(ctx, userID, id, mode).Error(0)
}

func (m *MockProjectService) Reorder(ctx context.Context, userID string, ids []string) error {
	return m.Called(ctx, userID, ids).Error(0)
}
