package mocks

import (
	"context"
	"time"

	"taskboard/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) List(ctx context.Context, userID string) ([]model.Project, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectRepository) ListTrashed(ctx context.Context, userID string) ([]model.Project, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectRepository) FindByID(ctx context.Context, userID, id string) (*model.Project, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) Create(ctx context.Context, p *model.Project, columns []model.ColumnTemplate) (*model.Project, error) {
	args := m.Called(ctx, p, columns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) Update(ctx context.Context, p *model.Project) (*model.Project, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) SoftDelete(ctx context.Context, userID, id string, now time.Time) error {
	return m.Called(ctx, userID, id, now).Error(0)
}

func (m *MockProjectRepository) Restore(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockProjectRepository) HardDelete(ctx context.Context, userID, id string, mode model.ProjectHardDeleteMode, now time.Time) error {
	return m.Called(ctx, userID, id, mode, now).Error(0)
}

func (m *MockProjectRepository) Reorder(ctx context.Context, userID string, ids []string) error {
	return m.Called(ctx, userID, ids).Error(0)
}
