package mocks

import (
	"context"

	"taskboard/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockColumnRepository struct {
	mock.Mock
}

func (m *MockColumnRepository) List(ctx context.Context, userID string, projectID *string) ([]model.BoardColumn, error) {
	args := m.Called(ctx, userID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BoardColumn), args.Error(1)
}

func (m *MockColumnRepository) FindByID(ctx context.Context, userID, id string) (*model.BoardColumn, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BoardColumn), args.Error(1)
}

func (m *MockColumnRepository) Create(ctx context.Context, c *model.BoardColumn) (*model.BoardColumn, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BoardColumn), args.Error(1)
}

func (m *MockColumnRepository) CreateDefaults(ctx context.Context, userID string, projectID *string, templates []model.ColumnTemplate) ([]model.BoardColumn, error) {
	args := m.Called(ctx, userID, projectID, templates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BoardColumn), args.Error(1)
}

func (m *MockColumnRepository) Update(ctx context.Context, c *model.BoardColumn) (*model.BoardColumn, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BoardColumn), args.Error(1)
}

func (m *MockColumnRepository) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockColumnRepository) Reorder(ctx context.Context, userID string, ids []string) error {
	return m.Called(ctx, userID, ids).Error(0)
}
