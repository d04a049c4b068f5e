package mocks

import (
	"context"

	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockColumnService struct {
	mock.Mock
}

func (m *MockColumnService) column(args mock.Arguments) (*model.BoardColumn, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BoardColumn), args.Error(1)
}

func (m *MockColumnService) List(ctx context.Context, userID string, projectID *string) ([]model.BoardColumn, error) {
	args := m.Called(ctx, userID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BoardColumn), args.Error(1)
}

func (m *MockColumnService) Create(ctx context.Context, userID string, in service.ColumnCreate) (*model.BoardColumn, error) {
	return m.column(m.Called(ctx, userID, in))
}

func (m *MockColumnService) Update(ctx context.Context, userID, id string, in service.ColumnPatch) (*model.BoardColumn, error) {
	return m.column(m.Called(ctx, userID, id, in))
}

func (m *MockColumnService) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockColumnService) Reorder(ctx context.Context, userID string, ids []string) error {
	return m.Called(ctx, userID, ids).Error(0)
}
