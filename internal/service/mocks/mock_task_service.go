package mocks

import (
	"context"
	"time"

	"taskboard/internal/export"
	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) tasks(args mock.Arguments) ([]model.Task, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskService) task(args mock.Arguments) (*model.Task, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) List(ctx context.Context, userID string, q service.TaskQuery) ([]model.Task, error) {
	return m.tasks(m.Called(ctx, userID, q))
}

func (m *MockTaskService) Calendar(ctx context.Context, userID string, from, to time.Time) ([]model.Task, error) {
	return m.tasks(m.Called(ctx, userID, from, to))
}

func (m *MockTaskService) Get(ctx context.Context, userID, id string) (*model.TaskDetail, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaskDetail), args.Error(1)
}

func (m *MockTaskService) Create(ctx context.Context, userID string, in service.TaskCreate) (*model.Task, error) {
	return m.task(m.Called(ctx, userID, in))
}

func (m *MockTaskService) Update(ctx context.Context, userID, id string, in service.TaskPatch) (*model.Task, error) {
	return m.task(m.Called(ctx, userID, id, in))
}

func (m *MockTaskService) Move(ctx context.Context, userID, id string, dest model.Placement, index *int) (*model.Task, error) {
	return m.task(m.Called(ctx, userID, id, dest, index))
}

func (m *MockTaskService) Complete(ctx context.Context, userID, id string, note *string) (*model.Task, error) {
	return m.task(m.Called(ctx, userID, id, note))
}

func (m *MockTaskService) Uncomplete(ctx context.Context, userID, id string) (*model.Task, error) {
	return m.task(m.Called(ctx, userID, id))
}

func (m *MockTaskService) SoftDelete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockTaskService) Restore(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockTaskService) HardDelete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockTaskService) BulkComplete(ctx context.Context, userID string, ids []string) (int, error) {
	args := m.Called(ctx, userID, ids)
	return args.Int(0), args.Error(1)
}

func (m *MockTaskService) BulkDelete(ctx context.Context, userID string, ids []string) (int, error) {
	args := m.Called(ctx, userID, ids)
	return args.Int(0), args.Error(1)
}

func (m *MockTaskService) BulkMove(ctx context.Context, userID string, ids []string, dest model.Placement) (int, error) {
	args := m.Called(ctx, userID, ids, dest)
	return args.Int(0), args.Error(1)
}

func (m *MockTaskService) BulkSetDueDate(ctx context.Context, userID string, ids []string, due *time.Time) (int, error) {
	args := m.Called(ctx, userID, ids, due)
	return args.Int(0), args.Error(1)
}

func (m *MockTaskService) Reorder(ctx context.Context, userID string, ids []string) error {
	return m.Called(ctx, userID, ids).Error(0)
}

func (m *MockTaskService) Export(ctx context.Context, userID string, q service.TaskQuery, format export.Format) ([]byte, error) {
	args := m.Called(ctx, userID, q, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
