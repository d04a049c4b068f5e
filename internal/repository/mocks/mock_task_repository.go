package mocks

import (
	"context"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) tasks(args mock.Arguments) ([]model.Task, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) task(args mock.Arguments) (*model.Task, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) List(ctx context.Context, userID string, f model.TaskFilter) ([]model.Task, error) {
	return m.tasks(m.Called(ctx, userID, f))
}

func (m *MockTaskRepository) Calendar(ctx context.Context, userID string, from, to time.Time) ([]model.Task, error) {
	return m.tasks(m.Called(ctx, userID, from, to))
}

func (m *MockTaskRepository) FindByID(ctx context.Context, userID, id string) (*model.Task, error) {
	return m.task(m.Called(ctx, userID, id))
}

func (m *MockTaskRepository) Create(ctx context.Context, t *model.Task) (*model.Task, error) {
	return m.task(m.Called(ctx, t))
}

func (m *MockTaskRepository) Update(ctx context.Context, t *model.Task) (*model.Task, error) {
	return m.task(m.Called(ctx, t))
}

func (m *MockTaskRepository) Move(ctx context.Context, userID, id string, dest model.Placement, index *int) (*model.Task, error) {
	return m.task(m.Called(ctx, userID, id, dest, index))
}

func (m *MockTaskRepository) MoveMany(ctx context.Context, userID string, ids []string, dest model.Placement) (int, error) {
	args := m.Called(ctx, userID, ids, dest)
	return args.Int(0), args.Error(1)
}

func (m *MockTaskRepository) SetCompleted(ctx context.Context, userID string, ids []string, completedAt *time.Time, note *string) (int, error) {
	args := m.Called(ctx, userID, ids, completedAt, note)
	return args.Int(0), args.Error(1)
}

func (m *MockTaskRepository) SetDueDate(ctx context.Context, userID string, ids []string, due *time.Time) (int, error) {
	args := m.Called(ctx, userID, ids, due)
	return args.Int(0), args.Error(1)
}

func (m *MockTaskRepository) SoftDelete(ctx context.Context, userID string, ids []string, now time.Time) (int, error) {
	args := m.Called(ctx, userID, ids, now)
	return args.Int(0), args.Error(1)
}

func (m *MockTaskRepository) Restore(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, userID string, ids []string) (int, error) {
	args := m.Called(ctx, userID, ids)
	return args.Int(0), args.Error(1)
}

func (m *MockTaskRepository) Reorder(ctx context.Context, userID string, ids []string) error {
	return m.Called(ctx, userID, ids).Error(0)
}

func (m *MockTaskRepository) PurgeTrashed(ctx context.Context, cutoff time.Time) (*repository.PurgeResult, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PurgeResult), args.Error(1)
}

func (m *MockTaskRepository) ArchiveCompleted(ctx context.Context, before time.Time) (int, error) {
	args := m.Called(ctx, before)
	return args.Int(0), args.Error(1)
}
