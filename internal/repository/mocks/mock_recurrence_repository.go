package mocks

import (
	"context"
	"time"

	"taskboard/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockRecurrenceRepository struct {
	mock.Mock
}

func (m *MockRecurrenceRepository) rules(args mock.Arguments) ([]model.RecurrenceRule, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RecurrenceRule), args.Error(1)
}

func (m *MockRecurrenceRepository) rule(args mock.Arguments) (*model.RecurrenceRule, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RecurrenceRule), args.Error(1)
}

func (m *MockRecurrenceRepository) List(ctx context.Context, userID string) ([]model.RecurrenceRule, error) {
	return m.rules(m.Called(ctx, userID))
}

func (m *MockRecurrenceRepository) FindByID(ctx context.Context, userID, id string) (*model.RecurrenceRule, error) {
	return m.rule(m.Called(ctx, userID, id))
}

func (m *MockRecurrenceRepository) Create(ctx context.Context, r *model.RecurrenceRule) (*model.RecurrenceRule, error) {
	return m.rule(m.Called(ctx, r))
}

func (m *MockRecurrenceRepository) Update(ctx context.Context, r *model.RecurrenceRule) (*model.RecurrenceRule, error) {
	return m.rule(m.Called(ctx, r))
}

func (m *MockRecurrenceRepository) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockRecurrenceRepository) ListActive(ctx context.Context) ([]model.RecurrenceRule, error) {
	return m.rules(m.Called(ctx))
}

func (m *MockRecurrenceRepository) GenerateTask(ctx context.Context, ruleID string, t *model.Task, dayStart, generatedOn, now time.Time) (bool, error) {
	args := m.Called(ctx, ruleID, t, dayStart, generatedOn, now)
	return args.Bool(0), args.Error(1)
}
