package mocks

import (
	"context"

	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockRecurrenceService struct {
	mock.Mock
}

func (m *MockRecurrenceService) rule(args mock.Arguments) (*model.RecurrenceRule, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RecurrenceRule), args.Error(1)
}

func (m *MockRecurrenceService) List(ctx context.Context, userID string) ([]model.RecurrenceRule, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RecurrenceRule), args.Error(1)
}

func (m *MockRecurrenceService) Create(ctx context.Context, userID string, in service.RuleInput) (*model.RecurrenceRule, error) {
	return m.rule(m.Called(ctx, userID, in))
}

func (m *MockRecurrenceService) Update(ctx context.Context, userID, id string, in service.RuleInput) (*model.RecurrenceRule, error) {
	return m.rule(m.Called(ctx, userID, id, in))
}

func (m *MockRecurrenceService) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}
