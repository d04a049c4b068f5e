package mocks

import (
	"context"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) Counters(ctx context.Context, userID string, projectID *string, w repository.StatsWindow) (*model.TaskCounters, error) {
	args := m.Called(ctx, userID, projectID, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaskCounters), args.Error(1)
}

func (m *MockStatsRepository) ByPriority(ctx context.Context, userID string, projectID *string) ([]model.PriorityCount, error) {
	args := m.Called(ctx, userID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PriorityCount), args.Error(1)
}

func (m *MockStatsRepository) Daily(ctx context.Context, userID string, projectID *string, w repository.StatsWindow) ([]model.DailyActivity, error) {
	args := m.Called(ctx, userID, projectID, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DailyActivity), args.Error(1)
}
