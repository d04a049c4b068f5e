package mocks

import (
	"context"

	"taskboard/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) Overview(ctx context.Context, userID string, projectID *string) (*model.StatsOverview, error) {
	args := m.Called(ctx, userID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StatsOverview), args.Error(1)
}
