package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskboard/internal/model"
	"taskboard/internal/repository"
	repoMocks "taskboard/internal/repository/mocks"
)

func TestStatsService_Overview(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockStatsRepository)
	defer repo.AssertExpectations(t)

	loc := time.FixedZone("UTC+1", 3600)
	svc := NewStatsService(repo, loc).(*statsService)
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	window := mock.MatchedBy(func(w repository.StatsWindow) bool {
		return w.WeekStart.Equal(now.AddDate(0, 0, -7)) &&
			w.MonthStart.Equal(now.AddDate(0, 0, -30)) &&
			w.DailyFrom.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, loc)) &&
			w.Timezone == "UTC+1"
	})
	repo.On("Counters", ctx, userID, (*string)(nil), window).Return(&model.TaskCounters{TotalOpen: 3}, nil)
	repo.On("ByPriority", ctx, userID, (*string)(nil)).Return([]model.PriorityCount{{Priority: 2, Count: 3}}, nil)
	repo.On("Daily", ctx, userID, (*string)(nil), window).Return([]model.DailyActivity{
		{Date: "2026-03-01", Created: 2},
		{Date: "2026-03-14", Completed: 1},
	}, nil)

	got, err := svc.Overview(ctx, userID, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, got.TotalOpen)
	require.Len(t, got.ByPriority, 5)
	assert.Equal(t, model.PriorityCount{Priority: 2, Count: 3}, got.ByPriority[2])
	assert.Zero(t, got.ByPriority[0].Count)

	require.Len(t, got.DailyData, 14)
	assert.Equal(t, model.DailyActivity{Date: "2026-03-01", Created: 2}, got.DailyData[0])
	assert.Equal(t, model.DailyActivity{Date: "2026-03-07"}, got.DailyData[6])
	assert.Equal(t, model.DailyActivity{Date: "2026-03-14", Completed: 1}, got.DailyData[13])
}
