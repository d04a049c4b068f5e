package service

import (
	"context"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/recurrence"
	"taskboard/internal/repository"
)

// Rolling windows of the statistics overview, in days.
const (
	statsWeekDays   = 7
	statsMonthDays  = 30
	statsSeriesDays = 14
)

// StatsService defines the statistics use cases.
type StatsService interface {
	// Overview returns counters for all of the user's tasks, or for one project.
	Overview(ctx context.Context, userID string, projectID *string) (*model.StatsOverview, error)
}

type statsService struct {
	repo repository.StatsRepository
	loc  *time.Location
	now  func() time.Time
}

// NewStatsService constructs a new StatsService. The daily series is bucketed
// by calendar days in loc.
func NewStatsService(repo repository.StatsRepository, loc *time.Location) StatsService {
	if loc == nil {
		loc = time.UTC
	}
	return &statsService{repo: repo, loc: loc, now: time.Now}
}

func (s *statsService) Overview(ctx context.Context, userID string, projectID *string) (*model.StatsOverview, error) {
	now := s.now()
	today := recurrence.DayStart(now, s.loc)
	w := repository.StatsWindow{
		WeekStart:  now.AddDate(0, 0, -statsWeekDays),
		MonthStart: now.AddDate(0, 0, -statsMonthDays),
		DailyFrom:  today.AddDate(0, 0, -(statsSeriesDays - 1)),
		Timezone:   s.loc.String(),
	}

	counters, err := s.repo.Counters(ctx, userID, projectID, w)
	if err != nil {
		return nil, err
	}
	byPriority, err := s.repo.ByPriority(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	daily, err := s.repo.Daily(ctx, userID, projectID, w)
	if err != nil {
		return nil, err
	}

	return &model.StatsOverview{
		TaskCounters: *counters,
		ByPriority:   fillPriorities(byPriority),
		DailyData:    fillDays(daily, w.DailyFrom, statsSeriesDays),
	}, nil
}

// fillPriorities returns one entry per priority level, zero when absent.
func fillPriorities(in []model.PriorityCount) []model.PriorityCount {
	out := make([]model.PriorityCount, 0, model.PriorityMax-model.PriorityMin+1)
	for p := model.PriorityMin; p <= model.PriorityMax; p++ {
		pc := model.PriorityCount{Priority: p}
		for _, c := range in {
			if c.Priority == p {
				pc.Count = c.Count
			}
		}
		out = append(out, pc)
	}
	return out
}

// fillDays returns n consecutive days starting at from, zero-filled.
func fillDays(in []model.DailyActivity, from time.Time, n int) []model.DailyActivity {
	byDate := make(map[string]model.DailyActivity, len(in))
	for _, d := range in {
		byDate[d.Date] = d
	}
	out := make([]model.DailyActivity, 0, n)
	for i := 0; i < n; i++ {
		date := from.AddDate(0, 0, i).Format(time.DateOnly)
		d, ok := byDate[date]
		if !ok {
			d = model.DailyActivity{Date: date}
		}
		out = append(out, d)
	}
	return out
}
