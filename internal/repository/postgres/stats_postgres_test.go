package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/repository"
)

func TestStatsPostgres(t *testing.T) {
	db, mock := newMock(t)
	repo := NewStatsPostgres(db)
	ctx := context.Background()
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	w := repository.StatsWindow{
		WeekStart:  now.AddDate(0, 0, -7),
		MonthStart: now.AddDate(0, 0, -30),
		DailyFrom:  now.AddDate(0, 0, -13),
		Timezone:   "UTC",
	}

	mock.ExpectQuery("COUNT\\(\\*\\) FILTER").
		WithArgs("u1", nil, w.WeekStart, w.MonthStart).
		WillReturnRows(sqlmock.NewRows([]string{"a", "b", "c", "d", "e", "f", "g"}).AddRow(5, 9, 3, 2, 8, 7, 1))
	c, err := repo.Counters(ctx, "u1", nil, w)
	require.NoError(t, err)
	assert.Equal(t, 5, c.TotalOpen)
	assert.Equal(t, 1, c.TotalDeleted)

	mock.ExpectQuery("GROUP BY t.priority").
		WithArgs("u1", nil).
		WillReturnRows(sqlmock.NewRows([]string{"priority", "count"}).AddRow(0, 2).AddRow(3, 3))
	pc, err := repo.ByPriority(ctx, "u1", nil)
	require.NoError(t, err)
	assert.Len(t, pc, 2)

	mock.ExpectQuery("WITH events AS").
		WithArgs("u1", nil, w.DailyFrom, "UTC").
		WillReturnRows(sqlmock.NewRows([]string{"day", "created", "completed"}).AddRow("2026-10-16", 2, 1))
	daily, err := repo.Daily(ctx, "u1", nil, w)
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, "2026-10-16", daily[0].Date)

	assert.NoError(t, mock.ExpectationsWereMet())
}
