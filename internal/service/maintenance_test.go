package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskboard/internal/lock"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

func newMaintenance(t *testing.T, r *repos, locker lock.Locker) (*maintenanceService, *JobMetrics) {
	metrics, err := NewJobMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	svc := NewMaintenanceService(r.tasks, r.rules, r.store, locker, metrics, quietLog(), MaintenanceConfig{
		TrashRetentionDays: 7,
		Location:           time.UTC,
	}).(*maintenanceService)
	return svc, metrics
}

func TestMaintenance_PurgeTrash(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	svc, metrics := newMaintenance(t, r, nil)
	now := time.Date(2026, 3, 14, 3, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	r.tasks.On("PurgeTrashed", mock.Anything, now.AddDate(0, 0, -7)).
		Return(&repository.PurgeResult{Deleted: 2, AttachmentKeys: []string{"k1"}}, nil)
	r.store.On("Delete", mock.Anything, "k1").Return(nil)

	n, err := svc.PurgeTrash(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.runs.WithLabelValues(JobCleanup, "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.items.WithLabelValues(JobCleanup)))
}

func TestMaintenance_GenerateRecurring(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)

	t.Run("second run on the same day creates nothing", func(t *testing.T) {
		r := newRepos(t)
		svc, _ := newMaintenance(t, r, nil)
		svc.now = func() time.Time { return now }

		rule := model.RecurrenceRule{ID: "r1", UserID: userID, Frequency: model.FrequencyDaily, Interval: 1, Title: "Water plants", Timezone: "UTC", Active: true}
		r.rules.On("ListActive", mock.Anything).Return([]model.RecurrenceRule{rule}, nil).Twice()

		dayStart := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
		inInbox := mock.MatchedBy(func(tk *model.Task) bool {
			return tk.Title == "Water plants" && tk.Section != nil && *tk.Section == model.SectionInbox &&
				tk.DueDate != nil && tk.DueDate.Equal(now)
		})
		r.rules.On("GenerateTask", mock.Anything, "r1", inInbox, dayStart, dayStart, now).Return(true, nil).Once()
		r.rules.On("GenerateTask", mock.Anything, "r1", inInbox, dayStart, dayStart, now).Return(false, nil).Once()

		first, err := svc.GenerateRecurring(ctx)
		require.NoError(t, err)
		second, err := svc.GenerateRecurring(ctx)
		require.NoError(t, err)

		assert.Equal(t, 1, first)
		assert.Equal(t, 0, second)
	})

	t.Run("rules that are not due are skipped", func(t *testing.T) {
		r := newRepos(t)
		svc, _ := newMaintenance(t, r, nil)
		svc.now = func() time.Time { return now }

		// 2026-03-14 is a Saturday.
		weekly := model.RecurrenceRule{ID: "r1", Frequency: model.FrequencyWeekly, Interval: 1, DaysOfWeek: []int{1, 3}, Timezone: "UTC"}
		r.rules.On("ListActive", mock.Anything).Return([]model.RecurrenceRule{weekly}, nil)

		n, err := svc.GenerateRecurring(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("a failing rule does not stop the pass", func(t *testing.T) {
		r := newRepos(t)
		svc, _ := newMaintenance(t, r, nil)
		svc.now = func() time.Time { return now }

		rules := []model.RecurrenceRule{
			{ID: "bad", Frequency: model.FrequencyDaily, Interval: 1, Timezone: "UTC"},
			{ID: "good", Frequency: model.FrequencyDaily, Interval: 1, Timezone: "UTC", ProjectID: ptr("p1")},
		}
		r.rules.On("ListActive", mock.Anything).Return(rules, nil)
		r.rules.On("GenerateTask", mock.Anything, "bad", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, errors.New("boom"))
		r.rules.On("GenerateTask", mock.Anything, "good", mock.MatchedBy(func(tk *model.Task) bool {
			return tk.Section == nil && tk.ProjectID != nil && *tk.ProjectID == "p1"
		}), mock.Anything, mock.Anything, mock.Anything).Return(true, nil)

		n, err := svc.GenerateRecurring(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("rule on a trashed project generates into the inbox", func(t *testing.T) {
		r := newRepos(t)
		svc, _ := newMaintenance(t, r, nil)
		svc.now = func() time.Time { return now }

		rule := model.RecurrenceRule{ID: "r1", UserID: userID, Frequency: model.FrequencyDaily, Interval: 1,
			Title: "Review", Timezone: "UTC", Active: true, ProjectID: ptr("p1"), ProjectTrashed: true}
		r.rules.On("ListActive", mock.Anything).Return([]model.RecurrenceRule{rule}, nil)
		r.rules.On("GenerateTask", mock.Anything, "r1", mock.MatchedBy(func(tk *model.Task) bool {
			return tk.ProjectID == nil && tk.Section != nil && *tk.Section == model.SectionInbox
		}), mock.Anything, mock.Anything, mock.Anything).Return(true, nil)

		n, err := svc.GenerateRecurring(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestMaintenance_ArchiveCompleted(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	svc, _ := newMaintenance(t, r, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 0, 15, 0, 0, time.UTC) }

	r.tasks.On("ArchiveCompleted", mock.Anything, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)).Return(4, nil)

	n, err := svc.ArchiveCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestMaintenance_Locking(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	locker := lock.NewRedisLocker(client)

	t.Run("held lock skips the run", func(t *testing.T) {
		r := newRepos(t)
		svc, metrics := newMaintenance(t, r, locker)

		release, err := locker.Acquire(ctx, JobArchive, time.Minute)
		require.NoError(t, err)
		defer release(ctx)

		n, err := svc.ArchiveCompleted(ctx)
		assert.NoError(t, err)
		assert.Zero(t, n)
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.runs.WithLabelValues(JobArchive, "skipped")))
		r.tasks.AssertNotCalled(t, "ArchiveCompleted", mock.Anything, mock.Anything)
	})

	t.Run("lock is released after the run", func(t *testing.T) {
		r := newRepos(t)
		svc, _ := newMaintenance(t, r, locker)
		r.tasks.On("ArchiveCompleted", mock.Anything, mock.Anything).Return(0, errors.New("db down")).Once()

		_, err := svc.ArchiveCompleted(ctx)
		assert.Error(t, err)
		assert.False(t, mr.Exists("taskboard:lock:"+JobArchive))
	})
}
