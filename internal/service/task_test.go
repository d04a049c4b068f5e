package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskboard/internal/export"
	"taskboard/internal/model"
)

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to the inbox", func(t *testing.T) {
		r := newRepos(t)
		svc := r.taskService()
		r.tasks.On("Create", ctx, mock.MatchedBy(func(tk *model.Task) bool {
			return tk.Section != nil && *tk.Section == model.SectionInbox && tk.ProjectID == nil && tk.Tags != nil
		})).Return(&model.Task{ID: "t1"}, nil)

		got, err := svc.Create(ctx, userID, TaskCreate{Title: "Buy milk"})
		require.NoError(t, err)
		assert.Equal(t, "t1", got.ID)
	})

	t.Run("project section implies its project", func(t *testing.T) {
		r := newRepos(t)
		svc := r.taskService()
		r.sections.On("FindByID", ctx, userID, "s1").Return(&model.ProjectSection{ID: "s1", ProjectID: "p1"}, nil)
		r.projects.On("FindByID", ctx, userID, "p1").Return(&model.Project{ID: "p1"}, nil)
		r.tasks.On("Create", ctx, mock.MatchedBy(func(tk *model.Task) bool {
			return tk.Section == nil && tk.ProjectID != nil && *tk.ProjectID == "p1" && *tk.ProjectSectionID == "s1"
		})).Return(&model.Task{ID: "t1"}, nil)

		_, err := svc.Create(ctx, userID, TaskCreate{Title: "x", ProjectSectionID: ptr("s1")})
		assert.NoError(t, err)
	})

	t.Run("end before start", func(t *testing.T) {
		now := time.Now()
		_, err := newRepos(t).taskService().Create(ctx, userID, TaskCreate{
			Title: "x", StartDate: ptr(now), EndDate: ptr(now.Add(-time.Hour)),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestTaskService_Placement(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		dest    model.Placement
		setup   func(r *repos)
		wantErr error
	}{
		{
			name:    "unknown section name",
			dest:    model.Placement{Section: ptr("someday")},
			wantErr: ErrInvalidPlacement,
		},
		{
			name:    "inbox and project",
			dest:    model.Placement{Section: ptr(model.SectionInbox), ProjectID: ptr("p1")},
			wantErr: ErrInvalidPlacement,
		},
		{
			name: "section of another project",
			dest: model.Placement{ProjectID: ptr("p2"), ProjectSectionID: ptr("s1")},
			setup: func(r *repos) {
				r.sections.On("FindByID", ctx, userID, "s1").Return(&model.ProjectSection{ID: "s1", ProjectID: "p1"}, nil)
			},
			wantErr: ErrInvalidPlacement,
		},
		{
			name: "trashed project",
			dest: model.Placement{ProjectID: ptr("p1")},
			setup: func(r *repos) {
				r.projects.On("FindByID", ctx, userID, "p1").Return(&model.Project{ID: "p1", DeletedAt: ptr(time.Now())}, nil)
			},
			wantErr: ErrInvalidPlacement,
		},
		{
			name: "missing project",
			dest: model.Placement{ProjectID: ptr("p1")},
			setup: func(r *repos) {
				r.projects.On("FindByID", ctx, userID, "p1").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "column of another project",
			dest: model.Placement{ProjectID: ptr("p1"), BoardColumnID: ptr("c1")},
			setup: func(r *repos) {
				r.projects.On("FindByID", ctx, userID, "p1").Return(&model.Project{ID: "p1"}, nil)
				r.columns.On("FindByID", ctx, userID, "c1").Return(&model.BoardColumn{ID: "c1", ProjectID: ptr("p2")}, nil)
			},
			wantErr: ErrInvalidPlacement,
		},
		{
			name: "project column into the inbox",
			dest: model.Placement{BoardColumnID: ptr("c1")},
			setup: func(r *repos) {
				r.columns.On("FindByID", ctx, userID, "c1").Return(&model.BoardColumn{ID: "c1", ProjectID: ptr("p2")}, nil)
			},
			wantErr: ErrInvalidPlacement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRepos(t)
			if tt.setup != nil {
				tt.setup(r)
			}
			_, err := r.taskService().Move(ctx, userID, "t1", tt.dest, nil)
			assert.ErrorIs(t, err, tt.wantErr)
			r.tasks.AssertNotCalled(t, "Move", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestTaskService_Move(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	svc := r.taskService()

	index := 0
	inbox := model.SectionInbox
	r.columns.On("FindByID", ctx, userID, "c1").Return(&model.BoardColumn{ID: "c1", Section: &inbox}, nil)
	r.tasks.On("Move", ctx, userID, "t1", model.Placement{Section: &inbox, BoardColumnID: ptr("c1")}, &index).
		Return(&model.Task{ID: "t1", Position: 0}, nil)

	got, err := svc.Move(ctx, userID, "t1", model.Placement{BoardColumnID: ptr("c1")}, &index)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Position)

	_, err = svc.Move(ctx, userID, "t1", model.Placement{}, ptr(-1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTaskService_Update(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	svc := r.taskService()

	due := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	r.tasks.On("FindByID", ctx, userID, "t1").Return(&model.Task{
		ID: "t1", Title: "Old", Description: ptr("keep"), DueDate: &due,
	}, nil)
	r.tasks.On("Update", ctx, mock.MatchedBy(func(tk *model.Task) bool {
		return tk.Title == "New" && tk.DueDate == nil && tk.Description != nil && *tk.Description == "keep"
	})).Return(&model.Task{ID: "t1", Title: "New"}, nil)

	got, err := svc.Update(ctx, userID, "t1", TaskPatch{Title: ptr("New"), DueDate: Null[time.Time]()})
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
}

func TestTaskService_Complete(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)

	t.Run("stamps completion", func(t *testing.T) {
		r := newRepos(t)
		svc := r.taskService()
		svc.now = func() time.Time { return fixed }
		r.tasks.On("SetCompleted", ctx, userID, []string{"t1"}, &fixed, ptr("done")).Return(1, nil)
		r.tasks.On("FindByID", ctx, userID, "t1").Return(&model.Task{ID: "t1", CompletedAt: &fixed}, nil)

		got, err := svc.Complete(ctx, userID, "t1", ptr("done"))
		require.NoError(t, err)
		assert.Equal(t, fixed, *got.CompletedAt)
	})

	t.Run("missing task", func(t *testing.T) {
		r := newRepos(t)
		r.tasks.On("SetCompleted", ctx, userID, []string{"t1"}, (*time.Time)(nil), (*string)(nil)).Return(0, nil)

		_, err := r.taskService().Uncomplete(ctx, userID, "t1")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTaskService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("soft delete and restore", func(t *testing.T) {
		r := newRepos(t)
		svc := r.taskService()
		r.tasks.On("SoftDelete", ctx, userID, []string{"t1"}, mock.AnythingOfType("time.Time")).Return(1, nil)
		r.tasks.On("Restore", ctx, userID, "t1").Return(nil)

		assert.NoError(t, svc.SoftDelete(ctx, userID, "t1"))
		assert.NoError(t, svc.Restore(ctx, userID, "t1"))
	})

	t.Run("hard delete removes attachment objects", func(t *testing.T) {
		r := newRepos(t)
		svc := r.taskService()
		r.attachments.On("KeysByTasks", ctx, userID, []string{"t1"}).Return([]string{"u/t1/a.png"}, nil)
		r.tasks.On("Delete", ctx, userID, []string{"t1"}).Return(1, nil)
		r.store.On("Delete", ctx, "u/t1/a.png").Return(nil)

		assert.NoError(t, svc.HardDelete(ctx, userID, "t1"))
	})

	t.Run("hard delete of a missing task keeps objects", func(t *testing.T) {
		r := newRepos(t)
		svc := r.taskService()
		r.attachments.On("KeysByTasks", ctx, userID, []string{"t1"}).Return([]string{"u/t1/a.png"}, nil)
		r.tasks.On("Delete", ctx, userID, []string{"t1"}).Return(0, nil)

		assert.ErrorIs(t, svc.HardDelete(ctx, userID, "t1"), ErrNotFound)
		r.store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestTaskService_Bulk(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	svc := r.taskService()

	n, err := svc.BulkComplete(ctx, userID, nil)
	assert.NoError(t, err)
	assert.Zero(t, n)

	r.projects.On("FindByID", ctx, userID, "p1").Return(&model.Project{ID: "p1"}, nil)
	r.tasks.On("MoveMany", ctx, userID, []string{"a", "b"}, model.Placement{ProjectID: ptr("p1")}).Return(2, nil)
	n, err = svc.BulkMove(ctx, userID, []string{"a", "b"}, model.Placement{ProjectID: ptr("p1")})
	assert.NoError(t, err)
	assert.Equal(t, 2, n)

	r.tasks.On("SoftDelete", ctx, userID, []string{"a"}, mock.AnythingOfType("time.Time")).Return(1, nil)
	n, err = svc.BulkDelete(ctx, userID, []string{"a"})
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestTaskService_List(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	svc := r.taskService()
	svc.loc = time.FixedZone("UTC+2", 2*3600)
	svc.now = func() time.Time { return time.Date(2026, 3, 3, 23, 30, 0, 0, time.UTC) }

	r.tasks.On("List", ctx, userID, mock.MatchedBy(func(f model.TaskFilter) bool {
		return f.Today &&
			f.DayStart.Equal(time.Date(2026, 3, 4, 0, 0, 0, 0, svc.loc)) &&
			f.DayEnd.Equal(time.Date(2026, 3, 5, 0, 0, 0, 0, svc.loc))
	})).Return([]model.Task{{ID: "t1"}}, nil)

	got, err := svc.List(ctx, userID, TaskQuery{Today: true})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestTaskService_Get(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	svc := r.taskService()

	r.tasks.On("FindByID", ctx, userID, "t1").Return(&model.Task{ID: "t1", RecurrenceRuleID: ptr("r1")}, nil)
	r.attachments.On("ListByTask", ctx, "t1").Return([]model.Attachment{{ID: "a1"}}, nil)
	r.rules.On("FindByID", ctx, userID, "r1").Return(nil, sql.ErrNoRows)

	got, err := svc.Get(ctx, userID, "t1")
	require.NoError(t, err)
	assert.Len(t, got.Attachments, 1)
	assert.Nil(t, got.RecurrenceRule)
}

func TestTaskService_Export(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	svc := r.taskService()
	r.tasks.On("List", ctx, userID, mock.AnythingOfType("model.TaskFilter")).Return([]model.Task{{Title: "Write report"}}, nil)

	out, err := svc.Export(ctx, userID, TaskQuery{}, export.FormatText)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Write report")

	_, err = svc.Export(ctx, userID, TaskQuery{}, "pdf")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTaskService_Calendar(t *testing.T) {
	now := time.Now()
	_, err := newRepos(t).taskService().Calendar(context.Background(), userID, now, now)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
