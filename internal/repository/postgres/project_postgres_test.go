package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/model"
	"taskboard/internal/ordering"
)

var projectCols = []string{"id", "user_id", "name", "description", "color", "position", "archived", "deleted_at", "created_at", "updated_at"}

func TestProjectPostgres_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProjectPostgres(db)
	now := time.Now()

	rows := sqlmock.NewRows(append(projectCols, "open")).
		AddRow("p1", "u1", "Work", nil, "#6366f1", 0, false, nil, now, now, 3).
		AddRow("p2", "u1", "Home", "chores", "#ff0000", 1, false, nil, now, now, 0)
	mock.ExpectQuery("SELECT (.+) FROM projects p WHERE p.user_id = \\$1 AND p.deleted_at IS NULL").
		WithArgs("u1").
		WillReturnRows(rows)

	items, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[0].OpenTaskCount)
	assert.Nil(t, items[0].Description)
	assert.Equal(t, "chores", *items[1].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectPostgres_FindByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProjectPostgres(db)

	mock.ExpectQuery("FROM projects p WHERE p.id = \\$1 AND p.user_id = \\$2").
		WithArgs("missing", "u1").
		WillReturnError(sql.ErrNoRows)

	p, err := repo.FindByID(context.Background(), "u1", "missing")
	assert.Nil(t, p)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectPostgres_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProjectPostgres(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO projects").
		WithArgs("u1", "Work", nil, "#6366f1").
		WillReturnRows(sqlmock.NewRows(projectCols).AddRow("p1", "u1", "Work", nil, "#6366f1", 2, false, nil, now, now))
	for i, c := range model.DefaultColumns {
		mock.ExpectQuery("INSERT INTO board_columns").
			WithArgs("u1", "p1", c.Name, c.Color).
			WillReturnRows(sqlmock.NewRows(columnCols).AddRow("c"+c.Name, "u1", "p1", nil, c.Name, c.Color, i, now))
	}
	mock.ExpectCommit()

	p, err := repo.Create(context.Background(), &model.Project{UserID: "u1", Name: "Work", Color: "#6366f1"}, model.DefaultColumns)
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, 2, p.Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectPostgres_SoftDelete(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

	t.Run("trashes project and tags live tasks", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewProjectPostgres(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE projects SET deleted_at = \\$3").
			WithArgs("p1", "u1", now).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE tasks SET deleted_at = \\$3, deleted_from_project_id = \\$1(.+)WHERE project_id = \\$1 AND user_id = \\$2 AND deleted_at IS NULL").
			WithArgs("p1", "u1", now).
			WillReturnResult(sqlmock.NewResult(0, 4))
		mock.ExpectCommit()

		assert.NoError(t, repo.SoftDelete(ctx, "u1", "p1", now))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing project rolls back", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewProjectPostgres(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE projects SET deleted_at").
			WithArgs("p1", "u1", now).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.SoftDelete(ctx, "u1", "p1", now), sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProjectPostgres_Restore(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProjectPostgres(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE projects SET deleted_at = NULL").
		WithArgs("p1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("UPDATE tasks SET deleted_at = NULL, deleted_from_project_id = NULL(.+)WHERE deleted_from_project_id = \\$1 AND user_id = \\$2 RETURNING id").
		WithArgs("p1", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("t1").AddRow("t2"))
	mock.ExpectExec(appendExpectation).
		WithArgs(`["t1","t2"]`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	assert.NoError(t, repo.Restore(context.Background(), "u1", "p1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectPostgres_HardDelete(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

	t.Run("trash tasks detaches instead of deleting", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewProjectPostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT true FROM projects WHERE id = \\$1 AND user_id = \\$2 FOR UPDATE").
			WithArgs("p1", "u1").
			WillReturnRows(sqlmock.NewRows([]string{"bool"}).AddRow(true))
		mock.ExpectExec("UPDATE tasks SET section = 'inbox', project_id = NULL, project_section_id = NULL, board_column_id = NULL, deleted_from_project_id = NULL, deleted_at = COALESCE\\(deleted_at, \\$3\\)").
			WithArgs("p1", "u1", now).
			WillReturnResult(sqlmock.NewResult(0, 5))
		mock.ExpectExec("DELETE FROM projects WHERE id = \\$1 AND user_id = \\$2").
			WithArgs("p1", "u1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.HardDelete(ctx, "u1", "p1", model.HardDeleteTrashTasks, now))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete all removes tasks", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewProjectPostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT true FROM projects").
			WithArgs("p1", "u1").
			WillReturnRows(sqlmock.NewRows([]string{"bool"}).AddRow(true))
		mock.ExpectExec("DELETE FROM tasks WHERE user_id = \\$2").
			WithArgs("p1", "u1").
			WillReturnResult(sqlmock.NewResult(0, 5))
		mock.ExpectExec("DELETE FROM projects").
			WithArgs("p1", "u1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.HardDelete(ctx, "u1", "p1", model.HardDeleteAll, now))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown mode", func(t *testing.T) {
		db, _ := newMock(t)
		repo := NewProjectPostgres(db)
		assert.ErrorContains(t, repo.HardDelete(ctx, "u1", "p1", "SHRED", now), "unknown hard delete mode")
	})

	t.Run("missing project", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewProjectPostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT true FROM projects").WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.HardDelete(ctx, "u1", "p1", model.HardDeleteTrashTasks, now), sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProjectPostgres_Reorder(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns dense positions", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewProjectPostgres(db)

		mock.ExpectBegin()
		for i, id := range []string{"c", "a", "b"} {
			mock.ExpectExec("UPDATE projects SET position = \\$1 WHERE id = \\$2 AND user_id = \\$3").
				WithArgs(i, id, "u1").
				WillReturnResult(sqlmock.NewResult(0, 1))
		}
		mock.ExpectCommit()

		assert.NoError(t, repo.Reorder(ctx, "u1", []string{"c", "a", "b"}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown id rolls back", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewProjectPostgres(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE projects SET position").WithArgs(0, "a", "u1").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE projects SET position").WithArgs(1, "ghost", "u1").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.Reorder(ctx, "u1", []string{"a", "ghost"}), sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate ids never reach the database", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewProjectPostgres(db)

		err := repo.Reorder(ctx, "u1", []string{"a", "a"})
		assert.True(t, errors.Is(err, ordering.ErrDuplicateID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
