package migration

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/logger"
)

func TestEnsureMigrated(t *testing.T) {
	ctx := context.Background()
	log := logger.NewWithWriter(&bytes.Buffer{}, "error", nil)

	t.Run("fresh database applies every step", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT name FROM schema_migrations").WillReturnRows(sqlmock.NewRows([]string{"name"}))
		for _, step := range steps {
			mock.ExpectExec(".+").WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectExec("INSERT INTO schema_migrations").WithArgs(step.Name).WillReturnResult(sqlmock.NewResult(0, 1))
		}

		assert.NoError(t, EnsureMigrated(ctx, db, log, "localhost"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fully migrated database is skipped", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows([]string{"name"})
		for _, step := range steps {
			rows.AddRow(step.Name)
		}
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT name FROM schema_migrations").WillReturnRows(rows)

		assert.NoError(t, EnsureMigrated(ctx, db, log, "localhost"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failing step aborts", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT name FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow(steps[0].Name))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS projects").WillReturnError(errors.New("permission denied"))

		err = EnsureMigrated(ctx, db, log, "localhost")
		assert.ErrorContains(t, err, "migration step create_table_projects failed")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
