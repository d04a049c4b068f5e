package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_projects",
		SQL: `CREATE TABLE IF NOT EXISTS projects (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  user_id     TEXT        NOT NULL,
  name        TEXT        NOT NULL,
  description TEXT,
  color       TEXT        NOT NULL DEFAULT '#6366f1',
  position    INTEGER     NOT NULL DEFAULT 0,
  archived    BOOLEAN     NOT NULL DEFAULT false,
  deleted_at  TIMESTAMPTZ,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_board_columns",
		SQL: `CREATE TABLE IF NOT EXISTS board_columns (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  user_id    TEXT        NOT NULL,
  project_id UUID        REFERENCES projects (id) ON DELETE CASCADE,
  section    TEXT,
  name       TEXT        NOT NULL,
  color      TEXT,
  position   INTEGER     NOT NULL DEFAULT 0,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_project_sections",
		SQL: `CREATE TABLE IF NOT EXISTS project_sections (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  project_id UUID        NOT NULL REFERENCES projects (id) ON DELETE CASCADE,
  name       TEXT        NOT NULL,
  position   INTEGER     NOT NULL DEFAULT 0,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_recurrence_rules",
		SQL: `CREATE TABLE IF NOT EXISTS recurrence_rules (
  id                UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  user_id           TEXT        NOT NULL,
  frequency         TEXT        NOT NULL CHECK (frequency IN ('daily', 'weekly', 'monthly', 'custom')),
  "interval"        INTEGER     NOT NULL DEFAULT 1 CHECK ("interval" >= 1),
  days_of_week      INTEGER[]   NOT NULL DEFAULT '{}',
  day_of_month      INTEGER     CHECK (day_of_month BETWEEN 1 AND 31),
  title             TEXT        NOT NULL,
  description       TEXT,
  priority          INTEGER     NOT NULL DEFAULT 0,
  tags              TEXT[]      NOT NULL DEFAULT '{}',
  section           TEXT,
  project_id        UUID        REFERENCES projects (id) ON DELETE SET NULL,
  timezone          TEXT        NOT NULL DEFAULT 'Europe/Amsterdam',
  last_generated_at TIMESTAMPTZ,
  active            BOOLEAN     NOT NULL DEFAULT true,
  created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_tasks",
		SQL: `CREATE TABLE IF NOT EXISTS tasks (
  id                      UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  user_id                 TEXT        NOT NULL,
  title                   TEXT        NOT NULL,
  description             TEXT,
  priority                INTEGER     NOT NULL DEFAULT 0 CHECK (priority BETWEEN 0 AND 4),
  tags                    TEXT[]      NOT NULL DEFAULT '{}',
  section                 TEXT,
  project_id              UUID        REFERENCES projects (id) ON DELETE SET NULL,
  project_section_id      UUID        REFERENCES project_sections (id) ON DELETE SET NULL,
  board_column_id         UUID        REFERENCES board_columns (id) ON DELETE SET NULL,
  due_date                TIMESTAMPTZ,
  start_date              TIMESTAMPTZ,
  end_date                TIMESTAMPTZ,
  position                INTEGER     NOT NULL DEFAULT 0,
  completed_at            TIMESTAMPTZ,
  completion_note         TEXT,
  deleted_at              TIMESTAMPTZ,
  deleted_from_project_id UUID,
  recurrence_rule_id      UUID        REFERENCES recurrence_rules (id) ON DELETE SET NULL,
  generated_on            DATE,
  created_at              TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at              TIMESTAMPTZ NOT NULL DEFAULT now(),
  CHECK (section IS NULL OR project_id IS NULL)
);`,
	},
	{
		Name: "create_index_tasks_list",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_tasks_list ON tasks (user_id, project_id, section, project_section_id, board_column_id, position);`,
	},
	{
		Name: "create_index_tasks_deleted_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_tasks_deleted_at ON tasks (deleted_at) WHERE deleted_at IS NOT NULL;`,
	},
	{
		Name: "create_unique_index_tasks_generated",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS uq_tasks_rule_generated_on ON tasks (recurrence_rule_id, generated_on) WHERE recurrence_rule_id IS NOT NULL AND generated_on IS NOT NULL;`,
	},
	{
		Name: "create_table_attachments",
		SQL: `CREATE TABLE IF NOT EXISTS attachments (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  task_id    UUID        NOT NULL REFERENCES tasks (id) ON DELETE CASCADE,
  filename   TEXT        NOT NULL,
  mime_type  TEXT,
  size       BIGINT      CHECK (size IS NULL OR size >= 0),
  s3_key     TEXT        NOT NULL UNIQUE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_attachments_task_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_attachments_task_id ON attachments (task_id);`,
	},
	{
		Name: "create_table_view_preferences",
		SQL: `CREATE TABLE IF NOT EXISTS view_preferences (
  id         UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
  user_id    TEXT NOT NULL,
  section    TEXT,
  project_id UUID REFERENCES projects (id) ON DELETE CASCADE,
  view_mode  TEXT NOT NULL CHECK (view_mode IN ('list', 'kanban'))
);`,
	},
	{
		Name: "create_unique_index_view_preferences",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS uq_view_preferences_target ON view_preferences (user_id, COALESCE(section, ''), COALESCE(project_id::text, ''));`,
	},
}

const createLedger = `CREATE TABLE IF NOT EXISTS schema_migrations (
  name       TEXT        PRIMARY KEY,
  applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// EnsureMigrated applies every step that is not yet recorded in schema_migrations.
// Each step runs at most once; a failed step aborts the run and is retried next start.
func EnsureMigrated(ctx context.Context, db *sql.DB, log logrus.FieldLogger, dbHost string) error {
	start := time.Now()
	log = log.WithFields(logrus.Fields{"component": "database", "db_host": dbHost})

	log.WithField("event", "db_migration_check").Info("checking schema")

	if _, err := db.ExecContext(ctx, createLedger); err != nil {
		log.WithFields(logrus.Fields{
			"event":       "db_migration_failed",
			"duration_ms": time.Since(start).Milliseconds(),
		}).WithError(err).Error("failed to create migration ledger")
		return fmt.Errorf("create migration ledger: %w", err)
	}

	applied, err := appliedSteps(ctx, db)
	if err != nil {
		log.WithField("event", "db_migration_failed").WithError(err).Error("failed to read migration ledger")
		return fmt.Errorf("read migration ledger: %w", err)
	}

	pending := 0
	for _, step := range steps {
		if applied[step.Name] {
			continue
		}
		pending++
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.WithFields(logrus.Fields{
				"event":            "db_migration_failed",
				"migration_step":   step.Name,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			}).WithError(err).Error("migration step failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		if _, err := db.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, step.Name); err != nil {
			return fmt.Errorf("record migration step %s: %w", step.Name, err)
		}
		log.WithFields(logrus.Fields{
			"event":            "db_migration_step",
			"migration_step":   step.Name,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		}).Info("migration step applied")
	}

	if pending == 0 {
		log.WithFields(logrus.Fields{
			"event":       "db_migration_skip",
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("schema up to date, skipping migration")
		return nil
	}

	log.WithFields(logrus.Fields{
		"event":       "db_migration_success",
		"applied":     pending,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("schema migrated")
	return nil
}

func appliedSteps(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT name FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out[name] = true
	}
	return out, rows.Err()
}
