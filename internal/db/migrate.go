package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations is the ordered schema statement list. Statements are written
// to be re-runnable: CREATE TABLE IF NOT EXISTS plus tolerated duplicate
// ALTER TABLE columns.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id                 TEXT PRIMARY KEY,
		title              TEXT NOT NULL,
		status             TEXT NOT NULL DEFAULT 'open'
		                   CHECK(status IN ('open','done','archived')),
		estimated_min      INTEGER NOT NULL,
		optimistic_min     INTEGER,
		pessimistic_min    INTEGER,
		uncertainty_weight INTEGER NOT NULL DEFAULT 3,
		deadline           TEXT,
		planned_start_at   TEXT,
		actual_total_min   INTEGER NOT NULL DEFAULT 0,

		pace7d             REAL NOT NULL DEFAULT 0,
		pace_exp           REAL NOT NULL DEFAULT 0,
		required_pace      REAL NOT NULL DEFAULT 0,
		required_pace_adj  REAL NOT NULL DEFAULT 0,
		spi                REAL NOT NULL DEFAULT 0,
		spi_exp            REAL NOT NULL DEFAULT 0,
		spi_adj            REAL NOT NULL DEFAULT 0,
		eac_date           TEXT,
		risk_level         TEXT NOT NULL DEFAULT ''
		                   CHECK(risk_level IN ('','ok','warn','late')),
		ideal_progress     REAL NOT NULL DEFAULT 0,
		actual_progress    REAL NOT NULL DEFAULT 0,

		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS day_logs (
		task_id  TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		day      TEXT NOT NULL,
		minutes  INTEGER NOT NULL DEFAULT 0 CHECK(minutes >= 0),
		PRIMARY KEY (task_id, day)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_day_logs_day ON day_logs(day)`,

	`CREATE TABLE IF NOT EXISTS daily_plans (
		day                TEXT PRIMARY KEY,
		cap_min            INTEGER,
		total_planned_min  INTEGER NOT NULL DEFAULT 0,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS plan_items (
		plan_day     TEXT NOT NULL REFERENCES daily_plans(day) ON DELETE CASCADE,
		position     INTEGER NOT NULL,
		task_id      TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		title        TEXT NOT NULL DEFAULT '',
		planned_min  INTEGER NOT NULL,
		required_min INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (plan_day, position)
	)`,

	`CREATE TABLE IF NOT EXISTS plan_revisions (
		id          TEXT PRIMARY KEY,
		plan_day    TEXT NOT NULL,
		before_json TEXT NOT NULL,
		after_json  TEXT NOT NULL,
		changed_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_revisions_day ON plan_revisions(plan_day)`,

	`CREATE TABLE IF NOT EXISTS settings (
		id                         TEXT PRIMARY KEY CHECK(id = 'default'),
		daily_cap_min              INTEGER NOT NULL,
		alpha                      REAL NOT NULL,
		relax_factor               REAL NOT NULL,
		spi_warn_threshold         REAL NOT NULL,
		default_uncertainty_weight INTEGER NOT NULL,
		timezone                   TEXT NOT NULL,
		notify_start               TEXT NOT NULL,
		notify_end                 TEXT NOT NULL,
		work_start                 TEXT NOT NULL,
		work_end                   TEXT NOT NULL
	)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE statements re-run on every start; duplicate
			// columns are expected, not failures.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
