package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER
// TABLE "duplicate column name" errors from re-runs are tolerated.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS user_profile (
		id               TEXT PRIMARY KEY DEFAULT 'default',
		name             TEXT NOT NULL DEFAULT '',
		xp               INTEGER NOT NULL DEFAULT 0 CHECK(xp >= 0),
		streak           INTEGER NOT NULL DEFAULT 0,
		level            INTEGER NOT NULL DEFAULT 1,
		badges           TEXT NOT NULL DEFAULT '',
		recovery_needed  INTEGER NOT NULL DEFAULT 0,
		total_focus_min  INTEGER NOT NULL DEFAULT 0,
		theme            TEXT NOT NULL DEFAULT 'emerald'
		                 CHECK(theme IN ('emerald','violet','steel')),
		last_active      TEXT
	)`,

	`INSERT OR IGNORE INTO user_profile (id) VALUES ('default')`,

	`CREATE TABLE IF NOT EXISTS goals (
		id               TEXT PRIMARY KEY,
		title            TEXT NOT NULL,
		category         TEXT NOT NULL DEFAULT '',
		topic            TEXT NOT NULL DEFAULT '',
		notes            TEXT NOT NULL DEFAULT '',
		status           TEXT NOT NULL DEFAULT 'active'
		                 CHECK(status IN ('active','completed')),
		checkpoint_index INTEGER NOT NULL DEFAULT 0,
		created_at       TEXT NOT NULL,
		finished_at      TEXT,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_goals_status ON goals(status)`,

	`CREATE TABLE IF NOT EXISTS sub_tasks (
		id               TEXT PRIMARY KEY,
		goal_id          TEXT NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
		order_index      INTEGER NOT NULL DEFAULT 0,
		title            TEXT NOT NULL,
		description      TEXT NOT NULL DEFAULT '',
		explanation      TEXT NOT NULL DEFAULT '',
		duration_sec     INTEGER NOT NULL DEFAULT 0,
		time_left_sec    INTEGER NOT NULL DEFAULT 0,
		timer_started_at TEXT,
		status           TEXT NOT NULL DEFAULT 'pending'
		                 CHECK(status IN ('pending','active','completed','failed')),
		reset_mode       TEXT NOT NULL DEFAULT 'manual'
		                 CHECK(reset_mode IN ('manual','auto','daily')),
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sub_tasks_goal ON sub_tasks(goal_id)`,

	`CREATE TABLE IF NOT EXISTS timetable_slots (
		id            TEXT PRIMARY KEY,
		start_min     INTEGER NOT NULL CHECK(start_min BETWEEN 0 AND 1439),
		end_min       INTEGER NOT NULL CHECK(end_min BETWEEN 0 AND 1440),
		task_name     TEXT NOT NULL,
		completed     INTEGER NOT NULL DEFAULT 0,
		xp_deducted   INTEGER NOT NULL DEFAULT 0,
		reminder_sent INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS quest_records (
		id                   TEXT PRIMARY KEY,
		task_name            TEXT NOT NULL,
		timestamp            TEXT NOT NULL,
		planned_duration_min INTEGER NOT NULL DEFAULT 0,
		outcome              TEXT NOT NULL
		                     CHECK(outcome IN ('completed','failed','missed','late')),
		xp_change            INTEGER NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_quest_records_timestamp ON quest_records(timestamp)`,
}
