package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/innerpath-app/innerpath/internal/db"
	"github.com/innerpath-app/innerpath/internal/domain"
)

// recordColumns is the canonical SELECT column list for quest_records.
const recordColumns = `id, task_name, timestamp, planned_duration_min, outcome, xp_change`

// SQLiteRecordRepo implements RecordRepo using a SQLite database.
// Records are append-only; there is no update or delete.
type SQLiteRecordRepo struct {
	db db.DBTX
}

// NewSQLiteRecordRepo creates a new SQLiteRecordRepo.
func NewSQLiteRecordRepo(conn db.DBTX) *SQLiteRecordRepo {
	return &SQLiteRecordRepo{db: conn}
}

func (r *SQLiteRecordRepo) Create(ctx context.Context, rec *domain.QuestRecord) error {
	query := `INSERT INTO quest_records (id, task_name, timestamp, planned_duration_min,
		outcome, xp_change)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.TaskName,
		rec.Timestamp.Format(time.RFC3339),
		rec.PlannedDurationMin,
		string(rec.Outcome),
		rec.XPChange,
	)
	if err != nil {
		return fmt.Errorf("inserting quest record: %w", err)
	}
	return nil
}

func (r *SQLiteRecordRepo) ListRecent(ctx context.Context, limit int) ([]*domain.QuestRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM quest_records
		ORDER BY timestamp DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent quest records: %w", err)
	}
	defer rows.Close()
	return r.scanRecords(rows)
}

func (r *SQLiteRecordRepo) ListSince(ctx context.Context, since time.Time) ([]*domain.QuestRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM quest_records
		WHERE timestamp >= ? ORDER BY timestamp`
	rows, err := r.db.QueryContext(ctx, query, since.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("listing quest records since %s: %w", since.Format(time.RFC3339), err)
	}
	defer rows.Close()
	return r.scanRecords(rows)
}

func (r *SQLiteRecordRepo) scanRecords(rows *sql.Rows) ([]*domain.QuestRecord, error) {
	var records []*domain.QuestRecord
	for rows.Next() {
		var rec domain.QuestRecord
		var timestampStr, outcomeStr string

		err := rows.Scan(
			&rec.ID, &rec.TaskName, &timestampStr, &rec.PlannedDurationMin,
			&outcomeStr, &rec.XPChange,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning quest record row: %w", err)
		}

		rec.Outcome = domain.RecordOutcome(outcomeStr)
		var parseErr error
		rec.Timestamp, parseErr = time.Parse(time.RFC3339, timestampStr)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing timestamp: %w", parseErr)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quest records: %w", err)
	}
	return records, nil
}
