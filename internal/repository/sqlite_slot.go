package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/innerpath-app/innerpath/internal/db"
	"github.com/innerpath-app/innerpath/internal/domain"
)

// slotColumns is the canonical SELECT column list for timetable_slots.
const slotColumns = `id, start_min, end_min, task_name, completed, xp_deducted,
		reminder_sent, created_at, updated_at`

// SQLiteSlotRepo implements SlotRepo using a SQLite database.
type SQLiteSlotRepo struct {
	db db.DBTX
}

// NewSQLiteSlotRepo creates a new SQLiteSlotRepo.
func NewSQLiteSlotRepo(conn db.DBTX) *SQLiteSlotRepo {
	return &SQLiteSlotRepo{db: conn}
}

func (r *SQLiteSlotRepo) Create(ctx context.Context, s *domain.TimetableSlot) error {
	query := `INSERT INTO timetable_slots (id, start_min, end_min, task_name, completed,
		xp_deducted, reminder_sent, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.StartMin,
		s.EndMin,
		s.TaskName,
		boolToInt(s.Completed),
		boolToInt(s.XPDeducted),
		boolToInt(s.ReminderSent),
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting timetable slot: %w", err)
	}
	return nil
}

func (r *SQLiteSlotRepo) GetByID(ctx context.Context, id string) (*domain.TimetableSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM timetable_slots WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var s domain.TimetableSlot
	var completedInt, deductedInt, reminderInt int
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&s.ID, &s.StartMin, &s.EndMin, &s.TaskName,
		&completedInt, &deductedInt, &reminderInt,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("timetable slot: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning timetable slot: %w", err)
	}
	return r.populateSlot(&s, completedInt, deductedInt, reminderInt, createdAtStr, updatedAtStr)
}

func (r *SQLiteSlotRepo) List(ctx context.Context) ([]*domain.TimetableSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM timetable_slots ORDER BY start_min`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing timetable slots: %w", err)
	}
	defer rows.Close()

	var slots []*domain.TimetableSlot
	for rows.Next() {
		var s domain.TimetableSlot
		var completedInt, deductedInt, reminderInt int
		var createdAtStr, updatedAtStr string

		err := rows.Scan(
			&s.ID, &s.StartMin, &s.EndMin, &s.TaskName,
			&completedInt, &deductedInt, &reminderInt,
			&createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning timetable slot row: %w", err)
		}
		slot, err := r.populateSlot(&s, completedInt, deductedInt, reminderInt, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating timetable slots: %w", err)
	}
	return slots, nil
}

func (r *SQLiteSlotRepo) Update(ctx context.Context, s *domain.TimetableSlot) error {
	query := `UPDATE timetable_slots SET start_min = ?, end_min = ?, task_name = ?,
		completed = ?, xp_deducted = ?, reminder_sent = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		s.StartMin,
		s.EndMin,
		s.TaskName,
		boolToInt(s.Completed),
		boolToInt(s.XPDeducted),
		boolToInt(s.ReminderSent),
		s.UpdatedAt.Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating timetable slot: %w", err)
	}
	return nil
}

func (r *SQLiteSlotRepo) ResetDailyFlags(ctx context.Context) error {
	query := `UPDATE timetable_slots SET completed = 0, xp_deducted = 0, reminder_sent = 0,
		updated_at = ?`
	_, err := r.db.ExecContext(ctx, query, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("resetting daily slot flags: %w", err)
	}
	return nil
}

func (r *SQLiteSlotRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM timetable_slots WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting timetable slot: %w", err)
	}
	return nil
}

func (r *SQLiteSlotRepo) populateSlot(
	s *domain.TimetableSlot,
	completedInt, deductedInt, reminderInt int,
	createdAtStr, updatedAtStr string,
) (*domain.TimetableSlot, error) {
	s.Completed = intToBool(completedInt)
	s.XPDeducted = intToBool(deductedInt)
	s.ReminderSent = intToBool(reminderInt)

	var parseErr error
	s.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	s.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return s, nil
}
