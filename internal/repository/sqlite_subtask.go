package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/innerpath-app/innerpath/internal/db"
	"github.com/innerpath-app/innerpath/internal/domain"
)

// subTaskColumns is the canonical SELECT column list for sub_tasks.
const subTaskColumns = `id, goal_id, order_index, title, description, explanation,
		duration_sec, time_left_sec, timer_started_at, status, reset_mode,
		created_at, updated_at`

// SQLiteSubTaskRepo implements SubTaskRepo using a SQLite database.
type SQLiteSubTaskRepo struct {
	db db.DBTX
}

// NewSQLiteSubTaskRepo creates a new SQLiteSubTaskRepo.
func NewSQLiteSubTaskRepo(conn db.DBTX) *SQLiteSubTaskRepo {
	return &SQLiteSubTaskRepo{db: conn}
}

func (r *SQLiteSubTaskRepo) Create(ctx context.Context, t *domain.SubTask) error {
	query := `INSERT INTO sub_tasks (id, goal_id, order_index, title, description, explanation,
		duration_sec, time_left_sec, timer_started_at, status, reset_mode, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.GoalID,
		t.OrderIndex,
		t.Title,
		t.Description,
		t.Explanation,
		t.DurationSec,
		t.TimeLeftSec,
		nullableTimeToString(t.TimerStartedAt, time.RFC3339),
		string(t.Status),
		string(t.ResetMode),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting sub-task: %w", err)
	}
	return nil
}

func (r *SQLiteSubTaskRepo) GetByID(ctx context.Context, id string) (*domain.SubTask, error) {
	query := `SELECT ` + subTaskColumns + ` FROM sub_tasks WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var t domain.SubTask
	var statusStr, modeStr, createdAtStr, updatedAtStr string
	var startedAtStr sql.NullString

	err := row.Scan(
		&t.ID, &t.GoalID, &t.OrderIndex, &t.Title, &t.Description, &t.Explanation,
		&t.DurationSec, &t.TimeLeftSec, &startedAtStr, &statusStr, &modeStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("sub-task: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning sub-task: %w", err)
	}
	return r.populateSubTask(&t, statusStr, modeStr, createdAtStr, updatedAtStr, startedAtStr)
}

func (r *SQLiteSubTaskRepo) ListByGoal(ctx context.Context, goalID string) ([]*domain.SubTask, error) {
	query := `SELECT ` + subTaskColumns + ` FROM sub_tasks WHERE goal_id = ? ORDER BY order_index`
	rows, err := r.db.QueryContext(ctx, query, goalID)
	if err != nil {
		return nil, fmt.Errorf("listing sub-tasks by goal: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.SubTask
	for rows.Next() {
		var t domain.SubTask
		var statusStr, modeStr, createdAtStr, updatedAtStr string
		var startedAtStr sql.NullString

		err := rows.Scan(
			&t.ID, &t.GoalID, &t.OrderIndex, &t.Title, &t.Description, &t.Explanation,
			&t.DurationSec, &t.TimeLeftSec, &startedAtStr, &statusStr, &modeStr,
			&createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning sub-task row: %w", err)
		}
		task, err := r.populateSubTask(&t, statusStr, modeStr, createdAtStr, updatedAtStr, startedAtStr)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sub-tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteSubTaskRepo) Update(ctx context.Context, t *domain.SubTask) error {
	query := `UPDATE sub_tasks SET order_index = ?, title = ?, description = ?, explanation = ?,
		duration_sec = ?, time_left_sec = ?, timer_started_at = ?, status = ?, reset_mode = ?,
		updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		t.OrderIndex,
		t.Title,
		t.Description,
		t.Explanation,
		t.DurationSec,
		t.TimeLeftSec,
		nullableTimeToString(t.TimerStartedAt, time.RFC3339),
		string(t.Status),
		string(t.ResetMode),
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating sub-task: %w", err)
	}
	return nil
}

func (r *SQLiteSubTaskRepo) DeleteByGoal(ctx context.Context, goalID string) error {
	query := `DELETE FROM sub_tasks WHERE goal_id = ?`
	_, err := r.db.ExecContext(ctx, query, goalID)
	if err != nil {
		return fmt.Errorf("deleting sub-tasks by goal: %w", err)
	}
	return nil
}

func (r *SQLiteSubTaskRepo) populateSubTask(
	t *domain.SubTask,
	statusStr, modeStr, createdAtStr, updatedAtStr string,
	startedAtStr sql.NullString,
) (*domain.SubTask, error) {
	t.Status = domain.TaskStatus(statusStr)
	t.ResetMode = domain.ResetMode(modeStr)
	t.TimerStartedAt = parseNullableTime(startedAtStr, time.RFC3339)

	var parseErr error
	t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	t.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return t, nil
}
