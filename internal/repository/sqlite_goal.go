package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/innerpath-app/innerpath/internal/db"
	"github.com/innerpath-app/innerpath/internal/domain"
)

// goalColumns is the canonical SELECT column list for goals.
const goalColumns = `id, title, category, topic, notes, status, checkpoint_index,
		created_at, finished_at, updated_at`

// SQLiteGoalRepo implements GoalRepo using a SQLite database.
// Loaded goals do not carry their sub-tasks; callers that need the full
// path attach them via SubTaskRepo.ListByGoal.
type SQLiteGoalRepo struct {
	db db.DBTX
}

// NewSQLiteGoalRepo creates a new SQLiteGoalRepo.
func NewSQLiteGoalRepo(conn db.DBTX) *SQLiteGoalRepo {
	return &SQLiteGoalRepo{db: conn}
}

func (r *SQLiteGoalRepo) Create(ctx context.Context, g *domain.Goal) error {
	query := `INSERT INTO goals (id, title, category, topic, notes, status, checkpoint_index,
		created_at, finished_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		g.ID,
		g.Title,
		g.Category,
		g.Topic,
		g.Notes,
		string(g.Status),
		g.CheckpointIndex,
		g.CreatedAt.Format(time.RFC3339),
		nullableTimeToString(g.FinishedAt, time.RFC3339),
		g.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting goal: %w", err)
	}
	return nil
}

func (r *SQLiteGoalRepo) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanGoal(row)
}

func (r *SQLiteGoalRepo) GetActive(ctx context.Context) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE status = 'active'
		ORDER BY created_at DESC LIMIT 1`
	row := r.db.QueryRowContext(ctx, query)
	return r.scanGoal(row)
}

func (r *SQLiteGoalRepo) List(ctx context.Context) ([]*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		g, err := r.scanGoalRow(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goals: %w", err)
	}
	return goals, nil
}

func (r *SQLiteGoalRepo) Update(ctx context.Context, g *domain.Goal) error {
	query := `UPDATE goals SET title = ?, category = ?, topic = ?, notes = ?, status = ?,
		checkpoint_index = ?, finished_at = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		g.Title,
		g.Category,
		g.Topic,
		g.Notes,
		string(g.Status),
		g.CheckpointIndex,
		nullableTimeToString(g.FinishedAt, time.RFC3339),
		g.UpdatedAt.Format(time.RFC3339),
		g.ID,
	)
	if err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}
	return nil
}

func (r *SQLiteGoalRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM goals WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}
	return nil
}

func (r *SQLiteGoalRepo) scanGoal(row *sql.Row) (*domain.Goal, error) {
	var g domain.Goal
	var statusStr, createdAtStr, updatedAtStr string
	var finishedAtStr sql.NullString

	err := row.Scan(
		&g.ID, &g.Title, &g.Category, &g.Topic, &g.Notes, &statusStr,
		&g.CheckpointIndex, &createdAtStr, &finishedAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("goal: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning goal: %w", err)
	}
	return r.populateGoal(&g, statusStr, createdAtStr, updatedAtStr, finishedAtStr)
}

func (r *SQLiteGoalRepo) scanGoalRow(rows *sql.Rows) (*domain.Goal, error) {
	var g domain.Goal
	var statusStr, createdAtStr, updatedAtStr string
	var finishedAtStr sql.NullString

	err := rows.Scan(
		&g.ID, &g.Title, &g.Category, &g.Topic, &g.Notes, &statusStr,
		&g.CheckpointIndex, &createdAtStr, &finishedAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning goal row: %w", err)
	}
	return r.populateGoal(&g, statusStr, createdAtStr, updatedAtStr, finishedAtStr)
}

func (r *SQLiteGoalRepo) populateGoal(
	g *domain.Goal,
	statusStr, createdAtStr, updatedAtStr string,
	finishedAtStr sql.NullString,
) (*domain.Goal, error) {
	g.Status = domain.GoalStatus(statusStr)
	g.FinishedAt = parseNullableTime(finishedAtStr, time.RFC3339)

	var parseErr error
	g.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	g.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return g, nil
}
