package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/innerpath-app/innerpath/internal/db"
	"github.com/innerpath-app/innerpath/internal/domain"
)

// SQLiteProfileRepo implements ProfileRepo using a SQLite database.
// The user_profile table holds exactly one row with id 'default',
// seeded by the migrations.
type SQLiteProfileRepo struct {
	db db.DBTX
}

// NewSQLiteProfileRepo creates a new SQLiteProfileRepo.
func NewSQLiteProfileRepo(conn db.DBTX) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{db: conn}
}

func (r *SQLiteProfileRepo) Get(ctx context.Context) (*domain.UserProfile, error) {
	query := `SELECT id, name, xp, streak, level, badges, recovery_needed,
		total_focus_min, theme, last_active
		FROM user_profile WHERE id = 'default'`
	row := r.db.QueryRowContext(ctx, query)

	var p domain.UserProfile
	var badgesStr, themeStr string
	var recoveryInt int
	var lastActiveStr sql.NullString

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.XP,
		&p.Streak,
		&p.Level,
		&badgesStr,
		&recoveryInt,
		&p.TotalFocusMin,
		&themeStr,
		&lastActiveStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user profile: %w", err)
	}

	p.Badges = splitBadges(badgesStr)
	p.RecoveryNeeded = intToBool(recoveryInt)
	p.Theme = domain.Theme(themeStr)
	p.LastActive = parseNullableTime(lastActiveStr, time.RFC3339)
	return &p, nil
}

func (r *SQLiteProfileRepo) Upsert(ctx context.Context, p *domain.UserProfile) error {
	query := `INSERT OR REPLACE INTO user_profile (id, name, xp, streak, level, badges,
		recovery_needed, total_focus_min, theme, last_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.XP,
		p.Streak,
		p.Level,
		joinBadges(p.Badges),
		boolToInt(p.RecoveryNeeded),
		p.TotalFocusMin,
		string(p.Theme),
		nullableTimeToString(p.LastActive, time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting user profile: %w", err)
	}
	return nil
}
