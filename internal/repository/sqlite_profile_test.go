package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innerpath-app/innerpath/internal/domain"
	"github.com/innerpath-app/innerpath/internal/testutil"
)

func TestProfileRepo_Get_DefaultSeededProfile(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProfileRepo(db)

	profile, err := repo.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "default", profile.ID)
	assert.Equal(t, 0, profile.XP)
	assert.Equal(t, 0, profile.Streak)
	assert.Equal(t, 1, profile.Level)
	assert.Empty(t, profile.Badges)
	assert.False(t, profile.RecoveryNeeded)
	assert.Equal(t, domain.ThemeEmerald, profile.Theme)
	assert.Nil(t, profile.LastActive)
}

func TestProfileRepo_Upsert_RoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProfileRepo(db)
	ctx := context.Background()

	lastActive := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	updated := &domain.UserProfile{
		ID:             "default",
		Name:           "Asha",
		XP:             730,
		Streak:         6,
		Level:          2,
		Badges:         []string{"b1", "b5"},
		RecoveryNeeded: true,
		TotalFocusMin:  340,
		Theme:          domain.ThemeViolet,
		LastActive:     &lastActive,
	}
	require.NoError(t, repo.Upsert(ctx, updated))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Asha", got.Name)
	assert.Equal(t, 730, got.XP)
	assert.Equal(t, 6, got.Streak)
	assert.Equal(t, 2, got.Level)
	assert.Equal(t, []string{"b1", "b5"}, got.Badges)
	assert.True(t, got.RecoveryNeeded)
	assert.Equal(t, 340, got.TotalFocusMin)
	assert.Equal(t, domain.ThemeViolet, got.Theme)
	require.NotNil(t, got.LastActive)
	assert.True(t, got.LastActive.Equal(lastActive))
}

func TestProfileRepo_Upsert_EmptyBadgesStayEmpty(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProfileRepo(db)
	ctx := context.Background()

	profile, err := repo.Get(ctx)
	require.NoError(t, err)
	profile.XP = 40
	require.NoError(t, repo.Upsert(ctx, profile))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got.Badges, "empty badge column must not round-trip into [\"\"]")
}

func TestProfileRepo_Get_NotFoundWhenDefaultDeleted(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProfileRepo(db)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `DELETE FROM user_profile WHERE id = 'default'`)
	require.NoError(t, err)

	_, err = repo.Get(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}
