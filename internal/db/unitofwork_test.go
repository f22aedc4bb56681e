package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithinTx_CommitsOnSuccess(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	uow := NewSQLiteUnitOfWork(database)
	err = uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, `UPDATE user_profile SET xp = 42 WHERE id = 'default'`)
		return err
	})
	require.NoError(t, err)

	var xp int
	require.NoError(t, database.QueryRow(`SELECT xp FROM user_profile WHERE id = 'default'`).Scan(&xp))
	assert.Equal(t, 42, xp)
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	boom := errors.New("boom")
	uow := NewSQLiteUnitOfWork(database)
	err = uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, `UPDATE user_profile SET xp = 99 WHERE id = 'default'`); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var xp int
	require.NoError(t, database.QueryRow(`SELECT xp FROM user_profile WHERE id = 'default'`).Scan(&xp))
	assert.Equal(t, 0, xp, "failed transaction leaves prior state intact")
}

func TestWithinTx_RollsBackOnPanic(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	uow := NewSQLiteUnitOfWork(database)
	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
			if _, err := tx.ExecContext(ctx, `UPDATE user_profile SET xp = 7 WHERE id = 'default'`); err != nil {
				return err
			}
			panic("mid-transaction panic")
		})
	})

	var xp int
	require.NoError(t, database.QueryRow(`SELECT xp FROM user_profile WHERE id = 'default'`).Scan(&xp))
	assert.Equal(t, 0, xp)
}
