package metadata

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batyok32/shipyuusell-sub001/internal/dbx"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key        TEXT PRIMARY KEY,
  value      BLOB NOT NULL,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`)
	require.NoError(t, err)
	return db
}

func fixedClock(r *SQLiteRepository, ts time.Time) {
	r.now = func() time.Time { return ts }
}

func TestGet_Missing(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "access_token")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, v)
}

func TestSet_InsertThenOverwrite(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	t1 := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	fixedClock(r, t1)
	require.NoError(t, r.Set(ctx, "access_token", []byte("a1")))

	t2 := t1.Add(time.Hour)
	fixedClock(r, t2)
	require.NoError(t, r.Set(ctx, "access_token", []byte("a2")))

	v, err := r.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.Equal(t, []byte("a2"), v)

	entries, err := r.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].UpdatedAt.Equal(t2), "updated_at = %v", entries[0].UpdatedAt)
}

func TestSet_NilValueStoredAsEmpty(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", nil))
	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestDelete_ManyKeysIgnoresMissing(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	for _, k := range []string{"access_token", "refresh_token", "user"} {
		require.NoError(t, r.Set(ctx, k, []byte("x")))
	}

	require.NoError(t, r.Delete(ctx, "access_token", "refresh_token", "nope"))
	require.NoError(t, r.Delete(ctx))

	_, err := r.Get(ctx, "access_token")
	assert.ErrorIs(t, err, ErrNotFound)
	v, err := r.Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), v)
}

func TestList_Prefix(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "handoff:shipmentData", []byte("2")))
	require.NoError(t, r.Set(ctx, "handoff:selectedQuote", []byte("1")))
	require.NoError(t, r.Set(ctx, "access_token", []byte("t")))

	entries, err := r.List(ctx, "handoff:")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "handoff:selectedQuote", entries[0].Key)
	assert.Equal(t, "handoff:shipmentData", entries[1].Key)

	all, err := r.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestClear(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte("1")))
	require.NoError(t, r.Clear(ctx))

	all, err := r.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestWithTx_RollbackLeavesNothing(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := NewSQLiteRepository(tx)
		if err := r.Set(ctx, "access_token", []byte("a")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = NewSQLiteRepository(db).Get(ctx, "access_token")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClosedDB_Errors(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	require.NoError(t, db.Close())
	ctx := context.Background()

	_, err := r.Get(ctx, "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Error(t, r.Set(ctx, "k", []byte("v")))
	assert.Error(t, r.Delete(ctx, "k"))
	assert.Error(t, r.Clear(ctx))
	_, err = r.List(ctx, "")
	assert.Error(t, err)
}
