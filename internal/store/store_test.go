package store

import (
	"context"
	"database/sql"
	"math/rand/v2"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore[T any](t *testing.T) *Store[T] {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := New[T](context.Background(), db, "teststore")
	require.NoError(t, err)
	return s
}

func TestBadName(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	defer db.Close()

	for _, name := range []string{"", "results; DROP TABLE x", "game_results", "r2"} {
		_, err := New[int](context.Background(), db, name)
		assert.ErrorIs(t, err, ErrBadName, name)
	}
}

func TestReadEmpty(t *testing.T) {
	s := setupTestStore[struct{}](t)
	_, err := s.Get(context.Background(), "some key")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWriteAndReadStruct(t *testing.T) {
	type Box struct {
		Name  string
		Array []int64
		AdHoc struct{ Flags []bool }
		Inner *Box
	}

	ctx := context.Background()
	s := setupTestStore[Box](t)
	val := Box{
		Name:  "some name",
		Array: []int64{1, 2, 3},
		AdHoc: struct{ Flags []bool }{[]bool{true, false, true, false}},
		Inner: &Box{"other name", nil, struct{ Flags []bool }{[]bool{true}}, nil},
	}
	require.NoError(t, s.Set(ctx, "key", val))

	got, err := s.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, val, *got)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore[int32](t)
	r := rand.New(rand.NewPCG(1, 2))

	require.NoError(t, s.Set(ctx, "key", r.Int32()))
	val := r.Int32()
	require.NoError(t, s.Set(ctx, "key", val))

	got, err := s.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, val, *got)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore[int](t)

	assert.NoError(t, s.Delete(ctx, "missing"))

	require.NoError(t, s.Set(ctx, "key", 1337))
	require.NoError(t, s.Delete(ctx, "key"))
	_, err := s.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCountAndKeys(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore[int](t)

	for key, value := range map[string]int{"d": 4, "b": 2, "a": 1, "c": 3} {
		require.NoError(t, s.Set(ctx, key, value))
	}

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	require.NoError(t, s.Delete(ctx, "a"))
	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "d"}, keys)
}
