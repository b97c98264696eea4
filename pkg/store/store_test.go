package store

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *SQLite {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := Open(filepath.Join(t.TempDir(), "strategies.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSaveAndLoad(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, "plan_a", "version: 1\n"))
	text, err := st.Load(ctx, "plan_a")
	require.NoError(t, err)
	assert.Equal(t, "version: 1\n", text)
}

func TestLoadNotFound(t *testing.T) {
	st := testStore(t)
	_, err := st.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveOverwrites(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, "plan_a", "version: 1\n"))
	require.NoError(t, st.Save(ctx, "plan_a", "version: 2\n"))

	text, err := st.Load(ctx, "plan_a")
	require.NoError(t, err)
	assert.Equal(t, "version: 2\n", text)

	names, err := st.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"plan_a"}, names)
}

func TestListSorted(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	for _, name := range []string{"wet_backup", "default_strategy", "aggressive"} {
		require.NoError(t, st.Save(ctx, name, "doc\n"))
	}
	names, err := st.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"aggressive", "default_strategy", "wet_backup"}, names)
}

func TestRemove(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, "plan_a", "doc\n"))
	require.NoError(t, st.Remove(ctx, "plan_a"))
	_, err := st.Load(ctx, "plan_a")
	assert.ErrorIs(t, err, ErrNotFound)

	// Removing an absent name is not an error.
	assert.NoError(t, st.Remove(ctx, "plan_a"))
}

func TestPromote(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, DefaultName, "old baseline\n"))
	require.NoError(t, st.Save(ctx, "plan_b", "challenger\n"))
	require.NoError(t, st.Save(ctx, "plan_c", "also-ran\n"))

	require.NoError(t, Promote(ctx, st, "plan_b"))

	text, err := st.Load(ctx, DefaultName)
	require.NoError(t, err)
	assert.Equal(t, "challenger\n", text)

	names, err := st.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultName}, names)
}

func TestPromoteMissing(t *testing.T) {
	st := testStore(t)
	err := Promote(context.Background(), st, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}
