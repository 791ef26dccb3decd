package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func backends(t *testing.T, quota int64) map[string]Storage {
	t.Helper()
	logger := zap.NewNop()

	fileStore, err := NewFileStorage(filepath.Join(t.TempDir(), "data"), quota, logger)
	require.NoError(t, err)

	sqliteStore, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "planner.db"), quota, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteStore.Close() })

	return map[string]Storage{
		"file":   fileStore,
		"sqlite": sqliteStore,
		"memory": NewMemoryStorage(quota),
	}
}

func TestStorage_GetSet(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t, 0) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "vacationPlanner2026Data")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set(ctx, "vacationPlanner2026Data", `{"users":[]}`))
			got, err := s.Get(ctx, "vacationPlanner2026Data")
			require.NoError(t, err)
			assert.Equal(t, `{"users":[]}`, got)

			require.NoError(t, s.Set(ctx, "vacationPlanner2026Data", `{"users":["Ana"]}`))
			got, err = s.Get(ctx, "vacationPlanner2026Data")
			require.NoError(t, err)
			assert.Equal(t, `{"users":["Ana"]}`, got)

			_, err = s.Get(ctx, "other")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStorage_Quota(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t, 16) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, "key", "small"))

			err := s.Set(ctx, "key", strings.Repeat("x", 17))
			assert.ErrorIs(t, err, ErrQuotaExceeded)

			got, err := s.Get(ctx, "key")
			require.NoError(t, err)
			assert.Equal(t, "small", got)
		})
	}
}

func TestFileStorage_LeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStorage(dir, 0, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, s.Set(context.Background(), "state", "{}"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "state.json", entries[0].Name())
}

func TestFileStorage_RejectsPathKeys(t *testing.T) {
	s, err := NewFileStorage(t.TempDir(), 0, zap.NewNop())
	require.NoError(t, err)

	for _, key := range []string{"", "../escape", `a\b`, ".."} {
		err := s.Set(context.Background(), key, "{}")
		assert.ErrorIs(t, err, ErrUnavailable, key)
	}
}

func TestFileStorage_CancelledContext(t *testing.T) {
	s, err := NewFileStorage(t.TempDir(), 0, zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Set(ctx, "state", "{}"), context.Canceled)
}

func TestMemoryStorage_InjectedFailures(t *testing.T) {
	s := NewMemoryStorage(0)
	s.SetErr = ErrUnavailable
	s.GetErr = errors.New("disk on fire")

	assert.ErrorIs(t, s.Set(context.Background(), "k", "v"), ErrUnavailable)
	_, err := s.Get(context.Background(), "k")
	assert.EqualError(t, err, "disk on fire")
}

func TestOpen(t *testing.T) {
	logger := zap.NewNop()

	s, err := Open(Options{Backend: BackendFile, Path: t.TempDir()}, logger)
	require.NoError(t, err)
	assert.IsType(t, &FileStorage{}, s)

	s, err = Open(Options{Backend: BackendSQLite, Path: filepath.Join(t.TempDir(), "p.db")}, logger)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStorage{}, s)
	require.NoError(t, s.Close())

	_, err = Open(Options{Backend: "redis"}, logger)
	assert.Error(t, err)
}
