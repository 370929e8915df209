package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func TestStore_GetSetRemove(t *testing.T) {
	ctx := context.Background()

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get(ctx, KeyLogs)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Set(ctx, KeyLogs, "[]"))
			require.NoError(t, s.Set(ctx, KeyLogs, `[{"id":"L1"}]`))

			v, ok, err := s.Get(ctx, KeyLogs)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `[{"id":"L1"}]`, v)

			require.NoError(t, s.Remove(ctx, KeyLogs))
			_, ok, err = s.Get(ctx, KeyLogs)
			require.NoError(t, err)
			assert.False(t, ok)

			assert.NoError(t, s.Remove(ctx, "missing"))
		})
	}
}

func TestStore_RemoveAllAndKeys(t *testing.T) {
	ctx := context.Background()

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, ProfileKey("a"), "{}"))
			require.NoError(t, s.Set(ctx, ProfileKey("b"), "{}"))
			require.NoError(t, s.Set(ctx, KeyLocalSession, "{}"))

			keys, err := s.Keys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"local_session", "user:a", "user:b"}, keys)

			require.NoError(t, s.RemoveAll(ctx, "user:"))

			keys, err = s.Keys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"local_session"}, keys)
		})
	}
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	type item struct {
		ID string `json:"id"`
	}

	got, ok, err := GetJSON[[]item](ctx, s, KeyCustomMeals)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)

	require.NoError(t, SetJSON(ctx, s, KeyCustomMeals, []item{{ID: "m1"}, {ID: "m2"}}))

	got, ok, err = GetJSON[[]item](ctx, s, KeyCustomMeals)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []item{{ID: "m1"}, {ID: "m2"}}, got)

	require.NoError(t, s.Set(ctx, KeyCustomMeals, "{not json"))
	_, _, err = GetJSON[[]item](ctx, s, KeyCustomMeals)
	assert.Error(t, err)
}

func TestSQLiteStore_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, KeyBackendToken, "tok"))
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get(ctx, KeyBackendToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)
}

func TestOpen_FallsBackToMemory(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "missing", "dir", "cache.db"), slog.Default())
	_, isMemory := s.(*MemoryStore)
	assert.True(t, isMemory)
}
