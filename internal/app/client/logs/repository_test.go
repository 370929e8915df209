package logs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"weightloss/internal/app/client/cache"
	"weightloss/internal/app/client/fallback"
	"weightloss/internal/app/client/remote"
	"weightloss/internal/app/client/remote/remotetest"
	"weightloss/internal/domain/logbook"
)

func owner(uid string) func() string {
	return func() string { return uid }
}

func eggs(calories float64) logbook.Log {
	return logbook.Log{
		ID:   "L1",
		Date: "2024-01-01",
		Meal: "eggs",
		Nutrition: &logbook.Nutrition{Total: logbook.Totals{
			Calories: calories, Protein: 14, Carbs: 2, Fat: 14, Fiber: 0,
		}},
	}
}

func gateways() map[string]func() remote.Gateway {
	return map[string]func() remote.Gateway{
		"remote": func() remote.Gateway { return remotetest.New() },
		"local":  func() remote.Gateway { return remote.Null{} },
	}
}

func TestRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, gw := range gateways() {
		t.Run(name, func(t *testing.T) {
			repo := New(cache.NewMemoryStore(), gw(), owner("u1"), slog.Default())

			saved, err := repo.Save(ctx, eggs(200))
			require.NoError(t, err)

			all, err := repo.FetchAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, 1)
			assert.Equal(t, saved, all[0])
			assert.Equal(t, "u1", all[0].UID)
		})
	}
}

func TestRepository_SaveIsUpsert(t *testing.T) {
	ctx := context.Background()

	for name, gw := range gateways() {
		t.Run(name, func(t *testing.T) {
			repo := New(cache.NewMemoryStore(), gw(), owner("u1"), slog.Default())

			_, err := repo.Save(ctx, eggs(200))
			require.NoError(t, err)
			_, err = repo.Save(ctx, eggs(250))
			require.NoError(t, err)

			all, err := repo.FetchAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, 1)
			assert.Equal(t, 250.0, all[0].Totals().Calories)
		})
	}
}

func TestRepository_DeleteThenFetch(t *testing.T) {
	ctx := context.Background()

	for name, gw := range gateways() {
		t.Run(name, func(t *testing.T) {
			repo := New(cache.NewMemoryStore(), gw(), owner("u1"), slog.Default())

			_, err := repo.Save(ctx, eggs(200))
			require.NoError(t, err)
			require.NoError(t, repo.Delete(ctx, "L1"))
			require.NoError(t, repo.Delete(ctx, "never-existed"))

			all, err := repo.FetchAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestRepository_RemoteFailureIsAbsorbed(t *testing.T) {
	ctx := context.Background()
	gw := remotetest.New()
	repo := New(cache.NewMemoryStore(), gw, owner("u1"), slog.Default())

	out, err := repo.save(ctx, eggs(200))
	require.NoError(t, err)
	assert.Equal(t, fallback.PathRemote, out.Path)

	gw.SetDown(true)

	out, err = repo.save(ctx, eggs(300))
	require.NoError(t, err)
	assert.Equal(t, fallback.PathLocal, out.Path)

	fetched, err := repo.fetchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, fallback.PathLocal, fetched.Path)
	require.Len(t, fetched.Value, 1)
	assert.Equal(t, 300.0, fetched.Value[0].Totals().Calories)

	deleted, err := repo.delete(ctx, "L1")
	require.NoError(t, err)
	assert.Equal(t, fallback.PathLocal, deleted.Path)

	gw.SetDown(false)
	gw.SetInitErr(errors.New("offline"))

	fetched, err = repo.fetchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, fallback.PathLocal, fetched.Path)
	assert.Empty(t, fetched.Value)
}

func TestRepository_SaveRejectsInvalid(t *testing.T) {
	repo := New(cache.NewMemoryStore(), remote.Null{}, owner("u1"), slog.Default())

	_, err := repo.Save(context.Background(), logbook.Log{Date: "2024-01-01"})
	assert.ErrorIs(t, err, logbook.ErrInvalidData)
}

func TestRepository_Subscribe(t *testing.T) {
	ctx := context.Background()
	repo := New(cache.NewMemoryStore(), remote.Null{}, owner("u1"), slog.Default())

	_, err := repo.Save(ctx, eggs(200))
	require.NoError(t, err)

	var first, second [][]logbook.Log
	unsubFirst := repo.Subscribe(ctx, func(items []logbook.Log) { first = append(first, items) })
	unsubSecond := repo.Subscribe(ctx, func(items []logbook.Log) { second = append(second, items) })
	defer unsubSecond()

	require.Len(t, first, 1, "immediate emit")
	require.Len(t, first[0], 1)

	other := eggs(100)
	other.ID = "L2"
	_, err = repo.Save(ctx, other)
	require.NoError(t, err)

	require.Len(t, first, 2)
	assert.Len(t, first[1], 2)
	require.Len(t, second, 2)
	assert.Len(t, second[1], 2)

	unsubFirst()
	unsubFirst()

	require.NoError(t, repo.Delete(ctx, "L1"))

	assert.Len(t, first, 2)
	require.Len(t, second, 3)
	require.Len(t, second[2], 1)
	assert.Equal(t, "L2", second[2][0].ID)
}

func TestRepository_FetchDate(t *testing.T) {
	ctx := context.Background()
	repo := New(cache.NewMemoryStore(), remote.Null{}, owner("u1"), slog.Default())

	_, err := repo.Save(ctx, eggs(200))
	require.NoError(t, err)

	later := eggs(100)
	later.ID = "L2"
	later.Date = "2024-01-02"
	_, err = repo.Save(ctx, later)
	require.NoError(t, err)

	day, err := repo.FetchDate(ctx, "2024-01-02")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, "L2", day[0].ID)
}
