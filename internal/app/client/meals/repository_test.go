package meals

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"weightloss/internal/app/client/cache"
	"weightloss/internal/app/client/fallback"
	"weightloss/internal/app/client/remote"
	"weightloss/internal/app/client/remote/remotetest"
	"weightloss/internal/domain/meal"
)

func owner() string { return "u1" }

func TestRepository_TwoMealsBothPresent(t *testing.T) {
	ctx := context.Background()

	for name, gw := range map[string]remote.Gateway{"remote": remotetest.New(), "local": remote.Null{}} {
		t.Run(name, func(t *testing.T) {
			repo := New(cache.NewMemoryStore(), gw, owner, slog.Default())

			_, err := repo.Save(ctx, meal.CustomMeal{ID: "m1", Name: "Oats", Calories: 150})
			require.NoError(t, err)
			_, err = repo.Save(ctx, meal.CustomMeal{ID: "m2", Name: "Shake", Calories: 220, Protein: 30})
			require.NoError(t, err)

			all, err := repo.FetchAll(ctx)
			require.NoError(t, err)

			ids := make([]string, 0, len(all))
			for _, m := range all {
				ids = append(ids, m.ID)
				assert.Equal(t, "u1", m.UID)
			}
			assert.ElementsMatch(t, []string{"m1", "m2"}, ids)
		})
	}
}

func TestRepository_UpsertAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := New(cache.NewMemoryStore(), remote.Null{}, owner, slog.Default())

	_, err := repo.Save(ctx, meal.CustomMeal{ID: "m1", Name: "Oats", Calories: 150})
	require.NoError(t, err)
	_, err = repo.Save(ctx, meal.CustomMeal{ID: "m1", Name: "Oats", Calories: 180})
	require.NoError(t, err)

	got, err := repo.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 180.0, got.Calories)

	require.NoError(t, repo.Delete(ctx, "m1"))

	_, err = repo.Get(ctx, "m1")
	assert.ErrorIs(t, err, meal.ErrNotFound)

	all, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRepository_RemoteDown(t *testing.T) {
	ctx := context.Background()
	gw := remotetest.New()
	gw.SetDown(true)
	repo := New(cache.NewMemoryStore(), gw, owner, slog.Default())

	out, err := repo.save(ctx, meal.CustomMeal{ID: "m1", Name: "Oats"})
	require.NoError(t, err)
	assert.Equal(t, fallback.PathLocal, out.Path)

	fetched, err := repo.fetchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, fallback.PathLocal, fetched.Path)
	assert.Len(t, fetched.Value, 1)

	require.NoError(t, repo.Delete(ctx, "m1"))
}

func TestRepository_SaveRejectsInvalid(t *testing.T) {
	repo := New(cache.NewMemoryStore(), remote.Null{}, owner, slog.Default())

	_, err := repo.Save(context.Background(), meal.CustomMeal{ID: "m1"})
	assert.ErrorIs(t, err, meal.ErrInvalidData)
}
