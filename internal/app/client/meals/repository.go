// Package meals is the client Custom Meal Repository.
package meals

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"weightloss/internal/app/client/cache"
	"weightloss/internal/app/client/fallback"
	"weightloss/internal/app/client/mirror"
	"weightloss/internal/app/client/remote"
	"weightloss/internal/domain/meal"
)

type Repository struct {
	docs *mirror.Repository[meal.CustomMeal]
	log  *slog.Logger
}

func New(store cache.Store, gateway remote.Gateway, owner mirror.OwnerFunc, log *slog.Logger) *Repository {
	return &Repository{
		docs: mirror.New[meal.CustomMeal](cache.KeyCustomMeals, store, gateway, remote.Gateway.CustomMeals, owner, log),
		log:  log.With("component", "meal_repository"),
	}
}

func (r *Repository) FetchAll(ctx context.Context) ([]meal.CustomMeal, error) {
	out, err := r.fetchAll(ctx)
	return out.Value, err
}

func (r *Repository) Get(ctx context.Context, id string) (meal.CustomMeal, error) {
	out, found, err := r.docs.Get(ctx, id)
	if err != nil {
		return meal.CustomMeal{}, fmt.Errorf("ошибка получения блюда: %w", err)
	}
	if !found {
		return meal.CustomMeal{}, fmt.Errorf("%w: %s", meal.ErrNotFound, id)
	}
	return out.Value, nil
}

func (r *Repository) Save(ctx context.Context, m meal.CustomMeal) (meal.CustomMeal, error) {
	out, err := r.save(ctx, m)
	return out.Value, err
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := r.docs.Delete(ctx, id); err != nil {
		return fmt.Errorf("ошибка удаления блюда: %w", err)
	}
	return nil
}

func (r *Repository) fetchAll(ctx context.Context) (fallback.Outcome[[]meal.CustomMeal], error) {
	out, err := r.docs.FetchAll(ctx)
	if err != nil {
		return out, fmt.Errorf("ошибка загрузки блюд: %w", err)
	}
	return out, nil
}

func (r *Repository) save(ctx context.Context, m meal.CustomMeal) (fallback.Outcome[meal.CustomMeal], error) {
	if err := m.Validate(); err != nil {
		return fallback.Outcome[meal.CustomMeal]{}, err
	}

	out, err := r.docs.Save(ctx, m)
	if err != nil {
		return out, fmt.Errorf("ошибка сохранения блюда: %w", err)
	}
	return out, nil
}
