package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"weightloss/internal/domain/meal"
)

type MealRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewMealRepository(pool *pgxpool.Pool, log *slog.Logger) *MealRepository {
	return &MealRepository{
		pool: pool,
		log:  log.With("component", "meal_repository"),
	}
}

const mealColumns = `id, uid, name, calories, protein, carbs, fat, fiber`

func (r *MealRepository) List(ctx context.Context, uid string) ([]meal.CustomMeal, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+mealColumns+` FROM custom_meals WHERE uid = $1 ORDER BY name, id`, uid)
	if err != nil {
		r.log.Error("failed to list custom meals", "uid", uid, "error", err)
		return nil, fmt.Errorf("list custom meals: %w", err)
	}
	defer rows.Close()

	meals := make([]meal.CustomMeal, 0)
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan custom meal: %w", err)
		}
		meals = append(meals, m)
	}

	return meals, rows.Err()
}

func (r *MealRepository) Get(ctx context.Context, uid, id string) (meal.CustomMeal, error) {
	m, err := scanMeal(r.pool.QueryRow(ctx,
		`SELECT `+mealColumns+` FROM custom_meals WHERE id = $1 AND uid = $2`, id, uid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return meal.CustomMeal{}, meal.ErrNotFound
		}
		return meal.CustomMeal{}, fmt.Errorf("get custom meal: %w", err)
	}
	return m, nil
}

func (r *MealRepository) Upsert(ctx context.Context, m meal.CustomMeal) (meal.CustomMeal, error) {
	query := `
		INSERT INTO custom_meals (id, uid, name, calories, protein, carbs, fat, fiber, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			calories = EXCLUDED.calories,
			protein = EXCLUDED.protein,
			carbs = EXCLUDED.carbs,
			fat = EXCLUDED.fat,
			fiber = EXCLUDED.fiber,
			updated_at = now()
		WHERE custom_meals.uid = EXCLUDED.uid
		RETURNING ` + mealColumns

	saved, err := scanMeal(r.pool.QueryRow(ctx, query,
		m.ID, m.UID, m.Name, m.Calories, m.Protein, m.Carbs, m.Fat, m.Fiber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return meal.CustomMeal{}, meal.ErrForeignOwner
		}
		return meal.CustomMeal{}, fmt.Errorf("upsert custom meal: %w", err)
	}
	return saved, nil
}

func (r *MealRepository) Delete(ctx context.Context, uid, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM custom_meals WHERE id = $1 AND uid = $2`, id, uid); err != nil {
		return fmt.Errorf("delete custom meal: %w", err)
	}
	return nil
}

func scanMeal(row pgx.Row) (meal.CustomMeal, error) {
	var m meal.CustomMeal
	err := row.Scan(&m.ID, &m.UID, &m.Name, &m.Calories, &m.Protein, &m.Carbs, &m.Fat, &m.Fiber)
	return m, err
}
