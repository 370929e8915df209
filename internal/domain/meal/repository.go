package meal

import (
	"context"
)

// Repository is the server-side persistence of custom meals, scoped by uid.
type Repository interface {
	List(ctx context.Context, uid string) ([]CustomMeal, error)
	Get(ctx context.Context, uid, id string) (CustomMeal, error)
	Upsert(ctx context.Context, m CustomMeal) (CustomMeal, error)
	Delete(ctx context.Context, uid, id string) error
}
