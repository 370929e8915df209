package remote

import (
	"context"

	"weightloss/internal/domain/logbook"
	"weightloss/internal/domain/meal"
	"weightloss/internal/domain/user"
)

// Null is the gateway used when no backend is configured. Every call fails
// with ErrNotConfigured so callers take the local path.
type Null struct{}

func (Null) Configured() bool { return false }
func (Null) Init(context.Context) error { return ErrNotConfigured }
func (Null) SignOut(context.Context) error { return nil }
func (Null) Forget(context.Context) error { return nil }
func (Null) CurrentUser() *user.Session { return nil }
func (Null) Logs() Collection[logbook.Log] { return nullCollection[logbook.Log]{} }
func (Null) CustomMeals() Collection[meal.CustomMeal] {
	return nullCollection[meal.CustomMeal]{}
}

func (Null) SignUp(context.Context, string, string) (user.Session, error) {
	return user.Session{}, ErrNotConfigured
}

func (Null) SignIn(context.Context, string, string) (user.Session, error) {
	return user.Session{}, ErrNotConfigured
}

func (Null) GetProfile(context.Context, string) (user.Profile, error) {
	return user.Profile{}, ErrNotConfigured
}

func (Null) PutProfile(context.Context, user.Profile) (user.Profile, error) {
	return user.Profile{}, ErrNotConfigured
}

type nullCollection[T Doc[T]] struct{}

func (nullCollection[T]) Get(context.Context, string) (T, bool, error) {
	var zero T
	return zero, false, ErrNotConfigured
}

func (nullCollection[T]) Set(context.Context, T) error { return ErrNotConfigured }
func (nullCollection[T]) Delete(context.Context, string) error { return ErrNotConfigured }
func (nullCollection[T]) Query(context.Context, string) ([]T, error) {
	return nil, ErrNotConfigured
}
