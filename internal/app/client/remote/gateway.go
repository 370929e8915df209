// Package remote describes the remote persistence backend the client syncs with.
package remote

import (
	"context"
	"errors"

	"weightloss/internal/domain/logbook"
	"weightloss/internal/domain/meal"
	"weightloss/internal/domain/user"
)

// Collection names shared with the backend.
const (
	CollectionLogs        = "logs"
	CollectionCustomMeals = "customMeals"
)

var (
	// ErrUnavailable marks any transport or backend failure.
	ErrUnavailable   = errors.New("remote backend unavailable")
	ErrNotConfigured = errors.New("remote backend not configured")
)

// Doc is a per-user document addressed by id.
type Doc[T any] interface {
	DocID() string
	OwnerUID() string
	WithOwner(uid string) T
}

// Collection is a remote document collection keyed by id and scoped by uid.
type Collection[T Doc[T]] interface {
	Get(ctx context.Context, id string) (T, bool, error)
	Set(ctx context.Context, doc T) error
	Delete(ctx context.Context, id string) error
	Query(ctx context.Context, uid string) ([]T, error)
}

// Gateway is one configured remote backend.
type Gateway interface {
	// Configured reports whether a backend was configured at startup.
	Configured() bool
	// Init lazily prepares the backend. A failure means the backend cannot be used now.
	Init(ctx context.Context) error

	SignUp(ctx context.Context, email, password string) (user.Session, error)
	SignIn(ctx context.Context, email, password string) (user.Session, error)
	SignOut(ctx context.Context) error
	// Forget drops the cached identity and credentials without contacting
	// the backend.
	Forget(ctx context.Context) error
	CurrentUser() *user.Session

	Logs() Collection[logbook.Log]
	CustomMeals() Collection[meal.CustomMeal]

	GetProfile(ctx context.Context, uid string) (user.Profile, error)
	PutProfile(ctx context.Context, p user.Profile) (user.Profile, error)
}

// Watcher is implemented by gateways that can push change notifications.
// Watch blocks until ctx is done or the feed fails.
type Watcher interface {
	Watch(ctx context.Context, onChange func(collection string)) error
}

// Usable reports whether g should be tried for this call.
func Usable(ctx context.Context, g Gateway) bool {
	if g == nil || !g.Configured() {
		return false
	}
	return g.Init(ctx) == nil
}
