// Package mirror implements a remote-first document repository that keeps a
// local copy of the current user's collection in the cache store.
package mirror

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/exp/slog"

	"weightloss/internal/app/client/cache"
	"weightloss/internal/app/client/fallback"
	"weightloss/internal/app/client/remote"
)

// OwnerFunc returns the uid data operations are scoped to.
type OwnerFunc func() string

// CollectionFunc picks the remote collection backing the repository.
type CollectionFunc[T remote.Doc[T]] func(remote.Gateway) remote.Collection[T]

type Repository[T remote.Doc[T]] struct {
	key        string
	store      cache.Store
	gateway    remote.Gateway
	collection CollectionFunc[T]
	owner      OwnerFunc
	log        *slog.Logger

	// mu serializes read-modify-write of the mirror under key.
	mu sync.Mutex
}

func New[T remote.Doc[T]](
	key string,
	store cache.Store,
	gateway remote.Gateway,
	collection CollectionFunc[T],
	owner OwnerFunc,
	log *slog.Logger,
) *Repository[T] {
	if gateway == nil {
		gateway = remote.Null{}
	}
	return &Repository[T]{
		key:        key,
		store:      store,
		gateway:    gateway,
		collection: collection,
		owner:      owner,
		log:        log.With("component", "mirror", "collection", key),
	}
}

// FetchAll returns the current user's documents. A successful remote query
// replaces the mirror entirely.
func (r *Repository[T]) FetchAll(ctx context.Context) (fallback.Outcome[[]T], error) {
	uid := r.owner()

	if remote.Usable(ctx, r.gateway) {
		items, err := r.collection(r.gateway).Query(ctx, uid)
		if err == nil {
			if items == nil {
				items = []T{}
			}
			r.replace(ctx, items)
			return fallback.Remote(items), nil
		}
		r.log.Warn("Не удалось загрузить с сервера, используем локальные данные", "uid", uid, "error", err)
	}

	items, err := r.local(ctx)
	if err != nil {
		return fallback.Outcome[[]T]{}, err
	}

	return fallback.Local(ownedBy(items, uid)), nil
}

// Get looks a document up by id.
func (r *Repository[T]) Get(ctx context.Context, id string) (fallback.Outcome[T], bool, error) {
	uid := r.owner()

	if remote.Usable(ctx, r.gateway) {
		doc, found, err := r.collection(r.gateway).Get(ctx, id)
		if err == nil {
			if found && doc.OwnerUID() != uid {
				found = false
			}
			return fallback.Remote(doc), found, nil
		}
		r.log.Warn("Не удалось получить документ с сервера, используем локальный", "id", id, "error", err)
	}

	items, err := r.local(ctx)
	if err != nil {
		return fallback.Outcome[T]{}, false, err
	}

	for _, doc := range ownedBy(items, uid) {
		if doc.DocID() == id {
			return fallback.Local(doc), true, nil
		}
	}

	var zero T
	return fallback.Local(zero), false, nil
}

// Save upserts doc by id, stamped with the current uid.
func (r *Repository[T]) Save(ctx context.Context, doc T) (fallback.Outcome[T], error) {
	doc = doc.WithOwner(r.owner())

	if remote.Usable(ctx, r.gateway) {
		err := r.collection(r.gateway).Set(ctx, doc)
		if err == nil {
			if err := r.upsert(ctx, doc); err != nil {
				r.log.Warn("Не удалось сохранить локальную копию документа", "id", doc.DocID(), "error", err)
			}
			return fallback.Remote(doc), nil
		}
		r.log.Warn("Не удалось сохранить на сервере, сохраняем локально", "id", doc.DocID(), "error", err)
	}

	if err := r.upsert(ctx, doc); err != nil {
		return fallback.Outcome[T]{}, err
	}

	return fallback.Local(doc), nil
}

// Delete removes id remotely and from the mirror. Remote failures only skip the
// remote half.
func (r *Repository[T]) Delete(ctx context.Context, id string) (fallback.Outcome[struct{}], error) {
	path := fallback.PathLocal

	if remote.Usable(ctx, r.gateway) {
		if err := r.collection(r.gateway).Delete(ctx, id); err != nil {
			r.log.Warn("Не удалось удалить на сервере, удаляем локально", "id", id, "error", err)
		} else {
			path = fallback.PathRemote
		}
	}

	if err := r.remove(ctx, id); err != nil {
		return fallback.Outcome[struct{}]{}, err
	}

	return fallback.Outcome[struct{}]{Path: path}, nil
}

func (r *Repository[T]) local(ctx context.Context) ([]T, error) {
	items, _, err := cache.GetJSON[[]T](ctx, r.store, r.key)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения копии %s: %w", r.key, err)
	}
	return items, nil
}

func (r *Repository[T]) replace(ctx context.Context, items []T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := cache.SetJSON(ctx, r.store, r.key, items); err != nil {
		r.log.Warn("Не удалось обновить локальную копию", "error", err)
	}
}

func (r *Repository[T]) upsert(ctx context.Context, doc T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.local(ctx)
	if err != nil {
		return err
	}

	if err := cache.SetJSON(ctx, r.store, r.key, Upsert(items, doc)); err != nil {
		return fmt.Errorf("ошибка записи копии %s: %w", r.key, err)
	}
	return nil
}

func (r *Repository[T]) remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.local(ctx)
	if err != nil {
		return err
	}

	kept := make([]T, 0, len(items))
	for _, doc := range items {
		if doc.DocID() != id {
			kept = append(kept, doc)
		}
	}

	if err := cache.SetJSON(ctx, r.store, r.key, kept); err != nil {
		return fmt.Errorf("ошибка записи копии %s: %w", r.key, err)
	}
	return nil
}

// Upsert replaces the document with the same id in place, or appends doc.
func Upsert[T remote.Doc[T]](items []T, doc T) []T {
	for i := range items {
		if items[i].DocID() == doc.DocID() {
			items[i] = doc
			return items
		}
	}
	return append(items, doc)
}

// ownedBy keeps documents of uid. Documents written before ownership was
// recorded belong to whoever is signed in.
func ownedBy[T remote.Doc[T]](items []T, uid string) []T {
	out := make([]T, 0, len(items))
	for _, doc := range items {
		if owner := doc.OwnerUID(); owner == "" || owner == uid {
			out = append(out, doc)
		}
	}
	return out
}
