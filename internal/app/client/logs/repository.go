// Package logs is the client Log Repository: remote-first storage of log
// entries with a local mirror and live subscriptions.
package logs

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"weightloss/internal/app/client/cache"
	"weightloss/internal/app/client/fallback"
	"weightloss/internal/app/client/mirror"
	"weightloss/internal/app/client/notify"
	"weightloss/internal/app/client/remote"
	"weightloss/internal/domain/logbook"
)

type Repository struct {
	docs *mirror.Repository[logbook.Log]
	hub  *notify.Hub[[]logbook.Log]
	log  *slog.Logger
}

func New(store cache.Store, gateway remote.Gateway, owner mirror.OwnerFunc, log *slog.Logger) *Repository {
	return &Repository{
		docs: mirror.New[logbook.Log](cache.KeyLogs, store, gateway, remote.Gateway.Logs, owner, log),
		hub:  notify.NewHub[[]logbook.Log](),
		log:  log.With("component", "log_repository"),
	}
}

func (r *Repository) FetchAll(ctx context.Context) ([]logbook.Log, error) {
	out, err := r.fetchAll(ctx)
	return out.Value, err
}

// FetchDate returns the entries logged on date.
func (r *Repository) FetchDate(ctx context.Context, date string) ([]logbook.Log, error) {
	all, err := r.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	return logbook.OnDate(all, date), nil
}

// Save upserts l by id and broadcasts the fresh list before returning.
func (r *Repository) Save(ctx context.Context, l logbook.Log) (logbook.Log, error) {
	out, err := r.save(ctx, l)
	return out.Value, err
}

// Delete removes id. Remote failures never fail the call.
func (r *Repository) Delete(ctx context.Context, id string) error {
	_, err := r.delete(ctx, id)
	return err
}

// Subscribe emits the current list to fn, then the full list after every
// save or delete.
func (r *Repository) Subscribe(ctx context.Context, fn func([]logbook.Log)) func() {
	unsubscribe := r.hub.Subscribe(fn)

	items, err := r.FetchAll(ctx)
	if err != nil {
		r.log.Warn("Не удалось загрузить записи для подписчика", "error", err)
		items = []logbook.Log{}
	}
	fn(items)

	return unsubscribe
}

// Refresh re-fetches and broadcasts to subscribers.
func (r *Repository) Refresh(ctx context.Context) error {
	items, err := r.FetchAll(ctx)
	if err != nil {
		return err
	}
	r.hub.Publish(items)
	return nil
}

func (r *Repository) fetchAll(ctx context.Context) (fallback.Outcome[[]logbook.Log], error) {
	out, err := r.docs.FetchAll(ctx)
	if err != nil {
		return out, fmt.Errorf("ошибка загрузки записей: %w", err)
	}
	return out, nil
}

func (r *Repository) save(ctx context.Context, l logbook.Log) (fallback.Outcome[logbook.Log], error) {
	if err := l.Validate(); err != nil {
		return fallback.Outcome[logbook.Log]{}, err
	}

	out, err := r.docs.Save(ctx, l)
	if err != nil {
		return out, fmt.Errorf("ошибка сохранения записи: %w", err)
	}

	r.broadcast(ctx)
	return out, nil
}

func (r *Repository) delete(ctx context.Context, id string) (fallback.Outcome[struct{}], error) {
	out, err := r.docs.Delete(ctx, id)
	if err != nil {
		return out, fmt.Errorf("ошибка удаления записи: %w", err)
	}

	r.broadcast(ctx)
	return out, nil
}

func (r *Repository) broadcast(ctx context.Context) {
	if r.hub.Len() == 0 {
		return
	}
	if err := r.Refresh(ctx); err != nil {
		r.log.Warn("Не удалось разослать записи", "error", err)
	}
}
