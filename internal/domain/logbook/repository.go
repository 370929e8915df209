package logbook

import (
	"context"
)

// Repository is the server-side persistence of logs. Every call is scoped by uid.
type Repository interface {
	List(ctx context.Context, uid, date string) ([]Log, error)
	Get(ctx context.Context, uid, id string) (Log, error)
	Upsert(ctx context.Context, l Log) (Log, error)
	Delete(ctx context.Context, uid, id string) error
}
