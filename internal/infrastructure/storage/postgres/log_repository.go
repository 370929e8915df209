package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"weightloss/internal/domain/logbook"
)

type LogRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewLogRepository(pool *pgxpool.Pool, log *slog.Logger) *LogRepository {
	return &LogRepository{
		pool: pool,
		log:  log.With("component", "log_repository"),
	}
}

const logColumns = `id, uid, date::text, meal, exercise, nutrition`

func (r *LogRepository) List(ctx context.Context, uid, date string) ([]logbook.Log, error) {
	query := `SELECT ` + logColumns + ` FROM logs WHERE uid = $1`
	args := []interface{}{uid}

	if date != "" {
		query += ` AND date = $2::date`
		args = append(args, date)
	}
	query += ` ORDER BY date, updated_at`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list logs", "uid", uid, "error", err)
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	logs := make([]logbook.Log, 0)
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}

func (r *LogRepository) Get(ctx context.Context, uid, id string) (logbook.Log, error) {
	query := `SELECT ` + logColumns + ` FROM logs WHERE id = $1 AND uid = $2`

	l, err := scanLog(r.pool.QueryRow(ctx, query, id, uid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return logbook.Log{}, logbook.ErrNotFound
		}
		return logbook.Log{}, fmt.Errorf("get log: %w", err)
	}
	return l, nil
}

// Upsert inserts l or replaces the entry with the same id. An id owned by
// another user is never overwritten.
func (r *LogRepository) Upsert(ctx context.Context, l logbook.Log) (logbook.Log, error) {
	query := `
		INSERT INTO logs (id, uid, date, meal, exercise, nutrition, updated_at)
		VALUES ($1, $2, $3::date, $4, $5, $6, now())
		ON CONFLICT (id) DO UPDATE SET
			date = EXCLUDED.date,
			meal = EXCLUDED.meal,
			exercise = EXCLUDED.exercise,
			nutrition = EXCLUDED.nutrition,
			updated_at = now()
		WHERE logs.uid = EXCLUDED.uid
		RETURNING ` + logColumns

	saved, err := scanLog(r.pool.QueryRow(ctx, query, l.ID, l.UID, l.Date, l.Meal, l.Exercise, l.Nutrition))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return logbook.Log{}, logbook.ErrForeignOwner
		}
		return logbook.Log{}, fmt.Errorf("upsert log: %w", err)
	}
	return saved, nil
}

func (r *LogRepository) Delete(ctx context.Context, uid, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM logs WHERE id = $1 AND uid = $2`, id, uid); err != nil {
		return fmt.Errorf("delete log: %w", err)
	}
	return nil
}

func scanLog(row pgx.Row) (logbook.Log, error) {
	var l logbook.Log
	err := row.Scan(&l.ID, &l.UID, &l.Date, &l.Meal, &l.Exercise, &l.Nutrition)
	return l, err
}
