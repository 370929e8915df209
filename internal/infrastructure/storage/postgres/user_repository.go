package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"weightloss/internal/domain/user"
)

type UserRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewUserRepository(pool *pgxpool.Pool, log *slog.Logger) *UserRepository {
	return &UserRepository{
		pool: pool,
		log:  log.With("component", "user_repository"),
	}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	const query = `
		INSERT INTO users (id, email, name, password_hash)
		VALUES ($1, $2, $3, $4)`

	if _, err := r.pool.Exec(ctx, query, u.ID, u.Email, u.Name, u.PasswordHash); err != nil {
		if isUniqueViolation(err) {
			return user.ErrAlreadyExists
		}
		r.log.Error("failed to create user", "email", u.Email, "error", err)
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (user.User, error) {
	const query = `
		SELECT id, email, name, password_hash, created_at
		FROM users
		WHERE lower(email) = lower($1)`

	return r.findOne(ctx, query, email)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (user.User, error) {
	const query = `
		SELECT id, email, name, password_hash, created_at
		FROM users
		WHERE id = $1`

	return r.findOne(ctx, query, id)
}

func (r *UserRepository) UpdateName(ctx context.Context, id, name string) (user.User, error) {
	const query = `
		UPDATE users SET name = $2
		WHERE id = $1
		RETURNING id, email, name, password_hash, created_at`

	return r.findOne(ctx, query, id, name)
}

func (r *UserRepository) findOne(ctx context.Context, query string, args ...interface{}) (user.User, error) {
	var u user.User

	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, fmt.Errorf("query user: %w", err)
	}

	return u, nil
}
