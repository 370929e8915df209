package logbook

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"
)

// Collection is the name under which log changes are announced.
const Collection = "logs"

// Notifier is told about every successful write so live subscribers can refresh.
type Notifier interface {
	Changed(uid, collection string)
}

type Servicer interface {
	List(ctx context.Context, uid, date string) ([]Log, error)
	Find(ctx context.Context, uid, id string) (Log, error)
	Save(ctx context.Context, uid string, l Log) (Log, error)
	Delete(ctx context.Context, uid, id string) error
}

type Service struct {
	repo     Repository
	notifier Notifier
	log      *slog.Logger
}

func NewService(repo Repository, notifier Notifier, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		log:      log.With("component", "log_service"),
	}
}

func (s *Service) List(ctx context.Context, uid, date string) ([]Log, error) {
	if date != "" {
		if _, err := (Log{ID: "-", Date: date}).Day(); err != nil {
			return nil, fmt.Errorf("%w: date %q is not %s", ErrInvalidData, date, DateLayout)
		}
	}

	logs, err := s.repo.List(ctx, uid, date)
	if err != nil {
		s.log.Error("failed to list logs", "uid", uid, "error", err)
		return nil, fmt.Errorf("list logs: %w", err)
	}

	if logs == nil {
		logs = []Log{}
	}
	return logs, nil
}

func (s *Service) Find(ctx context.Context, uid, id string) (Log, error) {
	l, err := s.repo.Get(ctx, uid, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Log{}, err
		}
		return Log{}, fmt.Errorf("get log: %w", err)
	}
	return l, nil
}

// Save upserts l by id on behalf of uid.
func (s *Service) Save(ctx context.Context, uid string, l Log) (Log, error) {
	l = l.WithOwner(uid)
	if err := l.Validate(); err != nil {
		return Log{}, err
	}

	saved, err := s.repo.Upsert(ctx, l)
	if err != nil {
		if errors.Is(err, ErrForeignOwner) {
			return Log{}, err
		}
		s.log.Error("failed to save log", "uid", uid, "id", l.ID, "error", err)
		return Log{}, fmt.Errorf("save log: %w", err)
	}

	s.changed(uid)
	return saved, nil
}

func (s *Service) Delete(ctx context.Context, uid, id string) error {
	if err := s.repo.Delete(ctx, uid, id); err != nil {
		s.log.Error("failed to delete log", "uid", uid, "id", id, "error", err)
		return fmt.Errorf("delete log: %w", err)
	}

	s.changed(uid)
	return nil
}

func (s *Service) changed(uid string) {
	if s.notifier != nil {
		s.notifier.Changed(uid, Collection)
	}
}
