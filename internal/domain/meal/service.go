package meal

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"
)

// Collection is the name under which custom meal changes are announced.
const Collection = "customMeals"

type Notifier interface {
	Changed(uid, collection string)
}

type Servicer interface {
	List(ctx context.Context, uid string) ([]CustomMeal, error)
	Find(ctx context.Context, uid, id string) (CustomMeal, error)
	Save(ctx context.Context, uid string, m CustomMeal) (CustomMeal, error)
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
		log:      log.With("component", "meal_service"),
	}
}

func (s *Service) List(ctx context.Context, uid string) ([]CustomMeal, error) {
	meals, err := s.repo.List(ctx, uid)
	if err != nil {
		s.log.Error("failed to list custom meals", "uid", uid, "error", err)
		return nil, fmt.Errorf("list custom meals: %w", err)
	}
	if meals == nil {
		meals = []CustomMeal{}
	}
	return meals, nil
}

func (s *Service) Find(ctx context.Context, uid, id string) (CustomMeal, error) {
	m, err := s.repo.Get(ctx, uid, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return CustomMeal{}, err
		}
		return CustomMeal{}, fmt.Errorf("get custom meal: %w", err)
	}
	return m, nil
}

func (s *Service) Save(ctx context.Context, uid string, m CustomMeal) (CustomMeal, error) {
	m = m.WithOwner(uid)
	if err := m.Validate(); err != nil {
		return CustomMeal{}, err
	}

	saved, err := s.repo.Upsert(ctx, m)
	if err != nil {
		if errors.Is(err, ErrForeignOwner) {
			return CustomMeal{}, err
		}
		s.log.Error("failed to save custom meal", "uid", uid, "id", m.ID, "error", err)
		return CustomMeal{}, fmt.Errorf("save custom meal: %w", err)
	}

	if s.notifier != nil {
		s.notifier.Changed(uid, Collection)
	}
	return saved, nil
}

func (s *Service) Delete(ctx context.Context, uid, id string) error {
	if err := s.repo.Delete(ctx, uid, id); err != nil {
		s.log.Error("failed to delete custom meal", "uid", uid, "id", id, "error", err)
		return fmt.Errorf("delete custom meal: %w", err)
	}

	if s.notifier != nil {
		s.notifier.Changed(uid, Collection)
	}
	return nil
}
