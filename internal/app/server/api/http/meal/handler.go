package meal

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"weightloss/internal/app/server/api/http/apierr"
	"weightloss/internal/app/server/api/http/middleware/auth"
	"weightloss/internal/domain/logbook"
	"weightloss/internal/domain/meal"
)

type Handler struct {
	service    meal.Servicer
	logs       logbook.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service meal.Servicer, logs logbook.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		logs:       logs,
		log:        log.With("component", "meal_handler"),
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.getOp(), h.get)
	huma.Register(api, h.saveOp(), h.save)
	huma.Register(api, h.deleteOp(), h.delete)
	huma.Register(api, h.logPortionOp(), h.logPortion)
}

func (h *Handler) list(ctx context.Context, _ *listInput) (*listOutput, error) {
	uid, err := auth.UID(ctx)
	if err != nil {
		return nil, apierr.From(err)
	}

	meals, err := h.service.List(ctx, uid)
	if err != nil {
		return nil, apierr.From(err)
	}
	return &listOutput{Body: meals}, nil
}

func (h *Handler) get(ctx context.Context, input *idInput) (*mealOutput, error) {
	uid, err := auth.UID(ctx)
	if err != nil {
		return nil, apierr.From(err)
	}

	m, err := h.service.Find(ctx, uid, input.ID)
	if err != nil {
		return nil, apierr.From(err)
	}
	return &mealOutput{Body: m}, nil
}

func (h *Handler) save(ctx context.Context, input *saveInput) (*mealOutput, error) {
	uid, err := auth.UID(ctx)
	if err != nil {
		return nil, apierr.From(err)
	}

	saved, err := h.service.Save(ctx, uid, input.Body)
	if err != nil {
		h.log.Debug("save rejected", "uid", uid, "id", input.Body.ID, "error", err)
		return nil, apierr.From(err)
	}
	return &mealOutput{Body: saved}, nil
}

func (h *Handler) delete(ctx context.Context, input *idInput) (*struct{}, error) {
	uid, err := auth.UID(ctx)
	if err != nil {
		return nil, apierr.From(err)
	}

	if err := h.service.Delete(ctx, uid, input.ID); err != nil {
		return nil, apierr.From(err)
	}
	return nil, nil
}

// logPortion turns qty servings of a stored meal into a log entry.
func (h *Handler) logPortion(ctx context.Context, input *logPortionInput) (*logOutput, error) {
	uid, err := auth.UID(ctx)
	if err != nil {
		return nil, apierr.From(err)
	}

	m, err := h.service.Find(ctx, uid, input.ID)
	if err != nil {
		return nil, apierr.From(err)
	}

	p, err := m.Portion(input.Body.Qty)
	if err != nil {
		return nil, apierr.From(err)
	}

	id := input.Body.LogID
	if id == "" {
		id = uuid.NewString()
	}

	saved, err := h.logs.Save(ctx, uid, p.ToLog(id, input.Body.Date))
	if err != nil {
		return nil, apierr.From(err)
	}
	return &logOutput{Body: saved}, nil
}
