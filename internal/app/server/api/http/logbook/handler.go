package logbook

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"weightloss/internal/app/server/api/http/apierr"
	"weightloss/internal/app/server/api/http/middleware/auth"
	"weightloss/internal/domain/logbook"
)

type Handler struct {
	service    logbook.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service logbook.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With("component", "log_handler"),
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.getOp(), h.get)
	huma.Register(api, h.saveOp(), h.save)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	uid, err := auth.UID(ctx)
	if err != nil {
		return nil, apierr.From(err)
	}

	logs, err := h.service.List(ctx, uid, input.Date)
	if err != nil {
		return nil, apierr.From(err)
	}
	return &listOutput{Body: logs}, nil
}

func (h *Handler) get(ctx context.Context, input *idInput) (*logOutput, error) {
	uid, err := auth.UID(ctx)
	if err != nil {
		return nil, apierr.From(err)
	}

	l, err := h.service.Find(ctx, uid, input.ID)
	if err != nil {
		return nil, apierr.From(err)
	}
	return &logOutput{Body: l}, nil
}

func (h *Handler) save(ctx context.Context, input *saveInput) (*logOutput, error) {
	uid, err := auth.UID(ctx)
	if err != nil {
		return nil, apierr.From(err)
	}

	saved, err := h.service.Save(ctx, uid, input.Body)
	if err != nil {
		h.log.Debug("save rejected", "uid", uid, "id", input.Body.ID, "error", err)
		return nil, apierr.From(err)
	}
	return &logOutput{Body: saved}, nil
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
