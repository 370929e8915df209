package user

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"weightloss/internal/app/server/api/http/apierr"
	"weightloss/internal/app/server/api/http/middleware/auth"
	"weightloss/internal/domain/session"
	"weightloss/internal/domain/user"
)

type Handler struct {
	service user.Servicer
	session session.Servicer
	log     *slog.Logger
	public  huma.Middlewares
	private huma.Middlewares
}

func NewHandler(service user.Servicer, session session.Servicer, log *slog.Logger, public, private huma.Middlewares) *Handler {
	return &Handler{
		service: service,
		session: session,
		log:     log.With("component", "user_handler"),
		public:  public,
		private: private,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.signUpOp(), h.signUp)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.profileOp(), h.profile)
	huma.Register(api, h.updateProfileOp(), h.updateProfile)
}

func (h *Handler) signUp(ctx context.Context, input *authInput) (*authOutput, error) {
	u, err := h.service.Register(ctx, input.Body)
	if err != nil {
		return nil, h.fail("sign up", err)
	}
	return h.issue(ctx, u)
}

func (h *Handler) login(ctx context.Context, input *authInput) (*authOutput, error) {
	u, err := h.service.Authenticate(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		return nil, h.fail("login", err)
	}
	return h.issue(ctx, u)
}

func (h *Handler) issue(ctx context.Context, u user.User) (*authOutput, error) {
	token, err := h.session.Create(ctx, u.Session())
	if err != nil {
		return nil, h.fail("create session", err)
	}

	return &authOutput{
		Body: user.AuthResponse{Token: token, User: u.Profile()},
	}, nil
}

func (h *Handler) profile(ctx context.Context, _ *profileInput) (*profileOutput, error) {
	uid, err := auth.UID(ctx)
	if err != nil {
		return nil, apierr.From(err)
	}

	p, err := h.service.Profile(ctx, uid)
	if err != nil {
		return nil, h.fail("get profile", err)
	}
	return &profileOutput{Body: p}, nil
}

func (h *Handler) updateProfile(ctx context.Context, input *updateProfileInput) (*profileOutput, error) {
	uid, err := auth.UID(ctx)
	if err != nil {
		return nil, apierr.From(err)
	}

	p, err := h.service.UpdateProfile(ctx, uid, input.Body.Name)
	if err != nil {
		return nil, h.fail("update profile", err)
	}
	return &profileOutput{Body: p}, nil
}

func (h *Handler) fail(op string, err error) error {
	apiErr := apierr.From(err)
	if apiErr.GetStatus() >= 500 {
		h.log.Error(op+" failed", "error", err)
	} else {
		h.log.Debug(op+" rejected", "error", err)
	}
	return apiErr
}
