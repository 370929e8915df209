package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"weightloss/internal/app/server/api/http/apierr"
	"weightloss/internal/domain/session"
	"weightloss/internal/domain/user"
)

type Auth struct {
	session session.Servicer
	log     *slog.Logger
}

func New(session session.Servicer, log *slog.Logger) *Auth {
	return &Auth{
		session: session,
		log:     log.With("component", "auth_middleware"),
	}
}

type contextKey string

const SessionKey contextKey = "session"

var unauthorized = apierr.Error{Message: "Unauthorized", Code: apierr.CodeUnauthorized}

// Middleware возвращает middleware для Huma с сигнатурой func(ctx Context, next func(Context))
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		s, ok := a.authenticate(ctx.Context(), ctx.Header("Authorization"))
		if !ok {
			ctx.SetStatus(http.StatusUnauthorized)
			ctx.SetHeader("Content-Type", "application/json")
			if err := json.NewEncoder(ctx.BodyWriter()).Encode(unauthorized); err != nil {
				a.log.Error("json encode", "error", err)
			}
			return
		}

		next(huma.WithContext(ctx, WithSession(ctx.Context(), s)))
	}
}

// Handler is the plain net/http form used by routes outside huma.
func (a *Auth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := a.authenticate(r.Context(), r.Header.Get("Authorization"))
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(unauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

func (a *Auth) authenticate(ctx context.Context, header string) (user.Session, bool) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		a.log.Debug("missing bearer token")
		return user.Session{}, false
	}

	s, err := a.session.Validate(ctx, token)
	if err != nil {
		a.log.Debug("validate error", "error", err)
		return user.Session{}, false
	}
	return s, true
}

func WithSession(ctx context.Context, s user.Session) context.Context {
	return context.WithValue(ctx, SessionKey, s)
}

func GetSession(ctx context.Context) (user.Session, bool) {
	s, ok := ctx.Value(SessionKey).(user.Session)
	return s, ok
}

// UID returns the authenticated uid or user.ErrNotAuthenticated.
func UID(ctx context.Context) (string, error) {
	s, ok := GetSession(ctx)
	if !ok || s.UID == "" {
		return "", user.ErrNotAuthenticated
	}
	return s.UID, nil
}
