// Package api wires the HTTP surface of the sync backend:
//
//	GET    /health
//	POST   /auth/signup, /auth/login
//	GET    /users/me, PUT /users/me                      (auth)
//	GET    /logs[?date=], POST /logs                     (auth)
//	GET    /logs/{id}, DELETE /logs/{id}                 (auth)
//	GET    /logs/stream                                  (auth, websocket)
//	GET    /customMeals, POST /customMeals               (auth)
//	GET    /customMeals/{id}, DELETE /customMeals/{id}   (auth)
//	POST   /customMeals/{id}/portions                    (auth)
package api

import (
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	"weightloss/internal/app/server/api/http/apierr"
	healthAPI "weightloss/internal/app/server/api/http/health"
	logbookAPI "weightloss/internal/app/server/api/http/logbook"
	mealAPI "weightloss/internal/app/server/api/http/meal"
	"weightloss/internal/app/server/api/http/middleware"
	"weightloss/internal/app/server/api/http/middleware/auth"
	"weightloss/internal/app/server/api/http/middleware/logger"
	"weightloss/internal/app/server/api/http/stream"
	userAPI "weightloss/internal/app/server/api/http/user"
	"weightloss/internal/app/server/config"
	"weightloss/internal/domain/logbook"
	"weightloss/internal/domain/meal"
	"weightloss/internal/domain/session"
	"weightloss/internal/domain/user"
	"weightloss/internal/infrastructure/storage/postgres"
)

// Services are the domain services behind the API.
type Services struct {
	Users    user.Servicer
	Sessions session.Servicer
	Logs     logbook.Servicer
	Meals    meal.Servicer
	DB       healthAPI.Pinger
}

// New создает *chi.Mux с операциями huma и потоком изменений
func New(storage *postgres.Storage, cfg *config.Config, log *slog.Logger) (*chi.Mux, error) {
	sessions, err := session.NewService(cfg.Auth.Secret, cfg.Auth.TokenTTL, log)
	if err != nil {
		return nil, fmt.Errorf("session service: %w", err)
	}

	var validator user.Validator = user.NewCredentialValidator()
	if cfg.Auth.StrictPasswords {
		validator = user.NewStrictValidator()
	}

	hub := stream.NewHub(log)
	pool := storage.Pool()

	services := Services{
		Users:    user.NewService(postgres.NewUserRepository(pool, log), validator, log),
		Sessions: sessions,
		Logs:     logbook.NewService(postgres.NewLogRepository(pool, log), hub, log),
		Meals:    meal.NewService(postgres.NewMealRepository(pool, log), hub, log),
		DB:       storage,
	}

	return NewRouter(services, hub, log), nil
}

// NewRouter mounts every route on a fresh mux.
func NewRouter(s Services, hub *stream.Hub, log *slog.Logger) *chi.Mux {
	apierr.Install()

	mux := chi.NewMux()

	cfg := huma.DefaultConfig("Weightloss API", "1.0.0")
	cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}
	API := humachi.New(mux, cfg)

	authMW := auth.New(s.Sessions, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthAPI.NewHandler(s.DB, log, middlewares.GetAllAndClear()).SetupRoutes(API)

	middlewares.Add(loggerMW.Middleware())
	public := middlewares.GetAllAndClear()
	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(authMW.Middleware())
	userAPI.NewHandler(s.Users, s.Sessions, log, public, middlewares.GetAllAndClear()).SetupRoutes(API)

	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(authMW.Middleware())
	logbookAPI.NewHandler(s.Logs, log, middlewares.GetAllAndClear()).SetupRoutes(API)

	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(authMW.Middleware())
	mealAPI.NewHandler(s.Meals, s.Logs, log, middlewares.GetAllAndClear()).SetupRoutes(API)

	mux.With(loggerMW.Handler, authMW.Handler).
		Method("GET", "/logs/stream", stream.NewHandler(hub, log))

	return mux
}
