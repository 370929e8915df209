package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	gosync "sync"
	"syscall"
	"time"

	"golang.org/x/exp/slog"

	"weightloss/internal/app/client/auth"
	"weightloss/internal/app/client/cache"
	"weightloss/internal/app/client/config"
	"weightloss/internal/app/client/hash"
	"weightloss/internal/app/client/logs"
	"weightloss/internal/app/client/meals"
	"weightloss/internal/app/client/remote"
	"weightloss/internal/app/client/remote/rest"
	"weightloss/internal/domain/user"
)

const (
	StatusConnected = "Cloud: Connected"
	StatusOffline   = "Cloud: Offline"

	watchRetry = 5 * time.Second
)

// App владеет всеми компонентами клиента; создается один раз в корне процесса
type App struct {
	config  *config.Config
	log     *slog.Logger
	store   cache.Store
	gateway remote.Gateway

	Auth  *auth.Coordinator
	Logs  *logs.Repository
	Meals *meals.Repository

	wg     gosync.WaitGroup
	cancel context.CancelFunc
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	// Локальное хранилище: SQLite, при ошибке - память
	store := cache.Open(cfg.DataPath, log)

	var gateway remote.Gateway = remote.Null{}
	if cfg.RemoteConfigured() {
		gateway = rest.New(cfg.BackendURL, cfg.RequestTimeout, store, log)
	}

	app := assemble(cfg, store, gateway, hash.New(cfg.InsecurePlainHash, log), log)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	if err := app.Auth.Restore(ctx); err != nil {
		app.log.Warn("Не удалось восстановить сессию", "error", err)
	}

	return app, nil
}

func assemble(cfg *config.Config, store cache.Store, gateway remote.Gateway, hasher hash.Hasher, log *slog.Logger) *App {
	coordinator := auth.New(store, gateway, hasher, user.NewCredentialValidator(), log)

	return &App{
		config:  cfg,
		log:     log.With("component", "app"),
		store:   store,
		gateway: gateway,
		Auth:    coordinator,
		Logs:    logs.New(store, gateway, coordinator.UID, log),
		Meals:   meals.New(store, gateway, coordinator.UID, log),
	}
}

// Status сообщает, доступен ли сервер прямо сейчас
func (a *App) Status(ctx context.Context) string {
	if remote.Usable(ctx, a.gateway) {
		return StatusConnected
	}
	return StatusOffline
}

// Watch слушает поток изменений сервера и обновляет подписчиков логов.
// Переподключается, пока ctx не отменен.
func (a *App) Watch(ctx context.Context) error {
	watcher, ok := a.gateway.(remote.Watcher)
	if !ok || !a.gateway.Configured() {
		return remote.ErrNotConfigured
	}

	ticker := time.NewTicker(watchRetry)
	defer ticker.Stop()

	for {
		err := watcher.Watch(ctx, func(collection string) {
			if collection != remote.CollectionLogs {
				return
			}
			if err := a.Logs.Refresh(ctx); err != nil {
				a.log.Warn("Ошибка обновления логов", "error", err)
			}
		})

		if ctx.Err() != nil {
			return nil
		}
		if errors.Is(err, rest.ErrUnauthorized) {
			return fmt.Errorf("поток изменений: %w", err)
		}
		a.log.Warn("Поток изменений прерван, переподключение", "error", err, "retry", watchRetry)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Run запускает фоновую подписку до получения сигнала завершения
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	go a.handleSignals()

	var runErr error
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		runErr = a.Watch(ctx)
	}()

	a.log.Info("Клиент запущен",
		"backend", a.config.BackendURL,
		"env", a.config.Env,
	)

	a.wg.Wait()
	return runErr
}

func (a *App) handleSignals() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	sig := <-sigChan
	a.log.Info("Получен сигнал завершения", "signal", sig.String())

	if a.cancel != nil {
		a.cancel()
	}
}

func (a *App) Shutdown() {
	if a.cancel != nil {
		a.cancel()
	}

	a.wg.Wait()

	if err := a.store.Close(); err != nil {
		a.log.Warn("Ошибка закрытия хранилища", "error", err)
	}
}

func (a *App) Config() *config.Config {
	return a.config
}
