// Package auth is the client Authentication Coordinator. It signs users in
// against the remote backend when one is usable and against the on-device
// credential store otherwise.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"weightloss/internal/app/client/cache"
	"weightloss/internal/app/client/hash"
	"weightloss/internal/app/client/notify"
	"weightloss/internal/app/client/remote"
	"weightloss/internal/domain/user"
)

type Coordinator struct {
	store     cache.Store
	gateway   remote.Gateway
	hasher    hash.Hasher
	validator user.Validator
	hub       *notify.Hub[*user.Session]
	log       *slog.Logger

	mu      sync.RWMutex
	session *user.Session

	// credMu serializes read-modify-write of local_users.
	credMu sync.Mutex
}

func New(store cache.Store, gateway remote.Gateway, hasher hash.Hasher, validator user.Validator, log *slog.Logger) *Coordinator {
	if gateway == nil {
		gateway = remote.Null{}
	}
	return &Coordinator{
		store:     store,
		gateway:   gateway,
		hasher:    hasher,
		validator: validator,
		hub:       notify.NewHub[*user.Session](),
		log:       log.With("component", "auth"),
	}
}

// Restore loads the persisted session, if any.
func (c *Coordinator) Restore(ctx context.Context) error {
	s, ok, err := cache.GetJSON[user.Session](ctx, c.store, cache.KeyLocalSession)
	if err != nil {
		return fmt.Errorf("ошибка восстановления сессии: %w", err)
	}
	if !ok || s.UID == "" {
		return nil
	}

	c.mu.Lock()
	c.session = &s
	c.mu.Unlock()
	return nil
}

func (c *Coordinator) SignUp(ctx context.Context, email, password string) (user.Session, error) {
	if remote.Usable(ctx, c.gateway) {
		s, err := c.gateway.SignUp(ctx, email, password)
		if err != nil {
			return user.Session{}, c.remoteErr("ошибка регистрации", err)
		}
		return s, c.establish(ctx, s)
	}

	s, err := c.localSignUp(ctx, email, password)
	if err != nil {
		return user.Session{}, err
	}
	return s, c.establishLocal(ctx, s)
}

func (c *Coordinator) SignIn(ctx context.Context, email, password string) (user.Session, error) {
	if remote.Usable(ctx, c.gateway) {
		s, err := c.gateway.SignIn(ctx, email, password)
		if err != nil {
			return user.Session{}, c.remoteErr("ошибка входа", err)
		}
		return s, c.establish(ctx, s)
	}

	s, err := c.localSignIn(ctx, email, password)
	if err != nil {
		return user.Session{}, err
	}
	return s, c.establishLocal(ctx, s)
}

// SignOut clears the session. Remote sign-out failures are logged only;
// the gateway forgets its token even when the backend is unreachable.
func (c *Coordinator) SignOut(ctx context.Context) error {
	if remote.Usable(ctx, c.gateway) {
		if err := c.gateway.SignOut(ctx); err != nil {
			c.log.Warn("Не удалось выйти на сервере", "error", err)
		}
	}
	if err := c.gateway.Forget(ctx); err != nil {
		c.log.Warn("Не удалось сбросить учетные данные сервера", "error", err)
	}

	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()

	err := c.store.Remove(ctx, cache.KeyLocalSession)
	c.hub.Publish(nil)

	if err != nil {
		return fmt.Errorf("ошибка очистки сессии: %w", err)
	}
	return nil
}

// Subscribe calls fn with the current session right away and on every
// sign-in or sign-out afterwards.
func (c *Coordinator) Subscribe(fn func(*user.Session)) func() {
	unsubscribe := c.hub.Subscribe(fn)
	fn(c.CurrentSession())
	return unsubscribe
}

func (c *Coordinator) CurrentSession() *user.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

// UID is the uid data operations are scoped to.
func (c *Coordinator) UID() string {
	if s := c.CurrentSession(); s != nil {
		return s.UID
	}
	return user.LocalUID
}

func (c *Coordinator) establish(ctx context.Context, s user.Session) error {
	c.mu.Lock()
	c.session = &s
	c.mu.Unlock()

	err := cache.SetJSON(ctx, c.store, cache.KeyLocalSession, s)
	c.hub.Publish(&s)

	if err != nil {
		return fmt.Errorf("ошибка сохранения сессии: %w", err)
	}
	return nil
}

// establishLocal drops any remote identity so later remote calls are not
// authorised as a previous user.
func (c *Coordinator) establishLocal(ctx context.Context, s user.Session) error {
	if err := c.gateway.Forget(ctx); err != nil {
		c.log.Warn("Не удалось сбросить учетные данные сервера", "error", err)
	}
	return c.establish(ctx, s)
}

func (c *Coordinator) remoteErr(op string, err error) error {
	if _, ok := user.CodeOf(err); ok {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (c *Coordinator) localSignUp(ctx context.Context, email, password string) (user.Session, error) {
	if err := c.validator.ValidateRegister(email, password); err != nil {
		var ae *user.AuthError
		if errors.As(err, &ae) {
			c.log.Debug("Данные регистрации не прошли проверку", "email", email, "error", err)
			return user.Session{}, ae
		}
		return user.Session{}, err
	}

	c.credMu.Lock()
	defer c.credMu.Unlock()

	creds, err := c.credentials(ctx)
	if err != nil {
		return user.Session{}, err
	}
	if _, ok := find(creds, email); ok {
		return user.Session{}, user.ErrEmailInUse
	}

	salt, err := hash.NewSalt()
	if err != nil {
		return user.Session{}, err
	}

	cred := user.LocalCredential{
		UID:          uuid.NewString(),
		Email:        email,
		Salt:         salt,
		PasswordHash: hash.Salted(c.hasher, salt, password),
	}

	if err := c.saveCredentials(ctx, append(creds, cred)); err != nil {
		return user.Session{}, err
	}

	c.log.Info("Создан локальный аккаунт", "uid", cred.UID)
	return cred.Session(), nil
}

func (c *Coordinator) localSignIn(ctx context.Context, email, password string) (user.Session, error) {
	c.credMu.Lock()
	defer c.credMu.Unlock()

	creds, err := c.credentials(ctx)
	if err != nil {
		return user.Session{}, err
	}

	i, ok := find(creds, email)
	if !ok {
		return user.Session{}, user.ErrAccountNotFound
	}
	cred := creds[i]

	if cred.Hashed() {
		if !hash.Verify(c.hasher, cred.Salt, password, cred.PasswordHash) {
			return user.Session{}, user.ErrWrongPassword
		}
		return cred.Session(), nil
	}

	if cred.Password == "" || subtle.ConstantTimeCompare([]byte(cred.Password), []byte(password)) != 1 {
		return user.Session{}, user.ErrWrongPassword
	}

	if err := c.upgrade(ctx, creds, i, password); err != nil {
		c.log.Warn("Не удалось обновить устаревшие учетные данные", "uid", cred.UID, "error", err)
	}

	return cred.Session(), nil
}

// upgrade replaces a plain text credential with a salted hash.
func (c *Coordinator) upgrade(ctx context.Context, creds []user.LocalCredential, i int, password string) error {
	salt, err := hash.NewSalt()
	if err != nil {
		return err
	}

	creds[i].Salt = salt
	creds[i].PasswordHash = hash.Salted(c.hasher, salt, password)
	creds[i].Password = ""

	if err := c.saveCredentials(ctx, creds); err != nil {
		return err
	}

	c.log.Info("Устаревшие учетные данные обновлены", "uid", creds[i].UID)
	return nil
}

func (c *Coordinator) credentials(ctx context.Context) ([]user.LocalCredential, error) {
	creds, _, err := cache.GetJSON[[]user.LocalCredential](ctx, c.store, cache.KeyLocalUsers)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения локальных пользователей: %w", err)
	}
	return creds, nil
}

func (c *Coordinator) saveCredentials(ctx context.Context, creds []user.LocalCredential) error {
	if err := cache.SetJSON(ctx, c.store, cache.KeyLocalUsers, creds); err != nil {
		return fmt.Errorf("ошибка записи локальных пользователей: %w", err)
	}
	return nil
}

func find(creds []user.LocalCredential, email string) (int, bool) {
	for i, cred := range creds {
		if strings.EqualFold(cred.Email, email) {
			return i, true
		}
	}
	return -1, false
}
