// Package rest is the remote gateway backed by the HTTP API of cmd/server.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"weightloss/internal/app/client/cache"
	"weightloss/internal/app/client/remote"
	"weightloss/internal/domain/logbook"
	"weightloss/internal/domain/meal"
	"weightloss/internal/domain/user"
)

const healthTTL = 10 * time.Second

// ErrUnauthorized - токен отсутствует, истек или отклонен сервером
var ErrUnauthorized = fmt.Errorf("%w: unauthorized", remote.ErrUnavailable)

type Gateway struct {
	client  *http.Client
	baseURL string
	store   cache.Store
	log     *slog.Logger

	mu           sync.RWMutex
	token        string
	tokenLoaded  bool
	current      *user.Session
	healthyUntil time.Time
	now          func() time.Time

	logs  *collection[logbook.Log]
	meals *collection[meal.CustomMeal]
}

func New(baseURL string, timeout time.Duration, store cache.Store, log *slog.Logger) *Gateway {
	g := &Gateway{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		log:     log.With("component", "rest_gateway"),
		now:     time.Now,
	}
	g.logs = &collection[logbook.Log]{g: g, path: "/logs"}
	g.meals = &collection[meal.CustomMeal]{g: g, path: "/customMeals"}
	return g
}

func (g *Gateway) Configured() bool {
	return g.baseURL != ""
}

// Init загружает сохраненный токен и проверяет доступность сервера
func (g *Gateway) Init(ctx context.Context) error {
	if !g.Configured() {
		return remote.ErrNotConfigured
	}

	if err := g.loadToken(ctx); err != nil {
		return err
	}

	g.mu.RLock()
	healthy := g.now().Before(g.healthyUntil)
	g.mu.RUnlock()
	if healthy {
		return nil
	}

	resp, err := g.doRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}
	if err := g.parseResponse(resp, nil); err != nil {
		return err
	}

	g.mu.Lock()
	g.healthyUntil = g.now().Add(healthTTL)
	g.mu.Unlock()
	return nil
}

func (g *Gateway) loadToken(ctx context.Context) error {
	g.mu.RLock()
	loaded := g.tokenLoaded
	g.mu.RUnlock()
	if loaded {
		return nil
	}

	token, _, err := g.store.Get(ctx, cache.KeyBackendToken)
	if err != nil {
		return fmt.Errorf("ошибка чтения токена: %w", err)
	}

	g.mu.Lock()
	g.token = token
	g.tokenLoaded = true
	g.mu.Unlock()
	return nil
}

func (g *Gateway) setToken(ctx context.Context, token string) error {
	g.mu.Lock()
	g.token = token
	g.tokenLoaded = true
	g.mu.Unlock()

	if token == "" {
		return g.store.Remove(ctx, cache.KeyBackendToken)
	}
	return g.store.Set(ctx, cache.KeyBackendToken, token)
}

func (g *Gateway) SignUp(ctx context.Context, email, password string) (user.Session, error) {
	return g.authenticate(ctx, "/auth/signup", email, password)
}

func (g *Gateway) SignIn(ctx context.Context, email, password string) (user.Session, error) {
	return g.authenticate(ctx, "/auth/login", email, password)
}

func (g *Gateway) authenticate(ctx context.Context, path, email, password string) (user.Session, error) {
	resp, err := g.doRequest(ctx, http.MethodPost, path, user.BaseRequest{Email: email, Password: password})
	if err != nil {
		return user.Session{}, err
	}

	var out user.AuthResponse
	if err := g.parseResponse(resp, &out); err != nil {
		return user.Session{}, err
	}

	if err := g.setToken(ctx, out.Token); err != nil {
		return user.Session{}, fmt.Errorf("ошибка сохранения токена: %w", err)
	}

	s := user.Session{UID: out.User.UID, Email: out.User.Email}
	g.mu.Lock()
	g.current = &s
	g.mu.Unlock()

	return s, nil
}

// SignOut забывает токен; на сервере сессии не хранятся
func (g *Gateway) SignOut(ctx context.Context) error {
	return g.Forget(ctx)
}

// Forget сбрасывает пользователя и токен, сервер не нужен
func (g *Gateway) Forget(ctx context.Context) error {
	g.mu.Lock()
	g.current = nil
	g.mu.Unlock()

	if err := g.setToken(ctx, ""); err != nil {
		return fmt.Errorf("ошибка удаления токена: %w", err)
	}
	return nil
}

func (g *Gateway) CurrentUser() *user.Session {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.current == nil {
		return nil
	}
	s := *g.current
	return &s
}

func (g *Gateway) Logs() remote.Collection[logbook.Log] { return g.logs }

func (g *Gateway) CustomMeals() remote.Collection[meal.CustomMeal] { return g.meals }

func (g *Gateway) GetProfile(ctx context.Context, _ string) (user.Profile, error) {
	resp, err := g.doRequest(ctx, http.MethodGet, "/users/me", nil)
	if err != nil {
		return user.Profile{}, err
	}

	var p user.Profile
	if err := g.parseResponse(resp, &p); err != nil {
		return user.Profile{}, err
	}
	return p, nil
}

func (g *Gateway) PutProfile(ctx context.Context, p user.Profile) (user.Profile, error) {
	resp, err := g.doRequest(ctx, http.MethodPut, "/users/me", struct {
		Name string `json:"name"`
	}{Name: p.Name})
	if err != nil {
		return user.Profile{}, err
	}

	var saved user.Profile
	if err := g.parseResponse(resp, &saved); err != nil {
		return user.Profile{}, err
	}
	return saved, nil
}

func (g *Gateway) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token := g.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	g.log.Debug("Отправка запроса",
		"method", method,
		"url", req.URL.String(),
	)

	resp, err := g.client.Do(req)
	if err != nil {
		g.mu.Lock()
		g.healthyUntil = time.Time{}
		g.mu.Unlock()
		return nil, fmt.Errorf("%w: %v", remote.ErrUnavailable, err)
	}

	return resp, nil
}

func (g *Gateway) bearer() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.token
}

// errorBody - формат ошибок сервера
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (g *Gateway) parseResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: ошибка чтения ответа: %v", remote.ErrUnavailable, err)
	}

	g.log.Debug("Получен ответ",
		"status", resp.StatusCode,
		"bytes", len(body),
	)

	if resp.StatusCode >= 400 {
		return statusError(resp.StatusCode, body)
	}

	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("%w: ошибка парсинга ответа: %v", remote.ErrUnavailable, err)
		}
	}

	return nil
}

// errNotFound is internal: collections turn it into found == false.
var errNotFound = errors.New("not found")

func statusError(status int, body []byte) error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	if ae, ok := user.ParseCode(eb.Code); ok {
		return ae
	}

	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return errNotFound
	}

	if eb.Error != "" {
		return fmt.Errorf("%w: ошибка сервера: %s", remote.ErrUnavailable, eb.Error)
	}
	return fmt.Errorf("%w: ошибка сервера: статус %d", remote.ErrUnavailable, status)
}

type collection[T remote.Doc[T]] struct {
	g    *Gateway
	path string
}

func (c *collection[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var doc T

	resp, err := c.g.doRequest(ctx, http.MethodGet, c.path+"/"+url.PathEscape(id), nil)
	if err != nil {
		return doc, false, err
	}

	if err := c.g.parseResponse(resp, &doc); err != nil {
		if errors.Is(err, errNotFound) {
			return doc, false, nil
		}
		return doc, false, err
	}
	return doc, true, nil
}

func (c *collection[T]) Set(ctx context.Context, doc T) error {
	resp, err := c.g.doRequest(ctx, http.MethodPost, c.path, doc)
	if err != nil {
		return err
	}
	return c.g.parseResponse(resp, nil)
}

func (c *collection[T]) Delete(ctx context.Context, id string) error {
	resp, err := c.g.doRequest(ctx, http.MethodDelete, c.path+"/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}

	err = c.g.parseResponse(resp, nil)
	if errors.Is(err, errNotFound) {
		return nil
	}
	return err
}

// Query возвращает документы текущего пользователя; uid определяется токеном
func (c *collection[T]) Query(ctx context.Context, _ string) ([]T, error) {
	resp, err := c.g.doRequest(ctx, http.MethodGet, c.path, nil)
	if err != nil {
		return nil, err
	}

	var docs []T
	if err := c.g.parseResponse(resp, &docs); err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []T{}
	}
	return docs, nil
}
