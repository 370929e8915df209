package api

import (
	"context"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"weightloss/internal/app/client/cache"
	"weightloss/internal/app/client/remote/rest"
	"weightloss/internal/app/server/api/http/stream"
	"weightloss/internal/domain/logbook"
	"weightloss/internal/domain/meal"
	"weightloss/internal/domain/session"
	"weightloss/internal/domain/user"
)

type memUsers struct {
	mu   sync.Mutex
	byID map[string]user.User
}

func (r *memUsers) Create(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return user.ErrAlreadyExists
		}
	}
	r.byID[u.ID] = u
	return nil
}

func (r *memUsers) FindByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *memUsers) FindByID(_ context.Context, id string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *memUsers) UpdateName(_ context.Context, id, name string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	u.Name = name
	r.byID[id] = u
	return u, nil
}

type memLogs struct {
	mu   sync.Mutex
	byID map[string]logbook.Log
}

func (r *memLogs) List(_ context.Context, uid, date string) ([]logbook.Log, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []logbook.Log{}
	for _, l := range r.byID {
		if l.UID == uid && (date == "" || l.Date == date) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memLogs) Get(_ context.Context, uid, id string) (logbook.Log, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.byID[id]
	if !ok || l.UID != uid {
		return logbook.Log{}, logbook.ErrNotFound
	}
	return l, nil
}

func (r *memLogs) Upsert(_ context.Context, l logbook.Log) (logbook.Log, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byID[l.ID]; ok && existing.UID != l.UID {
		return logbook.Log{}, logbook.ErrForeignOwner
	}
	r.byID[l.ID] = l
	return l, nil
}

func (r *memLogs) Delete(_ context.Context, uid, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.byID[id]; ok && l.UID == uid {
		delete(r.byID, id)
	}
	return nil
}

type memMeals struct {
	mu   sync.Mutex
	byID map[string]meal.CustomMeal
}

func (r *memMeals) List(_ context.Context, uid string) ([]meal.CustomMeal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []meal.CustomMeal{}
	for _, m := range r.byID {
		if m.UID == uid {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMeals) Get(_ context.Context, uid, id string) (meal.CustomMeal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[id]
	if !ok || m.UID != uid {
		return meal.CustomMeal{}, meal.ErrNotFound
	}
	return m, nil
}

func (r *memMeals) Upsert(_ context.Context, m meal.CustomMeal) (meal.CustomMeal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[m.ID] = m
	return m, nil
}

func (r *memMeals) Delete(_ context.Context, uid, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := slog.Default()

	sessions, err := session.NewService("test-secret", time.Hour, log)
	require.NoError(t, err)

	hub := stream.NewHub(log)
	services := Services{
		Users:    user.NewService(&memUsers{byID: map[string]user.User{}}, user.NewCredentialValidator(), log),
		Sessions: sessions,
		Logs:     logbook.NewService(&memLogs{byID: map[string]logbook.Log{}}, hub, log),
		Meals:    meal.NewService(&memMeals{byID: map[string]meal.CustomMeal{}}, hub, log),
	}

	srv := httptest.NewServer(NewRouter(services, hub, log))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(srv *httptest.Server) *rest.Gateway {
	return rest.New(srv.URL, 5*time.Second, cache.NewMemoryStore(), slog.Default())
}

func TestRouter_AuthRoundTrip(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	g := newClient(srv)

	require.NoError(t, g.Init(ctx))

	s, err := g.SignUp(ctx, "alice@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", s.Email)
	assert.NotEmpty(t, s.UID)

	_, err = newClient(srv).SignUp(ctx, "alice@x.com", "secret1")
	assert.ErrorIs(t, err, user.ErrEmailInUse)

	_, err = newClient(srv).SignIn(ctx, "alice@x.com", "nope12")
	assert.ErrorIs(t, err, user.ErrWrongPassword)

	_, err = newClient(srv).SignIn(ctx, "bob@x.com", "secret1")
	assert.ErrorIs(t, err, user.ErrAccountNotFound)

	again, err := newClient(srv).SignIn(ctx, "alice@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, s.UID, again.UID)

	p, err := g.PutProfile(ctx, user.Profile{UID: s.UID, Name: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", p.Name)

	p, err = g.GetProfile(ctx, s.UID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", p.Name)
}

func TestRouter_LogsRoundTrip(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()

	alice := newClient(srv)
	aliceSession, err := alice.SignUp(ctx, "alice@x.com", "secret1")
	require.NoError(t, err)
	bob := newClient(srv)
	_, err = bob.SignUp(ctx, "bob@x.com", "secret1")
	require.NoError(t, err)

	entry := logbook.Log{
		ID:        "l1",
		UID:       aliceSession.UID,
		Date:      "2024-05-01",
		Meal:      "Oats",
		Nutrition: &logbook.Nutrition{Total: logbook.Totals{Calories: 150}},
	}
	require.NoError(t, alice.Logs().Set(ctx, entry))

	got, found, err := alice.Logs().Get(ctx, "l1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, entry, got)

	_, found, err = bob.Logs().Get(ctx, "l1")
	require.NoError(t, err)
	assert.False(t, found)

	bobLogs, err := bob.Logs().Query(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, bobLogs)

	aliceLogs, err := alice.Logs().Query(ctx, aliceSession.UID)
	require.NoError(t, err)
	assert.Len(t, aliceLogs, 1)

	require.NoError(t, alice.Logs().Delete(ctx, "l1"))
	require.NoError(t, alice.Logs().Delete(ctx, "l1"))

	aliceLogs, err = alice.Logs().Query(ctx, aliceSession.UID)
	require.NoError(t, err)
	assert.Empty(t, aliceLogs)
}

func TestRouter_CustomMealsRoundTrip(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()

	g := newClient(srv)
	s, err := g.SignUp(ctx, "alice@x.com", "secret1")
	require.NoError(t, err)

	oats := meal.CustomMeal{ID: "m1", UID: s.UID, Name: "Oats", Calories: 150}
	require.NoError(t, g.CustomMeals().Set(ctx, oats))

	meals, err := g.CustomMeals().Query(ctx, s.UID)
	require.NoError(t, err)
	assert.Equal(t, []meal.CustomMeal{oats}, meals)
}

func TestRouter_UnauthorizedWithoutToken(t *testing.T) {
	srv := newServer(t)

	_, err := newClient(srv).Logs().Query(context.Background(), "")
	assert.ErrorIs(t, err, rest.ErrUnauthorized)
}

func TestRouter_StreamAnnouncesWrites(t *testing.T) {
	srv := newServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g := newClient(srv)
	s, err := g.SignUp(ctx, "alice@x.com", "secret1")
	require.NoError(t, err)

	events := make(chan string, 4)
	go func() {
		_ = g.Watch(ctx, func(collection string) { events <- collection })
	}()

	entry := logbook.Log{ID: "l1", UID: s.UID, Date: "2024-05-01", Meal: "Oats"}
	require.Eventually(t, func() bool {
		if err := g.Logs().Set(ctx, entry); err != nil {
			return false
		}
		select {
		case c := <-events:
			return c == logbook.Collection
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}
