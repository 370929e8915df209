// Package remotetest provides an in-memory remote gateway with failure injection.
package remotetest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"weightloss/internal/app/client/remote"
	"weightloss/internal/domain/logbook"
	"weightloss/internal/domain/meal"
	"weightloss/internal/domain/user"
)

type account struct {
	session  user.Session
	password string
	name     string
}

// Gateway is a configured backend held in memory.
//
// SetInitErr makes the entry probe fail. SetDown keeps the probe healthy but
// fails every subsequent call with remote.ErrUnavailable.
type Gateway struct {
	mu        sync.Mutex
	initErr   error
	down      bool
	accounts  map[string]*account
	current   *user.Session
	validator user.Validator
	calls     map[string]int

	logs  *collection[logbook.Log]
	meals *collection[meal.CustomMeal]
}

func New() *Gateway {
	g := &Gateway{
		accounts:  make(map[string]*account),
		validator: user.NewCredentialValidator(),
		calls:     make(map[string]int),
	}
	g.logs = &collection[logbook.Log]{g: g, name: remote.CollectionLogs, docs: map[string]logbook.Log{}}
	g.meals = &collection[meal.CustomMeal]{g: g, name: remote.CollectionCustomMeals, docs: map[string]meal.CustomMeal{}}
	return g
}

func (g *Gateway) SetInitErr(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.initErr = err
}

func (g *Gateway) SetDown(down bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.down = down
}

// Calls returns how many times op reached the backend.
func (g *Gateway) Calls(op string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[op]
}

func (g *Gateway) enter(op string) error {
	g.calls[op]++
	if g.down {
		return fmt.Errorf("%s: %w", op, remote.ErrUnavailable)
	}
	return nil
}

func (g *Gateway) Configured() bool { return true }

func (g *Gateway) Init(context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls["init"]++
	return g.initErr
}

func (g *Gateway) SignUp(_ context.Context, email, password string) (user.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.enter("signup"); err != nil {
		return user.Session{}, err
	}
	if _, ok := g.accounts[email]; ok {
		return user.Session{}, user.ErrEmailInUse
	}
	if err := g.validator.ValidateRegister(email, password); err != nil {
		return user.Session{}, err
	}

	s := user.Session{UID: uuid.NewString(), Email: email}
	g.accounts[email] = &account{session: s, password: password}
	g.current = &s
	return s, nil
}

func (g *Gateway) SignIn(_ context.Context, email, password string) (user.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.enter("signin"); err != nil {
		return user.Session{}, err
	}
	acc, ok := g.accounts[email]
	if !ok {
		return user.Session{}, user.ErrAccountNotFound
	}
	if acc.password != password {
		return user.Session{}, user.ErrWrongPassword
	}

	s := acc.session
	g.current = &s
	return s, nil
}

func (g *Gateway) SignOut(context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.current = nil
	return g.enter("signout")
}

func (g *Gateway) Forget(context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.current = nil
	return nil
}

func (g *Gateway) CurrentUser() *user.Session {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.current == nil {
		return nil
	}
	s := *g.current
	return &s
}

func (g *Gateway) Logs() remote.Collection[logbook.Log] { return g.logs }
func (g *Gateway) CustomMeals() remote.Collection[meal.CustomMeal] { return g.meals }

// SeedLog stores l directly, as if another device had written it.
func (g *Gateway) SeedLog(l logbook.Log) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.logs.docs[l.ID] = l
}

func (g *Gateway) GetProfile(_ context.Context, uid string) (user.Profile, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.enter("get_profile"); err != nil {
		return user.Profile{}, err
	}
	for _, acc := range g.accounts {
		if acc.session.UID == uid {
			return user.Profile{UID: uid, Email: acc.session.Email, Name: acc.name}, nil
		}
	}
	return user.Profile{}, user.ErrNotFound
}

func (g *Gateway) PutProfile(_ context.Context, p user.Profile) (user.Profile, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.enter("put_profile"); err != nil {
		return user.Profile{}, err
	}
	for _, acc := range g.accounts {
		if acc.session.UID == p.UID {
			acc.name = p.Name
			return user.Profile{UID: p.UID, Email: acc.session.Email, Name: acc.name}, nil
		}
	}
	return user.Profile{}, user.ErrNotFound
}

type collection[T remote.Doc[T]] struct {
	g    *Gateway
	name string
	docs map[string]T
}

func (c *collection[T]) Get(_ context.Context, id string) (T, bool, error) {
	c.g.mu.Lock()
	defer c.g.mu.Unlock()

	var zero T
	if err := c.g.enter(c.name + ".get"); err != nil {
		return zero, false, err
	}
	doc, ok := c.docs[id]
	return doc, ok, nil
}

func (c *collection[T]) Set(_ context.Context, doc T) error {
	c.g.mu.Lock()
	defer c.g.mu.Unlock()

	if err := c.g.enter(c.name + ".set"); err != nil {
		return err
	}
	c.docs[doc.DocID()] = doc
	return nil
}

func (c *collection[T]) Delete(_ context.Context, id string) error {
	c.g.mu.Lock()
	defer c.g.mu.Unlock()

	if err := c.g.enter(c.name + ".delete"); err != nil {
		return err
	}
	delete(c.docs, id)
	return nil
}

func (c *collection[T]) Query(_ context.Context, uid string) ([]T, error) {
	c.g.mu.Lock()
	defer c.g.mu.Unlock()

	if err := c.g.enter(c.name + ".query"); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(c.docs))
	for id, doc := range c.docs {
		if doc.OwnerUID() == uid {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.docs[id])
	}
	return out, nil
}
