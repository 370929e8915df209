package auth

import (
	"context"

	"weightloss/internal/app/client/cache"
	"weightloss/internal/app/client/remote"
	"weightloss/internal/domain/user"
)

// SaveProfile stores p for the signed-in user.
func (c *Coordinator) SaveProfile(ctx context.Context, p user.Profile) (user.Profile, error) {
	s := c.CurrentSession()
	if s == nil {
		return user.Profile{}, user.ErrNotAuthenticated
	}

	p.UID = s.UID
	if p.Email == "" {
		p.Email = s.Email
	}

	if remote.Usable(ctx, c.gateway) {
		saved, err := c.gateway.PutProfile(ctx, p)
		if err == nil {
			c.mirrorProfile(ctx, saved)
			return saved, nil
		}
		c.log.Warn("Не удалось сохранить профиль на сервере, сохраняем локально", "uid", p.UID, "error", err)
	}

	if err := cache.SetJSON(ctx, c.store, cache.ProfileKey(p.UID), p); err != nil {
		return user.Profile{}, err
	}
	return p, nil
}

// FetchProfile loads the profile of uid, or of the signed-in user when uid is empty.
func (c *Coordinator) FetchProfile(ctx context.Context, uid string) (user.Profile, error) {
	s := c.CurrentSession()
	if s == nil {
		return user.Profile{}, user.ErrNotAuthenticated
	}
	if uid == "" {
		uid = s.UID
	}

	if remote.Usable(ctx, c.gateway) {
		p, err := c.gateway.GetProfile(ctx, uid)
		if err == nil {
			c.mirrorProfile(ctx, p)
			return p, nil
		}
		c.log.Warn("Не удалось получить профиль с сервера, используем локальный", "uid", uid, "error", err)
	}

	p, ok, err := cache.GetJSON[user.Profile](ctx, c.store, cache.ProfileKey(uid))
	if err != nil {
		return user.Profile{}, err
	}
	if !ok {
		p = user.Profile{UID: uid}
		if uid == s.UID {
			p.Email = s.Email
		}
	}
	return p, nil
}

func (c *Coordinator) mirrorProfile(ctx context.Context, p user.Profile) {
	if err := cache.SetJSON(ctx, c.store, cache.ProfileKey(p.UID), p); err != nil {
		c.log.Warn("Не удалось сохранить копию профиля", "uid", p.UID, "error", err)
	}
}
