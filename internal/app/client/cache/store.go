// Package cache хранит сериализованные коллекции клиента на устройстве.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
)

// Ключи локального хранилища.
const (
	KeyLogs         = "logs"
	KeyCustomMeals  = "customMeals"
	KeyLocalUsers   = "local_users"
	KeyLocalSession = "local_session"
	KeyBackendToken = "backend_token"
	profilePrefix   = "user:"
)

// ProfileKey возвращает ключ профиля пользователя uid.
func ProfileKey(uid string) string {
	return profilePrefix + uid
}

// Store is a string-keyed store of opaque text values. Each key is read and
// written atomically; there are no multi-key transactions.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	RemoveAll(ctx context.Context, prefix string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// GetJSON читает значение по ключу и декодирует его в T.
// Отсутствующий ключ дает нулевое значение и ok == false.
func GetJSON[T any](ctx context.Context, s Store, key string) (T, bool, error) {
	var v T

	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return v, false, err
	}

	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return v, false, fmt.Errorf("ошибка парсинга %q: %w", key, err)
	}

	return v, true, nil
}

// SetJSON сериализует v и записывает по ключу.
func SetJSON[T any](ctx context.Context, s Store, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("ошибка сериализации %q: %w", key, err)
	}

	return s.Set(ctx, key, string(data))
}
