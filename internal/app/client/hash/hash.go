// Package hash implements the deterministic salted hash used by local sign-in.
package hash

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/exp/slog"
)

const saltSize = 16

type Hasher interface {
	Hash(input string) string
}

// SHA256 returns the lowercase hex SHA-256 digest of the input.
type SHA256 struct{}

func (SHA256) Hash(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// Plain is the degraded mode: the input is stored as is.
// Every call is logged because credentials end up on disk in clear text.
type Plain struct {
	log *slog.Logger
}

func NewPlain(log *slog.Logger) Plain {
	return Plain{log: log.With("component", "hash")}
}

func (p Plain) Hash(input string) string {
	if p.log != nil {
		p.log.Error("Хэширование паролей отключено, учетные данные хранятся открытым текстом")
	}
	return input
}

// New selects the hasher from configuration.
func New(insecurePlain bool, log *slog.Logger) Hasher {
	if insecurePlain {
		log.Warn("В конфигурации включено небезопасное хэширование")
		return NewPlain(log)
	}
	return SHA256{}
}

func NewSalt() (string, error) {
	b := make([]byte, saltSize)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("ошибка генерации соли: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Salted hashes salt immediately followed by password.
func Salted(h Hasher, salt, password string) string {
	return h.Hash(salt + password)
}

// Verify reports whether password matches a stored salted hash.
func Verify(h Hasher, salt, password, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(Salted(h, salt, password)), []byte(stored)) == 1
}
