package user

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
)

const (
	MinPasswordLen = 6
	MaxEmailLen    = 254
)

// Validator checks credentials before they reach any credential store.
type Validator interface {
	ValidateRegister(email, password string) error
	ValidateEmail(email string) error
	ValidatePassword(password string) error
}

type CredentialValidator struct {
	requireDigit bool
	requireUpper bool
	requireLower bool
}

// NewCredentialValidator returns the validator shared by the local fallback and the server.
func NewCredentialValidator() *CredentialValidator {
	return &CredentialValidator{}
}

// NewStrictValidator additionally requires mixed case and a digit.
func NewStrictValidator() *CredentialValidator {
	return &CredentialValidator{
		requireDigit: true,
		requireUpper: true,
		requireLower: true,
	}
}

func (v *CredentialValidator) ValidateRegister(email, password string) error {
	if err := v.ValidateEmail(email); err != nil {
		return err
	}
	return v.ValidatePassword(password)
}

func (v *CredentialValidator) ValidateEmail(email string) error {
	if email == "" || len(email) > MaxEmailLen || strings.TrimSpace(email) != email {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}

	at := strings.LastIndexByte(email, '@')
	if !strings.Contains(email[at+1:], ".") {
		return fmt.Errorf("%w: domain of %q has no dot", ErrInvalidEmail, email)
	}

	return nil
}

func (v *CredentialValidator) ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("%w: must be at least %d characters", ErrWeakPassword, MinPasswordLen)
	}

	hasLower := false
	hasUpper := false
	hasDigit := false

	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if v.requireLower && !hasLower {
		return fmt.Errorf("%w: must contain a lowercase letter", ErrWeakPassword)
	}
	if v.requireUpper && !hasUpper {
		return fmt.Errorf("%w: must contain an uppercase letter", ErrWeakPassword)
	}
	if v.requireDigit && !hasDigit {
		return fmt.Errorf("%w: must contain a digit", ErrWeakPassword)
	}

	return nil
}
