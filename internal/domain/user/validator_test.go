package user

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialValidator_ValidateEmail(t *testing.T) {
	validator := NewCredentialValidator()

	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid email", email: "alice@example.com"},
		{name: "valid with plus", email: "alice+food@example.co.uk"},
		{name: "empty", email: "", wantErr: true},
		{name: "missing at", email: "alice.example.com", wantErr: true},
		{name: "missing domain dot", email: "alice@localhost", wantErr: true},
		{name: "display name form", email: "Alice <alice@example.com>", wantErr: true},
		{name: "surrounding spaces", email: " alice@example.com ", wantErr: true},
		{name: "too long", email: strings.Repeat("a", 250) + "@example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateEmail(tt.email)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidEmail)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCredentialValidator_ValidatePassword(t *testing.T) {
	tests := []struct {
		name      string
		validator *CredentialValidator
		password  string
		wantErr   string
	}{
		{name: "default accepts six chars", validator: NewCredentialValidator(), password: "secret"},
		{name: "default rejects five chars", validator: NewCredentialValidator(), password: "abcde", wantErr: "at least 6 characters"},
		{name: "strict accepts mixed", validator: NewStrictValidator(), password: "Secret1"},
		{name: "strict needs upper", validator: NewStrictValidator(), password: "secret1", wantErr: "uppercase"},
		{name: "strict needs lower", validator: NewStrictValidator(), password: "SECRET1", wantErr: "lowercase"},
		{name: "strict needs digit", validator: NewStrictValidator(), password: "Secrets", wantErr: "digit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validator.ValidatePassword(tt.password)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrWeakPassword)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestAuthError_Codes(t *testing.T) {
	for _, code := range []Code{CodeEmailInUse, CodeAccountNotFound, CodeWrongPassword, CodeInvalidEmail, CodeWeakPassword} {
		ae, ok := ParseCode(string(code))
		require.True(t, ok, code)
		assert.True(t, errors.Is(ae, &AuthError{Code: code}))

		got, ok := CodeOf(errors.Join(errors.New("context"), ae))
		require.True(t, ok)
		assert.Equal(t, code, got)
	}

	_, ok := ParseCode("auth/unknown")
	assert.False(t, ok)

	assert.False(t, errors.Is(ErrWrongPassword, ErrAccountNotFound))
	assert.Equal(t, "Incorrect password", ErrWrongPassword.Error())
}
