package user

import "errors"

// Code is the stable wire identifier of an AuthError.
type Code string

const (
	CodeEmailInUse      Code = "email-already-in-use"
	CodeAccountNotFound Code = "user-not-found"
	CodeWrongPassword   Code = "wrong-password"
	CodeInvalidEmail    Code = "invalid-email"
	CodeWeakPassword    Code = "weak-password"
)

var messages = map[Code]string{
	CodeEmailInUse:      "Email already in use",
	CodeAccountNotFound: "Account not found",
	CodeWrongPassword:   "Incorrect password",
	CodeInvalidEmail:    "Invalid email address",
	CodeWeakPassword:    "Password is too weak",
}

// AuthError is the closed set of authentication failures surfaced to callers.
type AuthError struct {
	Code Code
}

func (e *AuthError) Error() string {
	if msg, ok := messages[e.Code]; ok {
		return msg
	}
	return string(e.Code)
}

// Is matches any AuthError carrying the same code.
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	return ok && t.Code == e.Code
}

var (
	ErrEmailInUse      = &AuthError{Code: CodeEmailInUse}
	ErrAccountNotFound = &AuthError{Code: CodeAccountNotFound}
	ErrWrongPassword   = &AuthError{Code: CodeWrongPassword}
	ErrInvalidEmail    = &AuthError{Code: CodeInvalidEmail}
	ErrWeakPassword    = &AuthError{Code: CodeWeakPassword}

	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNotFound         = errors.New("user not found")
	ErrAlreadyExists    = errors.New("user already exists")
)

// ParseCode maps a wire code back to its AuthError.
func ParseCode(code string) (*AuthError, bool) {
	c := Code(code)
	if _, ok := messages[c]; !ok {
		return nil, false
	}
	return &AuthError{Code: c}, true
}

// CodeOf extracts the wire code of err, if it is an AuthError.
func CodeOf(err error) (Code, bool) {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Code, true
	}
	return "", false
}
