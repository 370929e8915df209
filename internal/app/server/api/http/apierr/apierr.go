// Package apierr renders every API failure as {"error": ..., "code": ...},
// the envelope the client maps back to typed errors.
package apierr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"weightloss/internal/domain/logbook"
	"weightloss/internal/domain/meal"
	"weightloss/internal/domain/user"
)

const (
	CodeUnauthorized = "unauthorized"
	CodeNotFound     = "not-found"
	CodeInvalidData  = "invalid-data"
	CodeForbidden    = "forbidden"
	CodeInternal     = "internal"
)

type Error struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
	Code    string `json:"code,omitempty"`
}

func (e *Error) Error() string  { return e.Message }
func (e *Error) GetStatus() int { return e.Status }

// New replaces huma.NewError so validation failures use the same envelope.
func New(status int, msg string, errs ...error) huma.StatusError {
	details := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			details = append(details, err.Error())
		}
	}
	if len(details) > 0 {
		msg = msg + ": " + strings.Join(details, "; ")
	}

	code := CodeInternal
	switch {
	case status == http.StatusUnauthorized:
		code = CodeUnauthorized
	case status == http.StatusNotFound:
		code = CodeNotFound
	case status < http.StatusInternalServerError:
		code = CodeInvalidData
	}

	return &Error{Status: status, Message: msg, Code: code}
}

func Install() {
	huma.NewError = New
}

var authStatus = map[user.Code]int{
	user.CodeEmailInUse:      http.StatusConflict,
	user.CodeAccountNotFound: http.StatusNotFound,
	user.CodeWrongPassword:   http.StatusUnauthorized,
	user.CodeInvalidEmail:    http.StatusBadRequest,
	user.CodeWeakPassword:    http.StatusBadRequest,
}

// From maps a domain error onto its HTTP status and wire code.
func From(err error) huma.StatusError {
	if code, ok := user.CodeOf(err); ok {
		return &Error{Status: authStatus[code], Message: err.Error(), Code: string(code)}
	}

	switch {
	case errors.Is(err, user.ErrNotFound),
		errors.Is(err, logbook.ErrNotFound),
		errors.Is(err, meal.ErrNotFound):
		return &Error{Status: http.StatusNotFound, Message: err.Error(), Code: CodeNotFound}
	case errors.Is(err, logbook.ErrInvalidData),
		errors.Is(err, meal.ErrInvalidData),
		errors.Is(err, meal.ErrInvalidQuantity):
		return &Error{Status: http.StatusBadRequest, Message: err.Error(), Code: CodeInvalidData}
	case errors.Is(err, logbook.ErrForeignOwner),
		errors.Is(err, meal.ErrForeignOwner):
		return &Error{Status: http.StatusForbidden, Message: err.Error(), Code: CodeForbidden}
	case errors.Is(err, user.ErrNotAuthenticated):
		return &Error{Status: http.StatusUnauthorized, Message: "Unauthorized", Code: CodeUnauthorized}
	}

	return &Error{Status: http.StatusInternalServerError, Message: "internal error", Code: CodeInternal}
}
