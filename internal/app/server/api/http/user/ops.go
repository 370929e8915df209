package user

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

var bearer = []map[string][]string{{"bearer": {}}}

func (h *Handler) signUpOp() huma.Operation {
	return huma.Operation{
		OperationID:   "auth-signup",
		Method:        http.MethodPost,
		Path:          "/auth/signup",
		Summary:       "Create an account",
		Tags:          []string{"auth"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.public,
	}
}

func (h *Handler) loginOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-login",
		Method:      http.MethodPost,
		Path:        "/auth/login",
		Summary:     "Sign in with email and password",
		Tags:        []string{"auth"},
		Middlewares: h.public,
	}
}

func (h *Handler) profileOp() huma.Operation {
	return huma.Operation{
		OperationID: "users-me-get",
		Method:      http.MethodGet,
		Path:        "/users/me",
		Summary:     "Current user profile",
		Tags:        []string{"users"},
		Security:    bearer,
		Middlewares: h.private,
	}
}

func (h *Handler) updateProfileOp() huma.Operation {
	return huma.Operation{
		OperationID: "users-me-put",
		Method:      http.MethodPut,
		Path:        "/users/me",
		Summary:     "Update the display name",
		Tags:        []string{"users"},
		Security:    bearer,
		Middlewares: h.private,
	}
}
