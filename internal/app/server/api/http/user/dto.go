package user

import "weightloss/internal/domain/user"

type authInput struct {
	Body user.BaseRequest
}

type authOutput struct {
	Body user.AuthResponse
}

type profileInput struct{}

type profileOutput struct {
	Body user.Profile
}

type updateProfileInput struct {
	Body struct {
		Name string `json:"name" maxLength:"100" doc:"Display name"`
	}
}
