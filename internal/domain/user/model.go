package user

import "time"

// LocalUID scopes data written while no session is active.
const LocalUID = "local"

// Session identifies the active user.
type Session struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// LocalCredential is a user record of the on-device credential store.
// Password is only present on records written before salted hashing existed.
type LocalCredential struct {
	UID          string `json:"uid"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash,omitempty"`
	Salt         string `json:"salt,omitempty"`
	Password     string `json:"password,omitempty"`
}

// Hashed reports whether the credential already carries a salted hash.
func (c LocalCredential) Hashed() bool {
	return c.PasswordHash != "" && c.Salt != ""
}

func (c LocalCredential) Session() Session {
	return Session{UID: c.UID, Email: c.Email}
}

// Profile is the user-editable part of an account.
type Profile struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// User is the server-side account.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

func (u User) Session() Session {
	return Session{UID: u.ID, Email: u.Email}
}

func (u User) Profile() Profile {
	return Profile{UID: u.ID, Email: u.Email, Name: u.Name}
}

type BaseRequest struct {
	Email    string `json:"email" doc:"Account email"`
	Password string `json:"password" doc:"Account password"`
	Name     string `json:"name,omitempty" doc:"Display name"`
}

// AuthResponse is returned by sign-up and login.
type AuthResponse struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}
