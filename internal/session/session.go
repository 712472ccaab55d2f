// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package session holds the signed-in user for a client and gates every
// call to the authentication transport behind credential validation.
package session

import (
	"context"
	"errors"

	"github.com/oklog/ulid/v2"

	"github.com/holomush/credcheck/internal/credential"
)

// ErrUnavailable marks a transient transport failure. The provider retries
// calls that fail with an error wrapping it.
var ErrUnavailable = errors.New("authentication service unavailable")

// User is an authenticated account.
type User struct {
	ID    ulid.ULID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name,omitempty"`
}

// State is a point-in-time snapshot of the session.
type State struct {
	User            *User
	IsAuthenticated bool
	IsLoading       bool
}

// Authenticator is the external authentication transport.
type Authenticator interface {
	SignIn(ctx context.Context, record credential.SignInRecord) (*User, error)
	SignUp(ctx context.Context, record credential.SignUpRecord) (*User, error)
	SignOut(ctx context.Context, user User) error
}
