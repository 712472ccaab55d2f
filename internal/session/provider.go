// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"

	"github.com/holomush/credcheck/internal/credential"
	"github.com/holomush/credcheck/pkg/errutil"
)

// Default retry settings for transient transport failures.
const (
	DefaultRetryBase     = 100 * time.Millisecond
	DefaultRetryAttempts = 3
)

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger. Credential values are never logged.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

// WithRetry sets the backoff base and the number of retries after the first
// attempt. Zero retries disables retrying.
func WithRetry(base time.Duration, retries uint64) Option {
	return func(p *Provider) {
		p.retryBase = base
		p.retries = retries
	}
}

// Provider owns the session state for one client. It is safe for concurrent
// use.
type Provider struct {
	auth      Authenticator
	logger    *slog.Logger
	retryBase time.Duration
	retries   uint64

	mu    sync.RWMutex
	state State
}

// NewProvider creates a signed-out provider backed by auth.
func NewProvider(auth Authenticator, opts ...Option) *Provider {
	p := &Provider{
		auth:      auth,
		logger:    slog.Default(),
		retryBase: DefaultRetryBase,
		retries:   DefaultRetryAttempts,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns a snapshot of the session.
func (p *Provider) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s := p.state
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

func (p *Provider) setLoading(loading bool) {
	p.mu.Lock()
	p.state.IsLoading = loading
	p.mu.Unlock()
}

func (p *Provider) signedIn(user *User) {
	p.mu.Lock()
	p.state = State{User: user, IsAuthenticated: true}
	p.mu.Unlock()
}

func (p *Provider) backoff() retry.Backoff {
	return retry.WithMaxRetries(p.retries, retry.NewExponential(p.retryBase))
}

// call runs fn, retrying while it fails with ErrUnavailable.
func (p *Provider) call(ctx context.Context, op string, fn func(context.Context) (*User, error)) (*User, error) {
	var user *User
	attempt := 0
	err := retry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		attempt++
		u, err := fn(ctx)
		if err != nil {
			if errors.Is(err, ErrUnavailable) {
				p.logger.WarnContext(ctx, "authentication transport unavailable",
					"operation", op, "attempt", attempt)
				return retry.RetryableError(err)
			}
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, oops.Code("SESSION_AUTH_FAILED").
			With("operation", op).
			With("attempts", attempt).
			Wrap(err)
	}
	if user == nil {
		return nil, oops.Code("SESSION_AUTH_FAILED").
			With("operation", op).
			Errorf("transport returned no user")
	}
	return user, nil
}

// Login validates the sign-in credentials and signs the user in. A rejection
// is returned as *credential.FieldError without calling the transport.
func (p *Provider) Login(ctx context.Context, email, password string) error {
	record, err := credential.ValidateSignIn(credential.Candidate{Email: email, Password: password})
	if err != nil {
		errutil.LogRejection(ctx, p.logger, "sign-in rejected", err)
		return err
	}
	return p.signIn(ctx, record)
}

func (p *Provider) signIn(ctx context.Context, record credential.SignInRecord) error {
	p.setLoading(true)
	defer p.setLoading(false)

	user, err := p.call(ctx, "signin", func(ctx context.Context) (*User, error) {
		return p.auth.SignIn(ctx, record)
	})
	if err != nil {
		errutil.LogError(p.logger, "sign-in failed", err)
		return err
	}
	p.signedIn(user)
	p.logger.InfoContext(ctx, "signed in", "user_id", user.ID.String())
	return nil
}

// Register validates the sign-up credentials and creates the account.
func (p *Provider) Register(ctx context.Context, name, email, password string) error {
	record, err := credential.ValidateSignUp(credential.Candidate{
		Name:     credential.StringPtr(name),
		Email:    email,
		Password: password,
	})
	if err != nil {
		errutil.LogRejection(ctx, p.logger, "sign-up rejected", err)
		return err
	}
	return p.signUp(ctx, record)
}

func (p *Provider) signUp(ctx context.Context, record credential.SignUpRecord) error {
	p.setLoading(true)
	defer p.setLoading(false)

	user, err := p.call(ctx, "signup", func(ctx context.Context) (*User, error) {
		return p.auth.SignUp(ctx, record)
	})
	if err != nil {
		errutil.LogError(p.logger, "sign-up failed", err)
		return err
	}
	p.signedIn(user)
	p.logger.InfoContext(ctx, "registered", "user_id", user.ID.String())
	return nil
}

// Logout signs the user out. The local session is cleared even when the
// transport fails; that failure is still returned.
func (p *Provider) Logout(ctx context.Context) error {
	p.mu.RLock()
	user := p.state.User
	authed := p.state.IsAuthenticated
	p.mu.RUnlock()

	var err error
	if authed && user != nil {
		if signOutErr := p.auth.SignOut(ctx, *user); signOutErr != nil {
			err = oops.Code("SESSION_SIGNOUT_FAILED").
				With("user_id", user.ID.String()).
				Wrap(signOutErr)
			errutil.LogError(p.logger, "sign-out failed", err)
		}
	}

	p.mu.Lock()
	p.state = State{}
	p.mu.Unlock()
	return err
}

// Submit forwards an accepted record to the matching transport call, so a
// Provider can back a form.
func (p *Provider) Submit(ctx context.Context, record credential.Record) error {
	switch r := record.(type) {
	case credential.SignInRecord:
		return p.signIn(ctx, r)
	case credential.SignUpRecord:
		return p.signUp(ctx, r)
	default:
		return oops.Code("SESSION_UNSUPPORTED_RECORD").
			With("type", recordType(record)).
			Errorf("unsupported record type")
	}
}

func recordType(record credential.Record) string {
	if record == nil {
		return "nil"
	}
	return record.Mode().String()
}
