// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package session

import (
	"context"

	"github.com/samber/oops"
)

type providerKey struct{}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Provider) context.Context {
	return context.WithValue(ctx, providerKey{}, p)
}

// FromContext returns the provider installed by NewContext.
func FromContext(ctx context.Context) (*Provider, error) {
	p, ok := ctx.Value(providerKey{}).(*Provider)
	if !ok || p == nil {
		return nil, oops.Code("SESSION_NO_PROVIDER").
			Errorf("session must be used within a provider")
	}
	return p, nil
}
