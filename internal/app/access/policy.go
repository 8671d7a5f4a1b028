// Package access decides which bus messages a caller may send.
package access

import (
	"context"
	"errors"
)

var ErrForbidden = errors.New("access: admin access required")

type Principal struct {
	Name  string
	Admin bool
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// AdminOnly marks messages reserved for hotel staff.
type AdminOnly interface {
	AdminOnly()
}

// Policy lets anyone through except to AdminOnly messages, which need an
// admin principal in the context.
type Policy struct{}

func (Policy) Authorize(ctx context.Context, message any) error {
	if _, restricted := message.(AdminOnly); !restricted {
		return nil
	}
	if p, ok := FromContext(ctx); ok && p.Admin {
		return nil
	}
	return ErrForbidden
}
