// Package session supplies the (nullable) identity of the active user. The
// core only needs to know who owns the records and whether a session exists;
// authentication itself happens elsewhere.
package session

import (
	"context"
)

// User is the identity attached to an active session. Name may be empty.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Provider reports the current session identity. A nil user means no active
// session.
type Provider interface {
	Current(ctx context.Context) *User
}

// Static is a Provider with a fixed identity, used by the CLI and by tests.
type Static struct {
	User *User
}

// NewStatic creates a provider that always reports the given user. Pass nil
// for an unauthenticated session.
func NewStatic(user *User) *Static {
	return &Static{User: user}
}

func (s *Static) Current(ctx context.Context) *User {
	return s.User
}

type contextKey string

const userKey contextKey = "sessionUser"

// WithUser attaches a session user to the context.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// FromContext returns the session user from the context, or nil when the
// request is unauthenticated.
func FromContext(ctx context.Context) *User {
	if user, ok := ctx.Value(userKey).(*User); ok {
		return user
	}
	return nil
}

var _ Provider = (*Static)(nil)
