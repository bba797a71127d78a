// Package session implements the anonymous/admin access gate: the Session
// value handed around explicitly or via context, pluggable credential
// verification, the stateful Gate used by interactive clients and signed
// session tokens used by the server.
package session

import (
	"context"
	"time"
)

// Session describes who is looking at the catalog. The zero value is an
// anonymous visitor.
type Session struct {
	Subject  string    `json:"subject,omitempty"`
	Admin    bool      `json:"admin"`
	IssuedAt time.Time `json:"issued_at,omitempty"`
}

func (s Session) IsAdmin() bool { return s.Admin }

type ctxKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored in ctx, or an anonymous one.
func FromContext(ctx context.Context) Session {
	s, _ := ctx.Value(ctxKey{}).(Session)
	return s
}
