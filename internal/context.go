package internal

import (
	"context"
	"time"
)

// Role is the operator role carried by the session token.
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleConfigurator Role = "CONFIGURATOR"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleConfigurator
}

// Session is the authenticated identity the request gate injects into context.
type Session struct {
	UserID   int64
	Username string
	Role     Role
}

type ctxKey string

const ContextSessionKey ctxKey = "session"

func SessionFromContext(ctx context.Context) (*Session, bool) {
	if ctx == nil {
		return nil, false
	}
	s, ok := ctx.Value(ContextSessionKey).(*Session)
	return s, ok
}

func ContextWithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ContextSessionKey, s)
}

// RoleFromContext returns the session role, defaulting to CONFIGURATOR when
// no session is present so downstream permission checks stay restrictive.
func RoleFromContext(ctx context.Context) Role {
	if s, ok := SessionFromContext(ctx); ok && s.Role.Valid() {
		return s.Role
	}
	return RoleConfigurator
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
