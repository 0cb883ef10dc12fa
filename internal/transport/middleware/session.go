package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alphios72/NewsinsightUI/internal"
	"github.com/alphios72/NewsinsightUI/internal/auth"
	"github.com/alphios72/NewsinsightUI/pkg/logger"
)

// TokenValidator verifies a session token and maps it to a session identity.
type TokenValidator interface {
	ValidateSessionToken(tokenString string) (*internal.Session, error)
}

// LoginPath is where unauthenticated requests are sent.
const LoginPath = "/login"

// DashboardPath is where authenticated-but-unauthorized requests are sent.
const DashboardPath = "/dashboard"

// SessionGate authenticates every request passing through it: it reads the
// session cookie, verifies the token, and injects the identity into the
// request context and the x-user-id / x-user-role headers for downstream
// readers. Missing or invalid tokens redirect to the login page; the stale
// cookie is left to expire on its own.
func SessionGate(validator TokenValidator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.SessionCookieName)
			if err != nil || cookie.Value == "" {
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}

			session, err := validator.ValidateSessionToken(cookie.Value)
			if err != nil {
				log.Warn("session token rejected", "path", r.URL.Path, "error", err)
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}

			r.Header.Set("x-user-id", strconv.FormatInt(session.UserID, 10))
			r.Header.Set("x-user-role", string(session.Role))

			ctx := internal.ContextWithSession(r.Context(), session)
			ctx = logger.With(ctx, "user_id", session.UserID, "role", session.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin restricts a path prefix to the ADMIN role. Non-admins are
// sent back to the dashboard rather than shown an error page.
func RequireAdmin(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := internal.SessionFromContext(r.Context())
			if !ok || session.Role != internal.RoleAdmin {
				log.Warn("admin path denied", "path", r.URL.Path)
				http.Redirect(w, r, DashboardPath, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
