package auth

import (
	"time"

	"github.com/alphios72/NewsinsightUI/internal"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the cookie the request gate reads on every request.
const SessionCookieName = "session"

// User is the credential-store view of an operator account.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         internal.Role
}

// SessionClaims is the payload of the signed session token.
type SessionClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenGenerator issues and verifies session tokens.
type TokenGenerator interface {
	GenerateSessionToken(user *User) (token string, expiresAt time.Time, err error)
	ValidateToken(tokenString string) (*SessionClaims, error)
}

// ServiceAPI is what the HTTP layer and the request gate need from auth.
type ServiceAPI interface {
	Authenticate(dto LoginDTO) (token string, expiresAt time.Time, user *User, err error)
	ValidateSessionToken(tokenString string) (*internal.Session, error)
}
