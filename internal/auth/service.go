package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/alphios72/NewsinsightUI/internal"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	GetUserByUsername(username string) (*User, error)
}

// Service is the session issuer: it checks credentials against the
// credential store and hands out signed, time-limited session tokens.
type Service struct {
	userRepo       UserRepository
	tokenGenerator TokenGenerator
	bcryptCost     int
}

func NewService(userRepo UserRepository, tokenGen TokenGenerator, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
	}
}

// Authenticate validates credentials and returns a signed session token.
// Absent users and wrong passwords are indistinguishable to the caller.
func (s *Service) Authenticate(dto LoginDTO) (string, time.Time, *User, error) {
	if err := dto.Validate(); err != nil {
		return "", time.Time{}, nil, err
	}

	user, err := s.userRepo.GetUserByUsername(dto.Username)
	if err != nil || user == nil {
		return "", time.Time{}, nil, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.Password)); err != nil {
		return "", time.Time{}, nil, internal.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokenGenerator.GenerateSessionToken(user)
	if err != nil {
		return "", time.Time{}, nil, err
	}

	return token, expiresAt, user, nil
}

// ValidateSessionToken verifies a token and maps its claims to a Session.
func (s *Service) ValidateSessionToken(tokenString string) (*internal.Session, error) {
	claims, err := s.tokenGenerator.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	role := internal.Role(claims.Role)
	if !role.Valid() {
		return nil, internal.ErrInvalidToken
	}

	return &internal.Session{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     role,
	}, nil
}

// HashPassword creates a bcrypt hash of the password. Used by the seeder.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// JWTTokenGenerator signs session tokens with a shared HS256 secret.
type JWTTokenGenerator struct {
	Secret     []byte
	SessionTTL time.Duration
}

func NewJWTTokenGenerator(secret string, sessionTTL time.Duration) *JWTTokenGenerator {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &JWTTokenGenerator{
		Secret:     []byte(secret),
		SessionTTL: sessionTTL,
	}
}

func (j *JWTTokenGenerator) GenerateSessionToken(user *User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(j.SessionTTL)

	claims := &SessionClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   strconv.FormatInt(user.ID, 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, internal.ErrInvalidToken
}
