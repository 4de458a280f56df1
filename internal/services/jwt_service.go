package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yukikurage/task-management-api/internal/models"
)

var (
	ErrSessionTokenExpired = errors.New("session token expired")
	ErrSessionTokenInvalid = errors.New("session token invalid")
)

// JWTService issues and validates signed session tokens. The token subject is
// the user's email.
type JWTService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTService creates a new JWTService.
func NewJWTService(secret string, ttl time.Duration) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// GenerateToken issues a signed session token for the user.
func (s *JWTService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.Email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ExtractEmail verifies the token and returns its subject. Expiry is
// distinguished from other failures so the HTTP layer can report it.
func (s *JWTService) ExtractEmail(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrSessionTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrSessionTokenExpired
		}
		return "", ErrSessionTokenInvalid
	}

	return claims.Subject, nil
}

// IsTokenValid reports whether the token belongs to the user and is not expired.
func (s *JWTService) IsTokenValid(tokenString string, user *models.User) bool {
	email, err := s.ExtractEmail(tokenString)
	return err == nil && email == user.Email
}
