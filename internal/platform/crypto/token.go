package crypto

import (
	"errors"
	"fmt"
	"time"

	"github.com/Noorain464/GoogleDrive/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// TokenGenerator defines the interface for creating and verifying the JWTs
// that carry the caller's principal identity.
type TokenGenerator interface {
	New(user *domain.User) (string, error)
	Verify(token string) (*Claims, error)
}

// Claims represents the standard JWT claims for the application.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// JWTGenerator is a concrete implementation of TokenGenerator using
// HMAC-signed JWTs.
type JWTGenerator struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTGenerator creates a new JWTGenerator with the signing secret and the
// token time-to-live.
func NewJWTGenerator(secret string, ttl time.Duration) *JWTGenerator {
	return &JWTGenerator{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// New generates a signed token for the given user.
func (g *JWTGenerator) New(user *domain.User) (string, error) {
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(g.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning its claims.
func (g *JWTGenerator) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return g.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
