package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingSecret  = errors.New("jwt: secret key is required")
	ErrInvalidToken   = errors.New("jwt: invalid token")
	ErrMissingSubject = errors.New("jwt: token has no subject")
)

// Validator verifies tokens issued by the external auth system.
type Validator interface {
	Verify(tokenString string) (*Claims, error)
}

// NewValidator returns an HS256 Validator.
func NewValidator(cfg Config) (Validator, error) {
	if cfg.SecretKey == "" {
		return nil, ErrMissingSecret
	}
	return &validatorImpl{secretKey: []byte(cfg.SecretKey), issuer: cfg.Issuer}, nil
}

// Verify parses tokenString, checks its signature and expiry, and returns the claims.
func (v *validatorImpl) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		return v.secretKey, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}

// Sign issues an HS256 token for userID. Only the demo client and tests
// use it; production tokens come from the storefront auth system.
func Sign(secretKey, userID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}
