package jwt

import "github.com/golang-jwt/jwt/v5"

// Config holds JWT configuration.
type Config struct {
	SecretKey string
	Issuer    string
}

// Claims are the claims the storefront auth system puts in a session token.
// Subject carries the user id.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type validatorImpl struct {
	secretKey []byte
	issuer    string
}
