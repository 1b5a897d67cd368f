package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims in an admin JWT
type TokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// IsAdmin reports whether the token carries the admin role
func (c *TokenClaims) IsAdmin() bool {
	return c != nil && c.Role == "admin"
}
