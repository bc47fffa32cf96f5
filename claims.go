package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTypeRefresh marks refresh tokens via the "type" claim. Access tokens
// carry no type claim.
const TokenTypeRefresh = "refresh"

// Claims is the signed claim set carried by FreshCart tokens: the registered
// claims (sub, iat, exp, iss) plus the optional type, userId, and role
// extensions.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"type,omitempty"`
	UserID    string `json:"userId,omitempty"`
	UserRole  string `json:"role,omitempty"`
}

// Subject returns the subject claim, the username the token was issued for.
func (c *Claims) Subject() string {
	return c.RegisteredClaims.Subject
}

// Role returns the role claim.
func (c *Claims) Role() string {
	return c.UserRole
}

// IsRefresh reports whether the claim set belongs to a refresh token.
func (c *Claims) IsRefresh() bool {
	return c.TokenType == TokenTypeRefresh
}

// HasRole checks the role claim against the given role.
func (c *Claims) HasRole(role string) bool {
	return c.UserRole == role
}

// Expires returns the expiration time, or the zero time when unset.
func (c *Claims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issuance time, or the zero time when unset.
func (c *Claims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
