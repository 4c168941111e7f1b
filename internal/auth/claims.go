package auth

import (
	"time"

	"github.com/storefrontapp/storefront-server/internal/domain"
)

// AccessClaims are the claims carried in a PASETO access token. They
// are encrypted in v4.local tokens, so unreadable without the key.
type AccessClaims struct {
	UserID   string      `json:"user_id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`

	// Standard PASETO claims
	Issuer     string    `json:"iss"`
	Subject    string    `json:"sub"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}

// Can reports whether the token's role permits the action.
func (c *AccessClaims) Can(action domain.Action) bool {
	return c.Role.Can(action)
}
