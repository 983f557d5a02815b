package rentals

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents structured, verified JWT claims
type AuthClaims interface {
	Subject() string
	Name() string
	Email() string
	Expires() time.Time
	IssuedAt() time.Time
	IsExpired() bool
}

// JWTClaims is the concrete implementation of AuthClaims. The subject is the
// identity's canonical email; name and email ride along for display purposes.
type JWTClaims struct {
	jwt.RegisteredClaims
	DisplayName  string `json:"name,omitempty"`
	EmailAddress string `json:"email,omitempty"`
}

// Verify interface compliance
var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// Name returns the display name carried in the token
func (c *JWTClaims) Name() string {
	return c.DisplayName
}

// Email returns the email claim, falling back to the subject
func (c *JWTClaims) Email() string {
	if c.EmailAddress != "" {
		return c.EmailAddress
	}
	return c.Subject()
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// IsExpired reports whether the exp claim is in the past
func (c *JWTClaims) IsExpired() bool {
	exp := c.Expires()
	if exp.IsZero() {
		return true
	}
	return exp.Before(time.Now())
}
