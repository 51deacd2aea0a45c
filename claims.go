package credentials

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims is the read surface of a minted token's claims
type AuthClaims interface {
	Subject() string
	UserID() string
	CredentialDigest() string
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete implementation of AuthClaims. PwHash binds the
// token to the credential generation it was minted against; rotating the
// password changes the digest and implicitly invalidates older tokens.
type JWTClaims struct {
	jwt.RegisteredClaims
	UID    string `json:"user_uuid,omitempty"`
	PwHash string `json:"pw_hash,omitempty"`
}

// Verify interface compliance
var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the user ID
func (c *JWTClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject()
}

// CredentialDigest returns the digest of the password hash the token was
// minted against
func (c *JWTClaims) CredentialDigest() string {
	return c.PwHash
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
