package credentials

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the credential record. Email is the login identifier and is unique
// with case-sensitive semantics; the store constraint is the real guarantee.
// The pw_* columns hold the key-derivation parameters a client needs to
// recompute its local password hash. Which of them are populated depends on
// the record's protocol version: pw_func/pw_alg/pw_key_size only exist on
// version 001 records, pw_salt only on version 002, and versions at or above
// the sessions threshold carry neither.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"uuid,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Version       int        `bun:"version,notnull" json:"version,omitempty"`
	PwCost        int        `bun:"pw_cost" json:"pw_cost,omitempty"`
	PwNonce       string     `bun:"pw_nonce" json:"pw_nonce,omitempty"`
	PwSalt        *string    `bun:"pw_salt,nullzero" json:"pw_salt,omitempty"`
	PwFunc        *string    `bun:"pw_func,nullzero" json:"pw_func,omitempty"`
	PwAlg         *string    `bun:"pw_alg,nullzero" json:"pw_alg,omitempty"`
	PwKeySize     *int       `bun:"pw_key_size,nullzero" json:"pw_key_size,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// SupportsSessions reports whether issuance for this user creates sessions.
func (u *User) SupportsSessions() bool {
	return SupportsSessions(u.Version)
}

// SupportsJWT reports whether issuance for this user mints signed tokens.
func (u *User) SupportsJWT() bool {
	return SupportsJWT(u.Version)
}

// Session is a server side authentication record, created only for users at
// or above SessionsProtocolVersion. Token material and expirations are
// assigned by the sessions repository on create; callers treat them as
// opaque.
type Session struct {
	bun.BaseModel     `bun:"table:sessions,alias:ses"`
	ID                uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"uuid,omitempty"`
	UserID            uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_uuid,omitempty"`
	APIVersion        string     `bun:"api_version" json:"api,omitempty"`
	UserAgent         string     `bun:"user_agent" json:"user_agent,omitempty"`
	AccessToken       string     `bun:"access_token,notnull" json:"access_token,omitempty"`
	RefreshToken      string     `bun:"refresh_token,notnull" json:"refresh_token,omitempty"`
	AccessExpiration  *time.Time `bun:"access_expiration,nullzero" json:"access_expiration,omitempty"`
	RefreshExpiration *time.Time `bun:"refresh_expiration,nullzero" json:"refresh_expiration,omitempty"`
	CreatedAt         *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt         *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt         *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// SessionPayload is the serializable response representation of a session.
type SessionPayload struct {
	AccessToken       string     `json:"access_token"`
	RefreshToken      string     `json:"refresh_token"`
	AccessExpiration  *time.Time `json:"access_expiration,omitempty"`
	RefreshExpiration *time.Time `json:"refresh_expiration,omitempty"`
}

// Response returns the client facing representation of the session.
func (s *Session) Response() SessionPayload {
	return SessionPayload{
		AccessToken:       s.AccessToken,
		RefreshToken:      s.RefreshToken,
		AccessExpiration:  s.AccessExpiration,
		RefreshExpiration: s.RefreshExpiration,
	}
}
