package credentials

import (
	"context"
	"fmt"
	"strings"
)

// Logger takes a message plus optional key-value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// UserStore is the lookup/persistence surface the manager needs from the
// user repository. Lookup misses are reported with a record-not-found error,
// never a nil record with nil error.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	Register(ctx context.Context, user *User) (*User, error)
	Save(ctx context.Context, user *User) (*User, error)
}

// SessionStore persists server side sessions. Issue assigns token material
// and expirations before returning the stored record.
type SessionStore interface {
	Issue(ctx context.Context, session *Session) (*Session, error)
	GetByAccessToken(ctx context.Context, token string) (*Session, error)
}

// CredentialManager holds the credential and issuance operations
type CredentialManager interface {
	VerifyCredentials(ctx context.Context, email, password string) bool
	SignIn(ctx context.Context, email, password string, params Params, userAgent string) (*Result, error)
	Register(ctx context.Context, email, password string, params Params, userAgent string) (*Result, error)
	ChangePassword(ctx context.Context, user *User, password string, params Params, userAgent string) (*Result, error)
	Update(ctx context.Context, user *User, params Params) (*Result, error)
	AuthParams(ctx context.Context, email string) (*KeyParams, error)
}

// TokenService mints and validates the stateless signed tokens used by
// pre-session protocol generations
type TokenService interface {
	Generate(user *User) (string, error)
	SignClaims(claims *JWTClaims) (string, error)
	Validate(tokenString string) (AuthClaims, error)
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetTokenExpiration() int
	GetIssuer() string
	GetAudience() []string
}

type defLogger struct{}

func (d defLogger) Error(msg string, args ...any) {
	logLine("ERR", msg, args...)
}

func (d defLogger) Info(msg string, args ...any) {
	logLine("INF", msg, args...)
}

func (d defLogger) Debug(msg string, args ...any) {
	logLine("DBG", msg, args...)
}

func logLine(level, msg string, args ...any) {
	if len(args) == 0 {
		fmt.Printf("[%s] CRED %s\n", level, msg)
		return
	}
	fmt.Printf("[%s] CRED %s %s\n", level, msg, formatPairs(args))
}

// formatPairs renders trailing key-value arguments as key=value fields. An
// odd trailing argument is emitted bare.
func formatPairs(args []any) string {
	parts := make([]string, 0, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		if i+1 < len(args) {
			parts = append(parts, fmt.Sprintf("%v=%v", args[i], args[i+1]))
		} else {
			parts = append(parts, fmt.Sprintf("%v", args[i]))
		}
	}
	return strings.Join(parts, " ")
}
