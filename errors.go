package credentials

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// ErrNoEmptyString is returned when we try to hash an empty password
var ErrNoEmptyString = errors.New("password cannot be an empty string")

// ErrMismatchedHashAndPassword is the error for a failed password comparison
var ErrMismatchedHashAndPassword = errors.New("hash and password mismatch")

// ErrInvalidCredentials is returned by SignIn for both unknown identifiers
// and password mismatches. Same message for both branches; callers must not
// be able to tell which one failed.
var ErrInvalidCredentials = goerrors.New("Invalid email or password.", goerrors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS").
	WithCode(goerrors.CodeUnauthorized)

// ErrEmailTaken is returned by Register when the identifier already exists.
var ErrEmailTaken = goerrors.New("This email is already registered.", goerrors.CategoryAuth).
	WithTextCode("EMAIL_TAKEN").
	WithCode(goerrors.CodeUnauthorized)

// ErrSessionCreationFailed is returned when the session store rejects
// persistence. Issuance never falls back to a token when this happens.
var ErrSessionCreationFailed = goerrors.New("Could not create a session.", goerrors.CategoryBadInput).
	WithTextCode("SESSION_CREATE_FAILED").
	WithCode(goerrors.CodeBadRequest)
