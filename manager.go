package credentials

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
)

// Manager implements CredentialManager on top of a user store, a session
// store, and a token service. It is stateless between calls; durable state
// and the uniqueness guarantees live in the stores.
type Manager struct {
	users    UserStore
	sessions SessionStore
	tokens   TokenService
	logger   Logger
}

// Result is the outcome of a successful credential operation. Exactly one of
// Token or Session is set when an artifact was issued; both are empty on the
// change-password branch that issues nothing.
type Result struct {
	User    *User    `json:"user,omitempty"`
	Token   string   `json:"token,omitempty"`
	Session *Session `json:"session,omitempty"`
}

// NewManager returns a new credential Manager
func NewManager(users UserStore, sessions SessionStore, opts Config) *Manager {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		jwt.ClaimStrings(opts.GetAudience()),
		defLogger{},
	)

	return &Manager{
		users:    users,
		sessions: sessions,
		tokens:   tokenService,
		logger:   defLogger{},
	}
}

func (m *Manager) WithLogger(logger Logger) *Manager {
	m.logger = logger
	return m
}

// WithTokenService overrides the token service built from Config.
func (m *Manager) WithTokenService(tokens TokenService) *Manager {
	m.tokens = tokens
	return m
}

// TokenService returns the TokenService instance used by this Manager
func (m *Manager) TokenService() TokenService {
	return m.tokens
}

// VerifyCredentials checks a plaintext password against the stored hash for
// the identifier. Unknown identifiers report false, same as a mismatch.
func (m *Manager) VerifyCredentials(ctx context.Context, email, password string) bool {
	user, err := m.users.GetByEmail(ctx, email)
	if err != nil {
		return false
	}

	return ComparePasswordAndHash(password, user.PasswordHash) == nil
}

// SignIn verifies credentials and, on success, issues either a token or a
// session depending on the user's stored protocol version. Lookup miss and
// password mismatch both answer ErrInvalidCredentials; callers must not be
// able to tell which branch failed.
func (m *Manager) SignIn(ctx context.Context, email, password string, params Params, userAgent string) (*Result, error) {
	user, err := m.users.GetByEmail(ctx, email)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "user lookup failed")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		m.logger.Debug("SignIn password mismatch", "email", email)
		return nil, ErrInvalidCredentials
	}

	return m.issueCredentials(ctx, user, params, userAgent)
}

// Register creates a new user with a freshly hashed password and the
// whitelisted subset of params, then runs the issuance decision. The
// pre-check on email is advisory; the store's uniqueness constraint is what
// actually prevents a concurrent double-register, and its violation
// propagates as a wrapped storage error.
func (m *Manager) Register(ctx context.Context, email, password string, params Params, userAgent string) (*Result, error) {
	if _, err := m.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !repository.IsRecordNotFound(err) {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "user lookup failed")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	user := &User{
		Email:        email,
		PasswordHash: hash,
		Version:      DefaultProtocolVersion,
	}
	applyRegistrationParams(user, params)

	created, err := m.users.Register(ctx, user)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryConflict, "could not create user")
	}

	return m.issueCredentials(ctx, created, params, userAgent)
}

// ChangePassword re-hashes the credential, applies whitelisted params, and
// re-runs issuance under upgrade-aware rules. The old version is captured
// before any mutation; the transition is classified from that snapshot
// against the requested version, never from mutation order.
func (m *Manager) ChangePassword(ctx context.Context, user *User, password string, params Params, userAgent string) (*Result, error) {
	if user == nil {
		return nil, goerrors.New("user is required", goerrors.CategoryBadInput)
	}

	oldVersion := user.Version
	newVersion := oldVersion
	if v, ok := params.Version(); ok {
		newVersion = v
	}
	upgrading := newVersion > oldVersion

	hash, err := HashPassword(password)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	// The credential mutation happens regardless of how the version
	// transition classifies below.
	user.PasswordHash = hash
	applyRegistrationParams(user, params)

	updated, err := m.users.Save(ctx, user)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "could not update user")
	}

	switch {
	case upgrading && newVersion == SessionsProtocolVersion:
		// First crossing of the sessions threshold (i.e. 003 to 004):
		// the client gets its first server side session.
		return m.createSession(ctx, updated, params, userAgent)
	case updated.SupportsJWT():
		// Still on a token-only generation: reissue with claims bound
		// to the new hash, which invalidates previously minted tokens.
		return m.createToken(updated)
	default:
		// Already session capable before this change; the existing
		// session remains valid and no new artifact is issued.
		return &Result{User: updated}, nil
	}
}

// Update applies whitelisted params and reissues a token for users still on
// token-only generations. Sessions are never created here.
//
// Deprecated: Update remains for clients that have not migrated to
// ChangePassword; it will be removed once the 003 generation is retired.
func (m *Manager) Update(ctx context.Context, user *User, params Params) (*Result, error) {
	if user == nil {
		return nil, goerrors.New("user is required", goerrors.CategoryBadInput)
	}

	applyRegistrationParams(user, params)

	updated, err := m.users.Save(ctx, user)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "could not update user")
	}

	result := &Result{User: updated}

	if updated.SupportsJWT() {
		token, err := m.tokens.Generate(updated)
		if err != nil {
			return nil, err
		}
		result.Token = token
	}

	return result, nil
}

// AuthParams returns the key-derivation parameters for an identifier, or nil
// without error when the identifier is unknown. This endpoint serves
// unauthenticated parameter discovery before login, so absence is not an
// error condition.
func (m *Manager) AuthParams(ctx context.Context, email string) (*KeyParams, error) {
	user, err := m.users.GetByEmail(ctx, email)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "user lookup failed")
	}

	return KeyParamsFor(user), nil
}

// issueCredentials is the issuance decision: a pure function of the user's
// stored version against SessionsProtocolVersion at the moment of the call.
// Callers re-run it after any mutation that may change the version.
func (m *Manager) issueCredentials(ctx context.Context, user *User, params Params, userAgent string) (*Result, error) {
	if user.SupportsSessions() {
		return m.createSession(ctx, user, params, userAgent)
	}
	return m.createToken(user)
}

func (m *Manager) createToken(user *User) (*Result, error) {
	token, err := m.tokens.Generate(user)
	if err != nil {
		return nil, err
	}
	return &Result{User: user, Token: token}, nil
}

func (m *Manager) createSession(ctx context.Context, user *User, params Params, userAgent string) (*Result, error) {
	session := &Session{
		UserID:     user.ID,
		APIVersion: params.APIVersion(),
		UserAgent:  userAgent,
	}

	created, err := m.sessions.Issue(ctx, session)
	if err != nil {
		m.logger.Error("session persistence rejected", "user_id", user.ID.String(), "error", err)
		return nil, ErrSessionCreationFailed
	}

	return &Result{User: user, Session: created}, nil
}

var _ CredentialManager = (*Manager)(nil)
