package credentials_test

import (
	"context"

	credentials "github.com/goliatone/go-credentials"
	"github.com/stretchr/testify/mock"
)

// MockUserStore implements credentials.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*credentials.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*credentials.User)
	return user, args.Error(1)
}

// Register echoes the input record when the expectation returns a nil user,
// mirroring the store contract of handing back the persisted record.
func (m *MockUserStore) Register(ctx context.Context, user *credentials.User) (*credentials.User, error) {
	args := m.Called(ctx, user)
	if record, ok := args.Get(0).(*credentials.User); ok {
		return record, args.Error(1)
	}
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return user, nil
}

func (m *MockUserStore) Save(ctx context.Context, user *credentials.User) (*credentials.User, error) {
	args := m.Called(ctx, user)
	if record, ok := args.Get(0).(*credentials.User); ok {
		return record, args.Error(1)
	}
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return user, nil
}

// MockSessionStore implements credentials.SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Issue(ctx context.Context, session *credentials.Session) (*credentials.Session, error) {
	args := m.Called(ctx, session)
	record, _ := args.Get(0).(*credentials.Session)
	return record, args.Error(1)
}

func (m *MockSessionStore) GetByAccessToken(ctx context.Context, token string) (*credentials.Session, error) {
	args := m.Called(ctx, token)
	record, _ := args.Get(0).(*credentials.Session)
	return record, args.Error(1)
}

// MockConfig implements credentials.Config
type MockConfig struct {
	SigningKey      string
	TokenExpiration int
	Issuer          string
	Audience        []string
}

func (m MockConfig) GetSigningKey() string {
	return m.SigningKey
}

func (m MockConfig) GetTokenExpiration() int {
	return m.TokenExpiration
}

func (m MockConfig) GetIssuer() string {
	return m.Issuer
}

func (m MockConfig) GetAudience() []string {
	return m.Audience
}

func newTestConfig() MockConfig {
	return MockConfig{
		SigningKey:      "test-signing-key",
		TokenExpiration: 72,
		Issuer:          "test-issuer",
		Audience:        []string{"test-audience"},
	}
}
