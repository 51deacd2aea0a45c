package credentials_test

import (
	"encoding/json"
	"testing"

	credentials "github.com/goliatone/go-credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignInRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload credentials.SignInRequest
		valid   bool
	}{
		{"valid", credentials.SignInRequest{Email: "user@example.com", Password: "pw"}, true},
		{"missing email", credentials.SignInRequest{Password: "pw"}, false},
		{"not an email", credentials.SignInRequest{Email: "not-an-email", Password: "pw"}, false},
		{"missing password", credentials.SignInRequest{Email: "user@example.com"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRegisterRequestValidate(t *testing.T) {
	valid := credentials.RegisterRequest{Email: "user@example.com", Password: "pw"}
	assert.NoError(t, valid.Validate())

	missing := credentials.RegisterRequest{Email: "user@example.com"}
	assert.Error(t, missing.Validate())
}

func TestChangePasswordRequestValidate(t *testing.T) {
	assert.NoError(t, credentials.ChangePasswordRequest{NewPassword: "new-pw"}.Validate())
	assert.Error(t, credentials.ChangePasswordRequest{}.Validate())
}

func TestSignInRequestDecodesDerivationParams(t *testing.T) {
	body := []byte(`{
		"email": "user@example.com",
		"password": "pw",
		"pw_cost": 110000,
		"pw_nonce": "nonce-1",
		"version": 4,
		"api": "20200115"
	}`)

	payload := credentials.SignInRequest{}
	require.NoError(t, json.Unmarshal(body, &payload))

	assert.Equal(t, "user@example.com", payload.Email)
	require.NotNil(t, payload.PwCost)
	assert.Equal(t, 110000, *payload.PwCost)
	require.NotNil(t, payload.PwNonce)
	assert.Equal(t, "nonce-1", *payload.PwNonce)
	require.NotNil(t, payload.Version)
	assert.Equal(t, 4, *payload.Version)
	require.NotNil(t, payload.API)
	assert.Equal(t, "20200115", *payload.API)
}

func TestNewAuthControllerRequiresDependencies(t *testing.T) {
	assert.Panics(t, func() {
		credentials.NewAuthController()
	})

	assert.Panics(t, func() {
		credentials.NewAuthController(
			credentials.WithControllerManager(credentials.NewManager(
				new(MockUserStore), new(MockSessionStore), newTestConfig(),
			)),
		)
	})
}
