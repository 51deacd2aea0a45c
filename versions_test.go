package credentials_test

import (
	"testing"

	credentials "github.com/goliatone/go-credentials"
	"github.com/stretchr/testify/assert"
)

func TestProtocolVersions(t *testing.T) {
	assert.True(t, credentials.SupportsJWT(credentials.ProtocolVersion001))
	assert.True(t, credentials.SupportsJWT(credentials.ProtocolVersion002))
	assert.True(t, credentials.SupportsJWT(credentials.ProtocolVersion003))
	assert.False(t, credentials.SupportsJWT(credentials.SessionsProtocolVersion))

	assert.False(t, credentials.SupportsSessions(credentials.ProtocolVersion003))
	assert.True(t, credentials.SupportsSessions(credentials.SessionsProtocolVersion))
	assert.True(t, credentials.SupportsSessions(credentials.SessionsProtocolVersion+1))

	assert.False(t, credentials.ValidVersion(0))
	assert.True(t, credentials.ValidVersion(credentials.ProtocolVersion001))
	assert.True(t, credentials.ValidVersion(credentials.SessionsProtocolVersion))
	assert.False(t, credentials.ValidVersion(credentials.SessionsProtocolVersion+1))
}
