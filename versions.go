package credentials

// ProtocolVersion tags a user record with the credential-derivation and
// issuance generation it was created under. Versions are ordered; capability
// is always derived from the stored integer, never from the client request.
type ProtocolVersion = int

const (
	// ProtocolVersion001 exposes pw_func, pw_alg and pw_key_size during
	// negotiation.
	ProtocolVersion001 ProtocolVersion = 1
	// ProtocolVersion002 exposes pw_salt during negotiation.
	ProtocolVersion002 ProtocolVersion = 2
	// ProtocolVersion003 is the last token-only generation.
	ProtocolVersion003 ProtocolVersion = 3
	// ProtocolVersion004 introduced server side sessions.
	ProtocolVersion004 ProtocolVersion = 4
)

// SessionsProtocolVersion is the minimum version at which session based
// issuance replaces token based issuance. Checked here and nowhere else.
const SessionsProtocolVersion = ProtocolVersion004

// DefaultProtocolVersion is assigned to records that never declared one.
const DefaultProtocolVersion = ProtocolVersion001

// SupportsSessions reports whether a protocol version uses server side
// sessions for issuance.
func SupportsSessions(version ProtocolVersion) bool {
	return version >= SessionsProtocolVersion
}

// SupportsJWT reports whether a protocol version still uses stateless signed
// tokens for issuance.
func SupportsJWT(version ProtocolVersion) bool {
	return !SupportsSessions(version)
}

// ValidVersion reports whether the value names a known protocol generation.
func ValidVersion(version ProtocolVersion) bool {
	return version >= ProtocolVersion001 && version <= ProtocolVersion004
}
