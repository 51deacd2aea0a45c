package credentials

import "strconv"

// Params is the untrusted parameter bag submitted alongside credential
// operations. Only the whitelisted pw_* keys and version are ever persisted
// onto a user record; everything else is dropped at the boundary.
type Params map[string]any

// Keys that may be projected onto a user record. The projection in
// applyRegistrationParams is the single place client input reaches storage.
const (
	paramPwFunc    = "pw_func"
	paramPwAlg     = "pw_alg"
	paramPwCost    = "pw_cost"
	paramPwKeySize = "pw_key_size"
	paramPwNonce   = "pw_nonce"
	paramPwSalt    = "pw_salt"
	paramVersion   = "version"
	paramAPI       = "api"
)

// Version returns the declared protocol version, reporting false when the
// value is absent or does not name a known generation.
func (p Params) Version() (int, bool) {
	v, ok := paramInt(p, paramVersion)
	if !ok || !ValidVersion(v) {
		return 0, false
	}
	return v, true
}

// APIVersion returns the declared API version for session records. Read
// only, never persisted onto the user.
func (p Params) APIVersion() string {
	s, _ := paramString(p, paramAPI)
	return s
}

// applyRegistrationParams projects the whitelisted subset of a parameter bag
// onto the user record. Explicit allow-list: a key not named here never
// reaches persistence, regardless of what the transport layer parsed.
func applyRegistrationParams(user *User, params Params) {
	if user == nil || params == nil {
		return
	}

	if v, ok := paramString(params, paramPwFunc); ok {
		user.PwFunc = &v
	}
	if v, ok := paramString(params, paramPwAlg); ok {
		user.PwAlg = &v
	}
	if v, ok := paramInt(params, paramPwCost); ok {
		user.PwCost = v
	}
	if v, ok := paramInt(params, paramPwKeySize); ok {
		user.PwKeySize = &v
	}
	if v, ok := paramString(params, paramPwNonce); ok {
		user.PwNonce = v
	}
	if v, ok := paramString(params, paramPwSalt); ok {
		user.PwSalt = &v
	}
	if v, ok := params.Version(); ok {
		user.Version = v
	}
}

func paramString(params Params, key string) (string, bool) {
	raw, exists := params[key]
	if !exists {
		return "", false
	}

	s, ok := raw.(string)
	if !ok || s == "" {
		return "", false
	}

	return s, true
}

func paramInt(params Params, key string) (int, bool) {
	raw, exists := params[key]
	if !exists {
		return 0, false
	}

	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n, true
		}
	}

	return 0, false
}
