package credentials

// KeyParams is the negotiation payload a client needs to derive its local
// password hash before authenticating. Field presence tracks the stored
// record exactly: optional fields are emitted only when their backing column
// is non-null, so a client never sees parameters that do not apply to the
// user's protocol generation.
type KeyParams struct {
	Identifier string  `json:"identifier"`
	PwCost     int     `json:"pw_cost"`
	PwNonce    string  `json:"pw_nonce"`
	Version    int     `json:"version"`
	PwSalt     *string `json:"pw_salt,omitempty"`
	PwFunc     *string `json:"pw_func,omitempty"`
	PwAlg      *string `json:"pw_alg,omitempty"`
	PwKeySize  *int    `json:"pw_key_size,omitempty"`
}

// KeyParamsFor builds the negotiation payload for a user record.
func KeyParamsFor(user *User) *KeyParams {
	if user == nil {
		return nil
	}

	params := &KeyParams{
		Identifier: user.Email,
		PwCost:     user.PwCost,
		PwNonce:    user.PwNonce,
		Version:    user.Version,
	}

	// v002 only
	if user.PwSalt != nil {
		params.PwSalt = user.PwSalt
	}

	// v001 only
	if user.PwFunc != nil {
		params.PwFunc = user.PwFunc
		params.PwAlg = user.PwAlg
		params.PwKeySize = user.PwKeySize
	}

	return params
}
