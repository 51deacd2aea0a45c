// Package credentials manages user credentials across protocol generations.
//
// It verifies and rotates bcrypt password hashes, negotiates the
// key-derivation parameters clients need before authenticating, and issues
// the right artifact for a user's protocol version: signed JWTs for the
// token-only generations and server side sessions from the sessions
// generation onward.
package credentials
