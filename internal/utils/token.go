package utils // package utils provides helper functions for hashing and token creation

import (
	"crypto/rand"  // secure random number generation
	"encoding/hex" // hex encoding for token strings
)

// NewSessionToken returns an opaque bearer credential: 32 bytes of
// cryptographically secure randomness encoded as 64 hex characters.  The
// token carries no embedded claims; it is only a key into the session
// store, so possession of the string alone reveals nothing about the user.
func NewSessionToken() (string, error) {
	return randomHex(32)
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.  If the random number generator
// fails, an error is returned.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
