package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// TokenDigest computes the SHA-256 digest of a bearer token string and
// returns it hex-encoded.
//
// Session records persist only this digest, never the token itself: a
// compromised sessions table cannot be replayed against the API because
// matching a presented token requires the original bearer string. The
// digest is also what every session lookup keys on, so raw tokens never
// reach the storage layer.
//
// Example usage:
//
//	digest := utils.TokenDigest(signedJWT)
func TokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
