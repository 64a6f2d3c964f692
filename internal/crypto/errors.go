package crypto

import "errors"

// Sentinel errors returned by the cryptographic primitives. Callers should
// use [errors.Is] to match against these values; none of them ever wraps
// key material or plaintext.
var (
	// ErrEmptyPlaintext is returned by [FieldCipher.Encrypt] when the
	// caller passes an empty plaintext. Encrypting nothing is always a
	// caller bug, never a valid stored state.
	ErrEmptyPlaintext = errors.New("empty plaintext")

	// ErrMalformedCiphertext is returned by [FieldCipher.Decrypt] when the
	// stored field cannot be parsed into an IV and a ciphertext, or the
	// ciphertext is shorter than the GCM authentication tag.
	ErrMalformedCiphertext = errors.New("malformed ciphertext")

	// ErrDecryptionFailed is returned when a plaintext cannot be
	// recovered. Wrong key or passphrase, corrupted bytes, and truncated
	// data are deliberately not distinguished to avoid oracle leakage;
	// for vault payloads that includes structural corruption of the
	// payload string itself.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidMasterKey is returned at construction time when the
	// configured master key does not decode to exactly 32 bytes.
	ErrInvalidMasterKey = errors.New("master key must be 32 bytes")

	// ErrInvalidDigestFormat is returned by [CredentialHasher.Verify] when
	// the stored digest cannot be parsed. A plain mismatch is a normal
	// false result, not an error.
	ErrInvalidDigestFormat = errors.New("invalid digest format")
)
