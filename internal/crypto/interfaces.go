package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

import "github.com/mkovalev/go-cred-vault/models"

// FieldCipher encrypts and decrypts individual secret values at rest under
// the server-held master key. It knows nothing about users, storage, or
// transport; its only job is the symmetric transformation.
type FieldCipher interface {
	// Encrypt encrypts a non-empty plaintext with a fresh random IV.
	// Two calls with the same plaintext produce different fields.
	Encrypt(plaintext string) (models.EncryptedField, error)

	// Decrypt reverses Encrypt. It fails with ErrDecryptionFailed when the
	// authentication tag does not verify (wrong key, corrupted or
	// truncated data) and with ErrMalformedCiphertext when the field is
	// structurally invalid.
	Decrypt(field models.EncryptedField) (string, error)
}

// CredentialHasher provides one-way, salted, deliberately expensive hashing
// of account login secrets.
type CredentialHasher interface {
	// Hash derives a self-describing digest of the secret. The work
	// factor is fixed at construction time.
	Hash(secret string) (string, error)

	// Verify reports whether secret matches digest. A mismatch is a
	// normal (false, nil) result; only an unparseable digest is an error.
	Verify(secret, digest string) (bool, error)
}
