// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maxim Kovalev

// Package crypto implements the cryptographic core of the credential vault:
// the AES-256-GCM field cipher used for secrets at rest, the Argon2id
// credential hasher used for login secrets, and the passphrase key
// derivation used by the export/import codec.
//
// Key material enters this package once, at construction time, and is never
// logged or included in error values.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/mkovalev/go-cred-vault/models"
)

// masterKeyLen is the required master key size: 32 bytes for AES-256.
const masterKeyLen = 32

// fieldCipher is the private implementation of [FieldCipher].
type fieldCipher struct {
	// aead is the AES-256-GCM instance built once from the master key.
	// cipher.AEAD is safe for concurrent use, so the whole struct is
	// read-only after construction.
	aead cipher.AEAD
}

// NewFieldCipher constructs a [FieldCipher] from a hex-encoded 256-bit
// master key.
//
// The key is decoded and expanded into an AES-256-GCM instance exactly
// once; the hex string itself is not retained. Returns
// [ErrInvalidMasterKey] if the key does not decode to 32 bytes.
func NewFieldCipher(masterKeyHex string) (FieldCipher, error) {
	key, err := hex.DecodeString(masterKeyHex)
	if err != nil || len(key) != masterKeyLen {
		return nil, ErrInvalidMasterKey
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &fieldCipher{aead: aead}, nil
}

// Encrypt implements [FieldCipher]. It reads a fresh random IV from the OS
// CSPRNG for every call, so encrypting the same plaintext twice yields
// different [models.EncryptedField] values.
//
// Returns [ErrEmptyPlaintext] for an empty input and a wrapped error if the
// random IV read fails.
func (c *fieldCipher) Encrypt(plaintext string) (models.EncryptedField, error) {
	if plaintext == "" {
		return models.EncryptedField{}, ErrEmptyPlaintext
	}

	iv := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return models.EncryptedField{}, fmt.Errorf("generate iv: %w", err)
	}

	return models.EncryptedField{
		IV:         iv,
		Ciphertext: c.aead.Seal(nil, iv, []byte(plaintext), nil),
	}, nil
}

// Decrypt implements [FieldCipher]. It verifies the GCM authentication tag
// and returns the original plaintext.
//
// Returns [ErrMalformedCiphertext] when the field is structurally invalid
// (wrong IV length, ciphertext shorter than the tag) and
// [ErrDecryptionFailed] when authentication fails. The two failure causes
// behind ErrDecryptionFailed (wrong key vs. corrupted bytes) are not
// distinguished.
func (c *fieldCipher) Decrypt(field models.EncryptedField) (string, error) {
	if len(field.IV) != c.aead.NonceSize() || len(field.Ciphertext) < c.aead.Overhead() {
		return "", ErrMalformedCiphertext
	}

	plaintext, err := c.aead.Open(nil, field.IV, field.Ciphertext, nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	return string(plaintext), nil
}
