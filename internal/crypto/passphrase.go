// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maxim Kovalev

package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// VaultSaltLen is the salt length used for vault-container key derivation.
// The salt is not a secret; it travels inside the container payload.
const VaultSaltLen = 16

// vaultKeyLen is the derived key length: 32 bytes for AES-256.
const vaultKeyLen = 32

// GenerateVaultSalt reads a fresh random salt for a new vault container
// from the OS CSPRNG.
func GenerateVaultSalt() ([]byte, error) {
	salt := make([]byte, VaultSaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate vault salt: %w", err)
	}
	return salt, nil
}

// DeriveVaultKey derives the 256-bit container encryption key from the
// export passphrase and salt using Argon2id with the same OWASP parameters
// as [DefaultHasherParams].
//
// The key is independent of the server master key on purpose: a container
// must be decryptable on a different deployment knowing only the
// passphrase.
func DeriveVaultKey(passphrase string, salt []byte) []byte {
	p := DefaultHasherParams()
	return argon2.IDKey([]byte(passphrase), salt, p.Time, p.MemoryKiB, p.Parallelism, vaultKeyLen)
}
