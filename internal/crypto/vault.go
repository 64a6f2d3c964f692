// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maxim Kovalev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// SealWithPassphrase encrypts plaintext under a key derived from the
// passphrase and returns the portable payload: base64(salt ‖ nonce ‖
// ciphertext), standard encoding.
//
// Each call draws a fresh salt and nonce, so sealing the same plaintext
// twice yields different payloads.
func SealWithPassphrase(passphrase string, plaintext []byte) (string, error) {
	if len(plaintext) == 0 {
		return "", ErrEmptyPlaintext
	}

	salt, err := GenerateVaultSalt()
	if err != nil {
		return "", err
	}

	gcm, err := passphraseGCM(passphrase, salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate vault nonce: %w", err)
	}

	blob := make([]byte, 0, len(salt)+len(nonce)+len(plaintext)+gcm.Overhead())
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = gcm.Seal(blob, nonce, plaintext, nil)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// OpenWithPassphrase reverses [SealWithPassphrase].
//
// Every failure to recover the plaintext returns [ErrDecryptionFailed]: a
// wrong passphrase, a tampered payload, and a structurally corrupt payload
// (bad base64, truncated below salt or nonce length) are indistinguishable
// to the caller, so the error never acts as a corruption oracle.
func OpenWithPassphrase(passphrase, payload string) ([]byte, error) {
	blob, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	if len(blob) < VaultSaltLen {
		return nil, ErrDecryptionFailed
	}

	salt, rest := blob[:VaultSaltLen], blob[VaultSaltLen:]

	gcm, err := passphraseGCM(passphrase, salt)
	if err != nil {
		return nil, err
	}
	if len(rest) < gcm.NonceSize() {
		return nil, ErrDecryptionFailed
	}

	nonce, ciphertext := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

func passphraseGCM(passphrase string, salt []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(DeriveVaultKey(passphrase, salt))
	if err != nil {
		return nil, fmt.Errorf("init vault cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init vault aead: %w", err)
	}
	return gcm, nil
}
