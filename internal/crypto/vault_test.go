// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maxim Kovalev

package crypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpenWithPassphrase_RoundTrip(t *testing.T) {
	plaintext := []byte(`{"accounts":[{"title":"mail","secret":"p"}]}`)

	payload, err := SealWithPassphrase("a long enough passphrase", plaintext)
	require.NoError(t, err)

	got, err := OpenWithPassphrase("a long enough passphrase", payload)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestSealWithPassphrase_FreshSaltPerCall(t *testing.T) {
	plaintext := []byte("identical plaintext")

	first, err := SealWithPassphrase("passphrase-123", plaintext)
	require.NoError(t, err)
	second, err := SealWithPassphrase("passphrase-123", plaintext)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSealWithPassphrase_EmptyPlaintext(t *testing.T) {
	_, err := SealWithPassphrase("passphrase-123", nil)
	assert.ErrorIs(t, err, ErrEmptyPlaintext)
}

func TestOpenWithPassphrase_WrongPassphrase(t *testing.T) {
	payload, err := SealWithPassphrase("the right passphrase", []byte("data"))
	require.NoError(t, err)

	_, err = OpenWithPassphrase("the wrong passphrase", payload)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestOpenWithPassphrase_TamperedPayload(t *testing.T) {
	payload, err := SealWithPassphrase("the right passphrase", []byte("data"))
	require.NoError(t, err)

	blob, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	blob[len(blob)-1] ^= 0x01

	_, err = OpenWithPassphrase("the right passphrase", base64.StdEncoding.EncodeToString(blob))
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestOpenWithPassphrase_StructurallyCorrupt(t *testing.T) {
	// Structural corruption is reported the same way as a wrong
	// passphrase; the error never reveals what is wrong with a
	// container.
	tests := []struct {
		name    string
		payload string
	}{
		{name: "not base64", payload: "%%%not-base64%%%"},
		{name: "too short for salt", payload: base64.StdEncoding.EncodeToString([]byte("short"))},
		{name: "too short for nonce", payload: base64.StdEncoding.EncodeToString(make([]byte, VaultSaltLen+4))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OpenWithPassphrase("whatever", tt.payload)
			assert.ErrorIs(t, err, ErrDecryptionFailed)
		})
	}
}
