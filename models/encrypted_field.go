package models

import (
	"encoding/hex"
	"errors"
	"strings"
)

// FieldSeparator delimits the two hex-encoded parts of an encrypted field's
// wire form.
const FieldSeparator = ":"

// ErrBadFieldEncoding is returned by [DecodeEncryptedField] when the input
// string cannot be split into a hex IV and hex ciphertext.
var ErrBadFieldEncoding = errors.New("bad encrypted field encoding")

// EncryptedField is the at-rest representation of a single secret value:
// a fresh random initialization vector plus the AES-GCM ciphertext.
//
// Wire format is a single delimited string: hex(IV) ":" hex(ciphertext).
// Encrypting the same plaintext twice yields different EncryptedField
// values because the IV is regenerated on every call.
type EncryptedField struct {
	// IV is the per-encryption initialization vector (GCM nonce).
	IV []byte `json:"-"`

	// Ciphertext is the authenticated ciphertext of the plaintext value.
	Ciphertext []byte `json:"-"`
}

// Encode serializes the field into its wire form: hex(IV) ":" hex(ciphertext).
func (f EncryptedField) Encode() string {
	return hex.EncodeToString(f.IV) + FieldSeparator + hex.EncodeToString(f.Ciphertext)
}

// DecodeEncryptedField parses the wire form produced by
// [EncryptedField.Encode].
//
// Returns [ErrBadFieldEncoding] if the string does not consist of exactly
// two non-empty hex parts separated by [FieldSeparator].
func DecodeEncryptedField(s string) (EncryptedField, error) {
	parts := strings.Split(s, FieldSeparator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return EncryptedField{}, ErrBadFieldEncoding
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil {
		return EncryptedField{}, ErrBadFieldEncoding
	}

	ciphertext, err := hex.DecodeString(parts[1])
	if err != nil {
		return EncryptedField{}, ErrBadFieldEncoding
	}

	return EncryptedField{IV: iv, Ciphertext: ciphertext}, nil
}
