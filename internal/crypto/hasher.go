// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maxim Kovalev

package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// hasherSaltLen is the random salt length used for every new digest.
const hasherSaltLen = 16

// digestPrefix identifies the encoded digest format.
const digestPrefix = "argon2id$"

// HasherParams are the Argon2id tuning parameters. They are a
// deployment-time constant: every digest produced by one process uses the
// same work factor, so old and new hashes are indistinguishable by timing.
type HasherParams struct {
	// Time is the iteration count.
	Time uint32

	// MemoryKiB is the memory cost in KiB.
	MemoryKiB uint32

	// Parallelism is the number of threads.
	Parallelism uint8

	// KeyLen is the derived key length in bytes.
	KeyLen uint32
}

// DefaultHasherParams are the Argon2id parameters recommended by OWASP
// (2024): 1 iteration, 64 MiB, 4 threads, 256-bit key.
func DefaultHasherParams() HasherParams {
	return HasherParams{
		Time:        1,
		MemoryKiB:   64 * 1024, // 64 MiB
		Parallelism: 4,
		KeyLen:      32, // 256 bits
	}
}

// credentialHasher is the private implementation of [CredentialHasher].
type credentialHasher struct {
	params HasherParams
}

// NewCredentialHasher constructs a [CredentialHasher] with the given
// Argon2id parameters. Zero-valued fields fall back to
// [DefaultHasherParams].
func NewCredentialHasher(params HasherParams) CredentialHasher {
	defaults := DefaultHasherParams()
	if params.Time == 0 {
		params.Time = defaults.Time
	}
	if params.MemoryKiB == 0 {
		params.MemoryKiB = defaults.MemoryKiB
	}
	if params.Parallelism == 0 {
		params.Parallelism = defaults.Parallelism
	}
	if params.KeyLen == 0 {
		params.KeyLen = defaults.KeyLen
	}

	return &credentialHasher{params: params}
}

// Hash implements [CredentialHasher]. It reads a fresh 16-byte salt from
// the OS CSPRNG and derives an Argon2id key of the configured length.
//
// The digest is self-describing:
//
//	argon2id$m=<M>,t=<T>,p=<P>$<b64(salt)>$<b64(key)>
//
// so Verify can recompute the key with the exact parameters the digest was
// created with, even after a deployment changes its defaults.
func (h *credentialHasher) Hash(secret string) (string, error) {
	salt := make([]byte, hasherSaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(secret), salt, h.params.Time, h.params.MemoryKiB, h.params.Parallelism, h.params.KeyLen)

	return fmt.Sprintf("%sm=%d,t=%d,p=%d$%s$%s",
		digestPrefix,
		h.params.MemoryKiB, h.params.Time, h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify implements [CredentialHasher]. It recomputes the Argon2id key with
// the parameters embedded in digest and compares in constant time.
//
// A mismatch returns (false, nil). Only a digest that cannot be parsed
// returns [ErrInvalidDigestFormat].
func (h *credentialHasher) Verify(secret, digest string) (bool, error) {
	if !strings.HasPrefix(digest, digestPrefix) {
		return false, ErrInvalidDigestFormat
	}

	parts := strings.Split(digest[len(digestPrefix):], "$")
	if len(parts) != 3 {
		return false, ErrInvalidDigestFormat
	}

	var m, t uint32
	var p uint8
	if _, err := fmt.Sscanf(parts[0], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil {
		return false, ErrInvalidDigestFormat
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[1])
	if err != nil {
		return false, ErrInvalidDigestFormat
	}

	wantKey, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil {
		return false, ErrInvalidDigestFormat
	}

	key := argon2.IDKey([]byte(secret), salt, t, m, p, uint32(len(wantKey)))

	return subtle.ConstantTimeCompare(key, wantKey) == 1, nil
}
