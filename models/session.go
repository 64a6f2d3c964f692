package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionRecord is the persisted state backing one issued token pair.
//
// Only one-way digests of the bearer strings are stored, so a compromised
// sessions table cannot be replayed against the API: matching a presented
// token against a record requires the original token string.
//
// One identity may own many concurrent records (multi-device). A record is
// mutated on refresh (rotated access digest, extended expiry) and on revoke
// (valid → false); it is never resurrected.
type SessionRecord struct {
	// SessionID is the server-assigned unique identifier of the session.
	SessionID uuid.UUID `json:"session_id"`

	// OwnerID is the identity that owns this session.
	OwnerID int64 `json:"owner_id"`

	// AccessTokenHash is the SHA-256 hex digest of the currently valid
	// access token string. Superseded on every refresh.
	AccessTokenHash string `json:"-"`

	// RefreshTokenHash is the SHA-256 hex digest of the refresh token
	// string issued together with this session.
	RefreshTokenHash string `json:"-"`

	// IssuedAt is the moment the session was created.
	IssuedAt time.Time `json:"issued_at"`

	// ExpiresAt bounds the lifetime of the refresh token; after this moment
	// the session cannot be refreshed even if still valid.
	ExpiresAt time.Time `json:"expires_at"`

	// LastActivity is updated on every successful access-token verification
	// and refresh.
	LastActivity time.Time `json:"last_activity"`

	// Valid is the revocation flag. Once false the session is dead:
	// both verification and refresh must reject it immediately.
	Valid bool `json:"valid"`
}

// TableName returns the name of the database table
// associated with the SessionRecord model.
func (s SessionRecord) TableName() string {
	return "sessions"
}

// Live reports whether the session can still back token operations at the
// given moment: it must not be revoked and must not be past its expiry.
func (s SessionRecord) Live(now time.Time) bool {
	return s.Valid && s.ExpiresAt.After(now)
}
