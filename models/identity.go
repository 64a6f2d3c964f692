package models

import "time"

// Identity represents an account holder used for authentication and
// authorization. It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type Identity struct {
	// IdentityID is the internal unique identifier of the account holder.
	// It is not exposed via JSON and is used only at the persistence layer.
	IdentityID int64 `json:"-"`

	// Login is the unique login identifier used during authentication.
	Login string `json:"login"`

	// SecretHash is the one-way Argon2id digest of the login secret.
	// The plaintext secret is never persisted or logged.
	SecretHash string `json:"-"`

	// FailedAttempts is the number of consecutive failed login attempts
	// recorded since the last successful login.
	FailedAttempts int `json:"-"`

	// LockedUntil, when non-nil, marks the end of the current lockout
	// window. Login attempts before this moment are rejected without the
	// secret ever being checked.
	LockedUntil *time.Time `json:"-"`

	// Active reports whether the account may authenticate at all.
	// Deactivation is a flag, never a physical delete.
	Active bool `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Identity model.
func (i Identity) TableName() string {
	return "identities"
}

// LockoutState is the externally visible portion of an identity's lockout
// bookkeeping, returned by the lockout policy after every recorded outcome.
type LockoutState struct {
	// Attempts is the current consecutive failed-attempt count.
	Attempts int `json:"attempts"`

	// LockedUntil is nil while the identity is not locked.
	LockedUntil *time.Time `json:"locked_until,omitempty"`
}

// Locked reports whether the state describes an active lock at the given
// moment. Expired locks are treated as not locked (expiry is lazy).
func (s LockoutState) Locked(now time.Time) bool {
	return s.LockedUntil != nil && s.LockedUntil.After(now)
}
