package service

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors returned by the service layer. The transport layer maps
// them onto HTTP status codes; none of them ever carries user-facing text,
// key material, or token strings.
var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials covers both "unknown login" and "wrong
	// secret": the two are deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenExpired is returned when a token's signature is valid but
	// its "exp" claim has passed.
	ErrTokenExpired = errors.New("token is expired")

	// ErrTokenMalformed is returned for tokens that fail signature,
	// issuer, or structural validation.
	ErrTokenMalformed = errors.New("token is malformed")

	// ErrSessionRevoked is returned when a token passes pure signature
	// verification but its backing session record is missing or no longer
	// valid. This is the stateful half of the two-layer token check.
	ErrSessionRevoked = errors.New("session is revoked")

	// ErrRefreshTokenInvalid is returned on any refresh failure that is
	// not an inactive owner: bad signature, wrong token type, unknown or
	// dead session. The causes are not distinguished.
	ErrRefreshTokenInvalid = errors.New("refresh token is invalid")

	// ErrOwnerInactive is returned when the identity behind a token has
	// been deactivated.
	ErrOwnerInactive = errors.New("identity is inactive")

	// ErrAccountLocked is the sentinel matched by [errors.Is] against an
	// [AccountLockedError].
	ErrAccountLocked = errors.New("account is temporarily locked")

	// ErrPersistenceFailure wraps storage errors that have no
	// domain-level meaning (store unreachable or inconsistent).
	ErrPersistenceFailure = errors.New("persistence failure")
)

// Vault codec errors.
var (
	// ErrEmptyVault is returned when an export is requested for an empty
	// account set.
	ErrEmptyVault = errors.New("vault is empty")

	// ErrWeakPassphrase is returned when the export passphrase fails the
	// minimum-length policy.
	ErrWeakPassphrase = errors.New("passphrase is too weak")

	// ErrMalformedContainer is returned when a container decrypts
	// correctly but its payload cannot be parsed, or the accounts field
	// is missing. Decryption failures are reported separately (and
	// indistinguishably from a wrong passphrase) as
	// crypto.ErrDecryptionFailed.
	ErrMalformedContainer = errors.New("malformed vault container")
)

// AccountLockedError reports a rejected authentication attempt during an
// active lockout window. It matches [ErrAccountLocked] under [errors.Is],
// so callers can branch on the sentinel and use [errors.As] to read the
// retry-after duration.
type AccountLockedError struct {
	// RetryAfter is the remaining length of the lockout window.
	RetryAfter time.Duration
}

// Error implements the error interface.
func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("account is temporarily locked, retry after %s", e.RetryAfter.Round(time.Second))
}

// Is reports whether target is the [ErrAccountLocked] sentinel.
func (e *AccountLockedError) Is(target error) bool {
	return target == ErrAccountLocked
}
