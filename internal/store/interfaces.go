package store

//go:generate mockgen -source=interfaces.go -destination=../mock/repositories_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mkovalev/go-cred-vault/models"
)

// IdentityRepository is the keyed-lookup persistence interface for account
// holders. Lockout bookkeeping is mutated exclusively through the
// compare-and-set UpdateLockout so that two requests racing on the same
// identity never lose an update.
type IdentityRepository interface {
	// CreateIdentity persists a new identity and returns it with
	// server-assigned fields populated.
	CreateIdentity(ctx context.Context, identity models.Identity) (models.Identity, error)

	// FindIdentityByLogin looks an identity up by its unique login.
	FindIdentityByLogin(ctx context.Context, login string) (models.Identity, error)

	// FindIdentityByID looks an identity up by its primary key.
	FindIdentityByID(ctx context.Context, identityID int64) (models.Identity, error)

	// UpdateLockout atomically replaces the lockout state of an identity,
	// guarded by the previously observed state. Returns false without
	// error when the guard no longer matches (a concurrent writer won).
	UpdateLockout(ctx context.Context, identityID int64, prev, next models.LockoutState) (bool, error)
}

// SessionRepository is the keyed-lookup persistence interface for session
// records. Lookups are by token digest only — raw bearer strings never
// reach this layer.
type SessionRepository interface {
	// InsertSession persists a freshly issued session record.
	InsertSession(ctx context.Context, record models.SessionRecord) error

	// FindSessionByAccessHash retrieves the record whose current access
	// token digest matches.
	FindSessionByAccessHash(ctx context.Context, digest string) (models.SessionRecord, error)

	// FindSessionByRefreshHash retrieves the record whose refresh token
	// digest matches.
	FindSessionByRefreshHash(ctx context.Context, digest string) (models.SessionRecord, error)

	// RotateAccessToken supersedes the session's access token digest and
	// extends its expiry in one atomic update. Only a still-valid record
	// is rotated; ErrSessionNotFound is returned otherwise.
	RotateAccessToken(ctx context.Context, sessionID uuid.UUID, accessHash string, expiresAt, lastActivity time.Time) error

	// TouchSession updates the session's last-activity timestamp.
	TouchSession(ctx context.Context, sessionID uuid.UUID, lastActivity time.Time) error

	// RevokeByTokenHash invalidates the record matching the digest in
	// either token column. Returns the number of rows affected; revoking
	// an already-revoked or unknown token affects zero rows and is not an
	// error.
	RevokeByTokenHash(ctx context.Context, digest string) (int64, error)

	// RevokeAllForOwner invalidates every live session of the owner and
	// returns the count affected.
	RevokeAllForOwner(ctx context.Context, ownerID int64) (int64, error)

	// DeleteExpiredSessions removes rows that expired before the given
	// moment or were revoked. Used by the cleanup worker; correctness does
	// not depend on it running.
	DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error)
}

// CredentialRepository is the keyed-lookup persistence interface for stored
// site credentials. Secret-bearing columns hold encrypted-field wire
// strings; this layer never sees plaintext secrets.
type CredentialRepository interface {
	// SaveCredential persists a new credential and returns it with
	// server-assigned fields populated.
	SaveCredential(ctx context.Context, credential models.Credential) (models.Credential, error)

	// GetCredential retrieves one credential scoped to its owner.
	GetCredential(ctx context.Context, ownerID, credentialID int64) (models.Credential, error)

	// GetAllCredentials retrieves every credential of the owner.
	GetAllCredentials(ctx context.Context, ownerID int64) ([]models.Credential, error)

	// UpdateCredential replaces the mutable fields of an existing
	// credential, scoped to its owner.
	UpdateCredential(ctx context.Context, credential models.Credential) error

	// DeleteCredential removes one credential scoped to its owner.
	DeleteCredential(ctx context.Context, ownerID, credentialID int64) error
}
