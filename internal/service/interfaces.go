package service

//go:generate mockgen -source=interfaces.go -destination=../mock/services_mock.go -package=mock

import (
	"context"

	"github.com/mkovalev/go-cred-vault/models"
)

// AuthService orchestrates registration and login: the lockout gate, the
// credential hasher, and token issuance, in that order.
type AuthService interface {
	// Register creates a new identity with a hashed login secret.
	Register(ctx context.Context, login, secret string) (models.Identity, error)

	// Login authenticates an identity and issues a fresh token pair.
	// A locked identity is rejected before its secret is ever checked.
	Login(ctx context.Context, login, secret string) (models.TokenPair, error)
}

// SessionService is the token authority: it issues, verifies, refreshes,
// and revokes bearer session tokens backed by persisted session records.
type SessionService interface {
	// Issue creates a new session record and returns a signed token pair.
	Issue(ctx context.Context, identity models.Identity) (models.TokenPair, error)

	// VerifyAccess validates an access token (signature, expiry, issuer,
	// type) and cross-checks the backing session record's liveness.
	VerifyAccess(ctx context.Context, tokenString string) (models.Identity, error)

	// Refresh rotates the session's access-token digest and returns a
	// fresh access token.
	Refresh(ctx context.Context, refreshTokenString string) (models.Token, error)

	// Revoke invalidates the session matching the presented token.
	// Revoking an unknown or already-revoked token is not an error.
	Revoke(ctx context.Context, tokenString string) error

	// RevokeAll invalidates every live session of the owner ("logout
	// everywhere") and returns the count affected.
	RevokeAll(ctx context.Context, ownerID int64) (int64, error)
}

// LockoutService is the failed-login state machine: it gates authentication
// attempts during a lockout window and records attempt outcomes atomically.
type LockoutService interface {
	// CheckAllowed rejects the attempt with an [AccountLockedError] while
	// the identity's lockout window is active.
	CheckAllowed(ctx context.Context, identity models.Identity) error

	// RecordOutcome applies one login outcome to the identity's lockout
	// state and returns the resulting state.
	RecordOutcome(ctx context.Context, identityID int64, success bool) (models.LockoutState, error)
}

// CredentialService is the CRUD layer over stored site credentials. Secret
// fields are encrypted before they reach the store and decrypted on the way
// back.
type CredentialService interface {
	CreateCredential(ctx context.Context, credential models.Credential) (models.Credential, error)
	GetCredential(ctx context.Context, ownerID, credentialID int64) (models.Credential, error)
	ListCredentials(ctx context.Context, ownerID int64) ([]models.Credential, error)
	UpdateCredential(ctx context.Context, credential models.Credential) error
	DeleteCredential(ctx context.Context, ownerID, credentialID int64) error

	// DecryptedAccounts loads and decrypts the owner's full credential
	// set in export form.
	DecryptedAccounts(ctx context.Context, ownerID int64) ([]models.DecryptedAccount, error)
}

// VaultService is the export/import codec for portable, passphrase-encrypted
// vault containers.
type VaultService interface {
	// Export encodes a decrypted account set into a passphrase-encrypted
	// container.
	Export(ctx context.Context, accounts []models.DecryptedAccount, passphrase string) (models.VaultContainer, error)

	// Import decodes a container back into accounts, skipping
	// individually malformed records.
	Import(ctx context.Context, container models.VaultContainer, passphrase string) (models.VaultImportResult, error)
}
