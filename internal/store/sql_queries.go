package store

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/mkovalev/go-cred-vault/models"

	"time"
)

// Column lists shared by the query builders and the row scanners. Order
// matters: every scanner scans in exactly this order.
var (
	identityColumns = []string{
		"identity_id", "login", "secret_hash",
		"failed_attempts", "locked_until", "active", "created_at",
	}

	sessionColumns = []string{
		"session_id", "owner_id", "access_token_hash", "refresh_token_hash",
		"issued_at", "expires_at", "last_activity", "valid",
	}

	credentialColumns = []string{
		"credential_id", "owner_id", "title", "login",
		"secret", "notes", "created_at", "updated_at",
	}
)

// stmt returns a squirrel statement builder configured with the placeholder
// format of the active database driver ($1 for pgx, ? for sqlite3).
func stmt(ph sq.PlaceholderFormat) sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(ph)
}

// ── identities ───────────────────────────────────────────────────────────────

func buildInsertIdentityQuery(ph sq.PlaceholderFormat, identity models.Identity) (string, []any, error) {
	return stmt(ph).
		Insert(identity.TableName()).
		Columns("login", "secret_hash", "active").
		Values(identity.Login, identity.SecretHash, true).
		Suffix("RETURNING identity_id, failed_attempts, locked_until, active, created_at").
		ToSql()
}

func buildSelectIdentityByLoginQuery(ph sq.PlaceholderFormat, login string) (string, []any, error) {
	return stmt(ph).
		Select(identityColumns...).
		From(models.Identity{}.TableName()).
		Where(sq.Eq{"login": login}).
		ToSql()
}

func buildSelectIdentityByIDQuery(ph sq.PlaceholderFormat, identityID int64) (string, []any, error) {
	return stmt(ph).
		Select(identityColumns...).
		From(models.Identity{}.TableName()).
		Where(sq.Eq{"identity_id": identityID}).
		ToSql()
}

// buildUpdateLockoutQuery builds the compare-and-set update of an identity's
// lockout fields. The WHERE clause repeats the previously observed state, so
// the statement affects zero rows when a concurrent writer got there first.
// squirrel renders a nil *time.Time guard as "locked_until IS NULL".
func buildUpdateLockoutQuery(ph sq.PlaceholderFormat, identityID int64, prev, next models.LockoutState) (string, []any, error) {
	return stmt(ph).
		Update(models.Identity{}.TableName()).
		Set("failed_attempts", next.Attempts).
		Set("locked_until", next.LockedUntil).
		Where(sq.Eq{
			"identity_id":     identityID,
			"failed_attempts": prev.Attempts,
			"locked_until":    prev.LockedUntil,
		}).
		ToSql()
}

// ── sessions ─────────────────────────────────────────────────────────────────

func buildInsertSessionQuery(ph sq.PlaceholderFormat, record models.SessionRecord) (string, []any, error) {
	return stmt(ph).
		Insert(record.TableName()).
		Columns(sessionColumns...).
		Values(
			record.SessionID, record.OwnerID,
			record.AccessTokenHash, record.RefreshTokenHash,
			record.IssuedAt, record.ExpiresAt, record.LastActivity, record.Valid,
		).
		ToSql()
}

func buildSelectSessionByAccessHashQuery(ph sq.PlaceholderFormat, digest string) (string, []any, error) {
	return stmt(ph).
		Select(sessionColumns...).
		From(models.SessionRecord{}.TableName()).
		Where(sq.Eq{"access_token_hash": digest}).
		ToSql()
}

func buildSelectSessionByRefreshHashQuery(ph sq.PlaceholderFormat, digest string) (string, []any, error) {
	return stmt(ph).
		Select(sessionColumns...).
		From(models.SessionRecord{}.TableName()).
		Where(sq.Eq{"refresh_token_hash": digest}).
		ToSql()
}

// buildRotateAccessTokenQuery supersedes the access-token digest of a
// still-valid session. The "valid" guard keeps rotation from resurrecting a
// session revoked between lookup and update.
func buildRotateAccessTokenQuery(ph sq.PlaceholderFormat, sessionID uuid.UUID, accessHash string, expiresAt, lastActivity time.Time) (string, []any, error) {
	return stmt(ph).
		Update(models.SessionRecord{}.TableName()).
		Set("access_token_hash", accessHash).
		Set("expires_at", expiresAt).
		Set("last_activity", lastActivity).
		Where(sq.Eq{"session_id": sessionID, "valid": true}).
		ToSql()
}

func buildTouchSessionQuery(ph sq.PlaceholderFormat, sessionID uuid.UUID, lastActivity time.Time) (string, []any, error) {
	return stmt(ph).
		Update(models.SessionRecord{}.TableName()).
		Set("last_activity", lastActivity).
		Where(sq.Eq{"session_id": sessionID}).
		ToSql()
}

// buildRevokeByTokenHashQuery matches the digest against both token columns:
// callers may present either half of the pair on logout.
func buildRevokeByTokenHashQuery(ph sq.PlaceholderFormat, digest string) (string, []any, error) {
	return stmt(ph).
		Update(models.SessionRecord{}.TableName()).
		Set("valid", false).
		Where(sq.And{
			sq.Eq{"valid": true},
			sq.Or{
				sq.Eq{"access_token_hash": digest},
				sq.Eq{"refresh_token_hash": digest},
			},
		}).
		ToSql()
}

func buildRevokeAllForOwnerQuery(ph sq.PlaceholderFormat, ownerID int64) (string, []any, error) {
	return stmt(ph).
		Update(models.SessionRecord{}.TableName()).
		Set("valid", false).
		Where(sq.Eq{"owner_id": ownerID, "valid": true}).
		ToSql()
}

func buildDeleteExpiredSessionsQuery(ph sq.PlaceholderFormat, before time.Time) (string, []any, error) {
	return stmt(ph).
		Delete(models.SessionRecord{}.TableName()).
		Where(sq.Or{
			sq.Lt{"expires_at": before},
			sq.Eq{"valid": false},
		}).
		ToSql()
}

// ── credentials ──────────────────────────────────────────────────────────────

func buildInsertCredentialQuery(ph sq.PlaceholderFormat, credential models.Credential) (string, []any, error) {
	return stmt(ph).
		Insert(credential.TableName()).
		Columns("owner_id", "title", "login", "secret", "notes").
		Values(credential.OwnerID, credential.Title, credential.Login, credential.Secret, credential.Notes).
		Suffix("RETURNING credential_id, created_at, updated_at").
		ToSql()
}

func buildSelectCredentialQuery(ph sq.PlaceholderFormat, ownerID, credentialID int64) (string, []any, error) {
	return stmt(ph).
		Select(credentialColumns...).
		From(models.Credential{}.TableName()).
		Where(sq.Eq{"owner_id": ownerID, "credential_id": credentialID}).
		ToSql()
}

func buildSelectAllCredentialsQuery(ph sq.PlaceholderFormat, ownerID int64) (string, []any, error) {
	return stmt(ph).
		Select(credentialColumns...).
		From(models.Credential{}.TableName()).
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("credential_id").
		ToSql()
}

func buildUpdateCredentialQuery(ph sq.PlaceholderFormat, credential models.Credential, updatedAt time.Time) (string, []any, error) {
	return stmt(ph).
		Update(credential.TableName()).
		Set("title", credential.Title).
		Set("login", credential.Login).
		Set("secret", credential.Secret).
		Set("notes", credential.Notes).
		Set("updated_at", updatedAt).
		Where(sq.Eq{"owner_id": credential.OwnerID, "credential_id": credential.CredentialID}).
		ToSql()
}

func buildDeleteCredentialQuery(ph sq.PlaceholderFormat, ownerID, credentialID int64) (string, []any, error) {
	return stmt(ph).
		Delete(models.Credential{}.TableName()).
		Where(sq.Eq{"owner_id": ownerID, "credential_id": credentialID}).
		ToSql()
}
