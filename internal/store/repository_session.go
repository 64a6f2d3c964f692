package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mkovalev/go-cred-vault/internal/logger"
	"github.com/mkovalev/go-cred-vault/models"
)

// sessionRepository is the SQL-backed implementation of [SessionRepository].
// It persists session records keyed by token digest against the "sessions"
// table. Raw bearer strings never reach this type; every lookup argument is
// already a one-way digest.
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided database connection and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// InsertSession persists a freshly issued session record.
func (r *sessionRepository) InsertSession(ctx context.Context, record models.SessionRecord) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertSessionQuery(r.db.Placeholder(), record)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.InsertSession").Msg("error: building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*sessionRepository.InsertSession").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// FindSessionByAccessHash retrieves the record whose current access-token
// digest matches. Returns [ErrSessionNotFound] when no row matches.
func (r *sessionRepository) FindSessionByAccessHash(ctx context.Context, digest string) (models.SessionRecord, error) {
	query, args, err := buildSelectSessionByAccessHashQuery(r.db.Placeholder(), digest)
	if err != nil {
		return models.SessionRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.scanSession(ctx, query, args)
}

// FindSessionByRefreshHash retrieves the record whose refresh-token digest
// matches. Returns [ErrSessionNotFound] when no row matches.
func (r *sessionRepository) FindSessionByRefreshHash(ctx context.Context, digest string) (models.SessionRecord, error) {
	query, args, err := buildSelectSessionByRefreshHashQuery(r.db.Placeholder(), digest)
	if err != nil {
		return models.SessionRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.scanSession(ctx, query, args)
}

// RotateAccessToken supersedes the session's access-token digest and
// extends its expiry in a single guarded UPDATE. The statement only touches
// a still-valid record, so rotation can never resurrect a session revoked
// between the caller's lookup and this update.
//
// Returns [ErrSessionNotFound] when zero rows are affected.
func (r *sessionRepository) RotateAccessToken(ctx context.Context, sessionID uuid.UUID, accessHash string, expiresAt, lastActivity time.Time) error {
	log := logger.FromContext(ctx)

	query, args, err := buildRotateAccessTokenQuery(r.db.Placeholder(), sessionID, accessHash, expiresAt, lastActivity)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.RotateAccessToken").Msg("error: building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.RotateAccessToken").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// TouchSession updates the session's last-activity timestamp. Touching an
// already-deleted session affects zero rows and is not an error.
func (r *sessionRepository) TouchSession(ctx context.Context, sessionID uuid.UUID, lastActivity time.Time) error {
	query, args, err := buildTouchSessionQuery(r.db.Placeholder(), sessionID, lastActivity)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// RevokeByTokenHash invalidates the live record matching the digest in
// either token column and returns the number of rows affected. Zero rows
// (unknown digest, already revoked) is a valid, idempotent outcome.
func (r *sessionRepository) RevokeByTokenHash(ctx context.Context, digest string) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildRevokeByTokenHashQuery(r.db.Placeholder(), digest)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.RevokeByTokenHash").Msg("error: building query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffected(ctx, query, args)
}

// RevokeAllForOwner invalidates every live session of the owner and returns
// the count affected.
func (r *sessionRepository) RevokeAllForOwner(ctx context.Context, ownerID int64) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildRevokeAllForOwnerQuery(r.db.Placeholder(), ownerID)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.RevokeAllForOwner").Msg("error: building query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffected(ctx, query, args)
}

// DeleteExpiredSessions removes rows that expired before the given moment
// or were already revoked, and returns the count removed.
func (r *sessionRepository) DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := buildDeleteExpiredSessionsQuery(r.db.Placeholder(), before)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffected(ctx, query, args)
}

// execAffected executes a DML statement and returns the affected-row count.
func (r *sessionRepository) execAffected(ctx context.Context, query string, args []any) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.execAffected").Msg("error: executing statement")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}

// scanSession executes a single-row session query and maps the empty result
// set to [ErrSessionNotFound].
func (r *sessionRepository) scanSession(ctx context.Context, query string, args []any) (models.SessionRecord, error) {
	log := logger.FromContext(ctx)

	var found models.SessionRecord
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(
		&found.SessionID, &found.OwnerID,
		&found.AccessTokenHash, &found.RefreshTokenHash,
		&found.IssuedAt, &found.ExpiresAt, &found.LastActivity, &found.Valid,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SessionRecord{}, ErrSessionNotFound
		}
		log.Err(err).Str("func", "*sessionRepository.scanSession").Msg("error: scanning error")
		return models.SessionRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return found, nil
}
