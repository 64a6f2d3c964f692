package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/mkovalev/go-cred-vault/internal/logger"
	"github.com/mkovalev/go-cred-vault/models"
)

// identityRepository is the SQL-backed implementation of
// [IdentityRepository]. It handles identity creation, lookup, and the
// compare-and-set lockout update against the "identities" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type identityRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewIdentityRepository constructs an [IdentityRepository] backed by the
// provided database connection and logger.
func NewIdentityRepository(db *DB, logger *logger.Logger) IdentityRepository {
	logger.Debug().Msg("creating identity repository")
	return &identityRepository{
		db:     db,
		logger: logger,
	}
}

// CreateIdentity persists a new identity record and returns the fully
// populated [models.Identity] with server-assigned fields (IdentityID,
// CreatedAt, Active).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrLoginAlreadyExists].
//   - Query build failure → wrapped [ErrBuildingSQLQuery].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *identityRepository) CreateIdentity(ctx context.Context, identity models.Identity) (models.Identity, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertIdentityQuery(r.db.Placeholder(), identity)
	if err != nil {
		log.Err(err).Str("func", "*identityRepository.CreateIdentity").Msg("error: building query")
		return models.Identity{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	if err = row.Scan(&identity.IdentityID, &identity.FailedAttempts, &identity.LockedUntil, &identity.Active, &identity.CreatedAt); err != nil {
		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Identity{}, ErrLoginAlreadyExists
		}
		log.Err(err).Str("func", "*identityRepository.CreateIdentity").Msg("error: scanning error")
		return models.Identity{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return identity, nil
}

// FindIdentityByLogin retrieves an identity record by its unique login.
//
// Returns [ErrNoIdentityWasFound] when no row matches.
func (r *identityRepository) FindIdentityByLogin(ctx context.Context, login string) (models.Identity, error) {
	query, args, err := buildSelectIdentityByLoginQuery(r.db.Placeholder(), login)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.scanIdentity(ctx, query, args)
}

// FindIdentityByID retrieves an identity record by its primary key.
//
// Returns [ErrNoIdentityWasFound] when no row matches.
func (r *identityRepository) FindIdentityByID(ctx context.Context, identityID int64) (models.Identity, error) {
	query, args, err := buildSelectIdentityByIDQuery(r.db.Placeholder(), identityID)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.scanIdentity(ctx, query, args)
}

// UpdateLockout atomically replaces the lockout fields of an identity
// guarded by the previously observed state (attempts count plus lock
// expiry, with NULL-safe matching of the latter).
//
// Returns (false, nil) when the guard no longer matches — a concurrent
// request recorded its outcome first and the caller must re-read and
// recompute. A transiently failing statement (connection loss, deadlock) is
// retried once before the error is surfaced.
func (r *identityRepository) UpdateLockout(ctx context.Context, identityID int64, prev, next models.LockoutState) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateLockoutQuery(r.db.Placeholder(), identityID, prev, next)
	if err != nil {
		log.Err(err).Str("func", "*identityRepository.UpdateLockout").Msg("error: building query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil && r.db.classify(err) == Retryable {
		log.Warn().Err(err).Int64("identity_id", identityID).Msg("retrying lockout update after transient error")
		res, err = r.db.ExecContext(ctx, query, args...)
	}
	if err != nil {
		log.Err(err).Str("func", "*identityRepository.UpdateLockout").Msg("error: executing statement")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected > 0, nil
}

// scanIdentity executes a single-row identity query and maps the empty
// result set to [ErrNoIdentityWasFound].
func (r *identityRepository) scanIdentity(ctx context.Context, query string, args []any) (models.Identity, error) {
	log := logger.FromContext(ctx)

	var found models.Identity
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(
		&found.IdentityID, &found.Login, &found.SecretHash,
		&found.FailedAttempts, &found.LockedUntil, &found.Active, &found.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Identity{}, ErrNoIdentityWasFound
		}
		log.Err(err).Str("func", "*identityRepository.scanIdentity").Msg("error: scanning error")
		return models.Identity{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return found, nil
}
