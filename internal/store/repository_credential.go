package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mkovalev/go-cred-vault/internal/logger"
	"github.com/mkovalev/go-cred-vault/models"
)

// credentialRepository is the SQL-backed implementation of
// [CredentialRepository]. Every query is scoped by owner_id, so one
// identity can never read or mutate another identity's rows regardless of
// what identifiers the transport layer passes down.
type credentialRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCredentialRepository constructs a [CredentialRepository] backed by the
// provided database connection and logger.
func NewCredentialRepository(db *DB, logger *logger.Logger) CredentialRepository {
	logger.Debug().Msg("creating credential repository")
	return &credentialRepository{
		db:     db,
		logger: logger,
	}
}

// SaveCredential persists a new credential row and returns it with the
// server-assigned CredentialID and timestamps populated.
func (r *credentialRepository) SaveCredential(ctx context.Context, credential models.Credential) (models.Credential, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertCredentialQuery(r.db.Placeholder(), credential)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.SaveCredential").Msg("error: building query")
		return models.Credential{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	if err = row.Scan(&credential.CredentialID, &credential.CreatedAt, &credential.UpdatedAt); err != nil {
		log.Err(err).Str("func", "*credentialRepository.SaveCredential").Msg("error: scanning error")
		return models.Credential{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return credential, nil
}

// GetCredential retrieves one credential scoped to its owner.
// Returns [ErrCredentialNotFound] when no row matches.
func (r *credentialRepository) GetCredential(ctx context.Context, ownerID, credentialID int64) (models.Credential, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectCredentialQuery(r.db.Placeholder(), ownerID, credentialID)
	if err != nil {
		return models.Credential{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var found models.Credential
	row := r.db.QueryRowContext(ctx, query, args...)
	if err = row.Scan(
		&found.CredentialID, &found.OwnerID, &found.Title, &found.Login,
		&found.Secret, &found.Notes, &found.CreatedAt, &found.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Credential{}, ErrCredentialNotFound
		}
		log.Err(err).Str("func", "*credentialRepository.GetCredential").Msg("error: scanning error")
		return models.Credential{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return found, nil
}

// GetAllCredentials retrieves every credential of the owner, ordered by
// creation.
func (r *credentialRepository) GetAllCredentials(ctx context.Context, ownerID int64) ([]models.Credential, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectAllCredentialsQuery(r.db.Placeholder(), ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.GetAllCredentials").Msg("error: executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var credentials []models.Credential
	for rows.Next() {
		var c models.Credential
		if err = rows.Scan(
			&c.CredentialID, &c.OwnerID, &c.Title, &c.Login,
			&c.Secret, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			log.Err(err).Str("func", "*credentialRepository.GetAllCredentials").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		credentials = append(credentials, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return credentials, nil
}

// UpdateCredential replaces the mutable fields of an existing credential.
// Returns [ErrCredentialNotFound] when no row matches the owner/id pair.
func (r *credentialRepository) UpdateCredential(ctx context.Context, credential models.Credential) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateCredentialQuery(r.db.Placeholder(), credential, time.Now().UTC())
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.UpdateCredential").Msg("error: building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execExpectingRow(ctx, query, args)
}

// DeleteCredential removes one credential scoped to its owner.
// Returns [ErrCredentialNotFound] when no row matches.
func (r *credentialRepository) DeleteCredential(ctx context.Context, ownerID, credentialID int64) error {
	query, args, err := buildDeleteCredentialQuery(r.db.Placeholder(), ownerID, credentialID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execExpectingRow(ctx, query, args)
}

// execExpectingRow executes a DML statement that must affect at least one
// row, mapping the zero-row outcome to [ErrCredentialNotFound].
func (r *credentialRepository) execExpectingRow(ctx context.Context, query string, args []any) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.execExpectingRow").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrCredentialNotFound
	}

	return nil
}
