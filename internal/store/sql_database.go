package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/mkovalev/go-cred-vault/internal/logger"
	"github.com/mkovalev/go-cred-vault/migrations"
)

// DB wraps the stdlib connection pool together with the driver-specific
// pieces the repositories need: the squirrel placeholder format ($1 for
// PostgreSQL, ? for SQLite) and the error classifier used to decide whether
// a failed statement is worth retrying.
type DB struct {
	*sql.DB

	dialect            string
	placeholder        sq.PlaceholderFormat
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies all embedded goose migrations to the wrapped database.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// Placeholder returns the squirrel placeholder format matching the
// database driver behind this connection.
func (db *DB) Placeholder() sq.PlaceholderFormat {
	return db.placeholder
}

// classify maps a driver error to a retryability classification. With no
// classifier configured (SQLite backend, unit tests) every error is
// non-retryable.
func (db *DB) classify(err error) ErrorClassification {
	if db.errorClassificator == nil {
		return NonRetryable
	}
	return db.errorClassificator.Classify(err)
}
