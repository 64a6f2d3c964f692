package store

import (
	"context"
	"fmt"

	"github.com/mkovalev/go-cred-vault/internal/config"
	"github.com/mkovalev/go-cred-vault/internal/logger"
)

// Storages aggregates every repository of the application together with the
// shared database handle they run on.
type Storages struct {
	IdentityRepository   IdentityRepository
	SessionRepository    SessionRepository
	CredentialRepository CredentialRepository

	DB *DB
}

// NewStorages connects to the configured database backend, applies the
// embedded migrations, and wires up all repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var (
		db  *DB
		err error
	)

	switch cfg.DB.Driver {
	case config.DBDriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	default:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	}
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err = db.Migrate(); err != nil {
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return &Storages{
		IdentityRepository:   NewIdentityRepository(db, log),
		SessionRepository:    NewSessionRepository(db, log),
		CredentialRepository: NewCredentialRepository(db, log),
		DB:                   db,
	}, nil
}
