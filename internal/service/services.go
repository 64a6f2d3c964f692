package service

import (
	"github.com/mkovalev/go-cred-vault/internal/config"
	"github.com/mkovalev/go-cred-vault/internal/crypto"
	"github.com/mkovalev/go-cred-vault/internal/logger"
	"github.com/mkovalev/go-cred-vault/internal/store"
)

// Services bundles every service-layer collaborator handed to the transport
// layer.
type Services struct {
	AuthService       AuthService
	SessionService    SessionService
	LockoutService    LockoutService
	CredentialService CredentialService
	VaultService      VaultService
}

// NewServices wires the full service layer: the crypto primitives are built
// from the app config, then every service gets its repositories and
// collaborators.
//
// Returns an error only when a crypto primitive rejects its configuration
// (bad master key), which is fatal at startup.
func NewServices(storages store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	fieldCipher, err := crypto.NewFieldCipher(cfg.App.MasterKey)
	if err != nil {
		return nil, err
	}

	hasher := crypto.NewCredentialHasher(crypto.HasherParams{
		Time:        cfg.App.HashTime,
		MemoryKiB:   cfg.App.HashMemoryKiB,
		Parallelism: cfg.App.HashParallelism,
	})

	sessionService := NewSessionService(storages.SessionRepository, storages.IdentityRepository, cfg.App, logger)
	lockoutService := NewLockoutService(storages.IdentityRepository, cfg.App, logger)

	return &Services{
		AuthService:       NewAuthService(storages.IdentityRepository, hasher, lockoutService, sessionService, logger),
		SessionService:    sessionService,
		LockoutService:    lockoutService,
		CredentialService: NewCredentialService(storages.CredentialRepository, fieldCipher, logger),
		VaultService:      NewVaultService(cfg.App, logger),
	}, nil
}
