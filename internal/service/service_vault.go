// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maxim Kovalev

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mkovalev/go-cred-vault/internal/config"
	"github.com/mkovalev/go-cred-vault/internal/crypto"
	"github.com/mkovalev/go-cred-vault/internal/logger"
	"github.com/mkovalev/go-cred-vault/models"
)

// vaultContainerVersion tags the current container format. Importers reject
// containers carrying any other value.
const vaultContainerVersion = "1"

// vaultBundle is the plaintext JSON document inside a container payload.
type vaultBundle struct {
	Accounts []json.RawMessage `json:"accounts"`
}

// vaultService is the concrete implementation of [VaultService].
//
// The container key is derived from the export passphrase, never from the
// server master key: a container exported here must open on any other
// deployment given only the passphrase.
type vaultService struct {
	// minPassphraseLen is the export passphrase length floor.
	minPassphraseLen int

	// now is the clock; replaced in tests.
	now func() time.Time

	logger *logger.Logger
}

// NewVaultService constructs a [VaultService] with the passphrase policy
// taken from cfg.
func NewVaultService(cfg config.App, logger *logger.Logger) VaultService {
	return &vaultService{
		minPassphraseLen: cfg.MinPassphraseLen,
		now:              time.Now,
		logger:           logger,
	}
}

// Export encodes the account set into a passphrase-encrypted container.
//
// An empty account set returns [ErrEmptyVault] and a passphrase below the
// configured length floor returns [ErrWeakPassphrase]; nothing is encrypted
// in either case.
func (s *vaultService) Export(ctx context.Context, accounts []models.DecryptedAccount, passphrase string) (models.VaultContainer, error) {
	log := logger.FromContext(ctx)

	if len(accounts) == 0 {
		return models.VaultContainer{}, ErrEmptyVault
	}
	if len(passphrase) < s.minPassphraseLen {
		return models.VaultContainer{}, ErrWeakPassphrase
	}

	raw := make([]json.RawMessage, 0, len(accounts))
	for _, account := range accounts {
		encoded, err := json.Marshal(account)
		if err != nil {
			return models.VaultContainer{}, fmt.Errorf("error encoding vault bundle: %w", err)
		}
		raw = append(raw, encoded)
	}

	plaintext, err := json.Marshal(vaultBundle{Accounts: raw})
	if err != nil {
		return models.VaultContainer{}, fmt.Errorf("error encoding vault bundle: %w", err)
	}

	payload, err := crypto.SealWithPassphrase(passphrase, plaintext)
	if err != nil {
		return models.VaultContainer{}, fmt.Errorf("error sealing vault payload: %w", err)
	}

	log.Info().Int("accounts", len(accounts)).Msg("vault container exported")
	return models.VaultContainer{
		Version:   vaultContainerVersion,
		CreatedAt: s.now().UTC(),
		Payload:   payload,
	}, nil
}

// Import decrypts a container and decodes its account bundle.
//
// The whole import fails only when the container cannot be authenticated
// or its bundle cannot be parsed: a wrong passphrase and a corrupted
// payload both surface as [crypto.ErrDecryptionFailed], an unsupported
// version or unparseable bundle as [ErrMalformedContainer]. Individually malformed account
// records do not abort the batch; they are reported in the result's
// Skipped list with the failing index.
func (s *vaultService) Import(ctx context.Context, container models.VaultContainer, passphrase string) (models.VaultImportResult, error) {
	log := logger.FromContext(ctx)

	if container.Version != vaultContainerVersion {
		return models.VaultImportResult{}, fmt.Errorf("%w: unsupported version %q", ErrMalformedContainer, container.Version)
	}

	plaintext, err := crypto.OpenWithPassphrase(passphrase, container.Payload)
	if err != nil {
		return models.VaultImportResult{}, err
	}

	var bundle vaultBundle
	if err = json.Unmarshal(plaintext, &bundle); err != nil {
		return models.VaultImportResult{}, fmt.Errorf("%w: %w", ErrMalformedContainer, err)
	}
	if bundle.Accounts == nil {
		return models.VaultImportResult{}, fmt.Errorf("%w: missing accounts field", ErrMalformedContainer)
	}

	result := models.VaultImportResult{
		Imported: make([]models.DecryptedAccount, 0, len(bundle.Accounts)),
	}
	for i, raw := range bundle.Accounts {
		var account models.DecryptedAccount
		if err = json.Unmarshal(raw, &account); err != nil {
			result.Skipped = append(result.Skipped, models.SkippedRecord{Index: i, Reason: "unparseable record"})
			continue
		}
		if account.Title == "" || account.Secret == "" {
			result.Skipped = append(result.Skipped, models.SkippedRecord{Index: i, Reason: "missing title or secret"})
			continue
		}
		result.Imported = append(result.Imported, account)
	}

	log.Info().
		Int("imported", len(result.Imported)).
		Int("skipped", len(result.Skipped)).
		Msg("vault container imported")
	return result, nil
}
