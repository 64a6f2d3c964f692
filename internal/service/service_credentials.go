package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mkovalev/go-cred-vault/internal/crypto"
	"github.com/mkovalev/go-cred-vault/internal/logger"
	"github.com/mkovalev/go-cred-vault/internal/store"
	"github.com/mkovalev/go-cred-vault/models"
)

// credentialService is the concrete implementation of [CredentialService].
//
// Secret and Notes are the confidential fields: they are encrypted with the
// server master key before they reach the repository and decrypted on the
// way back, so plaintext secrets never touch the storage layer. Title and
// Login stay in the clear for listing and search.
type credentialService struct {
	credentialRepository store.CredentialRepository
	cipher               crypto.FieldCipher
	logger               *logger.Logger
}

// NewCredentialService constructs a [CredentialService] from its
// collaborators.
func NewCredentialService(credentialRepository store.CredentialRepository, cipher crypto.FieldCipher, logger *logger.Logger) CredentialService {
	return &credentialService{
		credentialRepository: credentialRepository,
		cipher:               cipher,
		logger:               logger,
	}
}

// CreateCredential encrypts the confidential fields and persists a new
// credential for its owner. The returned credential carries the assigned ID
// and timestamps with the plaintext fields restored.
func (s *credentialService) CreateCredential(ctx context.Context, credential models.Credential) (models.Credential, error) {
	if credential.OwnerID == 0 || credential.Title == "" || credential.Secret == "" {
		return models.Credential{}, ErrInvalidDataProvided
	}

	sealed, err := s.seal(credential)
	if err != nil {
		return models.Credential{}, err
	}

	saved, err := s.credentialRepository.SaveCredential(ctx, sealed)
	if err != nil {
		return models.Credential{}, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}

	credential.CredentialID = saved.CredentialID
	credential.CreatedAt = saved.CreatedAt
	credential.UpdatedAt = saved.UpdatedAt
	return credential, nil
}

// GetCredential loads one credential and decrypts its confidential fields.
// Ownership is enforced by the repository query; another owner's
// credential surfaces as [store.ErrCredentialNotFound].
func (s *credentialService) GetCredential(ctx context.Context, ownerID, credentialID int64) (models.Credential, error) {
	credential, err := s.credentialRepository.GetCredential(ctx, ownerID, credentialID)
	if err != nil {
		if errors.Is(err, store.ErrCredentialNotFound) {
			return models.Credential{}, err
		}
		return models.Credential{}, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}

	return s.open(credential)
}

// ListCredentials loads and decrypts every credential of the owner.
func (s *credentialService) ListCredentials(ctx context.Context, ownerID int64) ([]models.Credential, error) {
	credentials, err := s.credentialRepository.GetAllCredentials(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}

	opened := make([]models.Credential, 0, len(credentials))
	for _, credential := range credentials {
		plain, err := s.open(credential)
		if err != nil {
			return nil, err
		}
		opened = append(opened, plain)
	}
	return opened, nil
}

// UpdateCredential re-encrypts the confidential fields and overwrites the
// stored credential.
func (s *credentialService) UpdateCredential(ctx context.Context, credential models.Credential) error {
	if credential.OwnerID == 0 || credential.CredentialID == 0 || credential.Title == "" || credential.Secret == "" {
		return ErrInvalidDataProvided
	}

	sealed, err := s.seal(credential)
	if err != nil {
		return err
	}

	if err = s.credentialRepository.UpdateCredential(ctx, sealed); err != nil {
		if errors.Is(err, store.ErrCredentialNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}
	return nil
}

// DeleteCredential removes one credential of the owner.
func (s *credentialService) DeleteCredential(ctx context.Context, ownerID, credentialID int64) error {
	if err := s.credentialRepository.DeleteCredential(ctx, ownerID, credentialID); err != nil {
		if errors.Is(err, store.ErrCredentialNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}
	return nil
}

// DecryptedAccounts loads and decrypts the owner's full credential set in
// the flat form the vault exporter consumes.
func (s *credentialService) DecryptedAccounts(ctx context.Context, ownerID int64) ([]models.DecryptedAccount, error) {
	credentials, err := s.ListCredentials(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	accounts := make([]models.DecryptedAccount, 0, len(credentials))
	for _, credential := range credentials {
		accounts = append(accounts, models.DecryptedAccount{
			Title:  credential.Title,
			Login:  credential.Login,
			Secret: credential.Secret,
			Notes:  credential.Notes,
		})
	}
	return accounts, nil
}

// seal encrypts the confidential fields in place and returns the storable
// form. An empty Notes field stays empty rather than being encrypted.
func (s *credentialService) seal(credential models.Credential) (models.Credential, error) {
	secretField, err := s.cipher.Encrypt(credential.Secret)
	if err != nil {
		return models.Credential{}, fmt.Errorf("error encrypting credential secret: %w", err)
	}
	credential.Secret = secretField.Encode()

	if credential.Notes != "" {
		notesField, err := s.cipher.Encrypt(credential.Notes)
		if err != nil {
			return models.Credential{}, fmt.Errorf("error encrypting credential notes: %w", err)
		}
		credential.Notes = notesField.Encode()
	}

	return credential, nil
}

// open decrypts the confidential fields of a stored credential.
func (s *credentialService) open(credential models.Credential) (models.Credential, error) {
	log := s.logger

	secretField, err := models.DecodeEncryptedField(credential.Secret)
	if err != nil {
		log.Err(err).Int64("credential_id", credential.CredentialID).Msg("stored secret has a bad encoding")
		return models.Credential{}, fmt.Errorf("error decoding stored secret: %w", err)
	}
	secret, err := s.cipher.Decrypt(secretField)
	if err != nil {
		return models.Credential{}, fmt.Errorf("error decrypting credential secret: %w", err)
	}
	credential.Secret = secret

	if credential.Notes != "" {
		notesField, err := models.DecodeEncryptedField(credential.Notes)
		if err != nil {
			log.Err(err).Int64("credential_id", credential.CredentialID).Msg("stored notes have a bad encoding")
			return models.Credential{}, fmt.Errorf("error decoding stored notes: %w", err)
		}
		notes, err := s.cipher.Decrypt(notesField)
		if err != nil {
			return models.Credential{}, fmt.Errorf("error decrypting credential notes: %w", err)
		}
		credential.Notes = notes
	}

	return credential, nil
}
