// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maxim Kovalev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mkovalev/go-cred-vault/internal/crypto"
	"github.com/mkovalev/go-cred-vault/internal/logger"
	"github.com/mkovalev/go-cred-vault/internal/store"
	"github.com/mkovalev/go-cred-vault/models"
)

// authService is the concrete implementation of [AuthService].
//
// Login runs its steps in a fixed order: lockout gate first, secret
// verification second, outcome recording third, token issuance last. The
// ordering matters — a locked identity's secret is never verified, so an
// attacker gains no hash-timing signal from a locked account.
type authService struct {
	identityRepository store.IdentityRepository
	hasher             crypto.CredentialHasher
	lockout            LockoutService
	sessions           SessionService

	// now is the clock; replaced in tests.
	now func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs an [AuthService] from its collaborators.
func NewAuthService(identityRepository store.IdentityRepository, hasher crypto.CredentialHasher, lockout LockoutService, sessions SessionService, logger *logger.Logger) AuthService {
	return &authService{
		identityRepository: identityRepository,
		hasher:             hasher,
		lockout:            lockout,
		sessions:           sessions,
		now:                time.Now,
		logger:             logger,
	}
}

// Register creates a new identity with the secret stored as an argon2id
// digest. A duplicate login surfaces as [store.ErrLoginAlreadyExists].
func (s *authService) Register(ctx context.Context, login, secret string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	if login == "" || secret == "" {
		return models.Identity{}, ErrInvalidDataProvided
	}

	secretHash, err := s.hasher.Hash(secret)
	if err != nil {
		return models.Identity{}, fmt.Errorf("error hashing login secret: %w", err)
	}

	identity, err := s.identityRepository.CreateIdentity(ctx, models.Identity{
		Login:      login,
		SecretHash: secretHash,
		Active:     true,
	})
	if err != nil {
		if errors.Is(err, store.ErrLoginAlreadyExists) {
			return models.Identity{}, err
		}
		return models.Identity{}, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}

	log.Info().Int64("identity_id", identity.IdentityID).Msg("new identity registered")
	return identity, nil
}

// Login authenticates an identity and issues a fresh token pair.
//
// An unknown login and a wrong secret both return [ErrInvalidCredentials];
// an attempt during an active lockout window returns an
// [AccountLockedError] before the secret is checked; a failed attempt that
// trips the lockout threshold returns the lock error instead of the plain
// credentials error, so the client learns about the lock immediately.
func (s *authService) Login(ctx context.Context, login, secret string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if login == "" || secret == "" {
		return models.TokenPair{}, ErrInvalidDataProvided
	}

	identity, err := s.identityRepository.FindIdentityByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, store.ErrNoIdentityWasFound) {
			return models.TokenPair{}, ErrInvalidCredentials
		}
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}

	if err = s.lockout.CheckAllowed(ctx, identity); err != nil {
		return models.TokenPair{}, err
	}

	if !identity.Active {
		return models.TokenPair{}, ErrOwnerInactive
	}

	matches, err := s.hasher.Verify(secret, identity.SecretHash)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("error verifying login secret: %w", err)
	}

	state, err := s.lockout.RecordOutcome(ctx, identity.IdentityID, matches)
	if err != nil {
		log.Err(err).Int64("identity_id", identity.IdentityID).Msg("failed to record login outcome")
		return models.TokenPair{}, err
	}

	if !matches {
		now := s.now().UTC()
		if state.Locked(now) {
			return models.TokenPair{}, &AccountLockedError{RetryAfter: state.LockedUntil.Sub(now)}
		}
		return models.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.sessions.Issue(ctx, identity)
	if err != nil {
		return models.TokenPair{}, err
	}

	log.Info().Int64("identity_id", identity.IdentityID).Msg("identity logged in")
	return pair, nil
}
