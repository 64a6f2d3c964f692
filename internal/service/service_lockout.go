// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maxim Kovalev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mkovalev/go-cred-vault/internal/config"
	"github.com/mkovalev/go-cred-vault/internal/logger"
	"github.com/mkovalev/go-cred-vault/internal/store"
	"github.com/mkovalev/go-cred-vault/models"
)

// casAttempts bounds the optimistic-update retry loop in RecordOutcome.
// Contention on a single identity's lockout row is rare (it needs two
// concurrent login attempts for the same login), so three rounds is plenty.
const casAttempts = 3

// lockoutService is the concrete implementation of [LockoutService].
//
// The state transition itself is a pure function of (previous state,
// outcome, now); persistence is a compare-and-swap against the previously
// read state. Two concurrent failures therefore count as two attempts, not
// one: the losing writer re-reads and replays its transition on the fresh
// state.
type lockoutService struct {
	identityRepository store.IdentityRepository

	// threshold is the number of consecutive failures that trips a lock.
	threshold int

	// window is how long a tripped lock lasts.
	window time.Duration

	// now is the clock; replaced in tests.
	now func() time.Time

	logger *logger.Logger
}

// NewLockoutService constructs a [LockoutService] with the threshold and
// window taken from cfg.
func NewLockoutService(identityRepository store.IdentityRepository, cfg config.App, logger *logger.Logger) LockoutService {
	return &lockoutService{
		identityRepository: identityRepository,
		threshold:          cfg.LockoutThreshold,
		window:             cfg.LockoutDuration,
		now:                time.Now,
		logger:             logger,
	}
}

// CheckAllowed rejects the attempt with an [AccountLockedError] while the
// identity's lockout window is still active. An expired window passes: the
// stale state is cleaned up lazily by the next RecordOutcome.
func (s *lockoutService) CheckAllowed(_ context.Context, identity models.Identity) error {
	now := s.now().UTC()
	if identity.LockedUntil != nil && identity.LockedUntil.After(now) {
		return &AccountLockedError{RetryAfter: identity.LockedUntil.Sub(now)}
	}
	return nil
}

// RecordOutcome applies one login outcome to the identity's lockout state
// and returns the state that was committed.
//
// A success resets the counter and clears any lock. A failure increments
// the counter; reaching the threshold sets locked_until to now + window. A
// failure arriving after a previous window has expired starts a fresh
// count at one rather than stacking onto the stale total.
//
// The update is a compare-and-swap on (failed_attempts, locked_until); on
// a lost race the state is re-read and the transition replayed, so every
// concurrent failure is counted exactly once.
func (s *lockoutService) RecordOutcome(ctx context.Context, identityID int64, success bool) (models.LockoutState, error) {
	log := logger.FromContext(ctx)

	for attempt := 0; attempt < casAttempts; attempt++ {
		identity, err := s.identityRepository.FindIdentityByID(ctx, identityID)
		if err != nil {
			if errors.Is(err, store.ErrNoIdentityWasFound) {
				return models.LockoutState{}, ErrInvalidCredentials
			}
			return models.LockoutState{}, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
		}

		prev := models.LockoutState{
			Attempts:    identity.FailedAttempts,
			LockedUntil: identity.LockedUntil,
		}
		next := s.nextState(prev, success, s.now().UTC())

		swapped, err := s.identityRepository.UpdateLockout(ctx, identityID, prev, next)
		if err != nil {
			return models.LockoutState{}, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
		}
		if swapped {
			if next.LockedUntil != nil && prev.LockedUntil == nil {
				log.Warn().
					Int64("identity_id", identityID).
					Int("failed_attempts", next.Attempts).
					Time("locked_until", *next.LockedUntil).
					Msg("identity locked out after repeated failures")
			}
			return next, nil
		}

		log.Debug().Int64("identity_id", identityID).Int("retry", attempt+1).Msg("lockout update lost a race, retrying")
	}

	return models.LockoutState{}, fmt.Errorf("%w: lockout state update kept losing races", ErrPersistenceFailure)
}

// nextState computes the lockout state following one login outcome. Pure:
// no I/O, no clock reads.
func (s *lockoutService) nextState(prev models.LockoutState, success bool, now time.Time) models.LockoutState {
	if success {
		return models.LockoutState{}
	}

	attempts := prev.Attempts + 1
	if prev.LockedUntil != nil && !prev.LockedUntil.After(now) {
		// The previous window expired without a successful login; this
		// failure opens a fresh count instead of extending the old one.
		attempts = 1
	}

	next := models.LockoutState{Attempts: attempts}
	if attempts >= s.threshold {
		lockedUntil := now.Add(s.window)
		next.LockedUntil = &lockedUntil
	}
	return next
}
