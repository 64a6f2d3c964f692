package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mkovalev/go-cred-vault/internal/config"
	"github.com/mkovalev/go-cred-vault/internal/logger"
	"github.com/mkovalev/go-cred-vault/internal/store"
	"github.com/mkovalev/go-cred-vault/internal/utils"
	"github.com/mkovalev/go-cred-vault/models"
)

// sessionService is the concrete implementation of [SessionService].
//
// Token validity is a two-layer design kept deliberately distinct:
//
//  1. Stateless: HMAC-SHA256 signature, expiry, issuer, and token type are
//     checked from the token string alone.
//  2. Stateful: the digest of the presented token must match a live
//     [models.SessionRecord]. A token whose signature is still valid but
//     whose session was revoked is rejected here.
//
// Collapsing the two layers would forfeit the immediate-revocation
// guarantee: revocation commits a store update, and every verification
// re-reads the store, so there is no stale-read window after Revoke or
// RevokeAll returns.
type sessionService struct {
	// sessionRepository persists session records keyed by token digest.
	sessionRepository store.SessionRepository

	// identityRepository resolves token subjects to identities.
	identityRepository store.IdentityRepository

	// tokenSignKey is the HMAC secret used to sign and verify tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	tokenIssuer string

	// accessDuration and refreshDuration control the token lifetimes.
	accessDuration  time.Duration
	refreshDuration time.Duration

	// now is the clock; replaced in tests.
	now func() time.Time

	// logger is the structured logger used for diagnostic output.
	logger *logger.Logger
}

// NewSessionService constructs a [SessionService] wired to the given
// repositories and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewSessionService(sessionRepository store.SessionRepository, identityRepository store.IdentityRepository, cfg config.App, logger *logger.Logger) SessionService {
	return &sessionService{
		sessionRepository:  sessionRepository,
		identityRepository: identityRepository,
		tokenSignKey:       cfg.TokenSignKey,
		tokenIssuer:        cfg.TokenIssuer,
		accessDuration:     cfg.AccessTokenDuration,
		refreshDuration:    cfg.RefreshTokenDuration,
		now:                time.Now,
		logger:             logger,
	}
}

// Issue creates a fresh token pair for the identity and persists one new
// session record holding the digests of both tokens.
//
// Issuance never fails for a valid identity except on storage
// unavailability, reported as a wrapped [ErrPersistenceFailure].
func (s *sessionService) Issue(ctx context.Context, identity models.Identity) (models.TokenPair, error) {
	log := logger.FromContext(ctx)
	now := s.now().UTC()

	accessToken, err := utils.GenerateJWTToken(s.tokenIssuer, identity.IdentityID, models.TokenTypeAccess, now, s.accessDuration, s.tokenSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("error generating access token: %w", err)
	}

	refreshToken, err := utils.GenerateJWTToken(s.tokenIssuer, identity.IdentityID, models.TokenTypeRefresh, now, s.refreshDuration, s.tokenSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("error generating refresh token: %w", err)
	}

	record := models.SessionRecord{
		SessionID:        uuid.New(),
		OwnerID:          identity.IdentityID,
		AccessTokenHash:  utils.TokenDigest(accessToken.SignedString),
		RefreshTokenHash: utils.TokenDigest(refreshToken.SignedString),
		IssuedAt:         now,
		ExpiresAt:        now.Add(s.refreshDuration),
		LastActivity:     now,
		Valid:            true,
	}

	if err = s.sessionRepository.InsertSession(ctx, record); err != nil {
		log.Err(err).Int64("owner_id", identity.IdentityID).Msg("session record insertion failed")
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}

	return models.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// VerifyAccess validates an access token and resolves it to its owner.
//
// Failure modes, in check order:
//   - ErrTokenExpired  — signature valid, "exp" passed.
//   - ErrTokenMalformed — bad signature, wrong issuer, wrong token type,
//     or structurally invalid string.
//   - ErrSessionRevoked — signature checks pass but no live session record
//     matches the token digest.
//   - ErrOwnerInactive — the backing session is live but the identity has
//     been deactivated.
func (s *sessionService) VerifyAccess(ctx context.Context, tokenString string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	token, err := s.parseTyped(tokenString, models.TokenTypeAccess)
	if err != nil {
		return models.Identity{}, err
	}

	record, err := s.sessionRepository.FindSessionByAccessHash(ctx, utils.TokenDigest(tokenString))
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return models.Identity{}, ErrSessionRevoked
		}
		return models.Identity{}, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}
	if !record.Valid {
		return models.Identity{}, ErrSessionRevoked
	}

	identity, err := s.identityRepository.FindIdentityByID(ctx, token.OwnerID)
	if err != nil {
		if errors.Is(err, store.ErrNoIdentityWasFound) {
			return models.Identity{}, ErrSessionRevoked
		}
		return models.Identity{}, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}
	if !identity.Active {
		return models.Identity{}, ErrOwnerInactive
	}

	// Best-effort activity bookkeeping; verification does not fail on it.
	if err = s.sessionRepository.TouchSession(ctx, record.SessionID, s.now().UTC()); err != nil {
		log.Warn().Err(err).Str("session_id", record.SessionID.String()).Msg("failed to touch session")
	}

	return identity, nil
}

// Refresh exchanges a live refresh token for a fresh access token.
//
// Requirements: valid signature, refresh token type, a live matching
// session record, and a still-active owner. On success the session's
// access-token digest is rotated and its expiry extended — the previous
// access token digest is superseded and can no longer pass VerifyAccess.
//
// Every failure except an inactive owner is reported as
// [ErrRefreshTokenInvalid]; the causes are deliberately not distinguished.
func (s *sessionService) Refresh(ctx context.Context, refreshTokenString string) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := s.parseTyped(refreshTokenString, models.TokenTypeRefresh)
	if err != nil {
		return models.Token{}, ErrRefreshTokenInvalid
	}

	record, err := s.sessionRepository.FindSessionByRefreshHash(ctx, utils.TokenDigest(refreshTokenString))
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return models.Token{}, ErrRefreshTokenInvalid
		}
		return models.Token{}, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}

	now := s.now().UTC()
	if !record.Live(now) {
		return models.Token{}, ErrRefreshTokenInvalid
	}

	identity, err := s.identityRepository.FindIdentityByID(ctx, token.OwnerID)
	if err != nil {
		if errors.Is(err, store.ErrNoIdentityWasFound) {
			return models.Token{}, ErrRefreshTokenInvalid
		}
		return models.Token{}, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}
	if !identity.Active {
		return models.Token{}, ErrOwnerInactive
	}

	accessToken, err := utils.GenerateJWTToken(s.tokenIssuer, identity.IdentityID, models.TokenTypeAccess, now, s.accessDuration, s.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("error generating access token: %w", err)
	}

	err = s.sessionRepository.RotateAccessToken(ctx, record.SessionID, utils.TokenDigest(accessToken.SignedString), now.Add(s.refreshDuration), now)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			// Session was revoked between lookup and rotation.
			return models.Token{}, ErrRefreshTokenInvalid
		}
		log.Err(err).Str("session_id", record.SessionID.String()).Msg("access token rotation failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}

	return accessToken, nil
}

// Revoke invalidates the session matching the presented token (either half
// of the pair). Revoking an unknown or already-revoked token is a no-op,
// not an error, so logout is idempotent.
func (s *sessionService) Revoke(ctx context.Context, tokenString string) error {
	log := logger.FromContext(ctx)

	affected, err := s.sessionRepository.RevokeByTokenHash(ctx, utils.TokenDigest(tokenString))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}

	log.Debug().Int64("revoked", affected).Msg("session revocation applied")
	return nil
}

// RevokeAll invalidates every live session of the owner and returns the
// count affected. Used for "logout everywhere".
func (s *sessionService) RevokeAll(ctx context.Context, ownerID int64) (int64, error) {
	log := logger.FromContext(ctx)

	affected, err := s.sessionRepository.RevokeAllForOwner(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}

	log.Info().Int64("owner_id", ownerID).Int64("revoked", affected).Msg("revoked all sessions for owner")
	return affected, nil
}

// parseTyped validates a token string and enforces the expected token-type
// claim. Expiry surfaces as [ErrTokenExpired]; every other validation
// failure — including a type mismatch — as [ErrTokenMalformed].
func (s *sessionService) parseTyped(tokenString, wantType string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrTokenExpired
		}
		return models.Token{}, ErrTokenMalformed
	}

	if token.Claims.TokenType != wantType {
		return models.Token{}, ErrTokenMalformed
	}

	return token, nil
}
