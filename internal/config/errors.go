package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidMasterKeyConfig indicates that the master key is missing
	// or does not decode to exactly 32 bytes of hex. The key value itself
	// is never included in the error.
	ErrInvalidMasterKeyConfig = errors.New("invalid master key configuration")

	// ErrInvalidTokenConfigs indicates invalid token settings (missing
	// sign key, or an access token living longer than a refresh token).
	ErrInvalidTokenConfigs = errors.New("invalid token configuration")

	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")

	// ErrInvalidLockoutConfigs indicates an unusable lockout policy
	// (non-positive threshold or window).
	ErrInvalidLockoutConfigs = errors.New("invalid lockout configuration")
)
