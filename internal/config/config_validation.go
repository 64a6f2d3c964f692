// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maxim Kovalev

package config

import "encoding/hex"

// applyDefaults fills security-policy fields that were left unset by every
// configuration source. Key material has no default on purpose.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.AccessTokenDuration == 0 {
		cfg.App.AccessTokenDuration = DefaultAccessTokenDuration
	}
	if cfg.App.RefreshTokenDuration == 0 {
		cfg.App.RefreshTokenDuration = DefaultRefreshTokenDuration
	}
	if cfg.App.LockoutThreshold == 0 {
		cfg.App.LockoutThreshold = DefaultLockoutThreshold
	}
	if cfg.App.LockoutDuration == 0 {
		cfg.App.LockoutDuration = DefaultLockoutDuration
	}
	if cfg.App.MinPassphraseLen == 0 {
		cfg.App.MinPassphraseLen = DefaultMinPassphraseLen
	}
	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = DBDriverPostgres
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise. The error never echoes key material back to the caller.
func (cfg *StructuredConfig) validate() error {
	key, err := hex.DecodeString(cfg.App.MasterKey)
	if err != nil || len(key) != 32 {
		return ErrInvalidMasterKeyConfig
	}

	if cfg.App.TokenSignKey == "" {
		return ErrInvalidTokenConfigs
	}

	if cfg.App.AccessTokenDuration >= cfg.App.RefreshTokenDuration {
		return ErrInvalidTokenConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.LockoutThreshold < 1 || cfg.App.LockoutDuration <= 0 {
		return ErrInvalidLockoutConfigs
	}

	return nil
}
