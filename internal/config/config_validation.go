// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The FortiFile Authors

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or one of the sentinel errors
// from errors.go otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.Path == "" || cfg.Storage.Key.Path == "" || cfg.Storage.Files.SecureDir == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.MaxLoginAttempts < 1 || cfg.App.BcryptCost < 0 {
		return ErrInvalidAppConfigs
	}

	return nil
}
