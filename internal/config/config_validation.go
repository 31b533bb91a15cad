// SPDX-License-Identifier: Apache-2.0

package config

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants the service cannot start without. Optional subsystems (OAuth
// providers, redis) are validated lazily where they are constructed, so a
// deployment without e.g. Facebook credentials simply has that provider
// disabled.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.App.AccessTokenDuration <= 0 || cfg.App.RefreshTokenDuration <= 0 {
		return ErrInvalidTokenDurations
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}
