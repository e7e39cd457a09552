// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// server invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of
// the ErrInvalid* sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty database DSN", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.DB.MaxOpenConns < 0 {
		return fmt.Errorf("%w: negative max open connections", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		return fmt.Errorf("%w: neither http nor grpc address is set", ErrInvalidServerConfigs)
	}
	if cfg.Server.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidServerConfigs)
	}

	if cfg.App.SchemaVersion < 0 {
		return fmt.Errorf("%w: negative schema version", ErrInvalidAppConfigs)
	}
	switch cfg.App.CVRStrategy {
	case CVRStrategyAuto, CVRStrategyManual:
	default:
		return fmt.Errorf("%w: unknown cvr strategy %q", ErrInvalidAppConfigs, cfg.App.CVRStrategy)
	}
	if cfg.App.TokenSignKey != "" && cfg.App.TokenIssuer == "" {
		return fmt.Errorf("%w: token issuer is required with a sign key", ErrInvalidAppConfigs)
	}

	if cfg.Adapter.GitHubToken != "" && cfg.Adapter.GitHubURL == "" {
		return fmt.Errorf("%w: github url is required with a github token", ErrInvalidAdapterConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.ServerURL == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
