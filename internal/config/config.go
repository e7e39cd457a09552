// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container of the
// replisync server. It aggregates all sub-configurations and is populated
// by merging defaults, environment variables, command-line flags and an
// optional JSON or YAML file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds sync registry and token settings.
	App App `envPrefix:"APP_"`

	// Storage holds the database settings of the persistent state store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP and
	// gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the settings of upstream APIs called by remote handlers.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Poke holds the Redis settings used to notify clients after a push.
	Poke Poke `envPrefix:"POKE_"`

	// Workers holds settings of the background sync worker of syncctl.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON or YAML configuration
	// file, merged on top of env and flag values.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// CVR strategies accepted in [App.CVRStrategy].
const (
	CVRStrategyAuto   = "auto"
	CVRStrategyManual = "manual"
)

// App holds application-level configuration values.
type App struct {
	// SchemaVersion is the registry schema version. Clients holding cookies
	// of another version are told to reset.
	// Env: APP_SCHEMA_VERSION
	SchemaVersion int `env:"SCHEMA_VERSION"`

	// CVRStrategy is "auto" (diff against the client view record) or
	// "manual" (send every remote result).
	// Env: APP_CVR_STRATEGY
	CVRStrategy string `env:"CVR_STRATEGY"`

	// TokenSignKey is the HMAC key verifying bearer tokens of sync
	// requests. Authentication is disabled when empty.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim of bearer tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of tokens minted by syncctl.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is the version string exposed via /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// ProfileID is the profile syncctl pulls and pushes as.
	// Env: APP_PROFILE_ID
	ProfileID string `env:"PROFILE_ID"`
}

// Storage groups the configuration of the persistent state store.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings of the relational database backend.
type DB struct {
	// DSN selects the backend by scheme: "postgres://" or "postgresql://"
	// open PostgreSQL, anything else is treated as a SQLite path or URI.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// MaxOpenConns limits the connection pool. SQLite always uses one.
	// Env: STORAGE_DB_MAX_OPEN_CONNS
	MaxOpenConns int `env:"MAX_OPEN_CONNS"`
}

// Server holds network and timeout settings of the inbound transports.
type Server struct {
	// HTTPAddress is the "host:port" the HTTP server listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the "host:port" the gRPC server listens on.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single pull or push.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds configuration of upstream integrations.
type Adapter struct {
	// GitHubURL is the GitHub GraphQL endpoint.
	// Env: ADAPTER_GITHUB_URL
	GitHubURL string `env:"GITHUB_URL"`

	// GitHubToken authorizes GitHub GraphQL calls. The GitHub queries and
	// mutations are registered only when it is set.
	// Env: ADAPTER_GITHUB_TOKEN
	GitHubToken string `env:"GITHUB_TOKEN"`

	// RequestTimeout bounds a single upstream call.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ServerURL is the base URL of a replisync server used by syncctl.
	// Env: ADAPTER_SERVER_URL
	ServerURL string `env:"SERVER_URL"`

	// AuthToken is the bearer token syncctl sends with sync requests.
	// Env: ADAPTER_AUTH_TOKEN
	AuthToken string `env:"AUTH_TOKEN"`
}

// Poke holds the Redis pub/sub settings of push notifications.
type Poke struct {
	// RedisAddress is the "host:port" of Redis. Pokes are disabled when empty.
	// Env: POKE_REDIS_ADDRESS
	RedisAddress string `env:"REDIS_ADDRESS"`

	// RedisPassword authenticates against Redis.
	// Env: POKE_REDIS_PASSWORD
	RedisPassword string `env:"REDIS_PASSWORD"`

	// RedisDB selects the Redis logical database.
	// Env: POKE_REDIS_DB
	RedisDB int `env:"REDIS_DB"`

	// ChannelPrefix is prepended to the profile id to form the channel name.
	// Env: POKE_CHANNEL_PREFIX
	ChannelPrefix string `env:"CHANNEL_PREFIX"`
}

// Workers holds configuration of background sync loops.
type Workers struct {
	// SyncInterval is the period of the syncctl watch loop.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON/YAML file (path resolved from sources 2 and 3)
func GetStructuredConfig() (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags().
		withFile().
		build()
	if err != nil {
		return nil, err
	}

	return cfg, cfg.validate()
}
