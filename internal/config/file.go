package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// structuredFileConfig mirrors [StructuredConfig] for JSON and YAML files.
// Durations are written as strings like "30s" or "1h".
type structuredFileConfig struct {
	App struct {
		SchemaVersion int      `json:"schema_version" yaml:"schema_version"`
		CVRStrategy   string   `json:"cvr_strategy" yaml:"cvr_strategy"`
		TokenSignKey  string   `json:"token_sign_key" yaml:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer" yaml:"token_issuer"`
		TokenDuration Duration `json:"token_duration" yaml:"token_duration"`
		Version       string   `json:"version" yaml:"version"`
		ProfileID     string   `json:"profile_id" yaml:"profile_id"`
	} `json:"app,omitempty" yaml:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN          string `json:"dsn" yaml:"dsn"`
			MaxOpenConns int    `json:"max_open_conns" yaml:"max_open_conns"`
		} `json:"db,omitempty" yaml:"db,omitempty"`
	} `json:"storage,omitempty" yaml:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		GRPCAddress    string   `json:"grpc_address" yaml:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"server,omitempty" yaml:"server,omitempty"`

	Adapter struct {
		GitHubURL      string   `json:"github_url" yaml:"github_url"`
		GitHubToken    string   `json:"github_token" yaml:"github_token"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
		ServerURL      string   `json:"server_url" yaml:"server_url"`
		AuthToken      string   `json:"auth_token" yaml:"auth_token"`
	} `json:"adapter,omitempty" yaml:"adapter,omitempty"`

	Poke struct {
		RedisAddress  string `json:"redis_address" yaml:"redis_address"`
		RedisPassword string `json:"redis_password" yaml:"redis_password"`
		RedisDB       int    `json:"redis_db" yaml:"redis_db"`
		ChannelPrefix string `json:"channel_prefix" yaml:"channel_prefix"`
	} `json:"poke,omitempty" yaml:"poke,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval" yaml:"sync_interval"`
	} `json:"workers,omitempty" yaml:"workers,omitempty"`
}

// parseFile reads a config file. Files ending in ".yaml" or ".yml" are
// decoded as YAML, everything else as JSON.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fileCfg structuredFileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return fileCfg.toStructured(), nil
}

func (f *structuredFileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			SchemaVersion: f.App.SchemaVersion,
			CVRStrategy:   f.App.CVRStrategy,
			TokenSignKey:  f.App.TokenSignKey,
			TokenIssuer:   f.App.TokenIssuer,
			TokenDuration: time.Duration(f.App.TokenDuration),
			Version:       f.App.Version,
			ProfileID:     f.App.ProfileID,
		},
		Storage: Storage{
			DB: DB{
				DSN:          f.Storage.DB.DSN,
				MaxOpenConns: f.Storage.DB.MaxOpenConns,
			},
		},
		Server: Server{
			HTTPAddress:    f.Server.HTTPAddress,
			GRPCAddress:    f.Server.GRPCAddress,
			RequestTimeout: time.Duration(f.Server.RequestTimeout),
		},
		Adapter: Adapter{
			GitHubURL:      f.Adapter.GitHubURL,
			GitHubToken:    f.Adapter.GitHubToken,
			RequestTimeout: time.Duration(f.Adapter.RequestTimeout),
			ServerURL:      f.Adapter.ServerURL,
			AuthToken:      f.Adapter.AuthToken,
		},
		Poke: Poke{
			RedisAddress:  f.Poke.RedisAddress,
			RedisPassword: f.Poke.RedisPassword,
			RedisDB:       f.Poke.RedisDB,
			ChannelPrefix: f.Poke.ChannelPrefix,
		},
		Workers: Workers{
			SyncInterval: time.Duration(f.Workers.SyncInterval),
		},
	}
}

// Duration is a wrapper around time.Duration that decodes from strings like
// "1h", "30s" or from a number of nanoseconds.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}

	if n, err := time.ParseDuration(s); err == nil {
		*d = Duration(n)
		return nil
	}

	var ns int64
	if err := value.Decode(&ns); err != nil {
		return fmt.Errorf("invalid duration %q", s)
	}
	*d = Duration(time.Duration(ns))
	return nil
}
