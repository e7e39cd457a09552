package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds the settings syncctl uses to reach a server.
type ClientAdapter struct {
	// ServerURL is the base URL of the replisync HTTP API.
	ServerURL string
	// AuthToken is sent as a bearer token when non-empty.
	AuthToken string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the watch loop pulls.
	SyncInterval time.Duration
}

// ClientConfig is the syncctl configuration view assembled from
// [StructuredConfig].
type ClientConfig struct {
	// ProfileID is the profile the client syncs as.
	ProfileID string
	// SchemaVersion is sent with every pull and push.
	SchemaVersion int
	// Adapter contains the server address, credentials and timeouts.
	Adapter ClientAdapter
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from
// defaults, environment variables and the optional config file. Command-line
// flags are left to the caller.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withFile().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newClientConfig(cfg), nil
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		ProfileID:     cfg.App.ProfileID,
		SchemaVersion: cfg.App.SchemaVersion,
		Adapter: ClientAdapter{
			ServerURL:      cfg.Adapter.ServerURL,
			AuthToken:      cfg.Adapter.AuthToken,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
	}
}

// Validate reports whether the client config can reach a server. syncctl
// calls it after applying its own flags.
func (cfg *ClientConfig) Validate() error {
	return cfg.validate()
}

// GetToolConfig builds the configuration of the syncctl admin commands from
// defaults, environment variables and the optional config file. It is not
// validated: every command checks the sections it reads.
func GetToolConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFile().
		build()
}
