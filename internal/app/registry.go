package app

import (
	"github.com/MKhiriev/go-replisync/internal/adapter"
	"github.com/MKhiriev/go-replisync/internal/config"
	"github.com/MKhiriev/go-replisync/internal/domain/github"
	"github.com/MKhiriev/go-replisync/internal/domain/todos"
	"github.com/MKhiriev/go-replisync/internal/registry"
)

type options struct {
	github       bool
	githubClient adapter.GitHubAdapter
}

type Option func(*options)

// WithGitHub registers the GitHub domain. Clients only run local handlers
// and may pass a nil client.
func WithGitHub(client adapter.GitHubAdapter) Option {
	return func(o *options) {
		o.github = true
		o.githubClient = client
	}
}

// NewRegistry builds the registry of the todos domain and, when requested,
// the GitHub domain.
func NewRegistry(cfg config.App, opts ...Option) (*registry.Registry, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	rc := registry.Config{
		SchemaVersion: cfg.SchemaVersion,
		Strategy:      registry.Strategy(cfg.CVRStrategy),
	}

	todos.New(nil).Register(&rc)
	if o.github {
		github.New(o.githubClient).Register(&rc)
	}

	return registry.New(rc)
}
