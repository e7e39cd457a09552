// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package registry maps query and mutation names to their handlers.
//
// Every name carries a remote handler that runs on the server against the
// source of truth and, optionally, a local handler that runs on a client
// against its replica. A Registry is built once at startup and is read-only
// afterwards.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/MKhiriev/go-replisync/internal/replica"
	"github.com/MKhiriev/go-replisync/internal/store"
	"github.com/MKhiriev/go-replisync/models"
)

// Strategy selects how the pull engine filters remote query results.
type Strategy string

const (
	// StrategyAuto sends only entries the client group has not seen at
	// their current version.
	StrategyAuto Strategy = "auto"
	// StrategyManual sends every entry returned by the remote queries.
	StrategyManual Strategy = "manual"
)

// RemoteQueryFunc reads the source of truth inside the pull transaction.
type RemoteQueryFunc func(ctx context.Context, tx store.Tx, params json.RawMessage) ([]models.Entry, error)

// RemoteMutationFunc changes the source of truth inside the push transaction.
type RemoteMutationFunc func(ctx context.Context, tx store.Tx, args json.RawMessage) error

// LocalQueryFunc reads a client replica and returns JSON items.
type LocalQueryFunc func(ctx context.Context, r replica.Reader, params json.RawMessage) ([]json.RawMessage, error)

// LocalMutationFunc applies a mutation optimistically to a client replica.
type LocalMutationFunc func(ctx context.Context, w replica.Writer, args json.RawMessage) error

// Query is the handler pair of a named query.
type Query struct {
	Local  LocalQueryFunc
	Remote RemoteQueryFunc
}

// Mutation is the handler pair of a named mutation.
type Mutation struct {
	Local  LocalMutationFunc
	Remote RemoteMutationFunc
}

// Config describes a registry.
type Config struct {
	// SchemaVersion is echoed in cookies. Clients whose cookie carries
	// another version must reset.
	SchemaVersion int
	// Strategy defaults to [StrategyAuto].
	Strategy  Strategy
	Queries   map[string]Query
	Mutations map[string]Mutation
}

// Registry is the validated, immutable form of a [Config].
type Registry struct {
	schemaVersion int
	strategy      Strategy
	queries       map[string]Query
	mutations     map[string]Mutation
}

// New validates cfg and builds a Registry.
func New(cfg Config) (*Registry, error) {
	if cfg.SchemaVersion < 0 {
		return nil, fmt.Errorf("%w: negative schema version %d", ErrInvalidRegistry, cfg.SchemaVersion)
	}

	strategy := cfg.Strategy
	switch strategy {
	case "":
		strategy = StrategyAuto
	case StrategyAuto, StrategyManual:
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", ErrInvalidRegistry, strategy)
	}

	for name, q := range cfg.Queries {
		if name == "" {
			return nil, fmt.Errorf("%w: empty query name", ErrInvalidRegistry)
		}
		if q.Remote == nil {
			return nil, fmt.Errorf("%w: query %q has no remote handler", ErrInvalidRegistry, name)
		}
	}

	for name, m := range cfg.Mutations {
		if name == "" {
			return nil, fmt.Errorf("%w: empty mutation name", ErrInvalidRegistry)
		}
		if m.Remote == nil {
			return nil, fmt.Errorf("%w: mutation %q has no remote handler", ErrInvalidRegistry, name)
		}
	}

	return &Registry{
		schemaVersion: cfg.SchemaVersion,
		strategy:      strategy,
		queries:       maps.Clone(cfg.Queries),
		mutations:     maps.Clone(cfg.Mutations),
	}, nil
}

func (r *Registry) SchemaVersion() int {
	return r.schemaVersion
}

func (r *Registry) Strategy() Strategy {
	return r.strategy
}

func (r *Registry) Query(name string) (Query, bool) {
	q, ok := r.queries[name]
	return q, ok
}

func (r *Registry) Mutation(name string) (Mutation, bool) {
	m, ok := r.mutations[name]
	return m, ok
}

// QueryNames returns the registered query names in ascending order.
func (r *Registry) QueryNames() []string {
	return slices.Sorted(maps.Keys(r.queries))
}

// MutationNames returns the registered mutation names in ascending order.
func (r *Registry) MutationNames() []string {
	return slices.Sorted(maps.Keys(r.mutations))
}
