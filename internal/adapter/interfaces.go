// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides clients of the HTTP APIs replisync talks to.
//
// [SyncAdapter] is used by the reference sync client and syncctl to reach a
// replisync server; [GitHubAdapter] is used by the remote handlers of the
// GitHub domain to reach the GitHub GraphQL API. Both are built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes and
// protocol error bodies by mapHTTPError and mapSyncError, so callers can use
// [errors.Is] for transport-agnostic error handling (e.g. [ErrResetRequired]
// when the server asks the client to discard its local state).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-replisync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// SyncAdapter defines communication with a replisync server.
type SyncAdapter interface {
	// SetToken stores the bearer token attached to all subsequent sync
	// requests. An empty token disables the Authorization header.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter.
	Token() string

	// Version fetches the server's application and protocol versions.
	Version(ctx context.Context) (models.AppInfo, error)

	// Pull sends a pull request. A protocol error answered by the server
	// is returned wrapped in [ErrResetRequired].
	Pull(ctx context.Context, req models.PullRequest) (models.PullResponse, error)

	// Push sends a batch of mutations. A protocol error answered by the
	// server is returned wrapped in [ErrResetRequired].
	Push(ctx context.Context, req models.PushRequest) error
}

// GitHubAdapter executes GitHub GraphQL operations.
type GitHubAdapter interface {
	// Query runs a GraphQL query or mutation and decodes its "data" member
	// into out. out may be nil when the result is not needed.
	Query(ctx context.Context, query string, variables map[string]any, out any) error
}
