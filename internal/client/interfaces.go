// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"encoding/json"
)

// Syncer is the part of a [Client] background workers drive.
type Syncer interface {
	// Sync pushes pending mutations and then pulls.
	Sync(ctx context.Context) error
	// ClientGroupID identifies the pokes caused by the syncer's own pushes.
	ClientGroupID() string
}

var (
	_ Syncer  = (*Client)(nil)
	_ Querier = (*Client)(nil)
)

// Querier runs named local queries against the client view.
type Querier interface {
	Query(ctx context.Context, name string, params any) ([]json.RawMessage, error)
}
