// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// PullVersion is the only supported value of [PullRequest.PullVersion].
const PullVersion = 1

// Cookie is the sync position a client echoes back on its next pull.
type Cookie struct {
	// Order is the CVR version of the last non-empty pull the client applied.
	Order int64 `json:"order"`

	// SchemaVersion is the registry schema version the cookie was issued for.
	SchemaVersion int `json:"schemaVersion"`

	// LastQueriedAt is the RFC 3339 time the cookie was issued.
	LastQueriedAt string `json:"lastQueriedAt,omitempty"`
}

// NewCookie builds the cookie returned by a pull that produced a patch.
func NewCookie(order int64, schemaVersion int, queriedAt time.Time) *Cookie {
	return &Cookie{
		Order:         order,
		SchemaVersion: schemaVersion,
		LastQueriedAt: queriedAt.UTC().Format(time.RFC3339Nano),
	}
}

// QueryParams are the parameters of one active query of a pull.
type QueryParams struct {
	Params json.RawMessage `json:"params"`
}

// PullRequest asks for the patch that brings a client group's replica up
// to date with the queries the client currently has open.
type PullRequest struct {
	PullVersion   int    `json:"pullVersion"`
	ProfileID     string `json:"profileID"`
	ClientGroupID string `json:"clientGroupID"`

	// Cookie is nil on the very first pull of a client group.
	Cookie *Cookie `json:"cookie"`

	// SchemaVersion, when set, must match the registry schema version.
	SchemaVersion *int `json:"schemaVersion,omitempty"`

	// Queries maps active query names to their parameters.
	Queries map[string]QueryParams `json:"queries,omitempty"`
}

// CookieOrder returns the cookie order, zero when there is no cookie.
func (r PullRequest) CookieOrder() int64 {
	if r.Cookie == nil {
		return 0
	}
	return r.Cookie.Order
}

// PullResponse carries the patch and the new sync position.
type PullResponse struct {
	// Cookie is either the request cookie (nothing changed) or a new one.
	Cookie *Cookie `json:"cookie"`

	// LastMutationIDChanges maps client ids to their newly acknowledged
	// last mutation id.
	LastMutationIDChanges map[string]int64 `json:"lastMutationIDChanges"`

	Patch []PatchOperation `json:"patch"`
}
