// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"
)

// Client is one synchronizing device or browser tab.
//
// A Client belongs to exactly one [ClientGroup] and carries the id of the
// last mutation the server has applied on its behalf. Mutation ids are
// strictly increasing and gapless per client, starting at 1, so
// LastMutationID == 0 means nothing has been applied yet.
type Client struct {
	// ID is the client-generated identifier of the device/tab.
	ID string `json:"id"`

	// ClientGroupID is the id of the group whose replica this client shares.
	ClientGroupID string `json:"client_group_id"`

	// LastMutationID is the id of the last applied mutation.
	LastMutationID int64 `json:"last_mutation_id"`

	// LastModified is the time of the last change of this record.
	LastModified time.Time `json:"last_modified"`
}

// NewClient returns the zero state of a client seen for the first time.
func NewClient(clientID, clientGroupID string) Client {
	return Client{
		ID:            clientID,
		ClientGroupID: clientGroupID,
	}
}

// ClientGroup is a logical end-user session whose clients share one
// replica and one client view record.
type ClientGroup struct {
	// ID is the client-generated identifier of the group.
	ID string `json:"id"`

	// CVRVersion is the monotonically increasing view version of the group.
	// It becomes the cookie order of every pull that sends a non-empty patch.
	CVRVersion int64 `json:"cvr_version"`

	// LastModified is the time of the last change of this record.
	LastModified time.Time `json:"last_modified"`

	// Mutations records which last mutation ids were already reported to
	// the group in pull responses.
	Mutations MutationLedger `json:"-"`
}

// CVREntry is a client view record row: the version of a key last sent to
// a client group and the CVR version (sync sequence) at which it was sent.
type CVREntry struct {
	ClientGroupID string `json:"client_group_id"`
	Key           string `json:"key"`
	Version       int64  `json:"version"`
	SyncSequence  int64  `json:"sync_sequence"`
}
