package models

import "encoding/json"

// PushVersion is the only supported value of [PushRequest.PushVersion].
const PushVersion = 1

// Mutation is a client-submitted write intent.
//
// ID is strictly increasing and gapless per ClientID. Skip marks a
// mutation whose payload was dropped by the client: it still consumes its
// id but no handler runs for it.
type Mutation struct {
	ClientID string          `json:"clientID"`
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Args     json.RawMessage `json:"args,omitempty"`
	Skip     bool            `json:"skip,omitempty"`
}

// PushRequest is an ordered batch of mutations of one client group.
type PushRequest struct {
	PushVersion   int        `json:"pushVersion"`
	ProfileID     string     `json:"profileID"`
	ClientGroupID string     `json:"clientGroupID"`
	SchemaVersion *int       `json:"schemaVersion,omitempty"`
	Mutations     []Mutation `json:"mutations"`
}

// PushResponse acknowledges a push. State changes surface on the next pull.
type PushResponse struct {
	OK bool `json:"ok"`
}
