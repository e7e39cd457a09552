package models

import (
	"encoding/json"
	"fmt"
)

// Patch operation names understood by clients.
const (
	PatchOpPut = "put"
	PatchOpDel = "del"
)

// Entry is a unit of synchronizable data returned by a remote query.
//
// Key is globally unique and namespaced by the query that produces it
// (e.g. "todo/<list>/<id>"). Version grows monotonically per key.
// A Deleted entry is sent to clients as a tombstone ("del" operation).
type Entry struct {
	Key     string          `json:"key"`
	Version int64           `json:"version"`
	Value   json.RawMessage `json:"value,omitempty"`
	Deleted bool            `json:"deleted"`
}

// NewEntry encodes value and returns a live entry.
func NewEntry(key string, version int64, value any) (Entry, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return Entry{}, fmt.Errorf("error encoding value of %q: %w", key, err)
	}

	return Entry{Key: key, Version: version, Value: raw}, nil
}

// Tombstone returns a deleted entry for key.
func Tombstone(key string, version int64) Entry {
	return Entry{Key: key, Version: version, Deleted: true}
}

// PatchOperation is one instruction of a pull response patch.
type PatchOperation struct {
	Op    string          `json:"op"`
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value,omitempty"`
}

// PatchOperation converts the entry to the operation a client applies.
func (e Entry) PatchOperation() PatchOperation {
	if e.Deleted {
		return PatchOperation{Op: PatchOpDel, Key: e.Key}
	}

	value := e.Value
	if len(value) == 0 {
		value = json.RawMessage("null")
	}
	return PatchOperation{Op: PatchOpPut, Key: e.Key, Value: value}
}
