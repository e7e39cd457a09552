// Package replica holds a client-side copy of synced key/value data.
//
// Local queries read a replica through [Reader] and local mutations change
// it through [Writer]; the sync client applies server patches with
// [Replica.ApplyPatch].
package replica

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/MKhiriev/go-replisync/models"
)

// ErrUnknownPatchOp is returned by [Replica.ApplyPatch] for an operation
// other than "put" or "del".
var ErrUnknownPatchOp = errors.New("unknown patch operation")

// KV is one key/value pair returned by [Reader.Scan].
type KV struct {
	Key   string
	Value json.RawMessage
}

// Reader gives read access to a replica.
type Reader interface {
	Get(key string) (json.RawMessage, bool)
	Has(key string) bool
	// Scan returns every pair whose key starts with prefix, ordered by key.
	Scan(prefix string) []KV
}

// Writer gives read and write access to a replica.
type Writer interface {
	Reader
	// Put stores the JSON encoding of value under key.
	Put(key string, value any) error
	// Del removes key and reports whether it was present.
	Del(key string) bool
}

// Replica is an in-memory key/value store safe for concurrent use.
type Replica struct {
	mu   sync.RWMutex
	data map[string]json.RawMessage
}

var _ Writer = (*Replica)(nil)

// New returns an empty replica.
func New() *Replica {
	return &Replica{data: make(map[string]json.RawMessage)}
}

func (r *Replica) Get(key string) (json.RawMessage, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.data[key]
	if !ok {
		return nil, false
	}
	return bytes.Clone(v), true
}

func (r *Replica) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.data[key]
	return ok
}

func (r *Replica) Scan(prefix string) []KV {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]KV, 0)
	for _, key := range slices.Sorted(maps.Keys(r.data)) {
		if strings.HasPrefix(key, prefix) {
			out = append(out, KV{Key: key, Value: bytes.Clone(r.data[key])})
		}
	}
	return out
}

func (r *Replica) Put(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error encoding value of %q: %w", key, err)
	}

	r.mu.Lock()
	r.data[key] = raw
	r.mu.Unlock()
	return nil
}

func (r *Replica) Del(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.data[key]
	delete(r.data, key)
	return ok
}

// Len returns the number of stored keys.
func (r *Replica) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.data)
}

// ApplyPatch applies the operations of a pull response in order. Nothing
// is applied when an operation is unknown.
func (r *Replica) ApplyPatch(patch []models.PatchOperation) error {
	for _, op := range patch {
		if op.Op != models.PatchOpPut && op.Op != models.PatchOpDel {
			return fmt.Errorf("%w: %q", ErrUnknownPatchOp, op.Op)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, op := range patch {
		switch op.Op {
		case models.PatchOpPut:
			r.data[op.Key] = bytes.Clone(op.Value)
		case models.PatchOpDel:
			delete(r.data, op.Key)
		}
	}
	return nil
}

// Clone returns an independent copy of the replica.
func (r *Replica) Clone() *Replica {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := &Replica{data: make(map[string]json.RawMessage, len(r.data))}
	for k, v := range r.data {
		c.data[k] = bytes.Clone(v)
	}
	return c
}
