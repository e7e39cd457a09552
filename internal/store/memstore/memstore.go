// Package memstore is an in-memory [store.Transactor] with a document
// table standing in for a domain source of truth. Transactions are fully
// serialized and work on a copy of the state that replaces it on success.
package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-replisync/internal/store"
	"github.com/MKhiriev/go-replisync/models"
)

type groupRow struct {
	id           string
	cvrVersion   int64
	lastModified time.Time
	ledger       map[string]models.LedgerEntry
}

type state struct {
	clients map[string]models.Client
	groups  map[string]groupRow
	cvr     map[string]map[string]models.CVREntry
	docs    map[string]models.Entry
}

func newState() state {
	return state{
		clients: make(map[string]models.Client),
		groups:  make(map[string]groupRow),
		cvr:     make(map[string]map[string]models.CVREntry),
		docs:    make(map[string]models.Entry),
	}
}

func (s state) clone() state {
	c := state{
		clients: maps.Clone(s.clients),
		groups:  make(map[string]groupRow, len(s.groups)),
		cvr:     make(map[string]map[string]models.CVREntry, len(s.cvr)),
		docs:    maps.Clone(s.docs),
	}
	for id, g := range s.groups {
		g.ledger = maps.Clone(g.ledger)
		c.groups[id] = g
	}
	for id, rows := range s.cvr {
		c.cvr[id] = maps.Clone(rows)
	}
	return c
}

// Store is the in-memory transactor.
type Store struct {
	mu    sync.Mutex
	state state
	now   func() time.Time
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		state: newState(),
		now:   time.Now,
	}
}

// Transact implements [store.Transactor].
func (s *Store) Transact(ctx context.Context, clientGroupID string, fn store.TxFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	work := s.state.clone()
	if _, ok := work.groups[clientGroupID]; !ok {
		work.groups[clientGroupID] = groupRow{id: clientGroupID, lastModified: s.now()}
	}

	if err := fn(ctx, &Tx{state: work, now: s.now}); err != nil {
		return err
	}

	s.state = work
	return nil
}

// PutDocument writes a document outside of any sync transaction, as an
// out-of-band writer of the source of truth would.
func (s *Store) PutDocument(key string, value any) (models.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Tx{state: s.state, now: s.now}
	return tx.PutDocument(key, value)
}

// DeleteDocument tombstones a document outside of any sync transaction.
func (s *Store) DeleteDocument(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Tx{state: s.state, now: s.now}
	return tx.DeleteDocument(key)
}

// Document returns the committed document stored under key.
func (s *Store) Document(key string) (models.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.state.docs[key]
	return d, ok
}

// Client returns the committed client with clientID.
func (s *Store) Client(clientID string) (models.Client, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.state.clients[clientID]
	return c, ok
}

// ClientGroup returns the committed client group with its ledger.
func (s *Store) ClientGroup(clientGroupID string) (models.ClientGroup, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.state.groups[clientGroupID]
	if !ok {
		return models.ClientGroup{}, false
	}
	return g.model(), true
}

// CVR returns the committed CVR rows of a client group keyed by key.
func (s *Store) CVR(clientGroupID string) map[string]models.CVREntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return maps.Clone(s.state.cvr[clientGroupID])
}

func (g groupRow) model() models.ClientGroup {
	return models.ClientGroup{
		ID:           g.id,
		CVRVersion:   g.cvrVersion,
		LastModified: g.lastModified,
		Mutations:    models.NewMutationLedger(g.ledger),
	}
}

// Tx is the transaction handle passed to [store.TxFunc] by [Store.Transact].
type Tx struct {
	state state
	now   func() time.Time
}

var (
	_ store.Tx         = (*Tx)(nil)
	_ store.Transactor = (*Store)(nil)
)

func (t *Tx) GetClient(_ context.Context, clientID string) (models.Client, error) {
	c, ok := t.state.clients[clientID]
	if !ok {
		return models.Client{}, store.ErrClientNotFound
	}
	return c, nil
}

func (t *Tx) GetClients(_ context.Context, clientIDs []string) (map[string]models.Client, error) {
	out := make(map[string]models.Client, len(clientIDs))
	for _, id := range clientIDs {
		if c, ok := t.state.clients[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func (t *Tx) UpsertClients(_ context.Context, clients []models.Client) error {
	for _, c := range clients {
		if existing, ok := t.state.clients[c.ID]; ok {
			c.ClientGroupID = existing.ClientGroupID
		}
		c.LastModified = t.now()
		t.state.clients[c.ID] = c
	}
	return nil
}

func (t *Tx) GetClientGroup(_ context.Context, clientGroupID string) (models.ClientGroup, error) {
	g, ok := t.state.groups[clientGroupID]
	if !ok {
		return models.ClientGroup{}, store.ErrClientGroupNotFound
	}
	return g.model(), nil
}

func (t *Tx) UpdateClientGroup(_ context.Context, group models.ClientGroup) error {
	g, ok := t.state.groups[group.ID]
	if !ok {
		return store.ErrClientGroupNotFound
	}

	g.cvrVersion = group.CVRVersion
	g.lastModified = t.now()
	if g.ledger == nil {
		g.ledger = make(map[string]models.LedgerEntry)
	}
	maps.Copy(g.ledger, group.Mutations.Changed())
	t.state.groups[group.ID] = g
	return nil
}

func (t *Tx) GetClientsInClientGroup(_ context.Context, clientGroupID string) ([]models.Client, error) {
	out := make([]models.Client, 0)
	for _, id := range slices.Sorted(maps.Keys(t.state.clients)) {
		if c := t.state.clients[id]; c.ClientGroupID == clientGroupID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (t *Tx) BatchGetCVR(_ context.Context, clientGroupID string, keys []string) (map[string]models.CVREntry, error) {
	rows := t.state.cvr[clientGroupID]
	out := make(map[string]models.CVREntry, len(keys))
	for _, k := range keys {
		if e, ok := rows[k]; ok {
			out[k] = e
		}
	}
	return out, nil
}

func (t *Tx) BatchSetCVR(_ context.Context, entries []models.CVREntry) error {
	for _, e := range entries {
		rows, ok := t.state.cvr[e.ClientGroupID]
		if !ok {
			rows = make(map[string]models.CVREntry)
			t.state.cvr[e.ClientGroupID] = rows
		}
		rows[e.Key] = e
	}
	return nil
}

// GetDocument returns the document stored under key, tombstones included.
func (t *Tx) GetDocument(key string) (models.Entry, bool) {
	d, ok := t.state.docs[key]
	return d, ok
}

// PutDocument stores value under key and bumps the key's version.
func (t *Tx) PutDocument(key string, value any) (models.Entry, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return models.Entry{}, fmt.Errorf("memstore: encoding %q: %w", key, err)
	}

	d := models.Entry{Key: key, Version: t.state.docs[key].Version + 1, Value: raw}
	t.state.docs[key] = d
	return d, nil
}

// DeleteDocument replaces a live document with a tombstone and reports
// whether it existed.
func (t *Tx) DeleteDocument(key string) bool {
	d, ok := t.state.docs[key]
	if !ok || d.Deleted {
		return false
	}

	t.state.docs[key] = models.Tombstone(key, d.Version+1)
	return true
}

// ScanDocuments returns every document whose key starts with prefix,
// ordered by key.
func (t *Tx) ScanDocuments(prefix string) []models.Entry {
	out := make([]models.Entry, 0)
	for _, key := range slices.Sorted(maps.Keys(t.state.docs)) {
		if strings.HasPrefix(key, prefix) {
			out = append(out, t.state.docs[key])
		}
	}
	return out
}
