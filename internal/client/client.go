package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/MKhiriev/go-replisync/internal/adapter"
	"github.com/MKhiriev/go-replisync/internal/logger"
	"github.com/MKhiriev/go-replisync/internal/registry"
	"github.com/MKhiriev/go-replisync/internal/replica"
	"github.com/MKhiriev/go-replisync/internal/utils"
	"github.com/MKhiriev/go-replisync/internal/validators"
	"github.com/MKhiriev/go-replisync/models"
)

// DefaultMaxPayloadSize bounds the encoded args of one push batch.
const DefaultMaxPayloadSize = 4_400_000

// maxBatchMutations keeps every batch under the server's per-push limit.
const maxBatchMutations = validators.MaxMutationsPerPush

// Config identifies a client. Empty ids are generated.
type Config struct {
	ProfileID     string
	ClientGroupID string
	ClientID      string

	// MaxPayloadSize bounds the encoded args of one push batch. Zero means
	// DefaultMaxPayloadSize, a negative value disables splitting by size.
	MaxPayloadSize int
}

// Client is a reference sync client. It is safe for concurrent use; network
// calls are serialized.
type Client struct {
	server   adapter.SyncAdapter
	registry *registry.Registry
	ids      *utils.UUIDGenerator
	logger   *logger.Logger

	// syncMu serializes Push and Pull.
	syncMu sync.Mutex

	mu             sync.Mutex
	profileID      string
	clientGroupID  string
	clientID       string
	cookie         *models.Cookie
	confirmed      *replica.Replica
	view           *replica.Replica
	pending        []models.Mutation
	nextMutationID int64
	queries        map[string]json.RawMessage
	maxPayloadSize int
}

// New creates a client with an empty replica.
func New(server adapter.SyncAdapter, reg *registry.Registry, cfg Config, logger *logger.Logger) *Client {
	c := &Client{
		server:    server,
		registry:  reg,
		ids:       utils.NewUUIDGenerator(),
		logger:    logger,
		profileID: cfg.ProfileID,
		queries:   make(map[string]json.RawMessage),

		maxPayloadSize: cfg.MaxPayloadSize,
	}
	if c.maxPayloadSize == 0 {
		c.maxPayloadSize = DefaultMaxPayloadSize
	}
	c.resetLocked(cfg.ClientGroupID, cfg.ClientID)
	return c
}

// ClientGroupID returns the current client group id. It changes on reset.
func (c *Client) ClientGroupID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clientGroupID
}

// ClientID returns the current client id. It changes on reset.
func (c *Client) ClientID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clientID
}

// Cookie returns the cookie of the last pull that produced a patch.
func (c *Client) Cookie() *models.Cookie {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cookie == nil {
		return nil
	}
	cookie := *c.cookie
	return &cookie
}

// Pending returns the number of mutations not yet acknowledged.
func (c *Client) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Watch makes name an active query sent with every pull.
func (c *Client) Watch(name string, params any) error {
	if _, ok := c.registry.Query(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuery, name)
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("error encoding params of %q: %w", name, err)
	}

	c.mu.Lock()
	c.queries[name] = raw
	c.mu.Unlock()
	return nil
}

// Unwatch removes an active query. Its entries stay in the replica until
// the server deletes them.
func (c *Client) Unwatch(name string) {
	c.mu.Lock()
	delete(c.queries, name)
	c.mu.Unlock()
}

// CheckServer compares the server's protocol and schema versions with the
// client's.
func (c *Client) CheckServer(ctx context.Context) (models.AppInfo, error) {
	info, err := c.server.Version(ctx)
	if err != nil {
		return info, err
	}

	switch {
	case info.PullVersion != models.PullVersion:
		return info, fmt.Errorf("%w: pull version %d", ErrIncompatibleServer, info.PullVersion)
	case info.PushVersion != models.PushVersion:
		return info, fmt.Errorf("%w: push version %d", ErrIncompatibleServer, info.PushVersion)
	case info.SchemaVersion != c.registry.SchemaVersion():
		return info, fmt.Errorf("%w: schema version %d, want %d", ErrIncompatibleServer, info.SchemaVersion, c.registry.SchemaVersion())
	}
	return info, nil
}

// Mutate applies a mutation to the view and queues it for the next push.
// A mutation whose local handler fails is not queued.
func (c *Client) Mutate(ctx context.Context, name string, args any) error {
	mutation, ok := c.registry.Mutation(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMutation, name)
	}

	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("error encoding args of %q: %w", name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if mutation.Local != nil {
		if err = mutation.Local(ctx, c.view, raw); err != nil {
			return fmt.Errorf("local mutation %q: %w", name, err)
		}
	}

	c.pending = append(c.pending, models.Mutation{
		ClientID: c.clientID,
		ID:       c.nextMutationID,
		Name:     name,
		Args:     raw,
	})
	c.nextMutationID++
	return nil
}

// Query runs a local query against the view.
func (c *Client) Query(ctx context.Context, name string, params any) ([]json.RawMessage, error) {
	query, ok := c.registry.Query(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownQuery, name)
	}
	if query.Local == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoLocalHandler, name)
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("error encoding params of %q: %w", name, err)
	}

	c.mu.Lock()
	view := c.view
	c.mu.Unlock()

	return query.Local(ctx, view, raw)
}

// Sync pushes pending mutations and then pulls. A failed push is still
// followed by a pull, so acknowledged mutations and server changes arrive
// anyway; the push error is returned after it. A reset stops at the push.
func (c *Client) Sync(ctx context.Context) error {
	pushErr := c.Push(ctx)
	if errors.Is(pushErr, ErrReset) {
		return pushErr
	}

	if err := c.Pull(ctx); err != nil {
		return errors.Join(pushErr, err)
	}
	return pushErr
}

// Push sends every pending mutation in batches. Mutations stay pending until
// a pull reports them acknowledged, so a failed push is simply retried.
// Batches are sent in order and the first failure stops the push.
func (c *Client) Push(ctx context.Context) error {
	c.syncMu.Lock()
	defer c.syncMu.Unlock()

	c.mu.Lock()
	if len(c.pending) == 0 {
		c.mu.Unlock()
		return nil
	}
	schemaVersion := c.registry.SchemaVersion()
	profileID, clientGroupID := c.profileID, c.clientGroupID
	batches := c.batchesLocked()
	c.mu.Unlock()

	for i, batch := range batches {
		req := models.PushRequest{
			PushVersion:   models.PushVersion,
			ProfileID:     profileID,
			ClientGroupID: clientGroupID,
			SchemaVersion: &schemaVersion,
			Mutations:     batch,
		}
		if err := c.server.Push(ctx, req); err != nil {
			return c.handleSyncError(err, "push")
		}

		c.logger.Debug().
			Str("client_group_id", clientGroupID).
			Int("batch", i+1).
			Int("batches", len(batches)).
			Int("mutations", len(batch)).
			Msg("pushed")
	}
	return nil
}

// batchesLocked splits the pending mutations into push batches bounded by
// maxPayloadSize bytes of args and maxBatchMutations mutations. A mutation
// whose args alone reach the size bound is sent as skipped with empty args,
// so the server advances past it without running it.
func (c *Client) batchesLocked() [][]models.Mutation {
	var (
		batches [][]models.Mutation
		current []models.Mutation
		size    int
	)

	flush := func() {
		if len(current) > 0 {
			batches = append(batches, current)
		}
		current, size = nil, 0
	}

	for _, m := range c.pending {
		argsSize := len(m.Args)
		if c.maxPayloadSize > 0 && argsSize >= c.maxPayloadSize {
			c.logger.Warn().
				Str("mutation", m.Name).
				Int64("mutation_id", m.ID).
				Int("args_size", argsSize).
				Int("max_payload_size", c.maxPayloadSize).
				Msg("mutation is too large, skipping")

			m.Skip = true
			m.Args = json.RawMessage("{}")
			argsSize = len(m.Args)
		}

		fits := len(current) == 0 ||
			c.maxPayloadSize <= 0 ||
			size+argsSize < c.maxPayloadSize
		if !fits || len(current) == maxBatchMutations {
			flush()
		}

		current = append(current, m)
		size += argsSize
	}
	flush()

	return batches
}

// Pull fetches the patch for the active queries, applies it to the
// confirmed replica, drops acknowledged mutations and rebases the rest.
func (c *Client) Pull(ctx context.Context) error {
	c.syncMu.Lock()
	defer c.syncMu.Unlock()

	c.mu.Lock()
	schemaVersion := c.registry.SchemaVersion()
	req := models.PullRequest{
		PullVersion:   models.PullVersion,
		ProfileID:     c.profileID,
		ClientGroupID: c.clientGroupID,
		Cookie:        c.cookie,
		SchemaVersion: &schemaVersion,
		Queries:       make(map[string]models.QueryParams, len(c.queries)),
	}
	for name, params := range c.queries {
		req.Queries[name] = models.QueryParams{Params: params}
	}
	c.mu.Unlock()

	resp, err := c.server.Pull(ctx, req)
	if err != nil {
		return c.handleSyncError(err, "pull")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.clientGroupID != req.ClientGroupID {
		// reset while the request was in flight
		return nil
	}

	if err = c.confirmed.ApplyPatch(resp.Patch); err != nil {
		return err
	}
	if resp.Cookie != nil {
		c.cookie = resp.Cookie
	}

	if lmid, ok := resp.LastMutationIDChanges[c.clientID]; ok {
		c.pending = slices.DeleteFunc(c.pending, func(m models.Mutation) bool {
			return m.ClientID == c.clientID && m.ID <= lmid
		})
		// a reused client id continues after what the server has processed
		c.nextMutationID = max(c.nextMutationID, lmid+1)
	}
	c.rebaseLocked(ctx)

	c.logger.Debug().
		Str("client_group_id", req.ClientGroupID).
		Int("patch_size", len(resp.Patch)).
		Int("pending", len(c.pending)).
		Msg("pulled")
	return nil
}

// rebaseLocked rebuilds the view from the confirmed replica and the pending
// mutations. Local handlers failing during replay are skipped.
func (c *Client) rebaseLocked(ctx context.Context) {
	view := c.confirmed.Clone()
	for _, m := range c.pending {
		mutation, ok := c.registry.Mutation(m.Name)
		if !ok || mutation.Local == nil {
			continue
		}
		if err := mutation.Local(ctx, view, m.Args); err != nil {
			c.logger.Warn().Err(err).
				Str("mutation", m.Name).
				Int64("mutation_id", m.ID).
				Msg("pending mutation failed on rebase")
		}
	}
	c.view = view
}

func (c *Client) handleSyncError(err error, op string) error {
	if !errors.Is(err, adapter.ErrResetRequired) {
		return fmt.Errorf("%s: %w", op, err)
	}

	c.mu.Lock()
	oldGroup := c.clientGroupID
	dropped := len(c.pending)
	c.resetLocked("", "")
	newGroup := c.clientGroupID
	c.mu.Unlock()

	c.logger.Warn().Err(err).
		Str("old_client_group_id", oldGroup).
		Str("client_group_id", newGroup).
		Int("dropped_mutations", dropped).
		Msg("server requested a reset")

	return fmt.Errorf("%w: %w", ErrReset, err)
}

// resetLocked discards all local state and starts a new client group.
// Active queries are kept.
func (c *Client) resetLocked(clientGroupID, clientID string) {
	if clientGroupID == "" {
		clientGroupID = c.ids.Generate()
	}
	if clientID == "" {
		clientID = c.ids.Generate()
	}

	c.clientGroupID = clientGroupID
	c.clientID = clientID
	c.cookie = nil
	c.confirmed = replica.New()
	c.view = replica.New()
	c.pending = nil
	c.nextMutationID = 1
}

// ActiveQueries returns the names of the watched queries.
func (c *Client) ActiveQueries() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Sorted(maps.Keys(c.queries))
}
