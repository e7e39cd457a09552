package todos

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/MKhiriev/go-replisync/internal/logger"
	"github.com/MKhiriev/go-replisync/internal/registry"
	"github.com/MKhiriev/go-replisync/internal/replica"
	"github.com/MKhiriev/go-replisync/internal/store"
	"github.com/MKhiriev/go-replisync/models"
)

// Domain holds the todo handlers.
type Domain struct {
	repo *repository
	now  func() time.Time
}

// New returns the todo domain. now stamps updated_at; nil means UTC wall
// clock time.
func New(now func() time.Time) *Domain {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Domain{repo: newRepository(now), now: now}
}

// Register adds the todo queries and mutations to cfg.
func (d *Domain) Register(cfg *registry.Config) {
	if cfg.Queries == nil {
		cfg.Queries = make(map[string]registry.Query)
	}
	if cfg.Mutations == nil {
		cfg.Mutations = make(map[string]registry.Mutation)
	}

	cfg.Queries[QueryListTodos] = registry.NewQuery(d.localList, d.remoteList)
	cfg.Mutations[MutationCreateTodo] = registry.NewMutation(d.localCreate, d.remoteCreate)
	cfg.Mutations[MutationUpdateTodo] = registry.NewMutation(d.localUpdate, d.remoteUpdate)
	cfg.Mutations[MutationDeleteTodo] = registry.NewMutation(d.localDelete, d.remoteDelete)
}

func (d *Domain) remoteList(ctx context.Context, tx store.Tx, params ListTodosParams) ([]models.Entry, error) {
	if params.ListID == "" {
		return nil, fmt.Errorf("%w: %w", registry.ErrInvalidParams, ErrEmptyListID)
	}

	sqlTx, err := asSQLTx(tx)
	if err != nil {
		return nil, err
	}

	records, err := d.repo.list(ctx, sqlTx, params.ListID)
	if err != nil {
		return nil, err
	}

	entries := make([]models.Entry, 0, len(records))
	for _, rec := range records {
		key := Key(rec.ListID, rec.ID)
		if rec.Deleted {
			entries = append(entries, models.Tombstone(key, rec.Version))
			continue
		}

		entry, err := models.NewEntry(key, rec.Version, rec.Todo)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (d *Domain) remoteCreate(ctx context.Context, tx store.Tx, args CreateTodoArgs) error {
	if err := validateCreate(args); err != nil {
		return err
	}

	sqlTx, err := asSQLTx(tx)
	if err != nil {
		return err
	}

	created, err := d.repo.create(ctx, sqlTx, args)
	if err != nil {
		return err
	}
	if !created {
		logger.FromContext(ctx).Debug().
			Str("func", "todos.remoteCreate").
			Str("todo_id", args.ID).
			Msg("todo already exists")
	}

	return nil
}

func (d *Domain) remoteUpdate(ctx context.Context, tx store.Tx, args UpdateTodoArgs) error {
	if args.ID == "" {
		return fmt.Errorf("%w: %w", registry.ErrInvalidParams, ErrEmptyID)
	}
	if args.empty() {
		return nil
	}

	sqlTx, err := asSQLTx(tx)
	if err != nil {
		return err
	}

	updated, err := d.repo.update(ctx, sqlTx, args)
	if err != nil {
		return err
	}
	if !updated {
		logger.FromContext(ctx).Debug().
			Str("func", "todos.remoteUpdate").
			Str("todo_id", args.ID).
			Msg("todo not found, update ignored")
	}

	return nil
}

func (d *Domain) remoteDelete(ctx context.Context, tx store.Tx, args DeleteTodoArgs) error {
	if args.ID == "" {
		return fmt.Errorf("%w: %w", registry.ErrInvalidParams, ErrEmptyID)
	}

	sqlTx, err := asSQLTx(tx)
	if err != nil {
		return err
	}

	deleted, err := d.repo.delete(ctx, sqlTx, args.ID)
	if err != nil {
		return err
	}
	if !deleted {
		logger.FromContext(ctx).Debug().
			Str("func", "todos.remoteDelete").
			Str("todo_id", args.ID).
			Msg("todo not found, delete ignored")
	}

	return nil
}

// localList returns the todos of a list from the replica ordered by sort
// order, then id.
func (d *Domain) localList(_ context.Context, r replica.Reader, params ListTodosParams) ([]Todo, error) {
	if params.ListID == "" {
		return nil, fmt.Errorf("%w: %w", registry.ErrInvalidParams, ErrEmptyListID)
	}

	kvs := r.Scan(ListPrefix(params.ListID))
	todos := make([]Todo, 0, len(kvs))
	for _, kv := range kvs {
		var t Todo
		if err := json.Unmarshal(kv.Value, &t); err != nil {
			return nil, fmt.Errorf("error decoding %q: %w", kv.Key, err)
		}
		todos = append(todos, t)
	}

	slices.SortStableFunc(todos, func(a, b Todo) int {
		return cmp.Or(cmp.Compare(a.SortOrder, b.SortOrder), cmp.Compare(a.ID, b.ID))
	})

	return todos, nil
}

func (d *Domain) localCreate(_ context.Context, w replica.Writer, args CreateTodoArgs) error {
	if err := validateCreate(args); err != nil {
		return err
	}

	key := Key(args.ListID, args.ID)
	if w.Has(key) {
		return nil
	}

	return w.Put(key, Todo{
		ID:        args.ID,
		ListID:    args.ListID,
		Text:      args.Text,
		SortOrder: args.SortOrder,
		UpdatedAt: d.now(),
	})
}

func (d *Domain) localUpdate(_ context.Context, w replica.Writer, args UpdateTodoArgs) error {
	if args.ID == "" || args.ListID == "" {
		return fmt.Errorf("%w: %w", registry.ErrInvalidParams, ErrEmptyID)
	}

	key := Key(args.ListID, args.ID)
	raw, ok := w.Get(key)
	if !ok || args.empty() {
		return nil
	}

	var t Todo
	if err := json.Unmarshal(raw, &t); err != nil {
		return fmt.Errorf("error decoding %q: %w", key, err)
	}
	args.apply(&t)
	t.UpdatedAt = d.now()

	return w.Put(key, t)
}

func (d *Domain) localDelete(_ context.Context, w replica.Writer, args DeleteTodoArgs) error {
	if args.ID == "" || args.ListID == "" {
		return fmt.Errorf("%w: %w", registry.ErrInvalidParams, ErrEmptyID)
	}

	w.Del(Key(args.ListID, args.ID))
	return nil
}

func validateCreate(args CreateTodoArgs) error {
	switch {
	case args.ID == "":
		return fmt.Errorf("%w: %w", registry.ErrInvalidParams, ErrEmptyID)
	case args.ListID == "":
		return fmt.Errorf("%w: %w", registry.ErrInvalidParams, ErrEmptyListID)
	case args.Text == "":
		return fmt.Errorf("%w: %w", registry.ErrInvalidParams, ErrEmptyText)
	}
	return nil
}
