package todos_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-replisync/internal/config"
	"github.com/MKhiriev/go-replisync/internal/domain/todos"
	"github.com/MKhiriev/go-replisync/internal/logger"
	"github.com/MKhiriev/go-replisync/internal/registry"
	"github.com/MKhiriev/go-replisync/internal/replica"
	"github.com/MKhiriev/go-replisync/internal/service"
	"github.com/MKhiriev/go-replisync/internal/store"
	"github.com/MKhiriev/go-replisync/models"
)

var clock = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	cfg := registry.Config{SchemaVersion: 1}
	todos.New(clock).Register(&cfg)

	reg, err := registry.New(cfg)
	require.NoError(t, err)
	return reg
}

func args(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestRegister(t *testing.T) {
	reg := newRegistry(t)

	assert.Equal(t, []string{todos.QueryListTodos}, reg.QueryNames())
	assert.Equal(t, []string{todos.MutationCreateTodo, todos.MutationDeleteTodo, todos.MutationUpdateTodo}, reg.MutationNames())

	for _, name := range reg.MutationNames() {
		m, _ := reg.Mutation(name)
		assert.NotNil(t, m.Local, name)
	}
}

// ─────────────────────────────────────────────
// Local handlers
// ─────────────────────────────────────────────

func TestLocalHandlers(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)
	rep := replica.New()

	create, _ := reg.Mutation(todos.MutationCreateTodo)
	update, _ := reg.Mutation(todos.MutationUpdateTodo)
	del, _ := reg.Mutation(todos.MutationDeleteTodo)
	list, _ := reg.Query(todos.QueryListTodos)

	require.NoError(t, create.Local(ctx, rep, args(t, todos.CreateTodoArgs{ID: "b", ListID: "l1", Text: "eggs", SortOrder: 2})))
	require.NoError(t, create.Local(ctx, rep, args(t, todos.CreateTodoArgs{ID: "a", ListID: "l1", Text: "milk", SortOrder: 2})))
	require.NoError(t, create.Local(ctx, rep, args(t, todos.CreateTodoArgs{ID: "c", ListID: "l1", Text: "bread", SortOrder: 1})))
	require.NoError(t, create.Local(ctx, rep, args(t, todos.CreateTodoArgs{ID: "x", ListID: "l2", Text: "other list"})))

	done := true
	require.NoError(t, update.Local(ctx, rep, args(t, todos.UpdateTodoArgs{ID: "a", ListID: "l1", Done: &done})))
	require.NoError(t, update.Local(ctx, rep, args(t, todos.UpdateTodoArgs{ID: "missing", ListID: "l1", Done: &done})))
	require.NoError(t, del.Local(ctx, rep, args(t, todos.DeleteTodoArgs{ID: "b", ListID: "l1"})))

	items, err := list.Local(ctx, rep, json.RawMessage(`{"listID":"l1"}`))
	require.NoError(t, err)
	require.Len(t, items, 2)

	var first, second todos.Todo
	require.NoError(t, json.Unmarshal(items[0], &first))
	require.NoError(t, json.Unmarshal(items[1], &second))
	assert.Equal(t, "c", first.ID)
	assert.Equal(t, "a", second.ID)
	assert.True(t, second.Done)
	assert.False(t, rep.Has(todos.Key("l1", "missing")))
}

func TestLocalHandlers_InvalidArgs(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t)
	rep := replica.New()

	create, _ := reg.Mutation(todos.MutationCreateTodo)
	list, _ := reg.Query(todos.QueryListTodos)

	err := create.Local(ctx, rep, args(t, todos.CreateTodoArgs{ID: "a", ListID: "l1"}))
	assert.ErrorIs(t, err, registry.ErrInvalidParams)
	assert.ErrorIs(t, err, todos.ErrEmptyText)

	_, err = list.Local(ctx, rep, nil)
	assert.ErrorIs(t, err, todos.ErrEmptyListID)
}

// ─────────────────────────────────────────────
// Sync against SQLite
// ─────────────────────────────────────────────

func newSQLiteService(t *testing.T) service.SyncService {
	t.Helper()
	ctx := context.Background()

	db, err := store.NewDB(ctx, config.DB{DSN: filepath.Join(t.TempDir(), "todos.db")}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())

	return service.NewSyncService(db, newRegistry(t), logger.Nop(), service.WithClock(clock))
}

func pull(t *testing.T, svc service.SyncService, cookie *models.Cookie) models.PullResponse {
	t.Helper()

	resp, err := svc.Pull(context.Background(), models.PullRequest{
		PullVersion:   models.PullVersion,
		ProfileID:     "p1",
		ClientGroupID: "g1",
		Cookie:        cookie,
		Queries: map[string]models.QueryParams{
			todos.QueryListTodos: {Params: json.RawMessage(`{"listID":"l1"}`)},
		},
	})
	require.NoError(t, err)
	return resp
}

func push(t *testing.T, svc service.SyncService, mutations ...models.Mutation) {
	t.Helper()

	require.NoError(t, svc.Push(context.Background(), models.PushRequest{
		PushVersion:   models.PushVersion,
		ProfileID:     "p1",
		ClientGroupID: "g1",
		Mutations:     mutations,
	}))
}

func opsByKey(patch []models.PatchOperation) map[string]models.PatchOperation {
	out := make(map[string]models.PatchOperation, len(patch))
	for _, op := range patch {
		out[op.Key] = op
	}
	return out
}

func TestSync_SQLite(t *testing.T) {
	svc := newSQLiteService(t)

	batch := []models.Mutation{
		{ClientID: "c1", ID: 1, Name: todos.MutationCreateTodo, Args: args(t, todos.CreateTodoArgs{ID: "a", ListID: "l1", Text: "milk"})},
		{ClientID: "c1", ID: 2, Name: todos.MutationCreateTodo, Args: args(t, todos.CreateTodoArgs{ID: "b", ListID: "l1", Text: "eggs"})},
	}
	push(t, svc, batch...)

	first := pull(t, svc, nil)
	assert.Equal(t, int64(1), first.Cookie.Order)
	assert.Equal(t, map[string]int64{"c1": 2}, first.LastMutationIDChanges)
	ops := opsByKey(first.Patch)
	require.Len(t, ops, 2)

	var a todos.Todo
	require.NoError(t, json.Unmarshal(ops[todos.Key("l1", "a")].Value, &a))
	assert.Equal(t, "milk", a.Text)
	assert.False(t, a.Done)

	done := true
	push(t, svc,
		models.Mutation{ClientID: "c1", ID: 3, Name: todos.MutationUpdateTodo, Args: args(t, todos.UpdateTodoArgs{ID: "a", ListID: "l1", Done: &done})},
		models.Mutation{ClientID: "c1", ID: 4, Name: todos.MutationDeleteTodo, Args: args(t, todos.DeleteTodoArgs{ID: "b", ListID: "l1"})},
		models.Mutation{ClientID: "c1", ID: 5, Name: todos.MutationCreateTodo, Args: args(t, todos.CreateTodoArgs{ID: "a", ListID: "l1", Text: "again"})},
		models.Mutation{ClientID: "c1", ID: 6, Name: todos.MutationUpdateTodo, Args: args(t, todos.UpdateTodoArgs{ID: "ghost", ListID: "l1", Done: &done})},
	)

	second := pull(t, svc, first.Cookie)
	assert.Equal(t, int64(2), second.Cookie.Order)
	assert.Equal(t, map[string]int64{"c1": 6}, second.LastMutationIDChanges)
	ops = opsByKey(second.Patch)
	require.Len(t, ops, 2)
	assert.Equal(t, models.PatchOpDel, ops[todos.Key("l1", "b")].Op)

	a = todos.Todo{}
	require.NoError(t, json.Unmarshal(ops[todos.Key("l1", "a")].Value, &a))
	assert.Equal(t, "milk", a.Text)
	assert.True(t, a.Done)

	// replaying the first batch changes nothing
	push(t, svc, batch...)

	third := pull(t, svc, second.Cookie)
	assert.Empty(t, third.Patch)
	assert.Empty(t, third.LastMutationIDChanges)
	assert.Equal(t, second.Cookie, third.Cookie)

	// a client starting over receives only live todos
	rep := replica.New()
	require.NoError(t, rep.ApplyPatch(pull(t, svc, nil).Patch))
	assert.Equal(t, 1, rep.Len())
}
