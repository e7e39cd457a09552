package registry

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-replisync/internal/replica"
	"github.com/MKhiriev/go-replisync/internal/store"
	"github.com/MKhiriev/go-replisync/models"
)

type itemParams struct {
	Prefix string `json:"prefix"`
}

type setArgs struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func noopRemoteQuery(context.Context, store.Tx, json.RawMessage) ([]models.Entry, error) {
	return nil, nil
}

func noopRemoteMutation(context.Context, store.Tx, json.RawMessage) error {
	return nil
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "empty config", cfg: Config{}},
		{name: "manual strategy", cfg: Config{Strategy: StrategyManual}},
		{name: "negative schema", cfg: Config{SchemaVersion: -1}, wantErr: true},
		{name: "unknown strategy", cfg: Config{Strategy: "lazy"}, wantErr: true},
		{name: "empty query name", cfg: Config{Queries: map[string]Query{"": {Remote: noopRemoteQuery}}}, wantErr: true},
		{name: "query without remote", cfg: Config{Queries: map[string]Query{"q": {}}}, wantErr: true},
		{name: "empty mutation name", cfg: Config{Mutations: map[string]Mutation{"": {Remote: noopRemoteMutation}}}, wantErr: true},
		{name: "mutation without remote", cfg: Config{Mutations: map[string]Mutation{"m": {}}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.cfg)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRegistry)
				assert.Nil(t, r)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, r)
		})
	}
}

func TestRegistry_Lookups(t *testing.T) {
	queries := map[string]Query{
		"zeta":  {Remote: noopRemoteQuery},
		"alpha": {Remote: noopRemoteQuery},
	}
	r, err := New(Config{
		SchemaVersion: 3,
		Queries:       queries,
		Mutations:     map[string]Mutation{"set": {Remote: noopRemoteMutation}},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, r.SchemaVersion())
	assert.Equal(t, StrategyAuto, r.Strategy())
	assert.Equal(t, []string{"alpha", "zeta"}, r.QueryNames())
	assert.Equal(t, []string{"set"}, r.MutationNames())

	_, ok := r.Query("alpha")
	assert.True(t, ok)
	_, ok = r.Query("missing")
	assert.False(t, ok)
	_, ok = r.Mutation("set")
	assert.True(t, ok)

	// later changes to the config maps do not leak into the registry
	delete(queries, "alpha")
	_, ok = r.Query("alpha")
	assert.True(t, ok)
}

func TestNewQuery_DecodesAndEncodes(t *testing.T) {
	var gotRemote itemParams
	q := NewQuery(
		func(_ context.Context, r replica.Reader, p itemParams) ([]string, error) {
			out := []string{}
			for _, kv := range r.Scan(p.Prefix) {
				out = append(out, kv.Key)
			}
			return out, nil
		},
		func(_ context.Context, _ store.Tx, p itemParams) ([]models.Entry, error) {
			gotRemote = p
			return []models.Entry{{Key: "a", Version: 1}}, nil
		},
	)
	require.NotNil(t, q.Local)
	require.NotNil(t, q.Remote)

	entries, err := q.Remote(context.Background(), nil, json.RawMessage(`{"prefix":"x/"}`))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, itemParams{Prefix: "x/"}, gotRemote)

	rep := replica.New()
	require.NoError(t, rep.Put("x/1", 1))
	require.NoError(t, rep.Put("y/1", 1))

	items, err := q.Local(context.Background(), rep, json.RawMessage(`{"prefix":"x/"}`))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.JSONEq(t, `"x/1"`, string(items[0]))
}

func TestNewQuery_InvalidParams(t *testing.T) {
	q := NewQuery[itemParams, string](nil, func(context.Context, store.Tx, itemParams) ([]models.Entry, error) {
		t.Fatal("remote must not run")
		return nil, nil
	})
	assert.Nil(t, q.Local)

	_, err := q.Remote(context.Background(), nil, json.RawMessage(`{"prefix":1}`))
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestNewMutation(t *testing.T) {
	m := NewMutation(
		func(_ context.Context, w replica.Writer, a setArgs) error {
			return w.Put(a.Key, a.Value)
		},
		func(context.Context, store.Tx, setArgs) error { return nil },
	)

	rep := replica.New()
	require.NoError(t, m.Local(context.Background(), rep, json.RawMessage(`{"key":"a","value":"x"}`)))
	v, ok := rep.Get("a")
	require.True(t, ok)
	assert.JSONEq(t, `"x"`, string(v))

	assert.ErrorIs(t, m.Remote(context.Background(), nil, json.RawMessage(`[`)), ErrInvalidParams)
}

func TestDecodeParams(t *testing.T) {
	p, err := DecodeParams[itemParams](nil)
	require.NoError(t, err)
	assert.Zero(t, p)

	p, err = DecodeParams[itemParams](json.RawMessage(" null "))
	require.NoError(t, err)
	assert.Zero(t, p)

	p, err = DecodeParams[itemParams](json.RawMessage(`{"prefix":"a"}`))
	require.NoError(t, err)
	assert.Equal(t, "a", p.Prefix)
}
