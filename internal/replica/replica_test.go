package replica

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-replisync/models"
)

func TestReplica_PutGetDel(t *testing.T) {
	r := New()

	require.NoError(t, r.Put("a", map[string]int{"n": 1}))
	v, ok := r.Get("a")
	require.True(t, ok)
	assert.JSONEq(t, `{"n":1}`, string(v))
	assert.True(t, r.Has("a"))

	assert.True(t, r.Del("a"))
	assert.False(t, r.Del("a"))
	assert.False(t, r.Has("a"))

	_, ok = r.Get("a")
	assert.False(t, ok)
}

func TestReplica_PutUnencodable(t *testing.T) {
	r := New()
	assert.Error(t, r.Put("a", make(chan int)))
	assert.Zero(t, r.Len())
}

func TestReplica_ScanIsOrderedAndPrefixed(t *testing.T) {
	r := New()
	for _, k := range []string{"todo/2", "repo/1", "todo/10", "todo/1"} {
		require.NoError(t, r.Put(k, k))
	}

	kvs := r.Scan("todo/")
	keys := make([]string, 0, len(kvs))
	for _, kv := range kvs {
		keys = append(keys, kv.Key)
	}
	assert.Equal(t, []string{"todo/1", "todo/10", "todo/2"}, keys)
	assert.Len(t, r.Scan(""), 4)
	assert.Empty(t, r.Scan("pr/"))
}

func TestReplica_ApplyPatch(t *testing.T) {
	r := New()
	require.NoError(t, r.Put("b", "old"))

	err := r.ApplyPatch([]models.PatchOperation{
		{Op: models.PatchOpPut, Key: "a", Value: json.RawMessage(`"x"`)},
		{Op: models.PatchOpDel, Key: "b"},
		{Op: models.PatchOpPut, Key: "a", Value: json.RawMessage(`"y"`)},
	})
	require.NoError(t, err)

	v, _ := r.Get("a")
	assert.JSONEq(t, `"y"`, string(v))
	assert.False(t, r.Has("b"))
}

func TestReplica_ApplyPatchRejectsUnknownOp(t *testing.T) {
	r := New()

	err := r.ApplyPatch([]models.PatchOperation{
		{Op: models.PatchOpPut, Key: "a", Value: json.RawMessage(`1`)},
		{Op: "clear"},
	})
	assert.ErrorIs(t, err, ErrUnknownPatchOp)
	assert.Zero(t, r.Len())
}

func TestReplica_CloneIsIndependent(t *testing.T) {
	r := New()
	require.NoError(t, r.Put("a", 1))

	c := r.Clone()
	require.NoError(t, c.Put("a", 2))
	require.NoError(t, c.Put("b", 3))

	v, _ := r.Get("a")
	assert.JSONEq(t, `1`, string(v))
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 2, c.Len())
}
