package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-replisync/internal/store"
	"github.com/MKhiriev/go-replisync/models"
)

func TestTransact_CreatesGroupLazily(t *testing.T) {
	s := New()

	err := s.Transact(context.Background(), "g1", func(ctx context.Context, tx store.Tx) error {
		g, err := tx.GetClientGroup(ctx, "g1")
		require.NoError(t, err)
		assert.Zero(t, g.CVRVersion)
		return nil
	})
	require.NoError(t, err)

	_, ok := s.ClientGroup("g1")
	assert.True(t, ok)
}

func TestTransact_RollbackDiscardsEverything(t *testing.T) {
	s := New()
	_, err := s.PutDocument("todo/1", "x")
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.Transact(context.Background(), "g1", func(ctx context.Context, stx store.Tx) error {
		tx := stx.(*Tx)
		require.NoError(t, tx.UpsertClients(ctx, []models.Client{{ID: "c1", ClientGroupID: "g1", LastMutationID: 1}}))
		_, err := tx.PutDocument("todo/1", "y")
		require.NoError(t, err)
		tx.DeleteDocument("todo/1")
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, ok := s.Client("c1")
	assert.False(t, ok)
	_, ok = s.ClientGroup("g1")
	assert.False(t, ok)

	d, ok := s.Document("todo/1")
	require.True(t, ok)
	assert.Equal(t, int64(1), d.Version)
	assert.JSONEq(t, `"x"`, string(d.Value))
}

func TestTx_LedgerAndCVR(t *testing.T) {
	s := New()
	ctx := context.Background()

	err := s.Transact(ctx, "g1", func(ctx context.Context, tx store.Tx) error {
		g, err := tx.GetClientGroup(ctx, "g1")
		require.NoError(t, err)
		g.CVRVersion = 2
		g.Mutations.Advance("c1", 4, 2)
		require.NoError(t, tx.UpdateClientGroup(ctx, g))
		return tx.BatchSetCVR(ctx, []models.CVREntry{{ClientGroupID: "g1", Key: "a", Version: 1, SyncSequence: 2}})
	})
	require.NoError(t, err)

	g, ok := s.ClientGroup("g1")
	require.True(t, ok)
	assert.Equal(t, int64(2), g.CVRVersion)
	e, ok := g.Mutations.Get("c1")
	require.True(t, ok)
	assert.Equal(t, models.LedgerEntry{LastMutationID: 4, SyncSequence: 2}, e)
	assert.Equal(t, int64(1), s.CVR("g1")["a"].Version)
	assert.Empty(t, s.CVR("g2"))
}

func TestTx_Documents(t *testing.T) {
	s := New()

	err := s.Transact(context.Background(), "g1", func(_ context.Context, stx store.Tx) error {
		tx := stx.(*Tx)
		_, err := tx.PutDocument("b/2", 2)
		require.NoError(t, err)
		_, err = tx.PutDocument("b/1", 1)
		require.NoError(t, err)
		_, err = tx.PutDocument("a/1", 0)
		require.NoError(t, err)

		assert.True(t, tx.DeleteDocument("b/2"))
		assert.False(t, tx.DeleteDocument("b/2"))
		assert.False(t, tx.DeleteDocument("missing"))

		docs := tx.ScanDocuments("b/")
		require.Len(t, docs, 2)
		assert.Equal(t, "b/1", docs[0].Key)
		assert.Equal(t, models.Tombstone("b/2", 2), docs[1])
		return nil
	})
	require.NoError(t, err)
}

func TestTransact_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New().Transact(ctx, "g1", func(context.Context, store.Tx) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
