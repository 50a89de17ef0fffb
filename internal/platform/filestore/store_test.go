package filestore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/phrazzld/scry-decks/internal/platform/filestore"
	"github.com/phrazzld/scry-decks/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	s, err := filestore.Open(filepath.Join(t.TempDir(), "scry.db.zst"), nil)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	c, err := s.GetCollection(context.Background(), store.CollectionDecks)
	require.NoError(t, err)
	assert.Empty(t, c)
}

func TestWritesSurviveReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "scry.db.zst")

	first, err := filestore.Open(path, nil)
	require.NoError(t, err)

	require.NoError(t, first.Apply(ctx, []store.Mutation{
		{Collection: store.CollectionDecks, Key: "u1", Value: []byte(`[{"id":"d1"}]`)},
		{Collection: store.CollectionCards, Key: "u1", Value: []byte(`{"d1":[]}`)},
		{Collection: store.CollectionStats, Key: "u1", Value: []byte(`{"totalReviews":4}`)},
	}))
	require.NoError(t, first.DeleteKey(ctx, store.CollectionCards, "u1"))
	require.NoError(t, first.Close())

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file should be renamed away")

	second, err := filestore.Open(path, nil)
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	decks, err := second.GetKey(ctx, store.CollectionDecks, "u1")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"d1"}]`, string(decks))

	stats, err := second.GetKey(ctx, store.CollectionStats, "u1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"totalReviews":4}`, string(stats))

	_, err = second.GetKey(ctx, store.CollectionCards, "u1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scry.db.zst")
	require.NoError(t, os.WriteFile(path, []byte("definitely not zstd"), 0o600))

	_, err := filestore.Open(path, nil)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestFailedWriteKeepsPreviousState(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "scry.db.zst")

	s, err := filestore.Open(path, nil)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	require.NoError(t, s.PutCollection(ctx, store.CollectionDecks, store.Collection{"u1": []byte(`[]`)}))

	// An invalid JSON document cannot be encoded into the snapshot.
	err = s.Apply(ctx, []store.Mutation{
		{Collection: store.CollectionDecks, Key: "u2", Value: []byte(`[]`)},
		{Collection: store.CollectionStats, Key: "u2", Value: []byte(`{broken`)},
	})
	require.Error(t, err)

	decks, err := s.GetCollection(ctx, store.CollectionDecks)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, decks.Keys())
}

func TestUnknownCollection(t *testing.T) {
	s, err := filestore.Open(filepath.Join(t.TempDir(), "scry.db.zst"), nil)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	err = s.Apply(context.Background(), []store.Mutation{{Collection: "memos", Key: "u1", Value: []byte(`{}`)}})
	assert.ErrorIs(t, err, store.ErrUnknownCollection)
}

func TestClosedStore(t *testing.T) {
	s, err := filestore.Open(filepath.Join(t.TempDir(), "scry.db.zst"), nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err = s.GetCollection(context.Background(), store.CollectionStats)
	assert.ErrorIs(t, err, store.ErrClosed)
	err = s.PutCollection(context.Background(), store.CollectionStats, store.Collection{})
	assert.ErrorIs(t, err, store.ErrClosed)
}
