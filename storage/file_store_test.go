package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r4gus/tresor/storage"
)

func TestFileBlobStorePutGetDelete(t *testing.T) {
	dir := t.TempDir()
	bs, err := storage.NewFileBlobStore(dir)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, bs.Put(ctx, "my-store", []byte("sealed-bytes")))

	got, err := bs.Get(ctx, "my-store")
	require.NoError(t, err)
	assert.Equal(t, []byte("sealed-bytes"), got)

	require.NoError(t, bs.Delete(ctx, "my-store"))
	_, err = bs.Get(ctx, "my-store")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFileCatalogPutList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	c := storage.NewFileCatalog(path)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, storage.CatalogEntry{Name: "a", SealedAt: 1000, Size: 128}))
	require.NoError(t, c.Put(ctx, storage.CatalogEntry{Name: "b", SealedAt: 1001, Size: 256}))
	// Re-Put on an existing name replaces, not duplicates.
	require.NoError(t, c.Put(ctx, storage.CatalogEntry{Name: "a", SealedAt: 2000, Size: 512}))

	entries, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byName := map[string]storage.CatalogEntry{}
	for _, e := range entries {
		byName[e.Name] = e
	}
	assert.Equal(t, int64(2000), byName["a"].SealedAt)
	assert.Equal(t, 512, byName["a"].Size)
}
