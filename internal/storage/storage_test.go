package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmportal/internal/storage"
)

// backends both implementations must agree on.
func backends(t *testing.T) map[string]storage.Storage {
	t.Helper()

	local, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	return map[string]storage.Storage{
		"memory": storage.NewMemoryStorage(),
		"local":  local,
	}
}

func TestRoundTrip(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := store.Load(ctx, storage.KeyDocuments)
			assert.ErrorIs(t, err, storage.ErrKeyNotFound)

			require.NoError(t, store.Save(ctx, storage.KeyDocuments, []byte(`[{"id":"1"}]`)))
			data, err := store.Load(ctx, storage.KeyDocuments)
			require.NoError(t, err)
			assert.Equal(t, `[{"id":"1"}]`, string(data))

			// overwrite replaces, not appends
			require.NoError(t, store.Save(ctx, storage.KeyDocuments, []byte(`[]`)))
			data, err = store.Load(ctx, storage.KeyDocuments)
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(data))
		})
	}
}

func TestDelete(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, store.Save(ctx, storage.KeySession, []byte(`{}`)))
			require.NoError(t, store.Delete(ctx, storage.KeySession))

			_, err := store.Load(ctx, storage.KeySession)
			assert.ErrorIs(t, err, storage.ErrKeyNotFound)

			// deleting an absent key is not an error
			assert.NoError(t, store.Delete(ctx, storage.KeySession))
		})
	}
}

func TestKeysAreIndependent(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, store.Save(ctx, storage.KeyAccounts, []byte(`users`)))
			require.NoError(t, store.Save(ctx, storage.KeyMissions, []byte(`missions`)))
			require.NoError(t, store.Delete(ctx, storage.KeyAccounts))

			data, err := store.Load(ctx, storage.KeyMissions)
			require.NoError(t, err)
			assert.Equal(t, "missions", string(data))
		})
	}
}

func TestMemoryStorageCopiesValues(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()

	original := []byte("abc")
	require.NoError(t, store.Save(ctx, "k", original))
	original[0] = 'x'

	data, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))

	data[0] = 'y'
	again, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestLocalStorageLayout(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, storage.KeyDocuments, []byte(`[]`)))

	// one json file per key, named after it
	data, err := os.ReadFile(filepath.Join(dir, storage.KeyDocuments+".json"))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestLocalStorageSanitizesKeys(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "../escape", []byte(`x`)))

	// key must resolve inside the base directory
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "__escape.json", entries[0].Name())

	data, err := store.Load(ctx, "../escape")
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestLocalStorageSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, storage.KeyAccounts, []byte(`[]`)))

	second, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	data, err := second.Load(ctx, storage.KeyAccounts)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}
