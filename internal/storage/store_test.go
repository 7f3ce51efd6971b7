package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	sqlite, err := NewSQLiteStore(filepath.Join(dir, "kv.db"))
	require.NoError(t, err)
	bolt, err := NewBoltStore(filepath.Join(dir, "kv.bolt"))
	require.NoError(t, err)

	stores := map[string]Store{
		"sqlite": sqlite,
		"bolt":   bolt,
		"memory": NewMemoryStore(),
	}
	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func TestStores_Contract(t *testing.T) {
	ctx := context.Background()

	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			kv := store.Bucket(BucketCache)

			_, ok, err := kv.Get(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Set(ctx, "a", []byte("1")))
			require.NoError(t, kv.Set(ctx, "b", []byte("2")))
			require.NoError(t, kv.Set(ctx, "a", []byte("3")))

			v, ok, err := kv.Get(ctx, "a")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, []byte("3"), v)

			keys, err := kv.Keys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, keys)

			require.NoError(t, kv.Delete(ctx, "a"))
			require.NoError(t, kv.Delete(ctx, "never-set"))
			_, ok, _ = kv.Get(ctx, "a")
			assert.False(t, ok)

			require.NoError(t, kv.Clear(ctx))
			keys, err = kv.Keys(ctx)
			require.NoError(t, err)
			assert.Empty(t, keys)
		})
	}
}

func TestStores_EmptyValueIsPresent(t *testing.T) {
	ctx := context.Background()

	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			kv := store.Bucket(BucketLocal)

			require.NoError(t, kv.Set(ctx, "empty", []byte{}))

			v, ok, err := kv.Get(ctx, "empty")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Empty(t, v)

			keys, err := kv.Keys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"empty"}, keys)
		})
	}
}

func TestStores_BucketsAreIndependent(t *testing.T) {
	ctx := context.Background()

	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			local := store.Bucket(BucketLocal)
			cached := store.Bucket(BucketCache)

			require.NoError(t, local.Set(ctx, "k", []byte("local")))
			require.NoError(t, cached.Set(ctx, "k", []byte("cache")))
			require.NoError(t, cached.Clear(ctx))

			v, ok, err := local.Get(ctx, "k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, []byte("local"), v)
		})
	}
}

func TestSQLiteStore_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "persist.db")

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Bucket(BucketLocal).Set(ctx, "sadaqah-presets", []byte(`[]`)))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Bucket(BucketLocal).Get(ctx, "sadaqah-presets")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, string(v))
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore().Bucket(BucketLocal)

	in := []byte("abc")
	require.NoError(t, kv.Set(ctx, "k", in))
	in[0] = 'z'

	v, _, _ := kv.Get(ctx, "k")
	assert.Equal(t, "abc", string(v))
}
