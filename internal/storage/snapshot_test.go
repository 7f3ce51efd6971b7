package storage

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_CaptureSaveRestore(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore().Bucket(BucketLocal)
	require.NoError(t, kv.Set(ctx, "sadaqah-presets", []byte(`[{"id":"p1"}]`)))

	snap, err := CaptureSnapshot(ctx, BucketLocal, kv)
	require.NoError(t, err)

	sm := NewSnapshotManager(t.TempDir())
	_, err = sm.Save(snap)
	require.NoError(t, err)

	require.NoError(t, kv.Set(ctx, "sadaqah-presets", []byte(`[]`)))
	require.NoError(t, kv.Set(ctx, "stray", []byte(`x`)))

	loaded, err := sm.LoadLatest(BucketLocal)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.NoError(t, loaded.Restore(ctx, kv))

	v, ok, err := kv.Get(ctx, "sadaqah-presets")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"p1"}]`, string(v))

	_, ok, _ = kv.Get(ctx, "stray")
	assert.False(t, ok, "restore replaces the bucket")
}

func TestSnapshot_LoadLatestAndCleanup(t *testing.T) {
	sm := NewSnapshotManager(t.TempDir())

	for _, ts := range []int64{10, 50, 30} {
		_, err := sm.Save(&Snapshot{Bucket: BucketLocal, TsUnix: ts, Items: map[string][]byte{}})
		require.NoError(t, err)
	}
	// other buckets are ignored
	_, err := sm.Save(&Snapshot{Bucket: "other", TsUnix: 99, Items: map[string][]byte{}})
	require.NoError(t, err)

	latest, err := sm.LoadLatest(BucketLocal)
	require.NoError(t, err)
	assert.Equal(t, int64(50), latest.TsUnix)

	require.NoError(t, sm.Cleanup(BucketLocal, 1))
	files, err := sm.list(BucketLocal)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, int64(50), files[0].ts)

	entries, err := os.ReadDir(sm.dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSnapshot_LoadLatestEmptyDir(t *testing.T) {
	sm := NewSnapshotManager(t.TempDir() + "/missing")
	snap, err := sm.LoadLatest(BucketLocal)
	require.NoError(t, err)
	assert.Nil(t, snap)
}
