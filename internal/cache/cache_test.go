package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sadaqah_go/internal/storage"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }
func newClock() *fakeClock                   { return &fakeClock{t: time.UnixMilli(1_700_000_000_000)} }

func newTestCache(clock *fakeClock) (*Cache, storage.KV) {
	kv := storage.NewMemoryStore().Bucket(storage.BucketCache)
	return NewWithClock(kv, clock.Now), kv
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestCache_TTLBoundary(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	c, kv := newTestCache(clock)

	require.NoError(t, c.Set(ctx, KeyBoxes, payload{Name: "a", Count: 1}, TTLBoxes))

	clock.Advance(TTLBoxes)
	var got payload
	assert.True(t, c.Get(ctx, KeyBoxes, &got), "entry is valid at exactly ttl")
	assert.Equal(t, payload{Name: "a", Count: 1}, got)

	clock.Advance(time.Millisecond)
	assert.False(t, c.Get(ctx, KeyBoxes, &got), "entry expires after ttl")

	_, ok, err := kv.Get(ctx, KeyBoxes)
	require.NoError(t, err)
	assert.False(t, ok, "expired entry is removed from the store")
}

func TestCache_StoredShape(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	c, kv := newTestCache(clock)

	require.NoError(t, c.Set(ctx, KeyStats, payload{Name: "s"}, TTLStats))

	raw, ok, err := kv.Get(ctx, KeyStats)
	require.NoError(t, err)
	require.True(t, ok)

	var e map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &e))
	assert.JSONEq(t, `{"name":"s","count":0}`, string(e["data"]))
	assert.Equal(t, "1700000000000", string(e["timestamp"]))
	assert.Equal(t, "120000", string(e["ttl"]))
}

func TestCache_MalformedEntryPurged(t *testing.T) {
	ctx := context.Background()
	c, kv := newTestCache(newClock())

	require.NoError(t, kv.Set(ctx, KeyCurrencies, []byte("{not json")))

	var got payload
	assert.False(t, c.Get(ctx, KeyCurrencies, &got))

	_, ok, _ := kv.Get(ctx, KeyCurrencies)
	assert.False(t, ok)
}

func TestCache_WrongShapeDataPurged(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	c, kv := newTestCache(clock)

	require.NoError(t, c.Set(ctx, KeyStats, "a string", TTLStats))

	var got payload
	assert.False(t, c.Get(ctx, KeyStats, &got))
	_, ok, _ := kv.Get(ctx, KeyStats)
	assert.False(t, ok)
}

type checkedResp struct {
	Success bool     `json:"success"`
	Boxes   []string `json:"boxes"`
}

func (r *checkedResp) Validate() error {
	if !r.Success {
		return errors.New("success flag not set")
	}
	return nil
}

func TestCache_NullDataPurged(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	c, kv := newTestCache(clock)

	raw := `{"data":null,"timestamp":1700000000000,"ttl":300000}`
	require.NoError(t, kv.Set(ctx, KeyStats, []byte(raw)))

	var got payload
	assert.False(t, c.Get(ctx, KeyStats, &got))
	_, ok, _ := kv.Get(ctx, KeyStats)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, KeyStats, []byte(raw)))
	n, err := c.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestReadThrough_RefetchesInvalidEntries(t *testing.T) {
	for name, data := range map[string]string{
		"null":    `null`,
		"empty":   `{}`,
		"failing": `{"success":false,"boxes":["x"]}`,
	} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			c, kv := newTestCache(newClock())

			raw := `{"data":` + data + `,"timestamp":1700000000000,"ttl":300000}`
			require.NoError(t, kv.Set(ctx, KeyBoxes, []byte(raw)))

			calls := 0
			fetch := func(context.Context) (*checkedResp, error) {
				calls++
				return &checkedResp{Success: true, Boxes: []string{"b1"}}, nil
			}

			got, err := ReadThrough(ctx, c, KeyBoxes, TTLBoxes, fetch)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, 1, calls)
			assert.Equal(t, []string{"b1"}, got.Boxes)

			// the replacement is served from cache
			_, err = ReadThrough(ctx, c, KeyBoxes, TTLBoxes, fetch)
			require.NoError(t, err)
			assert.Equal(t, 1, calls)
		})
	}
}

func TestCache_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(newClock())

	for _, k := range []string{KeyBoxes, KeyStats, BoxKey("b1")} {
		require.NoError(t, c.Set(ctx, k, payload{}, TTLBoxes))
	}

	require.NoError(t, c.Remove(ctx, KeyBoxes, BoxKey("b1"), "never-set"))

	var got payload
	assert.False(t, c.Get(ctx, KeyBoxes, &got))
	assert.False(t, c.Get(ctx, BoxKey("b1"), &got))
	assert.True(t, c.Get(ctx, KeyStats, &got))

	require.NoError(t, c.Clear(ctx))
	assert.False(t, c.Get(ctx, KeyStats, &got))
}

func TestCache_Purge(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	c, kv := newTestCache(clock)

	require.NoError(t, c.Set(ctx, KeyStats, payload{}, TTLStats))
	require.NoError(t, c.Set(ctx, KeyCurrencies, payload{}, TTLCurrencies))
	require.NoError(t, kv.Set(ctx, "junk", []byte("x")))

	clock.Advance(TTLStats + time.Second)

	n, err := c.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyCurrencies}, keys)
}

func TestReadThrough_FetchesOnce(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	c, _ := newTestCache(clock)

	calls := 0
	fetch := func(context.Context) (*payload, error) {
		calls++
		return &payload{Name: "boxes", Count: calls}, nil
	}

	first, err := ReadThrough(ctx, c, KeyBoxes, TTLBoxes, fetch)
	require.NoError(t, err)
	second, err := ReadThrough(ctx, c, KeyBoxes, TTLBoxes, fetch)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)

	clock.Advance(TTLBoxes + time.Millisecond)
	third, err := ReadThrough(ctx, c, KeyBoxes, TTLBoxes, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, third.Count)
}

type deleteFailing struct {
	storage.KV
	bad string
}

func (d deleteFailing) Delete(ctx context.Context, key string) error {
	if key == d.bad {
		return errors.New("disk gone")
	}
	return d.KV.Delete(ctx, key)
}

func TestCache_RemoveTriesEveryKey(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	_, kv := newTestCache(clock)
	c := NewWithClock(deleteFailing{KV: kv, bad: KeyBoxes}, clock.Now)

	for _, k := range []string{KeyBoxes, KeyStats, BoxKey("b1")} {
		require.NoError(t, c.Set(ctx, k, payload{}, TTLBoxes))
	}

	err := c.Remove(ctx, KeyBoxes, KeyStats, BoxKey("b1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), KeyBoxes)

	var got payload
	assert.True(t, c.Get(ctx, KeyBoxes, &got))
	assert.False(t, c.Get(ctx, KeyStats, &got))
	assert.False(t, c.Get(ctx, BoxKey("b1"), &got))
}

func TestReadThrough_ErrorNotCached(t *testing.T) {
	ctx := context.Background()
	c, kv := newTestCache(newClock())

	boom := errors.New("boom")
	_, err := ReadThrough(ctx, c, KeyStats, TTLStats, func(context.Context) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)

	_, ok, _ := kv.Get(ctx, KeyStats)
	assert.False(t, ok)
}

type failingStore struct{ storage.KV }

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("disk gone")
}

func (failingStore) Set(context.Context, string, []byte) error {
	return errors.New("disk gone")
}

func TestReadThrough_StoreFailuresDoNotFailRead(t *testing.T) {
	ctx := context.Background()
	c := NewWithClock(failingStore{}, newClock().Now)

	calls := 0
	v, err := ReadThrough(ctx, c, KeyStats, TTLStats, func(context.Context) (string, error) {
		calls++
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)
	assert.Equal(t, 1, calls)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "box-b1", BoxKey("b1"))
	assert.Equal(t, "collections-b1", CollectionsKey("b1"))
}
