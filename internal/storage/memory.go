package storage

import (
	"context"
	"sort"
	"strings"

	cache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps everything in process memory. Items never expire here;
// expiry is the TTL cache's job.
type MemoryStore struct {
	items *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: cache.New(cache.NoExpiration, 0)}
}

func (s *MemoryStore) Bucket(name string) KV {
	return &memoryBucket{items: s.items, prefix: name + "\x00"}
}

func (s *MemoryStore) Close() error {
	s.items.Flush()
	return nil
}

type memoryBucket struct {
	items  *cache.Cache
	prefix string
}

func (b *memoryBucket) Get(_ context.Context, key string) ([]byte, bool, error) {
	obj, found := b.items.Get(b.prefix + key)
	if !found {
		return nil, false, nil
	}
	v := obj.([]byte)
	return append([]byte(nil), v...), true, nil
}

func (b *memoryBucket) Set(_ context.Context, key string, value []byte) error {
	b.items.Set(b.prefix+key, append([]byte(nil), value...), cache.NoExpiration)
	return nil
}

func (b *memoryBucket) Delete(_ context.Context, key string) error {
	b.items.Delete(b.prefix + key)
	return nil
}

func (b *memoryBucket) Clear(_ context.Context) error {
	for k := range b.items.Items() {
		if strings.HasPrefix(k, b.prefix) {
			b.items.Delete(k)
		}
	}
	return nil
}

func (b *memoryBucket) Keys(_ context.Context) ([]string, error) {
	var keys []string
	for k := range b.items.Items() {
		if strings.HasPrefix(k, b.prefix) {
			keys = append(keys, strings.TrimPrefix(k, b.prefix))
		}
	}
	sort.Strings(keys)
	return keys, nil
}
