// Package cache is a TTL cache over a local key-value store. Entries expire
// lazily: an expired or unreadable entry is removed when it is read.
package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"time"
)

var errNoData = errors.New("entry has no data")

// validator is implemented by values that can check their own shape.
// Cached hits are checked the same way as fresh responses.
type validator interface {
	Validate() error
}

// Store is the medium the cache writes entries to.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Keys(ctx context.Context) ([]string, error)
}

// entry is the stored form. Timestamp and TTL are milliseconds.
type entry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
	TTL       int64           `json:"ttl"`
}

func (e *entry) valid(now time.Time) bool {
	return now.UnixMilli()-e.Timestamp <= e.TTL
}

func (e *entry) hasData() bool {
	d := bytes.TrimSpace(e.Data)
	return len(d) > 0 && !bytes.Equal(d, []byte("null"))
}

// decode fills dst from the entry and validates the result. dst is a pointer,
// possibly to a pointer; a nil inner pointer after decoding is malformed.
func (e *entry) decode(dst any) error {
	if !e.hasData() {
		return errNoData
	}
	if err := json.Unmarshal(e.Data, dst); err != nil {
		return err
	}

	target := dst
	if rv := reflect.ValueOf(dst); rv.Kind() == reflect.Pointer && rv.Elem().Kind() == reflect.Pointer {
		if rv.Elem().IsNil() {
			return errNoData
		}
		target = rv.Elem().Interface()
	}
	if v, ok := target.(validator); ok {
		return v.Validate()
	}
	return nil
}

// Cache is safe for concurrent use as long as the Store is.
type Cache struct {
	store Store
	now   func() time.Time
}

// New creates a cache over store using the wall clock.
func New(store Store) *Cache {
	return NewWithClock(store, time.Now)
}

// NewWithClock creates a cache with an injected clock.
func NewWithClock(store Store, now func() time.Time) *Cache {
	return &Cache{store: store, now: now}
}

// Get decodes the entry at key into dst and reports whether it was a valid hit.
// Expired and malformed entries are removed. Malformed covers null data and,
// when dst (or *dst) has a Validate method, a value that fails it.
// A store read error is a miss.
func (c *Cache) Get(ctx context.Context, key string, dst any) bool {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		slog.Warn("Cache read failed", slog.String("key", key), slog.Any("error", err))
		return false
	}
	if !ok {
		slog.Debug("Cache miss", slog.String("key", key))
		return false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		slog.Warn("Malformed cache entry purged", slog.String("key", key), slog.Any("error", err))
		c.purge(ctx, key)
		return false
	}

	if !e.valid(c.now()) {
		slog.Debug("Cache entry expired", slog.String("key", key))
		c.purge(ctx, key)
		return false
	}

	if err := e.decode(dst); err != nil {
		slog.Warn("Malformed cache entry purged", slog.String("key", key), slog.Any("error", err))
		c.purge(ctx, key)
		return false
	}

	slog.Debug("Cache hit", slog.String("key", key))
	return true
}

// Set stores value under key, stamped with the current time.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value %s: %w", key, err)
	}

	raw, err := json.Marshal(entry{
		Data:      data,
		Timestamp: c.now().UnixMilli(),
		TTL:       ttl.Milliseconds(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry %s: %w", key, err)
	}

	return c.store.Set(ctx, key, raw)
}

// Remove deletes keys. Missing keys are not an error. Every key is attempted;
// the failures are joined.
func (c *Cache) Remove(ctx context.Context, keys ...string) error {
	var errs []error
	for _, k := range keys {
		if err := c.store.Delete(ctx, k); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", k, err))
		}
	}
	slog.Debug("Cache invalidated", slog.Any("keys", keys), slog.Int("failed", len(errs)))
	return errors.Join(errs...)
}

// Clear deletes every entry.
func (c *Cache) Clear(ctx context.Context) error {
	return c.store.Clear(ctx)
}

// Purge removes every expired or malformed entry and returns how many were removed.
func (c *Cache) Purge(ctx context.Context) (int, error) {
	keys, err := c.store.Keys(ctx)
	if err != nil {
		return 0, err
	}

	now := c.now()
	removed := 0
	for _, k := range keys {
		raw, ok, err := c.store.Get(ctx, k)
		if err != nil {
			return removed, err
		}
		if !ok {
			continue
		}
		var e entry
		if json.Unmarshal(raw, &e) == nil && e.valid(now) && e.hasData() {
			continue
		}
		if err := c.store.Delete(ctx, k); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func (c *Cache) purge(ctx context.Context, key string) {
	if err := c.store.Delete(ctx, key); err != nil {
		slog.Warn("Cache purge failed", slog.String("key", key), slog.Any("error", err))
	}
}

// ReadThrough returns the cached value at key, or calls fetch and caches its
// result for ttl. Fetch errors are returned as is and nothing is cached.
// A failed cache write is logged and does not fail the read.
func ReadThrough[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	var cached T
	if c.Get(ctx, key, &cached) {
		return cached, nil
	}

	v, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if err := c.Set(ctx, key, v, ttl); err != nil {
		slog.Warn("Cache write failed", slog.String("key", key), slog.Any("error", err))
	}
	return v, nil
}
