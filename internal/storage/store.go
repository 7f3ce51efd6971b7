// Package storage provides the local key-value media: SQLite (default),
// BoltDB and an in-memory store. Each medium is split into named buckets.
package storage

import (
	"context"
)

// Bucket names used by the application.
const (
	BucketLocal = "local"
	BucketCache = "cache"
)

// KV is one namespace of a medium.
type KV interface {
	// Get returns found=false, with no error, for a missing key.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Keys(ctx context.Context) ([]string, error)
}

// Store is a medium that hands out buckets.
type Store interface {
	Bucket(name string) KV
	Close() error
}
