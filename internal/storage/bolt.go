package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
)

// BoltStore maps each bucket to a bolt bucket of the same name.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens the bolt file at path. Opening fails after one second
// if another process holds the file.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt: %w", err)
	}
	return &BoltStore{db: db}, nil
}

// Bucket returns the namespace called name. The bolt bucket is created on first write.
func (s *BoltStore) Bucket(name string) KV {
	return &boltBucket{db: s.db, name: []byte(name)}
}

// Close closes the bolt file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

type boltBucket struct {
	db   *bolt.DB
	name []byte
}

func (b *boltBucket) Get(_ context.Context, key string) ([]byte, bool, error) {
	var (
		value []byte
		found bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		bk := tx.Bucket(b.name)
		if bk == nil {
			return nil
		}
		if v := bk.Get([]byte(key)); v != nil {
			// v is only valid inside the transaction
			value = make([]byte, len(v))
			copy(value, v)
			found = true
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s/%s: %w", b.name, key, err)
	}
	return value, found, nil
}

func (b *boltBucket) Set(_ context.Context, key string, value []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bk, err := tx.CreateBucketIfNotExists(b.name)
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", b.name, err)
		}
		return bk.Put([]byte(key), value)
	})
}

func (b *boltBucket) Delete(_ context.Context, key string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket(b.name)
		if bk == nil {
			return nil
		}
		return bk.Delete([]byte(key))
	})
}

func (b *boltBucket) Clear(_ context.Context) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		err := tx.DeleteBucket(b.name)
		if errors.Is(err, bolt.ErrBucketNotFound) {
			return nil
		}
		return err
	})
}

func (b *boltBucket) Keys(_ context.Context) ([]string, error) {
	var keys []string
	err := b.db.View(func(tx *bolt.Tx) error {
		bk := tx.Bucket(b.name)
		if bk == nil {
			return nil
		}
		return bk.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}
