// Package cache provides a disk-backed key/value cache so previously
// downloaded scripture and hymnal data keeps working offline.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// DefaultTTL is how long cached content stays valid. Content sources
// change rarely; a month keeps a congregation working across weeks of
// offline use while still picking up upstream fixes eventually.
const DefaultTTL = 30 * 24 * time.Hour

// Cache is a Badger-backed store for JSON-encodable values.
type Cache struct {
	db *badger.DB
}

// New opens (or creates) a cache at dir.
func New(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // badger's own logger is too chatty for a desktop app

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// Get unmarshals the cached value for key into v. The second return is
// false on a miss (absent or expired).
func (c *Cache) Get(key string, v any) (bool, error) {
	var data []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read cache %q: %w", key, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode cache %q: %w", key, err)
	}
	return true, nil
}

// Set stores v under key with the given TTL. ttl <= 0 selects
// DefaultTTL.
func (c *Cache) Set(key string, v any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache %q: %w", key, err)
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), data).WithTTL(ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("write cache %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Missing keys are not an error.
func (c *Cache) Delete(key string) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("delete cache %q: %w", key, err)
	}
	return nil
}

// Close flushes and closes the underlying store.
func (c *Cache) Close() error {
	return c.db.Close()
}
