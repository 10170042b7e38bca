// Package textcache is an optional on-disk cache of PDF extraction results.
// Keys cover both the file content and the heuristic parameters, so a cache
// hit is always equivalent to re-extracting; runs stay deterministic either
// way.
package textcache

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"golang.org/x/crypto/blake2b"
)

// Cache wraps BadgerDB for extraction results.
type Cache struct {
	db *badger.DB
}

// Open opens (or creates) the cache at the given path.
func Open(path string) (*Cache, error) {
	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying store.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Key derives the cache key for one extraction: the kind of extraction
// ("slides" or "exam"), the content hash of the PDF, and the parameter
// string. Changing the file or any heuristic knob changes the key.
func Key(kind string, fileBytes []byte, params string) string {
	sum := blake2b.Sum256(fileBytes)
	return kind + ":" + hex.EncodeToString(sum[:]) + ":" + params
}

// Put stores the value as lz4-compressed JSON.
func (c *Cache) Put(key string, val interface{}) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}
	compressed, err := compress(raw)
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), compressed)
	})
}

// Get loads a cached value into out. The second return is false on a miss.
func (c *Cache) Get(key string, out interface{}) (bool, error) {
	var raw []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			decompressed, err := decompress(val)
			if err != nil {
				return err
			}
			raw = decompressed
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("failed to decode cache value: %w", err)
	}
	return true, nil
}
