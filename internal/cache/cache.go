// Package cache holds reconstructed blobs between lookups so that delta
// chains sharing a prefix are not reconstructed from scratch each time.
package cache

import (
	"bytes"
	"fmt"

	"github.com/hashicorp/golang-lru/v2/simplelru"

	"github.com/arloliu/fossick/compress"
)

// Cache is a bounded LRU of reconstructed blobs keyed by rid.
//
// Get promotes the entry to most-recently-used; Put on a full cache evicts
// the least-recently-used entry. A capacity of zero disables caching
// entirely: every Put is a no-op and every Get misses.
//
// Entries pass through the configured codec on the way in and out, so a
// compressed cache holds more blobs for the same memory budget. The cache
// exclusively owns its stored entries; values returned by Get and accepted
// by Put never alias them.
//
// Cache is not safe for concurrent use; it is owned by a single Repository.
type Cache struct {
	lru   *simplelru.LRU[int64, []byte]
	codec compress.Codec
}

// New creates a Cache with the given capacity and entry codec. A nil codec
// stores entries uncompressed.
func New(capacity int, codec compress.Codec) (*Cache, error) {
	if codec == nil {
		codec = compress.NewNoOpCodec()
	}

	c := &Cache{codec: codec}
	if capacity <= 0 {
		return c, nil
	}

	lru, err := simplelru.NewLRU[int64, []byte](capacity, nil)
	if err != nil {
		return nil, fmt.Errorf("create blob cache: %w", err)
	}
	c.lru = lru

	return c, nil
}

// Get returns the blob cached for rid, promoting it to most-recently-used.
// The third return distinguishes a plain miss (nil error) from a cached
// entry that failed to decode, which is surfaced as corruption.
func (c *Cache) Get(rid int64) ([]byte, bool, error) {
	if c.lru == nil {
		return nil, false, nil
	}

	stored, ok := c.lru.Get(rid)
	if !ok {
		return nil, false, nil
	}

	blob, err := c.codec.Decompress(stored)
	if err != nil {
		return nil, false, fmt.Errorf("cached blob for rid %d: %w", rid, err)
	}
	if aliases(blob, stored) {
		blob = bytes.Clone(blob)
	}

	return blob, true, nil
}

// Put stores a blob for rid, replacing any existing entry and evicting the
// least-recently-used one when at capacity.
func (c *Cache) Put(rid int64, blob []byte) error {
	if c.lru == nil {
		return nil
	}

	stored, err := c.codec.Compress(blob)
	if err != nil {
		return fmt.Errorf("compress blob for rid %d: %w", rid, err)
	}
	if aliases(stored, blob) {
		stored = bytes.Clone(stored)
	}
	c.lru.Add(rid, stored)

	return nil
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	if c.lru == nil {
		return 0
	}

	return c.lru.Len()
}

// Purge drops every entry.
func (c *Cache) Purge() {
	if c.lru != nil {
		c.lru.Purge()
	}
}

// aliases reports whether a and b share backing memory. Pass-through codecs
// return their input unchanged; such values must be cloned to preserve the
// cache's exclusive ownership of entries.
func aliases(a, b []byte) bool {
	return len(a) > 0 && len(b) > 0 && &a[0] == &b[0]
}
