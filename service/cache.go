package service

import (
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Cache is the in-process byte cache shared by balance lookups and slip images
type Cache struct {
	c *ristretto.Cache[string, []byte]
}

// NewCache creates a ristretto-backed cache. maxCostBytes is the maximum
// total size of cached values in bytes.
func NewCache(maxCostBytes int64) (*Cache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: maxCostBytes / 100 * 10, // ~10x expected items
		MaxCost:     maxCostBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{c: c}, nil
}

// Get retrieves a value from the cache
func (c *Cache) Get(key string) ([]byte, bool) {
	return c.c.Get(key)
}

// Set stores a value with the given TTL; ttl <= 0 keeps it until evicted.
// Writes are applied asynchronously, Wait flushes them.
func (c *Cache) Set(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		c.c.Set(key, value, int64(len(value)))
		return
	}
	c.c.SetWithTTL(key, value, int64(len(value)), ttl)
}

// Delete removes a value from the cache
func (c *Cache) Delete(key string) {
	c.c.Del(key)
}

// Wait blocks until pending writes are visible
func (c *Cache) Wait() {
	c.c.Wait()
}

// Close shuts down the cache and releases resources
func (c *Cache) Close() {
	c.c.Close()
}
