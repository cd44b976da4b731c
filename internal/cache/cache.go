// Package cache stores raw HTTP response bodies keyed by request URL.
//
// Two tiers: a bounded in-memory FIFO front and a persistent backend
// (sqlite by default, postgres optional). The cache is non-authoritative:
// read failures degrade to a network fetch and write failures are logged
// and swallowed. The SEC API is the truth.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Stats summarizes the persistent tier.
type Stats struct {
	Entries   int   `json:"entries"`
	SizeBytes int64 `json:"size_bytes"`
}

// Backend is the persistent tier of the cache.
type Backend interface {
	// Get returns the cached body for url_hash, or nil when absent/expired.
	Get(ctx context.Context, urlHash string) ([]byte, error)
	// Put upserts an entry.
	Put(ctx context.Context, urlHash, url string, body []byte, fetchedAt, expiresAt time.Time) error
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (Stats, error)
	Close() error
}

// Cache is the two-tier front. Safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	capacity int
	mem      map[string][]byte
	order    []string // insertion order for FIFO eviction
	backend  Backend
}

// DefaultMemoryEntries bounds the in-memory front.
const DefaultMemoryEntries = 100

// New creates a cache over the given backend.
func New(backend Backend, memoryEntries int) *Cache {
	if memoryEntries <= 0 {
		memoryEntries = DefaultMemoryEntries
	}
	return &Cache{
		capacity: memoryEntries,
		mem:      make(map[string][]byte, memoryEntries),
		backend:  backend,
	}
}

// HashURL returns the SHA-256 hex digest used as the persistent key.
func HashURL(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached body for url, or nil on miss. Persistent-tier read
// failures are swallowed so a broken cache never fails the caller.
func (c *Cache) Get(ctx context.Context, url string) []byte {
	hash := HashURL(url)

	c.mu.Lock()
	if body, ok := c.mem[hash]; ok {
		c.mu.Unlock()
		return body
	}
	c.mu.Unlock()

	body, err := c.backend.Get(ctx, hash)
	if err != nil {
		zap.L().Warn("cache: persistent read failed, treating as miss",
			zap.String("url", url),
			zap.Error(err),
		)
		return nil
	}
	if body == nil {
		return nil
	}

	// Promote hot entries into memory.
	c.mu.Lock()
	c.insertLocked(hash, body)
	c.mu.Unlock()
	return body
}

// Put writes both tiers. Persistent write failures are logged and swallowed.
func (c *Cache) Put(ctx context.Context, url string, body []byte, ttl time.Duration) {
	hash := HashURL(url)
	now := time.Now().UTC()

	c.mu.Lock()
	c.insertLocked(hash, body)
	c.mu.Unlock()

	if err := c.backend.Put(ctx, hash, url, body, now, now.Add(ttl)); err != nil {
		zap.L().Warn("cache: persistent write failed",
			zap.String("url", url),
			zap.Error(err),
		)
	}
}

// insertLocked adds an entry to the memory tier, evicting the oldest
// insertion on overflow. Caller holds c.mu.
func (c *Cache) insertLocked(hash string, body []byte) {
	if _, ok := c.mem[hash]; ok {
		c.mem[hash] = body
		return
	}
	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.mem, oldest)
	}
	c.mem[hash] = body
	c.order = append(c.order, hash)
}

// Clear drops both tiers.
func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.mem = make(map[string][]byte, c.capacity)
	c.order = nil
	c.mu.Unlock()
	return c.backend.Clear(ctx)
}

// Stats reports the persistent tier's entry count and total body size.
func (c *Cache) Stats(ctx context.Context) (Stats, error) {
	return c.backend.Stats(ctx)
}

// Close releases the persistent backend.
func (c *Cache) Close() error {
	return c.backend.Close()
}
