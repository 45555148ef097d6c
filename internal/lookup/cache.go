package lookup

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CacheSchemaVersion is stamped on every entry. Bump it when the cached
// record shape changes so stale entries are dropped on read.
const CacheSchemaVersion = "1.0"

// Config sizes the read caches
type Config struct {
	Size int
	TTL  time.Duration
}

// DefaultConfig returns the cache sizing used when none is configured
func DefaultConfig() Config {
	return Config{Size: 1000, TTL: 5 * time.Minute}
}

// Stats reports cache effectiveness
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

type entry[V any] struct {
	version string
	value   V
}

// cache is an expiring LRU keyed by record id
type cache[V any] struct {
	lru    *expirable.LRU[string, entry[V]]
	hits   atomic.Int64
	misses atomic.Int64
}

func newCache[V any](cfg Config) *cache[V] {
	if cfg.Size <= 0 {
		cfg = DefaultConfig()
	}
	return &cache[V]{lru: expirable.NewLRU[string, entry[V]](cfg.Size, nil, cfg.TTL)}
}

func (c *cache[V]) get(key string) (V, bool) {
	e, ok := c.lru.Get(key)
	if !ok || e.version != CacheSchemaVersion {
		if ok {
			c.lru.Remove(key)
		}
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	c.hits.Add(1)
	return e.value, true
}

func (c *cache[V]) set(key string, v V) {
	c.lru.Add(key, entry[V]{version: CacheSchemaVersion, value: v})
}

func (c *cache[V]) invalidate(key string) {
	c.lru.Remove(key)
}

func (c *cache[V]) purge() {
	c.lru.Purge()
}

func (c *cache[V]) stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load(), Size: c.lru.Len()}
}
