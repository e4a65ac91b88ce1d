package search

import (
	"encoding/json"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
)

const cacheCapacity = 100

// ResultCache memoizes complete search responses. Eviction is FIFO, not
// LRU: once full, the oldest inserted key goes first regardless of how
// recently it was read. Safe for concurrent use; the engine bypasses it
// entirely for debug requests.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string]*Result
	order   []string
	cap     int
}

func NewResultCache() *ResultCache {
	return &ResultCache{
		entries: make(map[string]*Result, cacheCapacity),
		cap:     cacheCapacity,
	}
}

// CacheKey derives a stable key from the query and the full option set.
func CacheKey(query string, opts Options) string {
	raw, _ := json.Marshal(opts)
	h := xxhash.New()
	_, _ = h.WriteString(query)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(raw)
	return strconv.FormatUint(h.Sum64(), 16)
}

func (c *ResultCache) Get(key string) (*Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.entries[key]
	return r, ok
}

func (c *ResultCache) Put(key string, result *Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = result

	for len(c.order) > c.cap {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

// Clear drops every entry, for explicit invalidation after data mutations.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Result, c.cap)
	c.order = nil
}

// Len reports the current entry count.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
