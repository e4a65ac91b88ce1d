package search

import (
	"fmt"
	"sync"
	"testing"
)

func TestCacheFIFOBound(t *testing.T) {
	c := NewResultCache()

	keys := make([]string, 150)
	for i := range keys {
		keys[i] = CacheKey(fmt.Sprintf("query-%d", i), Options{})
		c.Put(keys[i], &Result{Success: true})
	}

	if c.Len() != 100 {
		t.Fatalf("cache holds %d entries, want 100", c.Len())
	}

	// The 50 oldest keys were evicted first.
	for i := 0; i < 50; i++ {
		if _, ok := c.Get(keys[i]); ok {
			t.Errorf("key %d should have been evicted", i)
		}
	}
	for i := 50; i < 150; i++ {
		if _, ok := c.Get(keys[i]); !ok {
			t.Errorf("key %d should still be cached", i)
		}
	}
}

// FIFO, not LRU: reading an old entry does not save it from eviction.
func TestCacheEvictionIgnoresReads(t *testing.T) {
	c := NewResultCache()
	for i := 0; i < 100; i++ {
		c.Put(fmt.Sprintf("k%d", i), &Result{})
	}
	c.Get("k0")
	c.Put("k100", &Result{})
	if _, ok := c.Get("k0"); ok {
		t.Error("oldest entry survived eviction after a read")
	}
}

func TestCacheOverwriteKeepsOrder(t *testing.T) {
	c := NewResultCache()
	c.Put("a", &Result{Message: "one"})
	c.Put("a", &Result{Message: "two"})
	if c.Len() != 1 {
		t.Fatalf("duplicate put grew the cache to %d", c.Len())
	}
	if r, _ := c.Get("a"); r.Message != "two" {
		t.Error("overwrite lost the newer value")
	}
}

func TestCacheClear(t *testing.T) {
	c := NewResultCache()
	c.Put("a", &Result{})
	c.Put("b", &Result{})
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("cache holds %d entries after clear", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Error("entry survived clear")
	}
}

func TestCacheKeyStability(t *testing.T) {
	opts := Options{Context: ContextEndUser, Page: 2, PerPage: 20, Sort: SortCity}
	if CacheKey("austin", opts) != CacheKey("austin", opts) {
		t.Error("identical inputs produced different keys")
	}
	if CacheKey("austin", opts) == CacheKey("dallas", opts) {
		t.Error("different queries share a key")
	}
	other := opts
	other.Page = 3
	if CacheKey("austin", opts) == CacheKey("austin", other) {
		t.Error("different options share a key")
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := NewResultCache()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("g%d-%d", g, i)
				c.Put(key, &Result{})
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()
	if c.Len() > 100 {
		t.Errorf("cache exceeded capacity: %d", c.Len())
	}
}
