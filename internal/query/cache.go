package query

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Cache memoizes parsed queries. Parsed trees are immutable, so a
// cached tree can be shared freely across callers and goroutines.
// Parse failures are not cached; hosts report them and stop.
type Cache struct {
	mu      sync.RWMutex
	entries map[uint64]cacheEntry
}

type cacheEntry struct {
	// input guards against hash collisions: an entry only matches when
	// the full query text matches.
	input   string
	grammar *Grammar
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[uint64]cacheEntry)}
}

// Parse returns the cached tree for input, parsing and storing it on a
// miss.
func (c *Cache) Parse(input string) (*Grammar, error) {
	key := xxhash.Sum64String(input)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && entry.input == input {
		return entry.grammar, nil
	}

	grammar, err := Parse(input)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	// A colliding entry keeps its slot; the fresh tree is still returned.
	if existing, ok := c.entries[key]; !ok || existing.input == input {
		c.entries[key] = cacheEntry{input: input, grammar: grammar}
	}
	c.mu.Unlock()

	return grammar, nil
}

// Len returns the number of cached queries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
