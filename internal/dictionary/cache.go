package dictionary

import "sync"

// Cache holds previously obtained translations, one map per direction, keyed
// by normalized input text. Entries never expire; Clear is the only way to
// drop them. Shared by all request-handling goroutines.
type Cache struct {
	mu      sync.RWMutex
	entries map[Direction]map[string]string
}

func NewCache() *Cache {
	return &Cache{
		entries: map[Direction]map[string]string{
			MizoToEnglish: {},
			EnglishToMizo: {},
		},
	}
}

func (c *Cache) Lookup(dir Direction, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, exists := c.entries[dir][key]
	return value, exists
}

// Insert overwrites any existing entry unconditionally.
func (c *Cache) Insert(dir Direction, key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[dir][key] = value
}

// Clear wipes both directions in one critical section, so no reader observes
// a partially cleared state.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for dir := range c.entries {
		c.entries[dir] = map[string]string{}
	}
}

func (c *Cache) Size(dir Direction) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries[dir])
}
