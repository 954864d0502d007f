package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
)

// Cache memoizes report computations within a session. Keys are content
// fingerprints of (file identity, mapping snapshot, report identity), so
// a re-render without an underlying data change never recomputes.
// Entries are partitioned by file identity and the partition is dropped
// in full on file switch; there is no time-based or LRU eviction.
type Cache struct {
	mu      sync.Mutex
	entries map[string]any
	byFile  map[string][]string
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]any),
		byFile:  make(map[string][]string),
	}
}

// Key derives a deterministic fingerprint from its parts.
func Key(parts ...string) string {
	h := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return hex.EncodeToString(h[:])
}

// Memoize returns the cached result for key, computing it at most once.
// fileIDs tie the entry to every file identity whose invalidation must
// drop it; combined reports pass both.
func (c *Cache) Memoize(key string, compute func() any, fileIDs ...string) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.entries[key]; ok {
		return v
	}
	// Computed under the lock: at most one computation per distinct key.
	v := compute()
	c.entries[key] = v
	for _, id := range fileIDs {
		c.byFile[id] = append(c.byFile[id], key)
	}
	return v
}

// InvalidateFile drops every entry tied to one file identity.
func (c *Cache) InvalidateFile(fileID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range c.byFile[fileID] {
		delete(c.entries, key)
	}
	delete(c.byFile, fileID)
}

// Reset drops everything.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]any)
	c.byFile = make(map[string][]string)
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
