package metadata

import (
	"strings"
	"sync"

	"github.com/triggr-io/triggr/pkg/types"
)

// Cache is the read-mostly contract-metadata map the decode hot path
// consults: reads take a shared lock, writes (project creation, load)
// take an exclusive one.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]types.ContractMetadata
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]types.ContractMetadata)}
}

// Get returns the metadata registered for addr (case-insensitive).
func (c *Cache) Get(addr string) (types.ContractMetadata, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	meta, ok := c.entries[strings.ToLower(addr)]
	return meta, ok
}

// Put inserts or replaces the metadata registered for addr.
func (c *Cache) Put(addr string, meta types.ContractMetadata) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[strings.ToLower(addr)] = meta
}

// Len reports the number of contracts currently cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
