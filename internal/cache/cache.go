// Package cache holds the per-run user profile cache. A fresh cache is
// created for every sync pass and never persisted, so participants shared
// between conversations are resolved against the repository only once.
package cache

import (
	"sync"

	"searchsync/internal/kontent"
)

// Users caches resolved user variants by user id for the lifetime of one
// sync run. Entries are inserted once and never updated, and the cache is
// safe for concurrent readers and writers.
type Users struct {
	items map[string]*kontent.UserVariant
	mutex sync.RWMutex
}

// NewUsers creates an empty per-run cache.
func NewUsers() *Users {
	return &Users{
		items: make(map[string]*kontent.UserVariant),
	}
}

// Get retrieves a cached user variant.
func (c *Users) Get(userID string) (*kontent.UserVariant, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	variant, exists := c.items[userID]
	return variant, exists
}

// Add stores a user variant unless the id is already present, and returns
// the variant that ended up cached.
func (c *Users) Add(userID string, variant *kontent.UserVariant) *kontent.UserVariant {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if existing, exists := c.items[userID]; exists {
		return existing
	}
	c.items[userID] = variant
	return variant
}

// Len returns the number of cached profiles.
func (c *Users) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.items)
}
