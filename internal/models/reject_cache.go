package models

import "sync"

// RejectCache caches resolved reject texts per sender so reveal bursts on
// a popular message do not hit the database for every viewer.
type RejectCache struct {
	texts map[int64]string
	mu    sync.RWMutex
}

// NewRejectCache creates an empty cache
func NewRejectCache() *RejectCache {
	return &RejectCache{
		texts: make(map[int64]string),
	}
}

// Get returns the cached text for a sender, if any
func (c *RejectCache) Get(userID int64) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	text, ok := c.texts[userID]
	return text, ok
}

// Put stores the resolved text for a sender
func (c *RejectCache) Put(userID int64, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.texts[userID] = text
}

// Invalidate drops a sender's cached text, forcing the next read through
// to the repository. Called whenever the sender changes their setting.
func (c *RejectCache) Invalidate(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.texts, userID)
}
