package cache

import (
	"sync"
	"time"
)

// DefaultPendingDeleteTTL bounds how long a delete confirmation stays
// answerable. A prompt the operator never answers expires silently.
const DefaultPendingDeleteTTL = 5 * time.Minute

type pendingDelete struct {
	query     string
	expiresAt time.Time
}

// PendingDeleteCache stores, per chat session, the query of a delete
// command awaiting a yes/no confirmation on the next utterance.
type PendingDeleteCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	pending map[string]pendingDelete
	now     func() time.Time
}

func NewPendingDeleteCache(ttl time.Duration) *PendingDeleteCache {
	if ttl <= 0 {
		ttl = DefaultPendingDeleteTTL
	}
	return &PendingDeleteCache{
		ttl:     ttl,
		pending: make(map[string]pendingDelete),
		now:     time.Now,
	}
}

// Put records the query awaiting confirmation for the session,
// replacing any earlier unanswered prompt.
func (c *PendingDeleteCache) Put(sessionID, query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[sessionID] = pendingDelete{query: query, expiresAt: c.now().Add(c.ttl)}
}

// Take removes and returns the pending query for the session. The entry
// is consumed either way; a confirmation prompt is answerable exactly once.
func (c *PendingDeleteCache) Take(sessionID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pending[sessionID]
	if !ok {
		return "", false
	}
	delete(c.pending, sessionID)
	if c.now().After(p.expiresAt) {
		return "", false
	}
	return p.query, true
}
