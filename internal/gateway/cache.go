package gateway

import (
	"sync"
	"time"

	"github.com/jonathan/hiretrack/internal/types"
)

// DefaultInterviewCacheTTL is how long a live interview listing is reused.
const DefaultInterviewCacheTTL = 30 * time.Second

// InterviewCache memoizes the last successful live interview listing. It
// holds a single slot, not one per query.
type InterviewCache struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	items    []types.Interview
	storedAt time.Time
	valid    bool
}

// NewInterviewCache returns a cache with the given TTL (the default when not
// positive). now defaults to time.Now.
func NewInterviewCache(ttl time.Duration, now func() time.Time) *InterviewCache {
	if ttl <= 0 {
		ttl = DefaultInterviewCacheTTL
	}
	if now == nil {
		now = time.Now
	}
	return &InterviewCache{ttl: ttl, now: now}
}

// Get returns a copy of the cached listing while it is fresh.
func (c *InterviewCache) Get() ([]types.Interview, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid || c.now().Sub(c.storedAt) >= c.ttl {
		return nil, false
	}
	out := make([]types.Interview, len(c.items))
	copy(out, c.items)
	return out, true
}

// Put replaces the cached listing.
func (c *InterviewCache) Put(items []types.Interview) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]types.Interview(nil), items...)
	c.storedAt = c.now()
	c.valid = true
}

// Reset empties the cache.
func (c *InterviewCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.valid = false
}
