package gateway

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hiretrack/internal/types"
)

func TestInterviewCache_TTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)}
	c := NewInterviewCache(30*time.Second, clock.Now)

	_, ok := c.Get()
	assert.False(t, ok, "empty cache misses")

	c.Put([]types.Interview{{ID: "a"}})

	clock.Advance(29 * time.Second)
	items, ok := c.Get()
	require.True(t, ok)
	assert.Equal(t, "a", items[0].ID)

	clock.Advance(time.Second)
	_, ok = c.Get()
	assert.False(t, ok, "entry expires at the TTL")
}

func TestInterviewCache_ResetAndCopy(t *testing.T) {
	c := NewInterviewCache(0, nil)
	c.Put([]types.Interview{{ID: "a"}})

	items, ok := c.Get()
	require.True(t, ok)
	items[0].ID = "mutated"

	again, _ := c.Get()
	assert.Equal(t, "a", again[0].ID, "callers get a copy")

	c.Reset()
	_, ok = c.Get()
	assert.False(t, ok)
}

func TestInterviewCache_EmptyListingIsCached(t *testing.T) {
	c := NewInterviewCache(time.Minute, nil)
	c.Put(nil)
	items, ok := c.Get()
	assert.True(t, ok)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
