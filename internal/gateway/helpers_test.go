package gateway

import (
	"context"
	"sync"
	"time"

	"github.com/jonathan/hiretrack/internal/types"
)

type demoSwitch struct {
	mu sync.Mutex
	on bool
}

func (d *demoSwitch) Enabled(context.Context) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.on
}

func (d *demoSwitch) set(on bool) {
	d.mu.Lock()
	d.on = on
	d.mu.Unlock()
}

// fakeClock is a settable clock for TTL tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// countingRemote records interview calls. Methods it does not override
// panic through the nil embedded interface.
type countingRemote struct {
	Remote
	mu         sync.Mutex
	listCalls  int
	interviews []types.Interview
	err        error
}

func (r *countingRemote) ListInterviews(context.Context) ([]types.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if r.err != nil {
		return nil, r.err
	}
	return append([]types.Interview(nil), r.interviews...), nil
}

func (r *countingRemote) UpdateInterviewStatus(_ context.Context, id string, status types.InterviewStatus) (*types.Interview, error) {
	return &types.Interview{ID: id, Status: status}, nil
}

func (r *countingRemote) ListJobs(context.Context) ([]types.Job, error) {
	return []types.Job{{ID: "live-job", Title: "Live"}}, nil
}

func (r *countingRemote) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listCalls
}
