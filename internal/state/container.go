// Package state holds the in-memory views the CLI renders from. Each
// container tracks a coarse lifecycle for its entity type and the last error.
//
// Operations are not de-duplicated: two overlapping operations each store
// their own result when they settle, so the last one to settle wins.
package state

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/hiretrack/internal/logging"
	"github.com/jonathan/hiretrack/internal/types"
)

// Status is a container's lifecycle state.
type Status string

// Container statuses
const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// ActorFunc returns the user operations run as.
type ActorFunc func(ctx context.Context) types.User

// Snapshot is an immutable copy of a container.
type Snapshot[T any] struct {
	Items  []T
	Status Status
	Err    error
}

// Container is the generic lifecycle holder.
type Container[T any] struct {
	mu     sync.RWMutex
	items  []T
	status Status
	err    error
	log    logrus.FieldLogger
}

// NewContainer returns an idle, empty container.
func NewContainer[T any](log logrus.FieldLogger) *Container[T] {
	return &Container[T]{items: []T{}, status: StatusIdle, log: logging.OrDiscard(log)}
}

func (c *Container[T]) begin() {
	c.mu.Lock()
	c.status = StatusLoading
	c.err = nil
	c.mu.Unlock()
}

func (c *Container[T]) fail(op string, err error) error {
	c.mu.Lock()
	c.status = StatusFailed
	c.err = err
	c.mu.Unlock()
	c.log.WithFields(logrus.Fields{"op": op, "error": err}).Warn("operation failed")
	return err
}

// Load sets loading, runs fetch and stores its result.
func (c *Container[T]) Load(ctx context.Context, fetch func(context.Context) ([]T, error)) error {
	c.begin()
	items, err := fetch(ctx)
	if err != nil {
		return c.fail("load", err)
	}
	if items == nil {
		items = []T{}
	}
	c.mu.Lock()
	c.items = items
	c.status = StatusSucceeded
	c.mu.Unlock()
	return nil
}

// Apply sets loading, runs op and, on success, rewrites the items with edit.
func (c *Container[T]) Apply(ctx context.Context, name string, op func(context.Context) error, edit func([]T) []T) error {
	c.begin()
	if err := op(ctx); err != nil {
		return c.fail(name, err)
	}
	c.mu.Lock()
	if edit != nil {
		c.items = edit(c.items)
	}
	c.status = StatusSucceeded
	c.mu.Unlock()
	return nil
}

// Status returns the lifecycle state.
func (c *Container[T]) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Err returns the last error, or nil.
func (c *Container[T]) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Items returns a copy of the items.
func (c *Container[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append(make([]T, 0, len(c.items)), c.items...)
}

// Snapshot returns a copy of the whole container.
func (c *Container[T]) Snapshot() Snapshot[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot[T]{
		Items:  append(make([]T, 0, len(c.items)), c.items...),
		Status: c.status,
		Err:    c.err,
	}
}

// replaceByID swaps in rec where the id matches, or appends it.
func replaceByID[T interface{ GetID() string }](items []T, rec T) []T {
	out := make([]T, 0, len(items)+1)
	found := false
	for _, it := range items {
		if it.GetID() == rec.GetID() {
			out = append(out, rec)
			found = true
			continue
		}
		out = append(out, it)
	}
	if !found {
		out = append(out, rec)
	}
	return out
}

func dropByID[T interface{ GetID() string }](items []T, id string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.GetID() != id {
			out = append(out, it)
		}
	}
	return out
}

func findByID[T interface{ GetID() string }](items []T, id string) (T, bool) {
	for _, it := range items {
		if it.GetID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}
