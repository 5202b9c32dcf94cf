// Package repository reconciles the Jobs, Applicants and Interviews
// collections across their two storage keys and the remote gateway.
//
// Every collection is stored under a primary key and a secondary key, the
// latter written for distinguished-class (Google demo) users. Reads merge the
// two by id with the primary copy winning; writes re-read each key and write
// it back so a mutation never drops records another writer added.
package repository

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/hiretrack/internal/storage"
)

type entity interface {
	GetID() string
}

// collection owns the primary/secondary key pair of one entity type.
type collection[T entity] struct {
	store     storage.Store
	primary   string
	secondary string
	log       logrus.FieldLogger
}

func (c *collection[T]) read(ctx context.Context, key string) []T {
	return storage.ReadList[T](ctx, c.store, c.log, key)
}

func (c *collection[T]) write(ctx context.Context, key string, items []T) {
	if items == nil {
		items = []T{}
	}
	if err := storage.WriteJSON(ctx, c.store, key, items); err != nil {
		c.log.WithFields(logrus.Fields{"key": key, "error": err}).Warn("storage write failed")
	}
}

// mergeByID keeps secondary order first, lets primary values overwrite on
// conflict, appends primary-only records and collapses duplicate ids.
// Records without an id are kept as they are.
func mergeByID[T entity](secondary, primary []T) []T {
	out := make([]T, 0, len(secondary)+len(primary))
	index := make(map[string]int, len(secondary)+len(primary))

	put := func(rec T) {
		id := rec.GetID()
		if id == "" {
			out = append(out, rec)
			return
		}
		if i, ok := index[id]; ok {
			out[i] = rec
			return
		}
		index[id] = len(out)
		out = append(out, rec)
	}
	for _, rec := range secondary {
		put(rec)
	}
	for _, rec := range primary {
		put(rec)
	}
	return out
}

// overlay puts front first and appends the records of back whose id front
// does not contain. Used for remote-over-local listings.
func overlay[T entity](front, back []T) []T {
	seen := make(map[string]bool, len(front))
	out := make([]T, 0, len(front)+len(back))
	for _, rec := range front {
		seen[rec.GetID()] = true
		out = append(out, rec)
	}
	for _, rec := range back {
		if id := rec.GetID(); id != "" && seen[id] {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// load returns the merged view and, when it is non-empty, writes it back to
// both keys.
func (c *collection[T]) load(ctx context.Context) []T {
	merged := mergeByID(c.read(ctx, c.secondary), c.read(ctx, c.primary))
	c.save(ctx, merged)
	return merged
}

// save writes items to both keys. An empty list is never written.
func (c *collection[T]) save(ctx context.Context, items []T) {
	if len(items) == 0 {
		return
	}
	c.write(ctx, c.primary, items)
	c.write(ctx, c.secondary, items)
}

func (c *collection[T]) find(ctx context.Context, id string) (T, bool) {
	for _, rec := range c.load(ctx) {
		if rec.GetID() == id {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

// add appends rec to the secondary key, and to the primary key too unless
// secondaryOnly is set.
func (c *collection[T]) add(ctx context.Context, rec T, secondaryOnly bool) {
	keys := []string{c.secondary}
	if !secondaryOnly {
		keys = append(keys, c.primary)
	}
	for _, key := range keys {
		c.write(ctx, key, append(c.read(ctx, key), rec))
	}
}

// update applies fn to every stored copy of id and reports the result from
// the primary-precedence view. ok is false when neither key holds id.
func (c *collection[T]) update(ctx context.Context, id string, fn func(*T)) (T, bool) {
	var (
		result T
		found  bool
	)
	// secondary first so the primary copy, when present, is what callers see
	for _, key := range []string{c.secondary, c.primary} {
		items := c.read(ctx, key)
		changed := false
		for i := range items {
			if items[i].GetID() == id {
				fn(&items[i])
				result = items[i]
				found = true
				changed = true
			}
		}
		if changed {
			c.write(ctx, key, items)
		}
	}
	return result, found
}

// remove deletes id from both keys. It reports whether any copy existed.
func (c *collection[T]) remove(ctx context.Context, id string) bool {
	found := false
	for _, key := range []string{c.secondary, c.primary} {
		items := c.read(ctx, key)
		kept := make([]T, 0, len(items))
		for _, rec := range items {
			if rec.GetID() == id {
				found = true
				continue
			}
			kept = append(kept, rec)
		}
		if len(kept) != len(items) {
			c.write(ctx, key, kept)
		}
	}
	return found
}
