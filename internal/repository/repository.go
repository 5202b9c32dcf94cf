package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/hiretrack/internal/gateway"
	"github.com/jonathan/hiretrack/internal/logging"
	"github.com/jonathan/hiretrack/internal/notify"
	"github.com/jonathan/hiretrack/internal/routing"
	"github.com/jonathan/hiretrack/internal/storage"
	"github.com/jonathan/hiretrack/internal/types"
)

// Option customises a repository.
type Option func(*options)

type options struct {
	log      logrus.FieldLogger
	now      func() time.Time
	newID    func() string
	notifier notify.Notifier
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) { o.log = log }
}

// WithClock sets the clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator sets the generator of the random part of client-side ids.
func WithIDGenerator(gen func() string) Option {
	return func(o *options) { o.newID = gen }
}

// WithNotifier sets the sink for user-facing warnings.
func WithNotifier(n notify.Notifier) Option {
	return func(o *options) { o.notifier = n }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now, newID: uuid.NewString, notifier: notify.Discard}
	for _, opt := range opts {
		opt(&o)
	}
	o.log = logging.OrDiscard(o.log)
	return o
}

// base holds what every entity repository shares.
type base[T entity] struct {
	name string
	coll collection[T]
	options
}

func newBase[T entity](name string, store storage.Store, primary, secondary string, opts []Option) base[T] {
	o := buildOptions(opts)
	log := o.log.WithField("entity", name)
	o.log = log
	return base[T]{
		name:    name,
		coll:    collection[T]{store: store, primary: primary, secondary: secondary, log: log},
		options: o,
	}
}

// Load returns the merged local view.
func (b *base[T]) Load(ctx context.Context) []T {
	return b.coll.load(ctx)
}

func (b *base[T]) localID(actor types.User) string {
	if actor.IsDistinguished() {
		return types.GoogleIDPrefix + b.newID()
	}
	return types.LocalIDPrefix + b.newID()
}

// list returns the local view on the Local route. On the Remote route it
// returns the remote records followed by local-only ones and caches that
// merge in both keys; a remote failure is reported to the notifier and the
// local view returned.
func (b *base[T]) list(ctx context.Context, actor types.User, fetch func(context.Context) ([]T, error)) ([]T, error) {
	local := b.coll.load(ctx)
	if routing.Resolve(actor, "") == routing.Local {
		return local, nil
	}

	remote, err := fetch(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		b.warnFallback("list", err)
		return local, nil
	}
	merged := overlay(remote, local)
	b.coll.save(ctx, merged)
	return merged, nil
}

func (b *base[T]) warnFallback(op string, err error) {
	b.log.WithFields(logrus.Fields{"op": op, "error": err}).Warn("remote unavailable, using local data")
	var shapeErr *gateway.ErrUnexpectedShape
	if errors.As(err, &shapeErr) {
		b.notifier.Notify(notify.Warning, fmt.Sprintf("Unexpected %s data from the server, showing saved data", b.name))
		return
	}
	b.notifier.Notify(notify.Warning, fmt.Sprintf("Could not reach the server, showing saved %s data", b.name))
}

// get looks id up on its route. A remote failure falls back to the local
// view.
func (b *base[T]) get(ctx context.Context, id string, actor types.User, fetch func(context.Context, string) (*T, error)) (T, error) {
	if routing.Resolve(actor, id) == routing.Remote && fetch != nil {
		rec, err := fetch(ctx, id)
		if err == nil && rec != nil {
			return *rec, nil
		}
		if err != nil && !gateway.IsNotFound(err) {
			b.log.WithFields(logrus.Fields{"id": id, "error": err}).Warn("remote lookup failed, checking local data")
		}
	}
	if rec, ok := b.coll.find(ctx, id); ok {
		return rec, nil
	}
	var zero T
	return zero, &ErrNotFound{Entity: b.name, ID: id}
}

// mutate runs local on the Local route and remote otherwise. A remote
// failure is returned as *ErrRemote.
func (b *base[T]) mutate(ctx context.Context, op, id string, actor types.User, local func(*T), remote func(context.Context) (*T, error)) (T, error) {
	var zero T
	if routing.Resolve(actor, id) == routing.Local {
		rec, ok := b.coll.update(ctx, id, local)
		if !ok {
			return zero, &ErrNotFound{Entity: b.name, ID: id}
		}
		b.log.WithFields(logrus.Fields{"op": op, "id": id}).Debug("updated locally")
		return rec, nil
	}

	rec, err := remote(ctx)
	if err != nil {
		return zero, &ErrRemote{Op: op, Cause: err}
	}
	if rec == nil {
		return zero, &ErrRemote{Op: op, Cause: errors.New("empty response")}
	}
	return *rec, nil
}

// remove deletes locally on the Local route. On the Remote route a 404 is
// success; local copies are dropped either way.
func (b *base[T]) remove(ctx context.Context, id string, actor types.User, remote func(context.Context, string) error) error {
	if routing.Resolve(actor, id) == routing.Remote {
		if err := remote(ctx, id); err != nil && !gateway.IsNotFound(err) {
			return &ErrRemote{Op: "delete " + b.name, Cause: err}
		}
	}
	b.coll.remove(ctx, id)
	return nil
}

// createLocal stores rec as a client-side record. Distinguished actors
// write the secondary key only.
func (b *base[T]) createLocal(ctx context.Context, rec T, actor types.User) T {
	b.coll.add(ctx, rec, actor.IsDistinguished())
	b.log.WithFields(logrus.Fields{"id": rec.GetID(), "distinguished": actor.IsDistinguished()}).Info("saved locally")
	return rec
}
