package state

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/hiretrack/internal/logging"
)

// DefaultRefreshInterval is used when a non-positive interval is given.
const DefaultRefreshInterval = 60 * time.Second

// Refresher re-runs a load on a fixed interval until stopped.
type Refresher struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// StartRefresher calls load every interval until ctx is done or Stop is
// called. Failures are logged and the loop continues.
func StartRefresher(ctx context.Context, interval time.Duration, load func(context.Context) error, log logrus.FieldLogger) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	log = logging.OrDiscard(log)
	ctx, cancel := context.WithCancel(ctx)
	r := &Refresher{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(r.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := load(ctx); err != nil && ctx.Err() == nil {
					log.WithError(err).Warn("refresh failed")
				}
			}
		}
	}()
	return r
}

// Stop ends the loop and waits for an in-flight load to return.
func (r *Refresher) Stop() {
	r.once.Do(r.cancel)
	<-r.done
}

// Done is closed once the loop has exited.
func (r *Refresher) Done() <-chan struct{} {
	return r.done
}
