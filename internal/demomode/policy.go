// Package demomode decides, per call, whether the session runs against
// fixture data instead of the live backend.
package demomode

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/hiretrack/internal/logging"
	"github.com/jonathan/hiretrack/internal/storage"
	"github.com/jonathan/hiretrack/internal/types"
)

// Reason names the rule that produced a decision.
type Reason string

// Decision reasons, in evaluation order.
const (
	ReasonForced   Reason = "force-flag"
	ReasonOverride Reason = "manual-override"
	ReasonUser     Reason = "user-heuristics"
	ReasonToken    Reason = "token-heuristics"
	ReasonDefault  Reason = "default"
	ReasonError    Reason = "evaluation-error"
)

// Decision is the outcome of one policy evaluation.
type Decision struct {
	Enabled bool
	Reason  Reason
}

// Policy evaluates the demo-mode rules against the store on every call.
type Policy struct {
	store storage.Store
	force *bool
	log   logrus.FieldLogger
}

// NewPolicy returns a policy over store. force, when non-nil, is the build
// configuration flag and wins over every stored signal.
func NewPolicy(store storage.Store, force *bool, log logrus.FieldLogger) *Policy {
	return &Policy{store: store, force: force, log: logging.OrDiscard(log)}
}

// Enabled reports whether demo mode is on. It never fails: any evaluation
// error yields true.
func (p *Policy) Enabled(ctx context.Context) bool {
	return p.Decide(ctx).Enabled
}

// Decide evaluates the rules in order; the first match wins.
func (p *Policy) Decide(ctx context.Context) Decision {
	d, err := p.decide(ctx)
	if err != nil {
		p.log.WithError(err).Warn("demo mode evaluation failed, enabling demo mode")
		d = Decision{Enabled: true, Reason: ReasonError}
	}
	p.log.WithFields(logrus.Fields{"enabled": d.Enabled, "reason": d.Reason}).Debug("demo mode decision")
	return d
}

func (p *Policy) decide(ctx context.Context) (Decision, error) {
	if p.force != nil {
		return Decision{Enabled: *p.force, Reason: ReasonForced}, nil
	}

	override, ok, err := p.store.Get(ctx, storage.KeyDemoMode)
	if err != nil {
		return Decision{}, fmt.Errorf("read override: %w", err)
	}
	if ok {
		switch strings.TrimSpace(override) {
		case "true":
			return Decision{Enabled: true, Reason: ReasonOverride}, nil
		case "false":
			return Decision{Enabled: false, Reason: ReasonOverride}, nil
		}
	}

	var u types.User
	found, err := storage.ReadJSON(ctx, p.store, storage.KeyUser, &u)
	if err != nil {
		return Decision{}, fmt.Errorf("read user: %w", err)
	}
	if found && userLooksDemo(u) {
		return Decision{Enabled: true, Reason: ReasonUser}, nil
	}

	token, _, err := p.store.Get(ctx, storage.KeyToken)
	if err != nil {
		return Decision{}, fmt.Errorf("read token: %w", err)
	}
	if t := strings.ToLower(token); strings.Contains(t, "demo") || strings.Contains(t, "mock") {
		return Decision{Enabled: true, Reason: ReasonToken}, nil
	}

	// no rule matched, including a plain user with a plain token
	return Decision{Enabled: true, Reason: ReasonDefault}, nil
}

func userLooksDemo(u types.User) bool {
	email := strings.ToLower(u.Email)
	return strings.Contains(email, "demo") ||
		strings.Contains(email, "google") ||
		u.IsDistinguished() ||
		u.IsDemo
}

// SetOverride writes the manual override flag.
func (p *Policy) SetOverride(ctx context.Context, enabled bool) error {
	v := "false"
	if enabled {
		v = "true"
	}
	if err := p.store.Set(ctx, storage.KeyDemoMode, v); err != nil {
		return fmt.Errorf("failed to store demo mode override: %w", err)
	}
	return nil
}

// ClearOverride removes the manual override flag.
func (p *Policy) ClearOverride(ctx context.Context) error {
	if err := p.store.Remove(ctx, storage.KeyDemoMode); err != nil {
		return fmt.Errorf("failed to clear demo mode override: %w", err)
	}
	return nil
}
