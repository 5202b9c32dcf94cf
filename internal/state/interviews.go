package state

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/hiretrack/internal/types"
)

// InterviewRepository is what the interviews container drives.
type InterviewRepository interface {
	List(ctx context.Context, actor types.User) ([]types.Interview, error)
	Create(ctx context.Context, iv types.Interview, actor types.User) (types.Interview, error)
	UpdateStatus(ctx context.Context, id string, status types.InterviewStatus, actor types.User) (types.Interview, error)
	AddFeedback(ctx context.Context, id string, fb types.Feedback, actor types.User) (types.Interview, error)
	Delete(ctx context.Context, id string, actor types.User) error
}

// Interviews is the interviews container.
type Interviews struct {
	*Container[types.Interview]
	repo  InterviewRepository
	actor ActorFunc
}

// NewInterviews returns an idle container over repo.
func NewInterviews(repo InterviewRepository, actor ActorFunc, log logrus.FieldLogger) *Interviews {
	return &Interviews{Container: NewContainer[types.Interview](log), repo: repo, actor: actor}
}

// Fetch reloads the list.
func (i *Interviews) Fetch(ctx context.Context) error {
	return i.Load(ctx, func(ctx context.Context) ([]types.Interview, error) {
		return i.repo.List(ctx, i.actor(ctx))
	})
}

// Schedule creates an interview.
func (i *Interviews) Schedule(ctx context.Context, iv types.Interview) (types.Interview, error) {
	return i.edit(ctx, "schedule", func(ctx context.Context) (types.Interview, error) {
		return i.repo.Create(ctx, iv, i.actor(ctx))
	})
}

// UpdateStatus changes an interview's status.
func (i *Interviews) UpdateStatus(ctx context.Context, id string, status types.InterviewStatus) (types.Interview, error) {
	return i.edit(ctx, "update status", func(ctx context.Context) (types.Interview, error) {
		return i.repo.UpdateStatus(ctx, id, status, i.actor(ctx))
	})
}

// AddFeedback records feedback on an interview.
func (i *Interviews) AddFeedback(ctx context.Context, id string, fb types.Feedback) (types.Interview, error) {
	return i.edit(ctx, "add feedback", func(ctx context.Context) (types.Interview, error) {
		return i.repo.AddFeedback(ctx, id, fb, i.actor(ctx))
	})
}

func (i *Interviews) edit(ctx context.Context, name string, op func(context.Context) (types.Interview, error)) (types.Interview, error) {
	var rec types.Interview
	err := i.Apply(ctx, name,
		func(ctx context.Context) (err error) {
			rec, err = op(ctx)
			return err
		},
		func(items []types.Interview) []types.Interview { return replaceByID(items, rec) })
	return rec, err
}

// Delete removes an interview.
func (i *Interviews) Delete(ctx context.Context, id string) error {
	return i.Apply(ctx, "delete",
		func(ctx context.Context) error { return i.repo.Delete(ctx, id, i.actor(ctx)) },
		func(items []types.Interview) []types.Interview { return dropByID(items, id) })
}

// Upcoming returns the interviews upcoming at now, soonest first.
func (i *Interviews) Upcoming(now time.Time) []types.Interview {
	var out []types.Interview
	for _, iv := range i.Items() {
		if iv.IsUpcoming(now) {
			out = append(out, iv)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].ScheduledTime().Before(out[b].ScheduledTime())
	})
	return out
}

// ForApplicant returns the interviews of one applicant.
func (i *Interviews) ForApplicant(applicantID string) []types.Interview {
	var out []types.Interview
	for _, iv := range i.Items() {
		if iv.ApplicantID == applicantID {
			out = append(out, iv)
		}
	}
	return out
}
