package repository

import (
	"context"
	"time"

	"github.com/jonathan/hiretrack/internal/gateway"
	"github.com/jonathan/hiretrack/internal/notify"
	"github.com/jonathan/hiretrack/internal/storage"
	"github.com/jonathan/hiretrack/internal/types"
)

// Interviews is the interview repository. Every record leaving it has a
// normalized ScheduledAt.
type Interviews struct {
	base[types.Interview]
	remote gateway.InterviewsAPI
}

// NewInterviews returns the repository over store and remote.
func NewInterviews(store storage.Store, remote gateway.InterviewsAPI, opts ...Option) *Interviews {
	return &Interviews{
		base:   newBase[types.Interview]("interview", store, storage.KeyInterviews, storage.KeyInterviewsSecondary, opts),
		remote: remote,
	}
}

func (r *Interviews) normalize(list []types.Interview) []types.Interview {
	now := r.now()
	for i := range list {
		list[i].Normalize(now)
	}
	return list
}

// Load returns the merged local view.
func (r *Interviews) Load(ctx context.Context) []types.Interview {
	return r.normalize(r.coll.load(ctx))
}

// List returns the interviews visible to actor.
func (r *Interviews) List(ctx context.Context, actor types.User) ([]types.Interview, error) {
	list, err := r.list(ctx, actor, r.remote.ListInterviews)
	if err != nil {
		return nil, err
	}
	return r.normalize(list), nil
}

// Upcoming returns the interviews still scheduled for now's day or later.
func (r *Interviews) Upcoming(ctx context.Context, actor types.User, now time.Time) ([]types.Interview, error) {
	list, err := r.List(ctx, actor)
	if err != nil {
		return nil, err
	}
	return FilterInterviews(list, InterviewFilter{UpcomingAt: now}), nil
}

// Get returns one interview. There is no remote single-item endpoint, so the
// remote listing is searched.
func (r *Interviews) Get(ctx context.Context, id string, actor types.User) (types.Interview, error) {
	list, err := r.List(ctx, actor)
	if err != nil {
		return types.Interview{}, err
	}
	for _, iv := range list {
		if iv.ID == id {
			return iv, nil
		}
	}
	return types.Interview{}, &ErrNotFound{Entity: r.name, ID: id}
}

// Create validates iv and schedules it.
func (r *Interviews) Create(ctx context.Context, iv types.Interview, actor types.User) (types.Interview, error) {
	if err := validateStruct(iv); err != nil {
		return types.Interview{}, err
	}
	iv.ID = ""
	iv.Feedback = nil
	iv.Normalize(r.now())

	if actor.IsDistinguished() {
		iv.ID = r.localID(actor)
		iv.IsGoogleDemo = true
		iv.Stamp(r.now())
		return r.createLocal(ctx, iv, actor), nil
	}

	rec, err := r.remote.CreateInterview(ctx, iv)
	if err == nil && rec != nil {
		rec.Normalize(r.now())
		return *rec, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return types.Interview{}, ctxErr
	}
	r.log.WithError(err).Warn("remote create failed, saving locally")

	iv.ID = r.localID(actor)
	iv.SavedLocally = true
	iv.Stamp(r.now())
	r.notifier.Notify(notify.Warning, "Interview saved locally; the server could not be reached")
	return r.createLocal(ctx, iv, actor), nil
}

// UpdateStatus changes an interview's status.
func (r *Interviews) UpdateStatus(ctx context.Context, id string, status types.InterviewStatus, actor types.User) (types.Interview, error) {
	if status == "" {
		return types.Interview{}, &ErrValidation{Field: "status", Message: "is required"}
	}
	ts := types.FormatTimestamp(r.now())
	return r.mutate(ctx, "update interview status", id, actor,
		func(iv *types.Interview) {
			iv.Status = status
			iv.UpdatedAt = ts
		},
		func(ctx context.Context) (*types.Interview, error) {
			return r.remote.UpdateInterviewStatus(ctx, id, status)
		})
}

// AddFeedback records feedback and marks the interview completed.
func (r *Interviews) AddFeedback(ctx context.Context, id string, fb types.Feedback, actor types.User) (types.Interview, error) {
	if err := validateStruct(fb); err != nil {
		return types.Interview{}, err
	}
	ts := types.FormatTimestamp(r.now())
	if fb.SubmittedAt == "" {
		fb.SubmittedAt = ts
	}
	return r.mutate(ctx, "submit interview feedback", id, actor,
		func(iv *types.Interview) {
			f := fb
			iv.Feedback = &f
			iv.Status = types.InterviewCompleted
			iv.UpdatedAt = ts
		},
		func(ctx context.Context) (*types.Interview, error) {
			return r.remote.SubmitFeedback(ctx, id, fb)
		})
}

// Delete removes an interview.
func (r *Interviews) Delete(ctx context.Context, id string, actor types.User) error {
	return r.remove(ctx, id, actor, r.remote.DeleteInterview)
}
