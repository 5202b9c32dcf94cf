package repository

import (
	"context"
	"strings"

	"github.com/jonathan/hiretrack/internal/gateway"
	"github.com/jonathan/hiretrack/internal/notify"
	"github.com/jonathan/hiretrack/internal/storage"
	"github.com/jonathan/hiretrack/internal/types"
)

// Jobs is the job posting repository.
type Jobs struct {
	base[types.Job]
	remote gateway.JobsAPI
}

// NewJobs returns the repository over store and remote.
func NewJobs(store storage.Store, remote gateway.JobsAPI, opts ...Option) *Jobs {
	return &Jobs{
		base:   newBase[types.Job]("job", store, storage.KeyJobs, storage.KeyJobsSecondary, opts),
		remote: remote,
	}
}

// List returns the postings visible to actor.
func (r *Jobs) List(ctx context.Context, actor types.User) ([]types.Job, error) {
	return r.list(ctx, actor, r.remote.ListJobs)
}

// Get returns one posting.
func (r *Jobs) Get(ctx context.Context, id string, actor types.User) (types.Job, error) {
	return r.get(ctx, id, actor, r.remote.GetJob)
}

// ActiveCount counts the active postings in the list visible to actor.
func (r *Jobs) ActiveCount(ctx context.Context, actor types.User) (int, error) {
	jobs, err := r.List(ctx, actor)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, j := range jobs {
		if j.IsActive() {
			n++
		}
	}
	return n, nil
}

// Create validates job and stores it, remotely when the route allows and
// locally otherwise.
func (r *Jobs) Create(ctx context.Context, job types.Job, actor types.User) (types.Job, error) {
	job.Title = strings.TrimSpace(job.Title)
	if err := validateStruct(job); err != nil {
		return types.Job{}, err
	}
	job.ID = ""
	if job.Status == "" {
		job.Status = types.JobStatusActive
	}

	if actor.IsDistinguished() {
		job.ID = r.localID(actor)
		job.IsGoogleDemo = true
		job.Stamp(r.now())
		return r.createLocal(ctx, job, actor), nil
	}

	rec, err := r.remote.CreateJob(ctx, job)
	if err == nil && rec != nil {
		return *rec, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return types.Job{}, ctxErr
	}
	r.log.WithError(err).Warn("remote create failed, saving locally")

	job.ID = r.localID(actor)
	job.SavedLocally = true
	job.Stamp(r.now())
	r.notifier.Notify(notify.Warning, "Job saved locally; the server could not be reached")
	return r.createLocal(ctx, job, actor), nil
}

// UpdateStatus changes a posting's status.
func (r *Jobs) UpdateStatus(ctx context.Context, id string, status types.JobStatus, actor types.User) (types.Job, error) {
	status = types.NormalizeJobStatus(status)
	if status == "" {
		return types.Job{}, &ErrValidation{Field: "status", Message: "is required"}
	}
	ts := types.FormatTimestamp(r.now())
	return r.mutate(ctx, "update job status", id, actor,
		func(j *types.Job) {
			j.Status = status
			j.UpdatedAt = ts
		},
		func(ctx context.Context) (*types.Job, error) {
			return r.remote.UpdateJobStatus(ctx, id, status)
		})
}

// Delete removes a posting.
func (r *Jobs) Delete(ctx context.Context, id string, actor types.User) error {
	return r.remove(ctx, id, actor, r.remote.DeleteJob)
}
