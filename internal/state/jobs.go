package state

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/hiretrack/internal/types"
)

// JobRepository is what the jobs container drives.
type JobRepository interface {
	List(ctx context.Context, actor types.User) ([]types.Job, error)
	Create(ctx context.Context, job types.Job, actor types.User) (types.Job, error)
	UpdateStatus(ctx context.Context, id string, status types.JobStatus, actor types.User) (types.Job, error)
	Delete(ctx context.Context, id string, actor types.User) error
}

// Jobs is the job postings container.
type Jobs struct {
	*Container[types.Job]
	repo  JobRepository
	actor ActorFunc
}

// NewJobs returns an idle container over repo.
func NewJobs(repo JobRepository, actor ActorFunc, log logrus.FieldLogger) *Jobs {
	return &Jobs{Container: NewContainer[types.Job](log), repo: repo, actor: actor}
}

// Fetch reloads the list.
func (j *Jobs) Fetch(ctx context.Context) error {
	return j.Load(ctx, func(ctx context.Context) ([]types.Job, error) {
		return j.repo.List(ctx, j.actor(ctx))
	})
}

// Create adds a posting.
func (j *Jobs) Create(ctx context.Context, job types.Job) (types.Job, error) {
	var rec types.Job
	err := j.Apply(ctx, "create",
		func(ctx context.Context) (err error) {
			rec, err = j.repo.Create(ctx, job, j.actor(ctx))
			return err
		},
		func(items []types.Job) []types.Job { return replaceByID(items, rec) })
	return rec, err
}

// UpdateStatus changes a posting's status.
func (j *Jobs) UpdateStatus(ctx context.Context, id string, status types.JobStatus) (types.Job, error) {
	var rec types.Job
	err := j.Apply(ctx, "update status",
		func(ctx context.Context) (err error) {
			rec, err = j.repo.UpdateStatus(ctx, id, status, j.actor(ctx))
			return err
		},
		func(items []types.Job) []types.Job { return replaceByID(items, rec) })
	return rec, err
}

// Delete removes a posting.
func (j *Jobs) Delete(ctx context.Context, id string) error {
	return j.Apply(ctx, "delete",
		func(ctx context.Context) error { return j.repo.Delete(ctx, id, j.actor(ctx)) },
		func(items []types.Job) []types.Job { return dropByID(items, id) })
}

// Active returns the active postings.
func (j *Jobs) Active() []types.Job {
	var out []types.Job
	for _, job := range j.Items() {
		if job.IsActive() {
			out = append(out, job)
		}
	}
	return out
}

// ByID returns one posting from the items.
func (j *Jobs) ByID(id string) (types.Job, bool) {
	return findByID(j.Items(), id)
}
