package state

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/hiretrack/internal/repository"
	"github.com/jonathan/hiretrack/internal/types"
)

// ApplicantRepository is what the applicants container drives.
type ApplicantRepository interface {
	List(ctx context.Context, actor types.User) ([]types.Applicant, error)
	Create(ctx context.Context, form types.ApplicationForm, actor types.User) (types.Applicant, error)
	UpdateStatus(ctx context.Context, id string, status types.ApplicantStatus, actor types.User) (types.Applicant, error)
	AddNote(ctx context.Context, id, text string, actor types.User) (types.Applicant, error)
	Delete(ctx context.Context, id string, actor types.User) error
}

// Applicants is the applicants container with its filter record.
type Applicants struct {
	*Container[types.Applicant]
	repo  ApplicantRepository
	actor ActorFunc

	fmu     sync.RWMutex
	filters repository.ApplicantFilter
}

// NewApplicants returns an idle container over repo.
func NewApplicants(repo ApplicantRepository, actor ActorFunc, log logrus.FieldLogger) *Applicants {
	return &Applicants{
		Container: NewContainer[types.Applicant](log),
		repo:      repo,
		actor:     actor,
	}
}

// Fetch reloads the list.
func (a *Applicants) Fetch(ctx context.Context) error {
	return a.Load(ctx, func(ctx context.Context) ([]types.Applicant, error) {
		return a.repo.List(ctx, a.actor(ctx))
	})
}

// Create submits an application and adds it to the list.
func (a *Applicants) Create(ctx context.Context, form types.ApplicationForm) (types.Applicant, error) {
	var rec types.Applicant
	err := a.Apply(ctx, "create",
		func(ctx context.Context) (err error) {
			rec, err = a.repo.Create(ctx, form, a.actor(ctx))
			return err
		},
		func(items []types.Applicant) []types.Applicant { return replaceByID(items, rec) })
	return rec, err
}

// UpdateStatus changes one applicant's status.
func (a *Applicants) UpdateStatus(ctx context.Context, id string, status types.ApplicantStatus) (types.Applicant, error) {
	var rec types.Applicant
	err := a.Apply(ctx, "update status",
		func(ctx context.Context) (err error) {
			rec, err = a.repo.UpdateStatus(ctx, id, status, a.actor(ctx))
			return err
		},
		func(items []types.Applicant) []types.Applicant { return replaceByID(items, rec) })
	return rec, err
}

// AddNote appends a note to one applicant.
func (a *Applicants) AddNote(ctx context.Context, id, text string) (types.Applicant, error) {
	var rec types.Applicant
	err := a.Apply(ctx, "add note",
		func(ctx context.Context) (err error) {
			rec, err = a.repo.AddNote(ctx, id, text, a.actor(ctx))
			return err
		},
		func(items []types.Applicant) []types.Applicant { return replaceByID(items, rec) })
	return rec, err
}

// Delete removes one applicant.
func (a *Applicants) Delete(ctx context.Context, id string) error {
	return a.Apply(ctx, "delete",
		func(ctx context.Context) error { return a.repo.Delete(ctx, id, a.actor(ctx)) },
		func(items []types.Applicant) []types.Applicant { return dropByID(items, id) })
}

// Filters returns the current filter record.
func (a *Applicants) Filters() repository.ApplicantFilter {
	a.fmu.RLock()
	defer a.fmu.RUnlock()
	return a.filters
}

// SetFilters replaces the filter record.
func (a *Applicants) SetFilters(f repository.ApplicantFilter) {
	a.fmu.Lock()
	a.filters = f
	a.fmu.Unlock()
}

// Filtered applies the filter record to the items.
func (a *Applicants) Filtered() []types.Applicant {
	return repository.FilterApplicants(a.Items(), a.Filters())
}

// ByID returns one applicant from the items.
func (a *Applicants) ByID(id string) (types.Applicant, bool) {
	return findByID(a.Items(), id)
}

// CountByStatus counts applicants per status. Every known status is present.
func (a *Applicants) CountByStatus() map[types.ApplicantStatus]int {
	counts := make(map[types.ApplicantStatus]int, len(types.ApplicantStatuses))
	for _, s := range types.ApplicantStatuses {
		counts[s] = 0
	}
	for _, it := range a.Items() {
		counts[it.Status]++
	}
	return counts
}
