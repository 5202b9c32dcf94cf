package repository

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/hiretrack/internal/gateway"
	"github.com/jonathan/hiretrack/internal/notify"
	"github.com/jonathan/hiretrack/internal/storage"
	"github.com/jonathan/hiretrack/internal/types"
)

// Applicants is the application repository.
type Applicants struct {
	base[types.Applicant]
	remote gateway.ApplicantsAPI
}

// NewApplicants returns the repository over store and remote.
func NewApplicants(store storage.Store, remote gateway.ApplicantsAPI, opts ...Option) *Applicants {
	return &Applicants{
		base:   newBase[types.Applicant]("applicant", store, storage.KeyApplicants, storage.KeyApplicantsSecondary, opts),
		remote: remote,
	}
}

// List returns the applicants visible to actor.
func (r *Applicants) List(ctx context.Context, actor types.User) ([]types.Applicant, error) {
	return r.list(ctx, actor, r.remote.ListApplicants)
}

// Search filters server side on the Remote route and locally otherwise.
// Local-only records are always filtered client side and appended.
func (r *Applicants) Search(ctx context.Context, f ApplicantFilter, actor types.User) ([]types.Applicant, error) {
	q := gateway.ApplicantQuery{
		Status: criterion(f.Status),
		JobID:  criterion(f.JobID),
		Source: criterion(f.Source),
		Search: strings.TrimSpace(f.Search),
	}
	list, err := r.list(ctx, actor, func(ctx context.Context) ([]types.Applicant, error) {
		return r.remote.FilterApplicants(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	// server results already match; this applies the client semantics to the
	// local records mixed in after them
	return FilterApplicants(list, f), nil
}

// Get returns one applicant.
func (r *Applicants) Get(ctx context.Context, id string, actor types.User) (types.Applicant, error) {
	return r.get(ctx, id, actor, r.remote.GetApplicant)
}

// Create validates form and stores the application. Distinguished actors
// stay local. Everyone else goes remote first: a form with a resume is sent
// as multipart, then retried once as JSON, and only then saved locally.
func (r *Applicants) Create(ctx context.Context, form types.ApplicationForm, actor types.User) (types.Applicant, error) {
	if err := validateStruct(form); err != nil {
		return types.Applicant{}, err
	}
	a := form.Applicant()

	if actor.IsDistinguished() {
		a.ID = r.localID(actor)
		a.IsGoogleDemo = true
		a.Stamp(r.now())
		return r.createLocal(ctx, a, actor), nil
	}

	if form.Resume != nil {
		rec, err := r.remote.UploadApplicant(ctx, a, *form.Resume)
		if err == nil && rec != nil {
			return *rec, nil
		}
		r.log.WithFields(logrus.Fields{"error": err, "filename": form.Resume.Filename}).
			Warn("multipart submission failed, retrying without the file")
	}

	rec, err := r.remote.CreateApplicant(ctx, a)
	if err == nil && rec != nil {
		return *rec, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return types.Applicant{}, ctxErr
	}
	r.log.WithError(err).Warn("remote create failed, saving locally")

	a.ID = r.localID(actor)
	a.SavedLocally = true
	a.Stamp(r.now())
	r.notifier.Notify(notify.Warning, "Application saved locally; the server could not be reached")
	return r.createLocal(ctx, a, actor), nil
}

// UpdateStatus changes an applicant's status.
func (r *Applicants) UpdateStatus(ctx context.Context, id string, status types.ApplicantStatus, actor types.User) (types.Applicant, error) {
	if !validApplicantStatus(status) {
		return types.Applicant{}, &ErrValidation{Field: "status", Message: "must be one of pending shortlisted interview hired rejected"}
	}
	ts := types.FormatTimestamp(r.now())
	return r.mutate(ctx, "update applicant status", id, actor,
		func(a *types.Applicant) {
			a.Status = status
			a.UpdatedAt = ts
		},
		func(ctx context.Context) (*types.Applicant, error) {
			return r.remote.UpdateApplicantStatus(ctx, id, status)
		})
}

// AddNote appends text to the applicant's notes.
func (r *Applicants) AddNote(ctx context.Context, id, text string, actor types.User) (types.Applicant, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return types.Applicant{}, &ErrValidation{Field: "notes", Message: "is required"}
	}
	ts := types.FormatTimestamp(r.now())
	return r.mutate(ctx, "add applicant note", id, actor,
		func(a *types.Applicant) {
			a.Notes = types.AppendNote(a.Notes, text)
			a.UpdatedAt = ts
		},
		func(ctx context.Context) (*types.Applicant, error) {
			return r.remote.AddApplicantNote(ctx, id, text)
		})
}

// Delete removes an applicant.
func (r *Applicants) Delete(ctx context.Context, id string, actor types.User) error {
	return r.remove(ctx, id, actor, r.remote.DeleteApplicant)
}

func validApplicantStatus(s types.ApplicantStatus) bool {
	for _, known := range types.ApplicantStatuses {
		if s == known {
			return true
		}
	}
	return false
}
