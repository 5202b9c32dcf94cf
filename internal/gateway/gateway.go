package gateway

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/hiretrack/internal/logging"
	"github.com/jonathan/hiretrack/internal/types"
)

// Gateway routes each call to the mock or the live backend, asking the
// demo-mode policy every time.
type Gateway struct {
	live  Remote
	mock  Remote
	demo  DemoChecker
	cache *InterviewCache
	log   logrus.FieldLogger
}

var _ Remote = (*Gateway)(nil)

// New returns a gateway. cache may be nil to disable interview caching.
func New(live, mock Remote, demo DemoChecker, cache *InterviewCache, log logrus.FieldLogger) *Gateway {
	return &Gateway{live: live, mock: mock, demo: demo, cache: cache, log: logging.OrDiscard(log)}
}

// DemoMode reports the current decision.
func (g *Gateway) DemoMode(ctx context.Context) bool {
	return g.demo.Enabled(ctx)
}

// InterviewCache returns the cache on the live interview path, or nil.
func (g *Gateway) InterviewCache() *InterviewCache {
	return g.cache
}

func (g *Gateway) pick(ctx context.Context) Remote {
	if g.demo.Enabled(ctx) {
		return g.mock
	}
	return g.live
}

func (g *Gateway) invalidateInterviews() {
	if g.cache != nil {
		g.cache.Reset()
	}
}

// ListJobs lists postings.
func (g *Gateway) ListJobs(ctx context.Context) ([]types.Job, error) {
	return g.pick(ctx).ListJobs(ctx)
}

// GetJob fetches one posting.
func (g *Gateway) GetJob(ctx context.Context, id string) (*types.Job, error) {
	return g.pick(ctx).GetJob(ctx, id)
}

// CreateJob creates a posting.
func (g *Gateway) CreateJob(ctx context.Context, job types.Job) (*types.Job, error) {
	return g.pick(ctx).CreateJob(ctx, job)
}

// UpdateJobStatus changes a posting's status.
func (g *Gateway) UpdateJobStatus(ctx context.Context, id string, status types.JobStatus) (*types.Job, error) {
	return g.pick(ctx).UpdateJobStatus(ctx, id, status)
}

// DeleteJob deletes a posting.
func (g *Gateway) DeleteJob(ctx context.Context, id string) error {
	return g.pick(ctx).DeleteJob(ctx, id)
}

// ListApplicants lists applications.
func (g *Gateway) ListApplicants(ctx context.Context) ([]types.Applicant, error) {
	return g.pick(ctx).ListApplicants(ctx)
}

// FilterApplicants lists applications filtered server side.
func (g *Gateway) FilterApplicants(ctx context.Context, q ApplicantQuery) ([]types.Applicant, error) {
	return g.pick(ctx).FilterApplicants(ctx, q)
}

// GetApplicant fetches one application.
func (g *Gateway) GetApplicant(ctx context.Context, id string) (*types.Applicant, error) {
	return g.pick(ctx).GetApplicant(ctx, id)
}

// CreateApplicant submits an application as JSON.
func (g *Gateway) CreateApplicant(ctx context.Context, a types.Applicant) (*types.Applicant, error) {
	return g.pick(ctx).CreateApplicant(ctx, a)
}

// UploadApplicant submits an application with a resume file.
func (g *Gateway) UploadApplicant(ctx context.Context, a types.Applicant, resume types.Attachment) (*types.Applicant, error) {
	return g.pick(ctx).UploadApplicant(ctx, a, resume)
}

// UpdateApplicantStatus changes an application's status.
func (g *Gateway) UpdateApplicantStatus(ctx context.Context, id string, status types.ApplicantStatus) (*types.Applicant, error) {
	return g.pick(ctx).UpdateApplicantStatus(ctx, id, status)
}

// AddApplicantNote appends a note to an application.
func (g *Gateway) AddApplicantNote(ctx context.Context, id, note string) (*types.Applicant, error) {
	return g.pick(ctx).AddApplicantNote(ctx, id, note)
}

// DeleteApplicant deletes an application.
func (g *Gateway) DeleteApplicant(ctx context.Context, id string) error {
	return g.pick(ctx).DeleteApplicant(ctx, id)
}

// ListInterviews lists interviews. Live results are served from the cache
// while fresh; demo mode bypasses the cache entirely.
func (g *Gateway) ListInterviews(ctx context.Context) ([]types.Interview, error) {
	if g.demo.Enabled(ctx) {
		return g.mock.ListInterviews(ctx)
	}
	if g.cache != nil {
		if items, ok := g.cache.Get(); ok {
			g.log.Debug("interview listing served from cache")
			return items, nil
		}
	}
	items, err := g.live.ListInterviews(ctx)
	if err != nil {
		return nil, err
	}
	if g.cache != nil {
		g.cache.Put(items)
	}
	return items, nil
}

// CreateInterview schedules an interview.
func (g *Gateway) CreateInterview(ctx context.Context, iv types.Interview) (*types.Interview, error) {
	defer g.invalidateInterviews()
	return g.pick(ctx).CreateInterview(ctx, iv)
}

// UpdateInterviewStatus changes an interview's status.
func (g *Gateway) UpdateInterviewStatus(ctx context.Context, id string, status types.InterviewStatus) (*types.Interview, error) {
	defer g.invalidateInterviews()
	return g.pick(ctx).UpdateInterviewStatus(ctx, id, status)
}

// SubmitFeedback records interview feedback.
func (g *Gateway) SubmitFeedback(ctx context.Context, id string, fb types.Feedback) (*types.Interview, error) {
	defer g.invalidateInterviews()
	return g.pick(ctx).SubmitFeedback(ctx, id, fb)
}

// DeleteInterview deletes an interview.
func (g *Gateway) DeleteInterview(ctx context.Context, id string) error {
	defer g.invalidateInterviews()
	return g.pick(ctx).DeleteInterview(ctx, id)
}

// Register creates an account.
func (g *Gateway) Register(ctx context.Context, req types.RegisterRequest) (*types.AuthResult, error) {
	return g.pick(ctx).Register(ctx, req)
}

// Login signs in.
func (g *Gateway) Login(ctx context.Context, req types.LoginRequest) (*types.AuthResult, error) {
	return g.pick(ctx).Login(ctx, req)
}

// GetProfile fetches the signed-in user's profile.
func (g *Gateway) GetProfile(ctx context.Context) (*types.User, error) {
	return g.pick(ctx).GetProfile(ctx)
}

// UpdateProfile edits the signed-in user's profile.
func (g *Gateway) UpdateProfile(ctx context.Context, p types.ProfileUpdate) (*types.User, error) {
	return g.pick(ctx).UpdateProfile(ctx, p)
}
