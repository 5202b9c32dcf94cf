// Package gateway talks to the hiretrack backend, or to fixture data when
// the session is in demo mode.
//
// Client is the live HTTP implementation, Mock the fixture-backed one, and
// Gateway switches between them on every call using the demo-mode policy.
// Interview listings on the live path go through a single-slot TTL cache.
package gateway

import (
	"context"

	"github.com/jonathan/hiretrack/internal/types"
)

// ApplicantQuery holds the server-side filter parameters.
type ApplicantQuery struct {
	Status string
	JobID  string
	Source string
	Search string
}

// JobsAPI is the job posting endpoint group.
type JobsAPI interface {
	ListJobs(ctx context.Context) ([]types.Job, error)
	GetJob(ctx context.Context, id string) (*types.Job, error)
	CreateJob(ctx context.Context, job types.Job) (*types.Job, error)
	UpdateJobStatus(ctx context.Context, id string, status types.JobStatus) (*types.Job, error)
	DeleteJob(ctx context.Context, id string) error
}

// ApplicantsAPI is the application endpoint group.
type ApplicantsAPI interface {
	ListApplicants(ctx context.Context) ([]types.Applicant, error)
	FilterApplicants(ctx context.Context, q ApplicantQuery) ([]types.Applicant, error)
	GetApplicant(ctx context.Context, id string) (*types.Applicant, error)
	CreateApplicant(ctx context.Context, a types.Applicant) (*types.Applicant, error)
	// UploadApplicant submits the application as multipart form data with
	// the resume file attached.
	UploadApplicant(ctx context.Context, a types.Applicant, resume types.Attachment) (*types.Applicant, error)
	UpdateApplicantStatus(ctx context.Context, id string, status types.ApplicantStatus) (*types.Applicant, error)
	// AddApplicantNote appends note to the applicant's notes server side.
	AddApplicantNote(ctx context.Context, id, note string) (*types.Applicant, error)
	DeleteApplicant(ctx context.Context, id string) error
}

// InterviewsAPI is the interview endpoint group.
type InterviewsAPI interface {
	ListInterviews(ctx context.Context) ([]types.Interview, error)
	CreateInterview(ctx context.Context, iv types.Interview) (*types.Interview, error)
	UpdateInterviewStatus(ctx context.Context, id string, status types.InterviewStatus) (*types.Interview, error)
	SubmitFeedback(ctx context.Context, id string, fb types.Feedback) (*types.Interview, error)
	DeleteInterview(ctx context.Context, id string) error
}

// AuthAPI is the register/login pair.
type AuthAPI interface {
	Register(ctx context.Context, req types.RegisterRequest) (*types.AuthResult, error)
	Login(ctx context.Context, req types.LoginRequest) (*types.AuthResult, error)
}

// ProfileAPI is the profile get/update pair.
type ProfileAPI interface {
	GetProfile(ctx context.Context) (*types.User, error)
	UpdateProfile(ctx context.Context, p types.ProfileUpdate) (*types.User, error)
}

// Remote is the full backend surface.
type Remote interface {
	JobsAPI
	ApplicantsAPI
	InterviewsAPI
	AuthAPI
	ProfileAPI
}

// DemoChecker reports whether the current call runs in demo mode.
// demomode.Policy implements it.
type DemoChecker interface {
	Enabled(ctx context.Context) bool
}

// TokenSource supplies the bearer token for live calls.
// session.Session implements it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
