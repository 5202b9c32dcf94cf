package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hiretrack/internal/gateway"
	"github.com/jonathan/hiretrack/internal/logging"
	"github.com/jonathan/hiretrack/internal/notify"
	"github.com/jonathan/hiretrack/internal/storage"
	"github.com/jonathan/hiretrack/internal/types"
)

var (
	fixedNow = time.Date(2026, 4, 14, 10, 0, 0, 0, time.UTC)

	plainUser  = types.User{ID: "u1", Name: "Riley", Email: "riley@acme.io"}
	googleUser = types.User{ID: "g1", Name: "Gale", Email: "gale@gmail.com", Provider: types.ProviderGoogle}
)

// stubRemote records every call. Methods not overridden panic through the
// nil embedded interface.
type stubRemote struct {
	gateway.Remote

	mu    sync.Mutex
	calls []string

	err       error
	uploadErr error

	jobs       []types.Job
	applicants []types.Applicant
	interviews []types.Interview
}

func (s *stubRemote) record(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, name)
	return s.err
}

func (s *stubRemote) called() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *stubRemote) ListJobs(context.Context) ([]types.Job, error) {
	if err := s.record("ListJobs"); err != nil {
		return nil, err
	}
	return s.jobs, nil
}

func (s *stubRemote) GetJob(_ context.Context, id string) (*types.Job, error) {
	if err := s.record("GetJob"); err != nil {
		return nil, err
	}
	for _, j := range s.jobs {
		if j.ID == id {
			return &j, nil
		}
	}
	return nil, &gateway.APIError{Op: "get job", Status: 404}
}

func (s *stubRemote) CreateJob(_ context.Context, job types.Job) (*types.Job, error) {
	if err := s.record("CreateJob"); err != nil {
		return nil, err
	}
	job.ID = "srv-job"
	return &job, nil
}

func (s *stubRemote) UpdateJobStatus(_ context.Context, id string, status types.JobStatus) (*types.Job, error) {
	if err := s.record("UpdateJobStatus"); err != nil {
		return nil, err
	}
	return &types.Job{ID: id, Status: status}, nil
}

func (s *stubRemote) DeleteJob(context.Context, string) error {
	return s.record("DeleteJob")
}

func (s *stubRemote) ListApplicants(context.Context) ([]types.Applicant, error) {
	if err := s.record("ListApplicants"); err != nil {
		return nil, err
	}
	return s.applicants, nil
}

func (s *stubRemote) FilterApplicants(_ context.Context, q gateway.ApplicantQuery) ([]types.Applicant, error) {
	if err := s.record("FilterApplicants"); err != nil {
		return nil, err
	}
	var out []types.Applicant
	for _, a := range s.applicants {
		if q.Status == "" || string(a.Status) == q.Status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubRemote) GetApplicant(_ context.Context, id string) (*types.Applicant, error) {
	if err := s.record("GetApplicant"); err != nil {
		return nil, err
	}
	for _, a := range s.applicants {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, &gateway.APIError{Op: "get applicant", Status: 404}
}

func (s *stubRemote) CreateApplicant(_ context.Context, a types.Applicant) (*types.Applicant, error) {
	if err := s.record("CreateApplicant"); err != nil {
		return nil, err
	}
	a.ID = "srv-app"
	return &a, nil
}

func (s *stubRemote) UploadApplicant(_ context.Context, a types.Applicant, resume types.Attachment) (*types.Applicant, error) {
	if err := s.record("UploadApplicant"); err != nil {
		return nil, err
	}
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	a.ID = "srv-upload"
	a.Resume = "/uploads/resumes/" + resume.Filename
	return &a, nil
}

func (s *stubRemote) UpdateApplicantStatus(_ context.Context, id string, status types.ApplicantStatus) (*types.Applicant, error) {
	if err := s.record("UpdateApplicantStatus"); err != nil {
		return nil, err
	}
	return &types.Applicant{ID: id, Status: status}, nil
}

func (s *stubRemote) AddApplicantNote(_ context.Context, id, note string) (*types.Applicant, error) {
	if err := s.record("AddApplicantNote"); err != nil {
		return nil, err
	}
	return &types.Applicant{ID: id, Notes: note}, nil
}

func (s *stubRemote) DeleteApplicant(context.Context, string) error {
	return s.record("DeleteApplicant")
}

func (s *stubRemote) ListInterviews(context.Context) ([]types.Interview, error) {
	if err := s.record("ListInterviews"); err != nil {
		return nil, err
	}
	return append([]types.Interview(nil), s.interviews...), nil
}

func (s *stubRemote) CreateInterview(_ context.Context, iv types.Interview) (*types.Interview, error) {
	if err := s.record("CreateInterview"); err != nil {
		return nil, err
	}
	iv.ID = "srv-iv"
	return &iv, nil
}

func (s *stubRemote) UpdateInterviewStatus(_ context.Context, id string, status types.InterviewStatus) (*types.Interview, error) {
	if err := s.record("UpdateInterviewStatus"); err != nil {
		return nil, err
	}
	return &types.Interview{ID: id, Status: status}, nil
}

func (s *stubRemote) SubmitFeedback(_ context.Context, id string, fb types.Feedback) (*types.Interview, error) {
	if err := s.record("SubmitFeedback"); err != nil {
		return nil, err
	}
	return &types.Interview{ID: id, Status: types.InterviewCompleted, Feedback: &fb}, nil
}

func (s *stubRemote) DeleteInterview(context.Context, string) error {
	return s.record("DeleteInterview")
}

// testOpts returns deterministic options and the notification recorder.
func testOpts() ([]Option, *notify.Recorder) {
	rec := &notify.Recorder{}
	return []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "fixed" }),
		WithNotifier(rec),
	}, rec
}

func seed[T any](t *testing.T, s storage.Store, key string, items []T) {
	t.Helper()
	require.NoError(t, storage.WriteJSON(context.Background(), s, key, items))
}

func stored[T any](t *testing.T, s storage.Store, key string) []T {
	t.Helper()
	var out []T
	ok, err := storage.ReadJSON(context.Background(), s, key, &out)
	require.NoError(t, err)
	if !ok {
		return nil
	}
	return out
}

type failingStore struct{ err error }

func (f failingStore) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingStore) Set(context.Context, string, string) error         { return f.err }
func (f failingStore) Remove(context.Context, string) error              { return f.err }

func testLogger() logrus.FieldLogger { return logging.Discard() }
