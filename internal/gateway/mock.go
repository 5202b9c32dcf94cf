package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/hiretrack/internal/logging"
	"github.com/jonathan/hiretrack/internal/storage"
	"github.com/jonathan/hiretrack/internal/types"
)

// Keys the mock persists its data under. They never collide with the
// client-side collection keys.
const (
	mockKeyJobs       = "mock:jobs"
	mockKeyApplicants = "mock:applications"
	mockKeyInterviews = "mock:interviews"
	mockKeyUsers      = "mock:users"
	mockKeyProfile    = "mock:profile"
)

// MockTokenPrefix prefixes tokens issued by the mock auth endpoints.
const MockTokenPrefix = "mock-token-"

// MockOptions configures a Mock.
type MockOptions struct {
	// Latency is slept before every call to simulate the network.
	Latency time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
	// NoSeed leaves the store empty instead of loading fixtures.
	NoSeed bool
	Log    logrus.FieldLogger
}

// Mock is a fixture-backed Remote persisted in a storage.Store. It behaves
// like the backend, including 404s and server-side filtering.
type Mock struct {
	mu      sync.Mutex
	store   storage.Store
	latency time.Duration
	now     func() time.Time
	noSeed  bool
	seeded  bool
	log     logrus.FieldLogger
}

var _ Remote = (*Mock)(nil)

// NewMock returns a mock over store.
func NewMock(store storage.Store, opts MockOptions) *Mock {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Mock{
		store:   store,
		latency: opts.Latency,
		now:     now,
		noSeed:  opts.NoSeed,
		log:     logging.OrDiscard(opts.Log),
	}
}

// enter simulates latency, takes the lock and seeds fixtures on first use.
// The returned func releases the lock.
func (m *Mock) enter(ctx context.Context) (func(), error) {
	if m.latency > 0 {
		t := time.NewTimer(m.latency)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	m.mu.Lock()
	if !m.seeded {
		if err := m.seed(ctx); err != nil {
			m.mu.Unlock()
			return nil, err
		}
		m.seeded = true
	}
	return m.mu.Unlock, nil
}

func (m *Mock) seed(ctx context.Context) error {
	if m.noSeed {
		return nil
	}
	now := m.now()
	seeds := []struct {
		key   string
		value any
	}{
		{mockKeyJobs, fixtureJobs(now)},
		{mockKeyApplicants, fixtureApplicants(now)},
		{mockKeyInterviews, fixtureInterviews(now)},
	}
	for _, s := range seeds {
		_, ok, err := m.store.Get(ctx, s.key)
		if err != nil {
			return fmt.Errorf("seed %s: %w", s.key, err)
		}
		if ok {
			continue
		}
		if err := storage.WriteJSON(ctx, m.store, s.key, s.value); err != nil {
			return fmt.Errorf("seed %s: %w", s.key, err)
		}
	}
	m.log.Debug("mock backend seeded")
	return nil
}

func mockList[T any](ctx context.Context, m *Mock, key string) []T {
	return storage.ReadList[T](ctx, m.store, m.log, key)
}

func mockSave[T any](ctx context.Context, m *Mock, op, key string, items []T) error {
	if err := storage.WriteJSON(ctx, m.store, key, items); err != nil {
		return &APIError{Op: op, Status: http.StatusInternalServerError, Message: err.Error()}
	}
	return nil
}

func badRequest(op, msg string) error {
	return &APIError{Op: op, Status: http.StatusBadRequest, Message: msg}
}

func (m *Mock) stamp() string { return types.FormatTimestamp(m.now()) }

// mutate applies fn to the record with id under key and saves the result.
func mutate[T interface{ GetID() string }](ctx context.Context, m *Mock, op, key, what, id string, fn func(*T)) (*T, error) {
	unlock, err := m.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	items := mockList[T](ctx, m, key)
	for i := range items {
		if items[i].GetID() == id {
			fn(&items[i])
			if err := mockSave(ctx, m, op, key, items); err != nil {
				return nil, err
			}
			out := items[i]
			return &out, nil
		}
	}
	return nil, notFound(op, what, id)
}

func find[T interface{ GetID() string }](ctx context.Context, m *Mock, op, key, what, id string) (*T, error) {
	unlock, err := m.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	for _, it := range mockList[T](ctx, m, key) {
		if it.GetID() == id {
			out := it
			return &out, nil
		}
	}
	return nil, notFound(op, what, id)
}

func all[T any](ctx context.Context, m *Mock, key string) ([]T, error) {
	unlock, err := m.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()
	return mockList[T](ctx, m, key), nil
}

func insert[T any](ctx context.Context, m *Mock, op, key string, rec T) error {
	unlock, err := m.enter(ctx)
	if err != nil {
		return err
	}
	defer unlock()
	items := mockList[T](ctx, m, key)
	return mockSave(ctx, m, op, key, append(items, rec))
}

func drop[T interface{ GetID() string }](ctx context.Context, m *Mock, op, key, what, id string) error {
	unlock, err := m.enter(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	items := mockList[T](ctx, m, key)
	kept := items[:0]
	found := false
	for _, it := range items {
		if it.GetID() == id {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	if !found {
		return notFound(op, what, id)
	}
	return mockSave(ctx, m, op, key, kept)
}

// ListJobs returns every posting.
func (m *Mock) ListJobs(ctx context.Context) ([]types.Job, error) {
	return all[types.Job](ctx, m, mockKeyJobs)
}

// GetJob returns one posting.
func (m *Mock) GetJob(ctx context.Context, id string) (*types.Job, error) {
	return find[types.Job](ctx, m, "get job", mockKeyJobs, "job", id)
}

// CreateJob stores a posting under a new server id.
func (m *Mock) CreateJob(ctx context.Context, job types.Job) (*types.Job, error) {
	const op = "create job"
	if strings.TrimSpace(job.Title) == "" {
		return nil, badRequest(op, "title is required")
	}
	job.ID = uuid.NewString()
	if job.Status == "" {
		job.Status = types.JobStatusDraft
	}
	job.SavedLocally = false
	job.Stamp(m.now())
	if err := insert(ctx, m, op, mockKeyJobs, job); err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateJobStatus changes a posting's status.
func (m *Mock) UpdateJobStatus(ctx context.Context, id string, status types.JobStatus) (*types.Job, error) {
	ts := m.stamp()
	return mutate(ctx, m, "update job status", mockKeyJobs, "job", id, func(j *types.Job) {
		j.Status = status
		j.UpdatedAt = ts
	})
}

// DeleteJob removes a posting.
func (m *Mock) DeleteJob(ctx context.Context, id string) error {
	return drop[types.Job](ctx, m, "delete job", mockKeyJobs, "job", id)
}

// ListApplicants returns every application.
func (m *Mock) ListApplicants(ctx context.Context) ([]types.Applicant, error) {
	return all[types.Applicant](ctx, m, mockKeyApplicants)
}

// FilterApplicants filters server side. The job reference matches exactly:
// "general" matches only records whose job id is literally general, not the
// general application category.
func (m *Mock) FilterApplicants(ctx context.Context, q ApplicantQuery) ([]types.Applicant, error) {
	list, err := all[types.Applicant](ctx, m, mockKeyApplicants)
	if err != nil {
		return nil, err
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]types.Applicant, 0, len(list))
	for _, a := range list {
		if q.Status != "" && string(a.Status) != q.Status {
			continue
		}
		if q.JobID != "" && a.JobID != q.JobID {
			continue
		}
		if q.Source != "" && string(a.Source) != q.Source {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(a.Name), search) &&
			!strings.Contains(strings.ToLower(a.Email), search) &&
			!strings.Contains(strings.ToLower(a.JobTitle), search) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// GetApplicant returns one application.
func (m *Mock) GetApplicant(ctx context.Context, id string) (*types.Applicant, error) {
	return find[types.Applicant](ctx, m, "get applicant", mockKeyApplicants, "application", id)
}

// CreateApplicant stores an application under a new server id.
func (m *Mock) CreateApplicant(ctx context.Context, a types.Applicant) (*types.Applicant, error) {
	const op = "create applicant"
	if strings.TrimSpace(a.Name) == "" || strings.TrimSpace(a.Email) == "" {
		return nil, badRequest(op, "name and email are required")
	}
	a.ID = uuid.NewString()
	a.SavedLocally = false
	a.Normalize()
	a.Stamp(m.now())
	if err := insert(ctx, m, op, mockKeyApplicants, a); err != nil {
		return nil, err
	}
	return &a, nil
}

// UploadApplicant stores an application and records the resume as an
// uploaded file path.
func (m *Mock) UploadApplicant(ctx context.Context, a types.Applicant, resume types.Attachment) (*types.Applicant, error) {
	if resume.Filename == "" {
		return nil, badRequest("upload applicant", "resume file is required")
	}
	a.Resume = "/uploads/resumes/" + uuid.NewString() + "-" + resume.Filename
	return m.CreateApplicant(ctx, a)
}

// UpdateApplicantStatus changes an application's status.
func (m *Mock) UpdateApplicantStatus(ctx context.Context, id string, status types.ApplicantStatus) (*types.Applicant, error) {
	ts := m.stamp()
	return mutate(ctx, m, "update applicant status", mockKeyApplicants, "application", id, func(a *types.Applicant) {
		a.Status = status
		a.UpdatedAt = ts
	})
}

// AddApplicantNote appends a note.
func (m *Mock) AddApplicantNote(ctx context.Context, id, note string) (*types.Applicant, error) {
	ts := m.stamp()
	return mutate(ctx, m, "add applicant note", mockKeyApplicants, "application", id, func(a *types.Applicant) {
		a.Notes = types.AppendNote(a.Notes, note)
		a.UpdatedAt = ts
	})
}

// DeleteApplicant removes an application.
func (m *Mock) DeleteApplicant(ctx context.Context, id string) error {
	return drop[types.Applicant](ctx, m, "delete applicant", mockKeyApplicants, "application", id)
}

// ListInterviews returns every interview.
func (m *Mock) ListInterviews(ctx context.Context) ([]types.Interview, error) {
	return all[types.Interview](ctx, m, mockKeyInterviews)
}

// CreateInterview schedules an interview under a new server id.
func (m *Mock) CreateInterview(ctx context.Context, iv types.Interview) (*types.Interview, error) {
	const op = "create interview"
	if strings.TrimSpace(iv.ApplicantID) == "" {
		return nil, badRequest(op, "applicantId is required")
	}
	iv.ID = uuid.NewString()
	iv.SavedLocally = false
	iv.Normalize(m.now())
	iv.Stamp(m.now())
	if err := insert(ctx, m, op, mockKeyInterviews, iv); err != nil {
		return nil, err
	}
	return &iv, nil
}

// UpdateInterviewStatus changes an interview's status.
func (m *Mock) UpdateInterviewStatus(ctx context.Context, id string, status types.InterviewStatus) (*types.Interview, error) {
	ts := m.stamp()
	return mutate(ctx, m, "update interview status", mockKeyInterviews, "interview", id, func(iv *types.Interview) {
		iv.Status = status
		iv.UpdatedAt = ts
	})
}

// SubmitFeedback records feedback and completes the interview.
func (m *Mock) SubmitFeedback(ctx context.Context, id string, fb types.Feedback) (*types.Interview, error) {
	ts := m.stamp()
	if fb.SubmittedAt == "" {
		fb.SubmittedAt = ts
	}
	return mutate(ctx, m, "submit feedback", mockKeyInterviews, "interview", id, func(iv *types.Interview) {
		iv.Feedback = &fb
		iv.Status = types.InterviewCompleted
		iv.UpdatedAt = ts
	})
}

// DeleteInterview removes an interview.
func (m *Mock) DeleteInterview(ctx context.Context, id string) error {
	return drop[types.Interview](ctx, m, "delete interview", mockKeyInterviews, "interview", id)
}

// Register creates a demo account and issues a mock token.
func (m *Mock) Register(ctx context.Context, req types.RegisterRequest) (*types.AuthResult, error) {
	const op = "register"
	if err := req.Validate(); err != nil {
		return nil, badRequest(op, err.Error())
	}

	unlock, err := m.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	users := mockList[types.User](ctx, m, mockKeyUsers)
	for _, u := range users {
		if strings.EqualFold(u.Email, req.Email) {
			return nil, &APIError{Op: op, Status: http.StatusConflict, Message: "email already registered"}
		}
	}
	u := types.User{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Company:   req.Company,
		Role:      req.Role,
		IsDemo:    true,
		CreatedAt: m.stamp(),
	}
	if err := mockSave(ctx, m, op, mockKeyUsers, append(users, u)); err != nil {
		return nil, err
	}
	return m.signIn(ctx, op, u)
}

// Login accepts any credentials. A known email returns that account;
// otherwise a demo account is made up from the address.
func (m *Mock) Login(ctx context.Context, req types.LoginRequest) (*types.AuthResult, error) {
	const op = "login"
	if strings.TrimSpace(req.Email) == "" {
		return nil, badRequest(op, "email is required")
	}

	unlock, err := m.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	for _, u := range mockList[types.User](ctx, m, mockKeyUsers) {
		if strings.EqualFold(u.Email, req.Email) {
			return m.signIn(ctx, op, u)
		}
	}
	name := req.Email
	if at := strings.Index(name, "@"); at > 0 {
		name = name[:at]
	}
	return m.signIn(ctx, op, types.User{
		ID:        "demo-" + uuid.NewString(),
		Name:      name,
		Email:     req.Email,
		IsDemo:    true,
		CreatedAt: m.stamp(),
	})
}

func (m *Mock) signIn(ctx context.Context, op string, u types.User) (*types.AuthResult, error) {
	if err := storage.WriteJSON(ctx, m.store, mockKeyProfile, u); err != nil {
		return nil, &APIError{Op: op, Status: http.StatusInternalServerError, Message: err.Error()}
	}
	return &types.AuthResult{User: u, Token: MockTokenPrefix + uuid.NewString()}, nil
}

// GetProfile returns the last signed-in mock account.
func (m *Mock) GetProfile(ctx context.Context) (*types.User, error) {
	const op = "get profile"
	unlock, err := m.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var u types.User
	ok, err := storage.ReadJSON(ctx, m.store, mockKeyProfile, &u)
	if err != nil || !ok {
		return nil, &APIError{Op: op, Status: http.StatusUnauthorized, Message: "not signed in"}
	}
	return &u, nil
}

// UpdateProfile edits the last signed-in mock account.
func (m *Mock) UpdateProfile(ctx context.Context, p types.ProfileUpdate) (*types.User, error) {
	const op = "update profile"
	current, err := m.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	updated := p.Apply(*current)

	unlock, err := m.enter(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := storage.WriteJSON(ctx, m.store, mockKeyProfile, updated); err != nil {
		return nil, &APIError{Op: op, Status: http.StatusInternalServerError, Message: err.Error()}
	}
	users := mockList[types.User](ctx, m, mockKeyUsers)
	for i := range users {
		if users[i].ID == updated.ID {
			users[i] = updated
		}
	}
	if err := mockSave(ctx, m, op, mockKeyUsers, users); err != nil {
		return nil, err
	}
	return &updated, nil
}
