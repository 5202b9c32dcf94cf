package state

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hiretrack/internal/repository"
	"github.com/jonathan/hiretrack/internal/types"
)

func anyone(context.Context) types.User { return types.User{ID: "u1"} }

type fakeApplicants struct {
	list []types.Applicant
	err  error
}

func (f *fakeApplicants) List(context.Context, types.User) ([]types.Applicant, error) {
	return f.list, f.err
}

func (f *fakeApplicants) Create(_ context.Context, form types.ApplicationForm, _ types.User) (types.Applicant, error) {
	if f.err != nil {
		return types.Applicant{}, f.err
	}
	a := form.Applicant()
	a.ID = "new"
	return a, nil
}

func (f *fakeApplicants) UpdateStatus(_ context.Context, id string, status types.ApplicantStatus, _ types.User) (types.Applicant, error) {
	return types.Applicant{ID: id, Status: status}, f.err
}

func (f *fakeApplicants) AddNote(_ context.Context, id, text string, _ types.User) (types.Applicant, error) {
	return types.Applicant{ID: id, Notes: text}, f.err
}

func (f *fakeApplicants) Delete(context.Context, string, types.User) error { return f.err }

type fakeJobs struct{ list []types.Job }

func (f *fakeJobs) List(context.Context, types.User) ([]types.Job, error) { return f.list, nil }
func (f *fakeJobs) Create(_ context.Context, j types.Job, _ types.User) (types.Job, error) {
	return j, nil
}
func (f *fakeJobs) UpdateStatus(_ context.Context, id string, s types.JobStatus, _ types.User) (types.Job, error) {
	return types.Job{ID: id, Status: s}, nil
}
func (f *fakeJobs) Delete(context.Context, string, types.User) error { return nil }

type fakeInterviews struct{ list []types.Interview }

func (f *fakeInterviews) List(context.Context, types.User) ([]types.Interview, error) {
	return f.list, nil
}
func (f *fakeInterviews) Create(_ context.Context, iv types.Interview, _ types.User) (types.Interview, error) {
	iv.ID = "iv-new"
	return iv, nil
}
func (f *fakeInterviews) UpdateStatus(_ context.Context, id string, s types.InterviewStatus, _ types.User) (types.Interview, error) {
	return types.Interview{ID: id, Status: s}, nil
}
func (f *fakeInterviews) AddFeedback(_ context.Context, id string, fb types.Feedback, _ types.User) (types.Interview, error) {
	return types.Interview{ID: id, Status: types.InterviewCompleted, Feedback: &fb}, nil
}
func (f *fakeInterviews) Delete(context.Context, string, types.User) error { return nil }

func TestContainer_Lifecycle(t *testing.T) {
	c := NewContainer[types.Job](nil)
	assert.Equal(t, StatusIdle, c.Status())
	assert.NotNil(t, c.Items())

	boom := errors.New("boom")
	err := c.Load(context.Background(), func(context.Context) ([]types.Job, error) {
		assert.Equal(t, StatusLoading, c.Status())
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StatusFailed, c.Status())
	assert.Equal(t, boom, c.Err())

	require.NoError(t, c.Load(context.Background(), func(context.Context) ([]types.Job, error) {
		return []types.Job{{ID: "1"}}, nil
	}))
	snap := c.Snapshot()
	assert.Equal(t, StatusSucceeded, snap.Status)
	assert.NoError(t, snap.Err)
	assert.Len(t, snap.Items, 1)

	snap.Items[0].ID = "mutated"
	assert.Equal(t, "1", c.Items()[0].ID)
}

func TestContainer_LastSettleWins(t *testing.T) {
	c := NewContainer[types.Job](nil)
	slowStarted := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = c.Load(context.Background(), func(context.Context) ([]types.Job, error) {
			close(slowStarted)
			<-release
			return []types.Job{{ID: "slow"}}, nil
		})
	}()
	<-slowStarted

	require.NoError(t, c.Load(context.Background(), func(context.Context) ([]types.Job, error) {
		return []types.Job{{ID: "fast"}}, nil
	}))
	assert.Equal(t, "fast", c.Items()[0].ID)

	close(release)
	wg.Wait()
	assert.Equal(t, "slow", c.Items()[0].ID)
}

func TestApplicants_Container(t *testing.T) {
	ctx := context.Background()
	repo := &fakeApplicants{list: []types.Applicant{
		{ID: "1", Name: "Ana", JobID: "general", Status: types.ApplicantPending},
		{ID: "2", Name: "Ben", JobID: "job-1", Status: types.ApplicantHired},
	}}
	a := NewApplicants(repo, anyone, nil)

	require.NoError(t, a.Fetch(ctx))
	assert.Equal(t, StatusSucceeded, a.Status())

	a.SetFilters(repository.ApplicantFilter{JobID: "general"})
	filtered := a.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, "Ana", filtered[0].Name)

	counts := a.CountByStatus()
	assert.Equal(t, 1, counts[types.ApplicantPending])
	assert.Equal(t, 1, counts[types.ApplicantHired])
	assert.Equal(t, 0, counts[types.ApplicantRejected])

	_, err := a.UpdateStatus(ctx, "1", types.ApplicantShortlisted)
	require.NoError(t, err)
	got, ok := a.ByID("1")
	require.True(t, ok)
	assert.Equal(t, types.ApplicantShortlisted, got.Status)

	created, err := a.Create(ctx, types.ApplicationForm{Name: "Cy", Email: "cy@x.io", JobID: "job-1"})
	require.NoError(t, err)
	assert.Equal(t, "new", created.ID)
	assert.Len(t, a.Items(), 3)

	require.NoError(t, a.Delete(ctx, "2"))
	_, ok = a.ByID("2")
	assert.False(t, ok)

	repo.err = errors.New("offline")
	_, err = a.AddNote(ctx, "1", "hi")
	assert.Error(t, err)
	assert.Equal(t, StatusFailed, a.Status())
	assert.Len(t, a.Items(), 2)
}

func TestDashboard(t *testing.T) {
	now := time.Date(2026, 4, 14, 9, 0, 0, 0, time.UTC)
	apps := &fakeApplicants{list: []types.Applicant{
		{ID: "1", Status: types.ApplicantPending, AppliedDate: "2026-04-01T10:00:00Z"},
		{ID: "2", Status: types.ApplicantHired, AppliedDate: "2026-04-12T10:00:00Z"},
		{ID: "3", Status: types.ApplicantPending},
	}}
	jobs := &fakeJobs{list: []types.Job{{ID: "j1", Status: "active"}, {ID: "j2", Status: "closed"}, {ID: "j3"}}}
	ivs := &fakeInterviews{list: []types.Interview{
		{ID: "i1", Status: "scheduled", ScheduledAt: "2026-04-15T10:00:00Z"},
		{ID: "i2", Status: "cancelled", ScheduledAt: "2026-04-15T10:00:00Z"},
		{ID: "i3", Status: "scheduled", ScheduledAt: "2026-04-10T10:00:00Z"},
	}}

	d := &Dashboard{
		Applicants: NewApplicants(apps, anyone, nil),
		Jobs:       NewJobs(jobs, anyone, nil),
		Interviews: NewInterviews(ivs, anyone, nil),
		Now:        func() time.Time { return now },
	}
	require.NoError(t, d.Load(context.Background()))

	stats := d.Stats()
	assert.Equal(t, 3, stats.TotalApplicants)
	assert.Equal(t, 2, stats.ByStatus[types.ApplicantPending])
	assert.Equal(t, 1, stats.ActiveJobs)
	assert.Equal(t, 3, stats.TotalJobs)
	assert.Equal(t, 1, stats.UpcomingInterviews)
	require.Len(t, stats.RecentApplicants, 3)
	assert.Equal(t, "2", stats.RecentApplicants[0].ID)
	assert.Equal(t, "3", stats.RecentApplicants[2].ID)
}

func TestDashboard_OneFailureDoesNotBlockOthers(t *testing.T) {
	d := &Dashboard{
		Applicants: NewApplicants(&fakeApplicants{err: errors.New("offline")}, anyone, nil),
		Jobs:       NewJobs(&fakeJobs{list: []types.Job{{ID: "j1"}}}, anyone, nil),
		Interviews: NewInterviews(&fakeInterviews{}, anyone, nil),
	}
	assert.Error(t, d.Load(context.Background()))
	assert.Equal(t, StatusFailed, d.Applicants.Status())
	assert.Equal(t, StatusSucceeded, d.Jobs.Status())
	assert.Len(t, d.Jobs.Items(), 1)
}

func TestInterviews_Selectors(t *testing.T) {
	now := time.Date(2026, 4, 14, 9, 0, 0, 0, time.UTC)
	i := NewInterviews(&fakeInterviews{list: []types.Interview{
		{ID: "late", ApplicantID: "a1", Status: "scheduled", ScheduledAt: "2026-04-20T10:00:00Z"},
		{ID: "soon", ApplicantID: "a2", Status: "scheduled", ScheduledAt: "2026-04-15T10:00:00Z"},
	}}, anyone, nil)
	require.NoError(t, i.Fetch(context.Background()))

	up := i.Upcoming(now)
	require.Len(t, up, 2)
	assert.Equal(t, "soon", up[0].ID)
	assert.Len(t, i.ForApplicant("a1"), 1)

	got, err := i.AddFeedback(context.Background(), "late", types.Feedback{Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, types.InterviewCompleted, got.Status)
	assert.Len(t, i.Upcoming(now), 1)
}

func TestRefresher(t *testing.T) {
	var calls atomic.Int32
	r := StartRefresher(context.Background(), 5*time.Millisecond, func(context.Context) error {
		calls.Add(1)
		return errors.New("flaky")
	}, nil)

	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, time.Millisecond)
	r.Stop()
	r.Stop()

	after := calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, calls.Load())
}

func TestRefresher_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := StartRefresher(ctx, time.Hour, func(context.Context) error { return nil }, nil)
	cancel()

	select {
	case <-r.Done():
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop")
	}
}
