package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hiretrack/internal/storage"
	"github.com/jonathan/hiretrack/internal/types"
)

func TestInterviews_ListNormalizesDates(t *testing.T) {
	remote := &stubRemote{interviews: []types.Interview{
		{ID: "1", ApplicantID: "a1", ScheduledAt: "garbage"},
		{ID: "2", ApplicantID: "a2", ScheduledAt: "2026-05-01T09:30:00Z", Status: "completed"},
	}}
	opts, _ := testOpts()

	got, err := NewInterviews(storage.NewMemory(), remote, opts...).List(context.Background(), plainUser)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "2026-04-14T10:00:00.000Z", got[0].ScheduledAt)
	assert.Equal(t, types.InterviewScheduled, got[0].Status)
	assert.Equal(t, "2026-05-01T09:30:00.000Z", got[1].ScheduledAt)
}

func TestInterviews_Upcoming(t *testing.T) {
	now := time.Date(2026, 4, 14, 12, 0, 0, 0, time.Local)
	today := now.Format("2006-01-02")
	future := now.AddDate(0, 0, 3).Format(time.RFC3339)

	remote := &stubRemote{interviews: []types.Interview{
		{ID: "cancelled", ScheduledAt: future, Status: "Cancelled"},
		{ID: "today", ScheduledAt: today, Status: "Scheduled"},
		{ID: "done", ScheduledAt: future, Status: "completed"},
	}}
	opts, _ := testOpts()

	got, err := NewInterviews(storage.NewMemory(), remote, opts...).Upcoming(context.Background(), plainUser, now)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "today", got[0].ID)
}

func TestInterviews_AddFeedback(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemory()
	seed(t, s, storage.KeyInterviews, []types.Interview{
		{ID: "local_1", ApplicantID: "a1", ScheduledAt: "2026-04-10T10:00:00Z", Status: types.InterviewScheduled},
	})
	remote := &stubRemote{}
	opts, _ := testOpts()
	repo := NewInterviews(s, remote, opts...)

	t.Run("rating out of range", func(t *testing.T) {
		_, err := repo.AddFeedback(ctx, "local_1", types.Feedback{Rating: 7}, plainUser)
		var verr *ErrValidation
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "rating", verr.Field)
	})

	t.Run("forces completed", func(t *testing.T) {
		got, err := repo.AddFeedback(ctx, "local_1", types.Feedback{Rating: 4, Recommendation: "hire"}, plainUser)
		require.NoError(t, err)

		assert.Equal(t, types.InterviewCompleted, got.Status)
		require.NotNil(t, got.Feedback)
		assert.Equal(t, 4, got.Feedback.Rating)
		assert.Equal(t, "2026-04-14T10:00:00.000Z", got.Feedback.SubmittedAt)
		assert.Equal(t, types.InterviewCompleted, repo.Load(ctx)[0].Status)
	})

	t.Run("remote", func(t *testing.T) {
		got, err := repo.AddFeedback(ctx, "srv-1", types.Feedback{Notes: "solid"}, plainUser)
		require.NoError(t, err)
		assert.Equal(t, types.InterviewCompleted, got.Status)
		assert.Equal(t, []string{"SubmitFeedback"}, remote.called())
	})
}

func TestInterviews_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("applicant required", func(t *testing.T) {
		opts, _ := testOpts()
		_, err := NewInterviews(storage.NewMemory(), &stubRemote{}, opts...).
			Create(ctx, types.Interview{ScheduledAt: "2026-04-20T10:00:00Z"}, plainUser)
		var verr *ErrValidation
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "applicantId", verr.Field)
	})

	t.Run("distinguished", func(t *testing.T) {
		s := storage.NewMemory()
		remote := &stubRemote{}
		opts, _ := testOpts()

		got, err := NewInterviews(s, remote, opts...).
			Create(ctx, types.Interview{ApplicantID: "google_a", ScheduledAt: "2026-04-20 10:00"}, googleUser)
		require.NoError(t, err)

		assert.Equal(t, "google_fixed", got.ID)
		assert.Equal(t, 60, got.Duration)
		assert.Equal(t, types.InterviewScheduled, got.Status)
		assert.Empty(t, remote.called())
		assert.Len(t, stored[types.Interview](t, s, storage.KeyInterviewsSecondary), 1)
	})

	t.Run("remote failure saves locally", func(t *testing.T) {
		s := storage.NewMemory()
		opts, rec := testOpts()

		got, err := NewInterviews(s, &stubRemote{err: errOffline}, opts...).
			Create(ctx, types.Interview{ApplicantID: "srv-a", ScheduledAt: "2026-04-20T10:00:00Z"}, plainUser)
		require.NoError(t, err)

		assert.Equal(t, "local_fixed", got.ID)
		assert.True(t, got.SavedLocally)
		assert.Len(t, rec.Messages(), 1)
	})
}

func TestInterviews_GetAndDelete(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemory()
	seed(t, s, storage.KeyInterviews, []types.Interview{{ID: "local_1", ApplicantID: "a1", ScheduledAt: "2026-04-20T10:00:00Z"}})
	remote := &stubRemote{interviews: []types.Interview{{ID: "srv-1", ApplicantID: "a2", ScheduledAt: "2026-04-21T10:00:00Z"}}}
	opts, _ := testOpts()
	repo := NewInterviews(s, remote, opts...)

	got, err := repo.Get(ctx, "srv-1", plainUser)
	require.NoError(t, err)
	assert.Equal(t, "a2", got.ApplicantID)

	got, err = repo.Get(ctx, "local_1", plainUser)
	require.NoError(t, err)
	assert.Equal(t, "a1", got.ApplicantID)

	_, err = repo.Get(ctx, "nope", plainUser)
	var nf *ErrNotFound
	assert.ErrorAs(t, err, &nf)

	require.NoError(t, repo.Delete(ctx, "srv-1", plainUser))
	assert.Contains(t, remote.called(), "DeleteInterview")
}
