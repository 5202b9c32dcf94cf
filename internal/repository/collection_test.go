package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hiretrack/internal/storage"
	"github.com/jonathan/hiretrack/internal/types"
)

func TestLoad_MergesNamespaces(t *testing.T) {
	s := storage.NewMemory()
	seed(t, s, storage.KeyApplicants, []types.Applicant{{ID: "1", Status: types.ApplicantPending}})
	seed(t, s, storage.KeyApplicantsSecondary, []types.Applicant{
		{ID: "1", Status: types.ApplicantShortlisted},
		{ID: "2", Status: types.ApplicantHired},
	})

	opts, _ := testOpts()
	repo := NewApplicants(s, &stubRemote{}, opts...)
	got := repo.Load(context.Background())

	want := []types.Applicant{
		{ID: "1", Status: types.ApplicantPending},
		{ID: "2", Status: types.ApplicantHired},
	}
	assert.Equal(t, want, got)
	assert.Equal(t, want, stored[types.Applicant](t, s, storage.KeyApplicants))
	assert.Equal(t, want, stored[types.Applicant](t, s, storage.KeyApplicantsSecondary))
}

func TestLoad_CorruptPrimaryHeals(t *testing.T) {
	s := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, storage.KeyJobs, "{not json"))
	seed(t, s, storage.KeyJobsSecondary, []types.Job{{ID: "j1", Title: "Cook"}})

	opts, _ := testOpts()
	got := NewJobs(s, &stubRemote{}, opts...).Load(ctx)

	require.Len(t, got, 1)
	assert.Equal(t, "j1", got[0].ID)
	assert.Equal(t, got, stored[types.Job](t, s, storage.KeyJobs))
}

func TestLoad_EmptyLeavesKeysAlone(t *testing.T) {
	s := storage.NewMemory()
	opts, _ := testOpts()
	got := NewInterviews(s, &stubRemote{}, opts...).Load(context.Background())

	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, s.Keys())
}

func TestLoad_StoreFailure(t *testing.T) {
	opts, _ := testOpts()
	repo := NewApplicants(failingStore{err: errors.New("quota exceeded")}, &stubRemote{}, opts...)
	assert.Empty(t, repo.Load(context.Background()))
}

func TestMergeByID(t *testing.T) {
	secondary := []types.Job{{ID: "a", Title: "A2"}, {ID: "b"}, {ID: "a", Title: "A3"}, {Title: "no id"}}
	primary := []types.Job{{ID: "c"}, {ID: "a", Title: "A1"}, {Title: "no id either"}}

	got := mergeByID(secondary, primary)

	ids := make([]string, 0, len(got))
	for _, j := range got {
		ids = append(ids, j.ID)
	}
	assert.Equal(t, []string{"a", "b", "", "c", ""}, ids)
	assert.Equal(t, "A1", got[0].Title)
}

func TestOverlay(t *testing.T) {
	remote := []types.Job{{ID: "1", Title: "remote"}, {ID: "2"}}
	local := []types.Job{{ID: "1", Title: "local"}, {ID: "local_3"}}

	got := overlay(remote, local)

	require.Len(t, got, 3)
	assert.Equal(t, "remote", got[0].Title)
	assert.Equal(t, "local_3", got[2].ID)
}

func TestCollection_UpdateTouchesEveryCopy(t *testing.T) {
	s := storage.NewMemory()
	ctx := context.Background()
	seed(t, s, storage.KeyJobs, []types.Job{{ID: "local_1", Status: "draft"}})
	seed(t, s, storage.KeyJobsSecondary, []types.Job{{ID: "local_1", Status: "draft"}, {ID: "local_2"}})

	c := collection[types.Job]{store: s, primary: storage.KeyJobs, secondary: storage.KeyJobsSecondary, log: testLogger()}
	got, ok := c.update(ctx, "local_1", func(j *types.Job) { j.Status = "closed" })

	require.True(t, ok)
	assert.Equal(t, types.JobStatus("closed"), got.Status)
	assert.Equal(t, types.JobStatus("closed"), stored[types.Job](t, s, storage.KeyJobs)[0].Status)
	assert.Equal(t, types.JobStatus("closed"), stored[types.Job](t, s, storage.KeyJobsSecondary)[0].Status)

	_, ok = c.update(ctx, "missing", func(*types.Job) {})
	assert.False(t, ok)
}
