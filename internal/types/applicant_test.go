//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicant_Normalize(t *testing.T) {
	t.Run("general category forces sentinel job reference", func(t *testing.T) {
		a := Applicant{JobID: "job-7", ApplicationType: ApplicationGeneral}
		a.Normalize()
		assert.Equal(t, JobRefGeneral, a.JobID)
		assert.Equal(t, ApplicantPending, a.Status)
	})

	t.Run("general job reference infers category", func(t *testing.T) {
		a := Applicant{JobID: JobRefGeneral}
		a.Normalize()
		assert.Equal(t, ApplicationGeneral, a.ApplicationType)
	})

	t.Run("existing status kept", func(t *testing.T) {
		a := Applicant{JobID: "job-1", Status: ApplicantHired}
		a.Normalize()
		assert.Equal(t, ApplicantHired, a.Status)
		assert.Equal(t, ApplicationSpecificJob, a.ApplicationType)
	})
}

func TestAppendNote(t *testing.T) {
	assert.Equal(t, "first", AppendNote("", "first"))
	assert.Equal(t, "first\n\nsecond", AppendNote("first", "second"))
}

func TestHasLocalPrefix(t *testing.T) {
	assert.True(t, HasLocalPrefix("local_123"))
	assert.True(t, HasLocalPrefix("google_abc"))
	assert.False(t, HasLocalPrefix("64f1c0ffee"))
	assert.False(t, HasLocalPrefix("xlocal_1"))
}

func TestApplicationForm_Validation(t *testing.T) {
	validate := validator.New()

	tests := []struct {
		name    string
		form    ApplicationForm
		wantErr bool
	}{
		{"specific job", ApplicationForm{Name: "Sam", Email: "sam@example.com", JobID: "job-1"}, false},
		{"general without job id", ApplicationForm{Name: "Sam", Email: "sam@example.com", ApplicationType: ApplicationGeneral}, false},
		{"missing job id", ApplicationForm{Name: "Sam", Email: "sam@example.com"}, true},
		{"other needs title", ApplicationForm{Name: "Sam", Email: "sam@example.com", JobID: JobRefOther}, true},
		{"other with title", ApplicationForm{Name: "Sam", Email: "sam@example.com", JobID: JobRefOther, JobTitle: "Chef"}, false},
		{"missing email", ApplicationForm{Name: "Sam", JobID: "job-1"}, true},
		{"bad source", ApplicationForm{Name: "Sam", Email: "sam@example.com", JobID: "job-1", Source: "fax"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.form)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplicationForm_Applicant(t *testing.T) {
	t.Run("attachment yields placeholder resume", func(t *testing.T) {
		form := ApplicationForm{
			Name:   " Sam ",
			Email:  "sam@example.com",
			JobID:  "job-1",
			Resume: &Attachment{Filename: "cv.pdf", Data: []byte("%PDF")},
		}
		a := form.Applicant()
		assert.Equal(t, "Sam", a.Name)
		assert.Equal(t, "pending-upload:cv.pdf", a.Resume)
		assert.Equal(t, SourceCompany, a.Source)
		assert.Equal(t, ApplicantPending, a.Status)
	})

	t.Run("general category", func(t *testing.T) {
		a := ApplicationForm{Name: "Sam", Email: "s@x.io", ApplicationType: ApplicationGeneral}.Applicant()
		assert.Equal(t, JobRefGeneral, a.JobID)
	})
}

func TestApplicant_Stamp(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	a := Applicant{}
	a.Stamp(now)
	require.NotEmpty(t, a.CreatedAt)
	assert.Equal(t, a.CreatedAt, a.UpdatedAt)
	assert.Equal(t, "2026-03-01T09:30:00.000Z", a.AppliedDate)

	later := now.Add(time.Hour)
	a.Stamp(later)
	assert.Equal(t, "2026-03-01T09:30:00.000Z", a.CreatedAt)
	assert.Equal(t, "2026-03-01T10:30:00.000Z", a.UpdatedAt)
}
