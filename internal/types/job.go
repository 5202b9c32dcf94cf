package types

import (
	"strings"
	"time"
)

// JobStatus is the lifecycle state of a job posting.
type JobStatus string

// Job statuses
const (
	JobStatusOpen      JobStatus = "open"
	JobStatusClosed    JobStatus = "closed"
	JobStatusDraft     JobStatus = "draft"
	JobStatusActive    JobStatus = "active"
	JobStatusPublished JobStatus = "published"
)

// NormalizeJobStatus lower-cases and trims a status for comparison.
func NormalizeJobStatus(s JobStatus) JobStatus {
	return JobStatus(strings.ToLower(strings.TrimSpace(string(s))))
}

// SalaryRange is the compensation band advertised on a posting.
type SalaryRange struct {
	Min      int    `json:"min,omitempty"`
	Max      int    `json:"max,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// Job is a job posting.
type Job struct {
	ID               string       `json:"id"`
	Title            string       `json:"title" validate:"required"`
	Status           JobStatus    `json:"status,omitempty"`
	Department       string       `json:"department,omitempty"`
	Location         string       `json:"location,omitempty"`
	Type             string       `json:"type,omitempty"`
	Salary           *SalaryRange `json:"salary,omitempty"`
	Skills           []string     `json:"skills,omitempty"`
	Description      string       `json:"description,omitempty"`
	PostedDate       string       `json:"postedDate,omitempty"`
	ClosingDate      string       `json:"closingDate,omitempty"`
	ApplicationCount int          `json:"applicationCount"`
	SavedLocally     bool         `json:"savedLocally,omitempty"`
	IsGoogleDemo     bool         `json:"isGoogleDemo,omitempty"`
	CreatedAt        string       `json:"createdAt,omitempty"`
	UpdatedAt        string       `json:"updatedAt,omitempty"`
}

// GetID returns the job identifier.
func (j Job) GetID() string { return j.ID }

// IsActive reports whether the posting counts as active. A missing status is
// not active.
func (j Job) IsActive() bool {
	switch NormalizeJobStatus(j.Status) {
	case JobStatusActive, JobStatusOpen, JobStatusPublished:
		return true
	default:
		return false
	}
}

// Stamp sets the creation and update timestamps on a new posting.
func (j *Job) Stamp(now time.Time) {
	ts := FormatTimestamp(now)
	if j.CreatedAt == "" {
		j.CreatedAt = ts
	}
	if j.PostedDate == "" {
		j.PostedDate = ts
	}
	j.UpdatedAt = ts
}
