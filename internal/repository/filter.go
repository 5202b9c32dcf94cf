package repository

import (
	"strings"
	"time"

	"github.com/jonathan/hiretrack/internal/types"
)

// Wildcard disables a filter criterion.
const Wildcard = "all"

// criterion returns v, or "" when v is empty or the wildcard.
func criterion(v string) string {
	v = strings.TrimSpace(v)
	if v == Wildcard {
		return ""
	}
	return v
}

// ApplicantFilter holds the applicant list criteria. Empty or "all" fields
// are ignored.
type ApplicantFilter struct {
	Status string `json:"status,omitempty"`
	Source string `json:"source,omitempty"`
	JobID  string `json:"jobId,omitempty"`
	Search string `json:"search,omitempty"`
}

// FilterApplicants applies, in order: status, source, job reference and a
// case-insensitive search over name, email and job title.
//
// The job reference "general" matches either the general job id or the
// general application type; "other" matches only the other job id.
func FilterApplicants(list []types.Applicant, f ApplicantFilter) []types.Applicant {
	status := criterion(f.Status)
	source := criterion(f.Source)
	jobID := criterion(f.JobID)
	search := strings.ToLower(criterion(f.Search))

	out := make([]types.Applicant, 0, len(list))
	for _, a := range list {
		if status != "" && string(a.Status) != status {
			continue
		}
		if source != "" && string(a.Source) != source {
			continue
		}
		if jobID != "" && !matchesJobRef(a, jobID) {
			continue
		}
		if search != "" && !containsAny(search, a.Name, a.Email, a.JobTitle) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func matchesJobRef(a types.Applicant, ref string) bool {
	switch ref {
	case types.JobRefGeneral:
		return a.JobID == types.JobRefGeneral || a.ApplicationType == types.ApplicationGeneral
	case types.JobRefOther:
		return a.JobID == types.JobRefOther
	default:
		return a.JobID == ref
	}
}

func containsAny(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// JobFilter holds the job list criteria.
type JobFilter struct {
	Status     string `json:"status,omitempty"`
	Department string `json:"department,omitempty"`
	Search     string `json:"search,omitempty"`
}

// FilterJobs applies status (case-insensitive), department (exact) and a
// search over title, department and location.
func FilterJobs(list []types.Job, f JobFilter) []types.Job {
	status := types.NormalizeJobStatus(types.JobStatus(criterion(f.Status)))
	dept := criterion(f.Department)
	search := strings.ToLower(criterion(f.Search))

	out := make([]types.Job, 0, len(list))
	for _, j := range list {
		if status != "" && types.NormalizeJobStatus(j.Status) != status {
			continue
		}
		if dept != "" && j.Department != dept {
			continue
		}
		if search != "" && !containsAny(search, j.Title, j.Department, j.Location) {
			continue
		}
		out = append(out, j)
	}
	return out
}

// InterviewFilter holds the interview list criteria.
type InterviewFilter struct {
	Status      string
	ApplicantID string
	// UpcomingAt, when set, keeps only interviews upcoming at that time.
	UpcomingAt time.Time
}

// FilterInterviews applies a case-insensitive status substring, the
// applicant id and the upcoming classification.
func FilterInterviews(list []types.Interview, f InterviewFilter) []types.Interview {
	status := strings.ToLower(criterion(f.Status))
	applicant := criterion(f.ApplicantID)

	out := make([]types.Interview, 0, len(list))
	for _, iv := range list {
		if status != "" && !strings.Contains(strings.ToLower(string(iv.Status)), status) {
			continue
		}
		if applicant != "" && iv.ApplicantID != applicant {
			continue
		}
		if !f.UpcomingAt.IsZero() && !iv.IsUpcoming(f.UpcomingAt) {
			continue
		}
		out = append(out, iv)
	}
	return out
}
