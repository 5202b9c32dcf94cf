package types

import (
	"strings"
	"time"
)

// ApplicantStatus is the hiring stage of an applicant.
type ApplicantStatus string

// Applicant statuses
const (
	ApplicantPending     ApplicantStatus = "pending"
	ApplicantShortlisted ApplicantStatus = "shortlisted"
	ApplicantInterview   ApplicantStatus = "interview"
	ApplicantHired       ApplicantStatus = "hired"
	ApplicantRejected    ApplicantStatus = "rejected"
)

// ApplicantStatuses lists every applicant status in pipeline order.
var ApplicantStatuses = []ApplicantStatus{
	ApplicantPending,
	ApplicantShortlisted,
	ApplicantInterview,
	ApplicantHired,
	ApplicantRejected,
}

// Source is where an application came from.
type Source string

// Application sources
const (
	SourceLinkedIn Source = "linkedin"
	SourceIndeed   Source = "indeed"
	SourceCompany  Source = "company"
	SourceReferral Source = "referral"
	SourceOther    Source = "other"
)

// ApplicationType distinguishes applications to a posting from open ones.
type ApplicationType string

// Application types
const (
	ApplicationSpecificJob ApplicationType = "specific-job"
	ApplicationGeneral     ApplicationType = "general"
)

// Sentinel job references used in place of a real job identifier.
const (
	JobRefGeneral = "general"
	JobRefOther   = "other"
)

// Identifier prefixes that mark where a record was created.
const (
	LocalIDPrefix  = "local_"
	GoogleIDPrefix = "google_"
)

// IsSentinelJobRef reports whether ref is one of the sentinel job references.
func IsSentinelJobRef(ref string) bool {
	return ref == JobRefGeneral || ref == JobRefOther
}

// HasLocalPrefix reports whether id was generated client side.
func HasLocalPrefix(id string) bool {
	return strings.HasPrefix(id, LocalIDPrefix) || strings.HasPrefix(id, GoogleIDPrefix)
}

// Applicant is a candidate's application record.
type Applicant struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone,omitempty"`
	JobID           string          `json:"jobId,omitempty"`
	JobTitle        string          `json:"jobTitle,omitempty"`
	ApplicationType ApplicationType `json:"applicationType,omitempty"`
	Status          ApplicantStatus `json:"status,omitempty"`
	Source          Source          `json:"source,omitempty"`
	Resume          string          `json:"resume,omitempty"`
	CoverLetter     string          `json:"coverLetter,omitempty"`
	Experience      string          `json:"experience,omitempty"`
	Skills          []string        `json:"skills,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	AppliedDate     string          `json:"appliedDate,omitempty"`
	CreatedAt       string          `json:"createdAt,omitempty"`
	UpdatedAt       string          `json:"updatedAt,omitempty"`
	SavedLocally    bool            `json:"savedLocally,omitempty"`
	IsGoogleDemo    bool            `json:"isGoogleDemo,omitempty"`
}

// GetID returns the applicant identifier.
func (a Applicant) GetID() string { return a.ID }

// Normalize applies defaults and keeps the job reference consistent with the
// application type.
func (a *Applicant) Normalize() {
	if a.Status == "" {
		a.Status = ApplicantPending
	}
	if a.ApplicationType == ApplicationGeneral {
		a.JobID = JobRefGeneral
	}
	if a.ApplicationType == "" {
		if a.JobID == JobRefGeneral {
			a.ApplicationType = ApplicationGeneral
		} else {
			a.ApplicationType = ApplicationSpecificJob
		}
	}
}

// Stamp sets creation, application and update timestamps on a new record.
func (a *Applicant) Stamp(now time.Time) {
	ts := FormatTimestamp(now)
	if a.AppliedDate == "" {
		a.AppliedDate = ts
	}
	if a.CreatedAt == "" {
		a.CreatedAt = ts
	}
	a.UpdatedAt = ts
}

// AppendNote adds text to existing notes separated by a blank line.
func AppendNote(existing, text string) string {
	if existing == "" {
		return text
	}
	return existing + "\n\n" + text
}

// Attachment is a file submitted with an application form.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ApplicationForm is the input of an application submission. JobID is
// required unless the application is general.
type ApplicationForm struct {
	Name            string          `json:"name" validate:"required"`
	Email           string          `json:"email" validate:"required,email"`
	Phone           string          `json:"phone,omitempty"`
	JobID           string          `json:"jobId,omitempty" validate:"required_unless=ApplicationType general"`
	JobTitle        string          `json:"jobTitle,omitempty" validate:"required_if=JobID other"`
	ApplicationType ApplicationType `json:"applicationType,omitempty" validate:"omitempty,oneof=specific-job general"`
	Source          Source          `json:"source,omitempty" validate:"omitempty,oneof=linkedin indeed company referral other"`
	CoverLetter     string          `json:"coverLetter,omitempty"`
	Experience      string          `json:"experience,omitempty"`
	Skills          []string        `json:"skills,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	ResumeURL       string          `json:"resume,omitempty" validate:"omitempty,url"`
	Resume          *Attachment     `json:"-"`
}

// Applicant converts the form into the persisted record shape. Both the
// multipart and JSON submission paths produce this shape.
func (f ApplicationForm) Applicant() Applicant {
	a := Applicant{
		Name:            strings.TrimSpace(f.Name),
		Email:           strings.TrimSpace(f.Email),
		Phone:           f.Phone,
		JobID:           f.JobID,
		JobTitle:        f.JobTitle,
		ApplicationType: f.ApplicationType,
		Source:          f.Source,
		CoverLetter:     f.CoverLetter,
		Experience:      f.Experience,
		Skills:          f.Skills,
		Notes:           f.Notes,
		Resume:          f.ResumeURL,
	}
	if a.Source == "" {
		a.Source = SourceCompany
	}
	if f.Resume != nil && a.Resume == "" {
		a.Resume = "pending-upload:" + f.Resume.Filename
	}
	a.Normalize()
	return a
}
