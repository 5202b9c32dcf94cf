package types

import (
	"strings"
	"time"
)

// InterviewStatus is the state of a scheduled interview.
type InterviewStatus string

// Interview statuses
const (
	InterviewScheduled InterviewStatus = "scheduled"
	InterviewCompleted InterviewStatus = "completed"
	InterviewCancelled InterviewStatus = "cancelled"
)

// Feedback is the interviewer's assessment. Every field is optional.
type Feedback struct {
	Rating         int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Strengths      string `json:"strengths,omitempty"`
	Weaknesses     string `json:"weaknesses,omitempty"`
	Recommendation string `json:"recommendation,omitempty"`
	Notes          string `json:"notes,omitempty"`
	SubmittedAt    string `json:"submittedAt,omitempty"`
}

// Interview is a scheduled conversation with an applicant.
type Interview struct {
	ID            string          `json:"id"`
	ApplicantID   string          `json:"applicantId" validate:"required"`
	ApplicantName string          `json:"applicantName,omitempty"`
	JobID         string          `json:"jobId,omitempty"`
	JobTitle      string          `json:"jobTitle,omitempty"`
	ScheduledAt   string          `json:"scheduledAt" validate:"required"`
	Duration      int             `json:"duration,omitempty" validate:"omitempty,min=0"`
	Interviewers  []string        `json:"interviewers,omitempty"`
	Type          string          `json:"type,omitempty"`
	Location      string          `json:"location,omitempty"`
	Status        InterviewStatus `json:"status,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Feedback      *Feedback       `json:"feedback,omitempty"`
	SavedLocally  bool            `json:"savedLocally,omitempty"`
	IsGoogleDemo  bool            `json:"isGoogleDemo,omitempty"`
	CreatedAt     string          `json:"createdAt,omitempty"`
	UpdatedAt     string          `json:"updatedAt,omitempty"`
}

// GetID returns the interview identifier.
func (iv Interview) GetID() string { return iv.ID }

// Normalize rewrites ScheduledAt to RFC3339, substituting now for a missing or
// unparseable value, and defaults the status to scheduled.
func (iv *Interview) Normalize(now time.Time) {
	t, err := ParseTimestamp(iv.ScheduledAt)
	if err != nil {
		t = now
	}
	iv.ScheduledAt = FormatTimestamp(t)
	if iv.Status == "" {
		iv.Status = InterviewScheduled
	}
	if iv.Duration == 0 {
		iv.Duration = 60
	}
}

// ScheduledTime parses ScheduledAt, returning the zero time when invalid.
func (iv Interview) ScheduledTime() time.Time {
	t, _ := ParseTimestamp(iv.ScheduledAt)
	return t
}

// IsUpcoming reports whether the interview is still scheduled for today or
// later. Status matching is by substring: anything containing "cancel" or
// "complet" is excluded regardless of the rest of the text.
func (iv Interview) IsUpcoming(now time.Time) bool {
	status := strings.ToLower(strings.TrimSpace(string(iv.Status)))
	if status == "" {
		status = string(InterviewScheduled)
	}
	if strings.Contains(status, "cancel") || strings.Contains(status, "complet") {
		return false
	}
	if !strings.Contains(status, "schedul") {
		return false
	}
	t, err := ParseTimestamp(iv.ScheduledAt)
	if err != nil {
		return false
	}
	return !t.Before(StartOfDay(now))
}

// Stamp sets creation and update timestamps on a new interview.
func (iv *Interview) Stamp(now time.Time) {
	ts := FormatTimestamp(now)
	if iv.CreatedAt == "" {
		iv.CreatedAt = ts
	}
	iv.UpdatedAt = ts
}
