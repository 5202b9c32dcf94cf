package storage

import (
	"regexp"
	"strings"
)

// Keys of the persisted collections. Each entity has a primary key and a
// secondary key holding records of the distinguished (Google demo) class.
const (
	KeyApplicants          = "applications"
	KeyApplicantsSecondary = "google_applications"
	KeyJobs                = "jobs"
	KeyJobsSecondary       = "google_jobs"
	KeyInterviews          = "interviews"
	KeyInterviewsSecondary = "google_interviews"

	KeyUser           = "user"
	KeyToken          = "token"
	KeyDemoMode       = "demo_mode"
	KeySavedQuestions = "saved_questions"
	KeyInterviewers   = "interviewers"

	customQuestionsPrefix = "custom_questions_"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// RoleSlug lower-cases role and collapses everything but letters and digits
// into single dashes.
func RoleSlug(role string) string {
	s := nonSlug.ReplaceAllString(strings.ToLower(strings.TrimSpace(role)), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "general"
	}
	return s
}

// CustomQuestionsKey returns the key holding the custom questions of role.
func CustomQuestionsKey(role string) string {
	return customQuestionsPrefix + RoleSlug(role)
}
