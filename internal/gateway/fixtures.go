package gateway

import (
	"time"

	"github.com/jonathan/hiretrack/internal/types"
)

// Fixture identifiers, stable so demo sessions and tests can refer to them.
const (
	FixtureJobBackend   = "6650a1f2c3d4e5f601000001"
	FixtureJobDesigner  = "6650a1f2c3d4e5f601000002"
	FixtureJobDataDraft = "6650a1f2c3d4e5f601000003"
	FixtureJobClosed    = "6650a1f2c3d4e5f601000004"
)

func fixtureJobs(now time.Time) []types.Job {
	posted := types.FormatTimestamp(now.AddDate(0, 0, -14))
	return []types.Job{
		{
			ID: FixtureJobBackend, Title: "Senior Backend Engineer", Status: types.JobStatusActive,
			Department: "Engineering", Location: "Remote", Type: "full-time",
			Salary:      &types.SalaryRange{Min: 140000, Max: 175000, Currency: "USD"},
			Skills:      []string{"Go", "PostgreSQL", "Kubernetes"},
			Description: "Own the services behind our hiring pipeline.",
			PostedDate:  posted, ApplicationCount: 3, CreatedAt: posted, UpdatedAt: posted,
		},
		{
			ID: FixtureJobDesigner, Title: "Product Designer", Status: types.JobStatusOpen,
			Department: "Design", Location: "Berlin", Type: "full-time",
			Skills:      []string{"Figma", "User Research"},
			Description: "Shape the recruiter experience end to end.",
			PostedDate:  posted, ApplicationCount: 1, CreatedAt: posted, UpdatedAt: posted,
		},
		{
			ID: FixtureJobDataDraft, Title: "Data Analyst", Status: types.JobStatusDraft,
			Department: "Operations", Location: "Lisbon", Type: "contract",
			Skills: []string{"SQL", "Looker"}, CreatedAt: posted, UpdatedAt: posted,
		},
		{
			ID: FixtureJobClosed, Title: "Support Specialist", Status: types.JobStatusClosed,
			Department: "Customer Success", Location: "Toronto", Type: "part-time",
			PostedDate: types.FormatTimestamp(now.AddDate(0, -2, 0)), ClosingDate: types.FormatTimestamp(now.AddDate(0, -1, 0)),
			ApplicationCount: 1, CreatedAt: posted, UpdatedAt: posted,
		},
	}
}

func fixtureApplicants(now time.Time) []types.Applicant {
	day := func(n int) string { return types.FormatTimestamp(now.AddDate(0, 0, -n)) }
	return []types.Applicant{
		{
			ID: "6650a1f2c3d4e5f602000001", Name: "Priya Natarajan", Email: "priya.n@example.com",
			JobID: FixtureJobBackend, JobTitle: "Senior Backend Engineer", ApplicationType: types.ApplicationSpecificJob,
			Status: types.ApplicantInterview, Source: types.SourceLinkedIn, Skills: []string{"Go", "gRPC"},
			Experience: "7 years", AppliedDate: day(10), CreatedAt: day(10), UpdatedAt: day(3),
		},
		{
			ID: "6650a1f2c3d4e5f602000002", Name: "Marcus Bell", Email: "marcus.bell@example.com",
			JobID: FixtureJobBackend, JobTitle: "Senior Backend Engineer", ApplicationType: types.ApplicationSpecificJob,
			Status: types.ApplicantShortlisted, Source: types.SourceReferral,
			AppliedDate: day(8), CreatedAt: day(8), UpdatedAt: day(5),
		},
		{
			ID: "6650a1f2c3d4e5f602000003", Name: "Lena Okafor", Email: "lena.okafor@example.com",
			JobID: FixtureJobBackend, JobTitle: "Senior Backend Engineer", ApplicationType: types.ApplicationSpecificJob,
			Status: types.ApplicantPending, Source: types.SourceIndeed,
			AppliedDate: day(2), CreatedAt: day(2), UpdatedAt: day(2),
		},
		{
			ID: "6650a1f2c3d4e5f602000004", Name: "Tomás Ruiz", Email: "tomas.ruiz@example.com",
			JobID: FixtureJobDesigner, JobTitle: "Product Designer", ApplicationType: types.ApplicationSpecificJob,
			Status: types.ApplicantHired, Source: types.SourceCompany,
			Notes:       "Strong portfolio.",
			AppliedDate: day(30), CreatedAt: day(30), UpdatedAt: day(6),
		},
		{
			ID: "6650a1f2c3d4e5f602000005", Name: "Hana Suzuki", Email: "hana.suzuki@example.com",
			JobID: types.JobRefGeneral, JobTitle: "Open application", ApplicationType: types.ApplicationGeneral,
			Status: types.ApplicantPending, Source: types.SourceCompany,
			AppliedDate: day(1), CreatedAt: day(1), UpdatedAt: day(1),
		},
		{
			ID: "6650a1f2c3d4e5f602000006", Name: "Owen Clarke", Email: "owen.clarke@example.com",
			JobID: FixtureJobClosed, JobTitle: "Support Specialist", ApplicationType: types.ApplicationSpecificJob,
			Status: types.ApplicantRejected, Source: types.SourceOther,
			AppliedDate: day(45), CreatedAt: day(45), UpdatedAt: day(40),
		},
	}
}

func fixtureInterviews(now time.Time) []types.Interview {
	at := func(days, hour int) string {
		d := types.StartOfDay(now).AddDate(0, 0, days).Add(time.Duration(hour) * time.Hour)
		return types.FormatTimestamp(d)
	}
	created := types.FormatTimestamp(now.AddDate(0, 0, -3))
	return []types.Interview{
		{
			ID: "6650a1f2c3d4e5f603000001", ApplicantID: "6650a1f2c3d4e5f602000001", ApplicantName: "Priya Natarajan",
			JobID: FixtureJobBackend, JobTitle: "Senior Backend Engineer", ScheduledAt: at(1, 10), Duration: 60,
			Interviewers: []string{"Dana Whitfield"}, Type: "technical", Location: "Video call",
			Status: types.InterviewScheduled, CreatedAt: created, UpdatedAt: created,
		},
		{
			ID: "6650a1f2c3d4e5f603000002", ApplicantID: "6650a1f2c3d4e5f602000002", ApplicantName: "Marcus Bell",
			JobID: FixtureJobBackend, JobTitle: "Senior Backend Engineer", ScheduledAt: at(3, 14), Duration: 45,
			Interviewers: []string{"Dana Whitfield", "Sam Ortiz"}, Type: "screening", Location: "Phone",
			Status: types.InterviewScheduled, CreatedAt: created, UpdatedAt: created,
		},
		{
			ID: "6650a1f2c3d4e5f603000003", ApplicantID: "6650a1f2c3d4e5f602000004", ApplicantName: "Tomás Ruiz",
			JobID: FixtureJobDesigner, JobTitle: "Product Designer", ScheduledAt: at(-7, 11), Duration: 60,
			Interviewers: []string{"Ines Moreau"}, Type: "portfolio", Location: "Berlin office",
			Status: types.InterviewCompleted,
			Feedback: &types.Feedback{
				Rating: 5, Strengths: "Clear storytelling", Recommendation: "hire", SubmittedAt: at(-7, 13),
			},
			CreatedAt: created, UpdatedAt: created,
		},
	}
}
