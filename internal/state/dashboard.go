package state

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/hiretrack/internal/types"
)

// RecentLimit caps Stats.RecentApplicants.
const RecentLimit = 5

// Stats is the dashboard projection.
type Stats struct {
	TotalApplicants    int                           `json:"totalApplicants"`
	ByStatus           map[types.ApplicantStatus]int `json:"byStatus"`
	ActiveJobs         int                           `json:"activeJobs"`
	TotalJobs          int                           `json:"totalJobs"`
	UpcomingInterviews int                           `json:"upcomingInterviews"`
	RecentApplicants   []types.Applicant             `json:"recentApplicants"`
}

// Dashboard loads the three containers together.
type Dashboard struct {
	Applicants *Applicants
	Jobs       *Jobs
	Interviews *Interviews
	Now        func() time.Time
}

// Load fetches every container concurrently. Each container settles on its
// own; the first error is returned.
func (d *Dashboard) Load(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return d.Applicants.Fetch(ctx) })
	g.Go(func() error { return d.Jobs.Fetch(ctx) })
	g.Go(func() error { return d.Interviews.Fetch(ctx) })
	return g.Wait()
}

// Stats projects the loaded containers.
func (d *Dashboard) Stats() Stats {
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	applicants := d.Applicants.Items()
	return Stats{
		TotalApplicants:    len(applicants),
		ByStatus:           d.Applicants.CountByStatus(),
		ActiveJobs:         len(d.Jobs.Active()),
		TotalJobs:          len(d.Jobs.Items()),
		UpcomingInterviews: len(d.Interviews.Upcoming(now())),
		RecentApplicants:   recent(applicants, RecentLimit),
	}
}

// recent returns up to n applicants, newest application first. Records
// without a parseable date sort last.
func recent(list []types.Applicant, n int) []types.Applicant {
	sorted := append([]types.Applicant(nil), list...)
	applied := func(a types.Applicant) time.Time {
		t, _ := types.ParseTimestamp(a.AppliedDate)
		return t
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return applied(sorted[i]).After(applied(sorted[j]))
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
