// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/hiretrack/internal/notify"
	"github.com/jonathan/hiretrack/internal/state"
	"github.com/jonathan/hiretrack/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in summaries
	maxItemsToShow = 5
)

// Printer handles formatted output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to n runes with a trailing ellipsis.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// boxLine fits s to the inner box width, padding by rune count so the
// borders line up with non-ASCII text.
func boxLine(s string) string {
	s = truncate(s, boxWidth-4)
	return s + strings.Repeat(" ", boxWidth-4-utf8.RuneCountInString(s))
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", boxLine(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", boxLine(line))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// localMark flags records that only exist on this machine.
func localMark(saved bool) string {
	if saved {
		return " *"
	}
	return ""
}

// PrintJobs outputs one line per posting.
func (p *Printer) PrintJobs(jobs []types.Job) {
	var sb strings.Builder
	if len(jobs) == 0 {
		sb.WriteString("No jobs.")
	}
	for _, j := range jobs {
		sb.WriteString(fmt.Sprintf("%-24s %-10s %s%s\n", truncate(j.ID, 24), j.Status, j.Title, localMark(j.SavedLocally)))
		if j.Department != "" || j.Location != "" {
			sb.WriteString(fmt.Sprintf("%-24s %-10s %s\n", "", "", strings.Trim(j.Department+" · "+j.Location, " ·")))
		}
	}
	p.printBox(fmt.Sprintf("JOBS (%d)", len(jobs)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintApplicants outputs one line per application.
func (p *Printer) PrintApplicants(list []types.Applicant) {
	var sb strings.Builder
	if len(list) == 0 {
		sb.WriteString("No applicants.")
	}
	for _, a := range list {
		job := a.JobTitle
		if job == "" {
			job = a.JobID
		}
		sb.WriteString(fmt.Sprintf("%-24s %-12s %s%s\n", truncate(a.ID, 24), a.Status, a.Name, localMark(a.SavedLocally)))
		sb.WriteString(fmt.Sprintf("%-24s %-12s %s · %s\n", "", "", a.Email, job))
	}
	p.printBox(fmt.Sprintf("APPLICANTS (%d)", len(list)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintApplicant outputs a single application in full.
func (p *Printer) PrintApplicant(a *types.Applicant) {
	if a == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID:       %s%s\n", a.ID, localMark(a.SavedLocally)))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", a.Email))
	sb.WriteString(fmt.Sprintf("Job:      %s (%s)\n", a.JobTitle, a.JobID))
	sb.WriteString(fmt.Sprintf("Status:   %s\n", a.Status))
	sb.WriteString(fmt.Sprintf("Source:   %s\n", a.Source))
	if a.Resume != "" {
		sb.WriteString(fmt.Sprintf("Resume:   %s\n", a.Resume))
	}
	if a.AppliedDate != "" {
		sb.WriteString(fmt.Sprintf("Applied:  %s\n", a.AppliedDate))
	}
	if a.Notes != "" {
		sb.WriteString("\nNotes:\n")
		for _, n := range strings.Split(a.Notes, "\n\n") {
			sb.WriteString(fmt.Sprintf("  • %s\n", n))
		}
	}

	p.printBox(strings.ToUpper(a.Name), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintInterviews outputs one line per interview.
func (p *Printer) PrintInterviews(list []types.Interview) {
	var sb strings.Builder
	if len(list) == 0 {
		sb.WriteString("No interviews.")
	}
	for _, iv := range list {
		who := iv.ApplicantName
		if who == "" {
			who = iv.ApplicantID
		}
		sb.WriteString(fmt.Sprintf("%-24s %-10s %s%s\n", truncate(iv.ScheduledAt, 24), iv.Status, who, localMark(iv.SavedLocally)))
		line := iv.ID
		if iv.Type != "" {
			line += " · " + iv.Type
		}
		if iv.Feedback != nil && iv.Feedback.Rating > 0 {
			line += fmt.Sprintf(" · %s", strings.Repeat("★", iv.Feedback.Rating))
		}
		sb.WriteString(fmt.Sprintf("%-24s %-10s %s\n", "", "", line))
	}
	p.printBox(fmt.Sprintf("INTERVIEWS (%d)", len(list)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDashboard outputs the dashboard counters and the latest applicants.
func (p *Printer) PrintDashboard(stats state.Stats) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Applicants:           %d\n", stats.TotalApplicants))
	sb.WriteString(fmt.Sprintf("Jobs (active/total):  %d/%d\n", stats.ActiveJobs, stats.TotalJobs))
	sb.WriteString(fmt.Sprintf("Upcoming interviews:  %d\n", stats.UpcomingInterviews))

	if len(stats.ByStatus) > 0 {
		sb.WriteString("\nBy status:\n")
		statuses := make([]string, 0, len(stats.ByStatus))
		for s := range stats.ByStatus {
			statuses = append(statuses, string(s))
		}
		sort.Strings(statuses)
		for _, s := range statuses {
			sb.WriteString(fmt.Sprintf("  %-12s %d\n", s, stats.ByStatus[types.ApplicantStatus(s)]))
		}
	}

	if len(stats.RecentApplicants) > 0 {
		sb.WriteString("\nRecent:\n")
		count := min(len(stats.RecentApplicants), maxItemsToShow)
		for i := 0; i < count; i++ {
			a := stats.RecentApplicants[i]
			sb.WriteString(fmt.Sprintf("  • %s (%s)\n", a.Name, a.Status))
		}
	}

	p.printBox("DASHBOARD", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintQuestions outputs a question bank.
func (p *Printer) PrintQuestions(role string, qs []types.Question) {
	var sb strings.Builder
	if len(qs) == 0 {
		sb.WriteString("No questions.")
	}
	for i, q := range qs {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, q.Text))
		meta := strings.Trim(q.Category+" · "+q.Difficulty, " ·")
		if meta != "" {
			sb.WriteString(fmt.Sprintf("   [%s] %s\n", meta, q.ID))
		} else {
			sb.WriteString(fmt.Sprintf("   %s\n", q.ID))
		}
	}
	p.printBox("QUESTIONS: "+strings.ToUpper(role), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintInterviewers outputs the interviewer directory.
func (p *Printer) PrintInterviewers(list []types.Interviewer) {
	var sb strings.Builder
	if len(list) == 0 {
		sb.WriteString("No interviewers.")
	}
	for _, iv := range list {
		sb.WriteString(fmt.Sprintf("%-20s %s <%s>\n", truncate(iv.ID, 20), iv.Name, iv.Email))
	}
	p.printBox("INTERVIEWERS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintNotices outputs recorded user-facing notices.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintNotices(msgs []notify.Message) {
	for _, m := range msgs {
		icon := "ℹ"
		switch m.Severity {
		case notify.Warning:
			icon = "⚠"
		case notify.Error:
			icon = "✖"
		case notify.Success:
			icon = "✅"
		}
		fmt.Fprintf(p.out, "%s %s\n", icon, m.Text)
	}
}
