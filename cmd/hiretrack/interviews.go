package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/hiretrack/internal/repository"
	"github.com/jonathan/hiretrack/internal/types"
)

var interviewsCmd = &cobra.Command{
	Use:   "interviews",
	Short: "List and manage interviews",
}

var (
	interviewFilter repository.InterviewFilter
	upcomingOnly    bool
	interviewInput  types.Interview
	feedbackInput   types.Feedback
)

var interviewsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List interviews",
	Args:  cobra.NoArgs,
	RunE: withApp(func(e *env, _ []string) error {
		st := e.app.InterviewsState
		if err := st.Fetch(e.ctx); err != nil {
			return err
		}
		var list []types.Interview
		if upcomingOnly {
			list = st.Upcoming(e.app.Dashboard.Now())
			list = repository.FilterInterviews(list, interviewFilter)
		} else {
			list = repository.FilterInterviews(st.Items(), interviewFilter)
		}
		return e.emit(list, func() { e.printer.PrintInterviews(list) })
	}),
}

var interviewsScheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Schedule an interview",
	Args:  cobra.NoArgs,
	RunE: withApp(func(e *env, _ []string) error {
		iv, err := e.app.InterviewsState.Schedule(e.ctx, interviewInput)
		if err != nil {
			return err
		}
		return e.emit(iv, func() { e.done("Scheduled interview %s at %s", iv.ID, iv.ScheduledAt) })
	}),
}

var interviewsStatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Change an interview's status",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(e *env, args []string) error {
		iv, err := e.app.InterviewsState.UpdateStatus(e.ctx, args[0], types.InterviewStatus(args[1]))
		if err != nil {
			return err
		}
		return e.emit(iv, func() { e.done("Interview %s is now %s", iv.ID, iv.Status) })
	}),
}

var interviewsFeedbackCmd = &cobra.Command{
	Use:   "feedback <id>",
	Short: "Record feedback and complete the interview",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(e *env, args []string) error {
		iv, err := e.app.InterviewsState.AddFeedback(e.ctx, args[0], feedbackInput)
		if err != nil {
			return err
		}
		return e.emit(iv, func() { e.printer.PrintInterviews([]types.Interview{iv}) })
	}),
}

var interviewsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an interview",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(e *env, args []string) error {
		if err := e.app.InterviewsState.Delete(e.ctx, args[0]); err != nil {
			return err
		}
		e.done("Deleted interview %s", args[0])
		return nil
	}),
}

func init() {
	f := interviewsListCmd.Flags()
	f.BoolVar(&upcomingOnly, "upcoming", false, "Only upcoming interviews, soonest first")
	f.StringVar(&interviewFilter.Status, "status", "", "Filter by status")
	f.StringVar(&interviewFilter.ApplicantID, "applicant", "", "Filter by applicant id")

	f = interviewsScheduleCmd.Flags()
	f.StringVar(&interviewInput.ApplicantID, "applicant", "", "Applicant id (required)")
	f.StringVar(&interviewInput.ApplicantName, "applicant-name", "", "Applicant name")
	f.StringVar(&interviewInput.JobID, "job", "", "Job id")
	f.StringVar(&interviewInput.JobTitle, "job-title", "", "Job title")
	f.StringVar(&interviewInput.ScheduledAt, "at", "", "Start time, RFC 3339 or YYYY-MM-DDTHH:MM")
	f.IntVar(&interviewInput.Duration, "duration", 0, "Length in minutes (default 60)")
	f.StringVar(&interviewInput.Type, "type", "", "phone, video or onsite")
	f.StringVar(&interviewInput.Location, "location", "", "Location or meeting link")
	f.StringSliceVar(&interviewInput.Interviewers, "interviewer", nil, "Interviewer, repeatable")
	f.StringVar(&interviewInput.Notes, "notes", "", "Notes")

	f = interviewsFeedbackCmd.Flags()
	f.IntVar(&feedbackInput.Rating, "rating", 0, "Rating from 1 to 5")
	f.StringVar(&feedbackInput.Strengths, "strengths", "", "Strengths")
	f.StringVar(&feedbackInput.Weaknesses, "weaknesses", "", "Weaknesses")
	f.StringVar(&feedbackInput.Recommendation, "recommendation", "", "Recommendation")
	f.StringVar(&feedbackInput.Notes, "notes", "", "Notes")

	interviewsCmd.AddCommand(interviewsListCmd, interviewsScheduleCmd, interviewsStatusCmd,
		interviewsFeedbackCmd, interviewsDeleteCmd)
	rootCmd.AddCommand(interviewsCmd)
}
