package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/hiretrack/internal/repository"
	"github.com/jonathan/hiretrack/internal/types"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List and manage job postings",
}

var (
	jobFilter repository.JobFilter
	jobInput  types.Job
)

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List job postings",
	Args:  cobra.NoArgs,
	RunE: withApp(func(e *env, _ []string) error {
		if err := e.app.JobsState.Fetch(e.ctx); err != nil {
			return err
		}
		jobs := repository.FilterJobs(e.app.JobsState.Items(), jobFilter)
		return e.emit(jobs, func() { e.printer.PrintJobs(jobs) })
	}),
}

var jobsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a job posting",
	Args:  cobra.NoArgs,
	RunE: withApp(func(e *env, _ []string) error {
		job, err := e.app.JobsState.Create(e.ctx, jobInput)
		if err != nil {
			return err
		}
		return e.emit(job, func() { e.done("Created job %s (%s)", job.ID, job.Title) })
	}),
}

var jobsStatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Change a posting's status",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(e *env, args []string) error {
		job, err := e.app.JobsState.UpdateStatus(e.ctx, args[0], types.JobStatus(args[1]))
		if err != nil {
			return err
		}
		return e.emit(job, func() { e.done("Job %s is now %s", job.ID, job.Status) })
	}),
}

var jobsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a posting",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(e *env, args []string) error {
		if err := e.app.JobsState.Delete(e.ctx, args[0]); err != nil {
			return err
		}
		e.done("Deleted job %s", args[0])
		return nil
	}),
}

var jobsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one posting",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(e *env, args []string) error {
		job, err := e.app.Jobs.Get(e.ctx, args[0], e.app.Actor(e.ctx))
		if err != nil {
			return err
		}
		return e.emit(job, func() {
			e.printer.PrintJobs([]types.Job{job})
			if job.Description != "" {
				fmt.Fprintln(e.cmd.OutOrStdout(), job.Description)
			}
		})
	}),
}

var jobSkills string

func init() {
	jobsListCmd.Flags().StringVar(&jobFilter.Status, "status", "", "Filter by status (all, active, draft, closed...)")
	jobsListCmd.Flags().StringVar(&jobFilter.Department, "department", "", "Filter by department")
	jobsListCmd.Flags().StringVar(&jobFilter.Search, "search", "", "Search titles and descriptions")

	jobsAddCmd.Flags().StringVar(&jobInput.Title, "title", "", "Job title (required)")
	jobsAddCmd.Flags().StringVar(&jobInput.Department, "department", "", "Department")
	jobsAddCmd.Flags().StringVar(&jobInput.Location, "location", "", "Location")
	jobsAddCmd.Flags().StringVar(&jobInput.Type, "type", "", "Employment type, e.g. full-time")
	jobsAddCmd.Flags().StringVar((*string)(&jobInput.Status), "status", "", "Initial status (default active)")
	jobsAddCmd.Flags().StringVar(&jobInput.Description, "description", "", "Description")
	jobsAddCmd.Flags().StringVar(&jobSkills, "skills", "", "Comma-separated skills")
	jobsAddCmd.PreRun = func(_ *cobra.Command, _ []string) {
		jobInput.Skills = splitList(jobSkills)
	}

	jobsCmd.AddCommand(jobsListCmd, jobsAddCmd, jobsStatusCmd, jobsDeleteCmd, jobsShowCmd)
	rootCmd.AddCommand(jobsCmd)
}

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
