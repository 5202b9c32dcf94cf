package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/hiretrack/internal/repository"
	"github.com/jonathan/hiretrack/internal/types"
)

var applicantsCmd = &cobra.Command{
	Use:     "applicants",
	Aliases: []string{"applications"},
	Short:   "List and manage applicants",
}

var (
	applicantFilter repository.ApplicantFilter
	applicationForm types.ApplicationForm
	resumePath      string
	generalApp      bool
	applicantSkills string
)

var applicantsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List applicants",
	Args:  cobra.NoArgs,
	RunE: withApp(func(e *env, _ []string) error {
		st := e.app.ApplicantsState
		if err := st.Fetch(e.ctx); err != nil {
			return err
		}
		st.SetFilters(applicantFilter)
		list := st.Filtered()
		return e.emit(list, func() { e.printer.PrintApplicants(list) })
	}),
}

var applicantsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one applicant",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(e *env, args []string) error {
		a, err := e.app.Applicants.Get(e.ctx, args[0], e.app.Actor(e.ctx))
		if err != nil {
			return err
		}
		return e.emit(a, func() { e.printer.PrintApplicant(&a) })
	}),
}

var applicantsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Submit an application",
	Args:  cobra.NoArgs,
	RunE: withApp(func(e *env, _ []string) error {
		form := applicationForm
		form.Skills = splitList(applicantSkills)
		if generalApp {
			form.ApplicationType = types.ApplicationGeneral
		}
		if resumePath != "" {
			att, err := readAttachment(resumePath)
			if err != nil {
				return err
			}
			form.Resume = att
		}

		a, err := e.app.ApplicantsState.Create(e.ctx, form)
		if err != nil {
			return err
		}
		return e.emit(a, func() { e.done("Created application %s for %s", a.ID, a.Name) })
	}),
}

var applicantsStatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Move an applicant to another stage",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(e *env, args []string) error {
		a, err := e.app.ApplicantsState.UpdateStatus(e.ctx, args[0], types.ApplicantStatus(args[1]))
		if err != nil {
			return err
		}
		return e.emit(a, func() { e.done("Applicant %s is now %s", a.ID, a.Status) })
	}),
}

var applicantsNoteCmd = &cobra.Command{
	Use:   "note <id> <text...>",
	Short: "Append a note to an applicant",
	Args:  cobra.MinimumNArgs(2),
	RunE: withApp(func(e *env, args []string) error {
		a, err := e.app.ApplicantsState.AddNote(e.ctx, args[0], strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		return e.emit(a, func() { e.printer.PrintApplicant(&a) })
	}),
}

var applicantsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an applicant",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(e *env, args []string) error {
		if err := e.app.ApplicantsState.Delete(e.ctx, args[0]); err != nil {
			return err
		}
		e.done("Deleted applicant %s", args[0])
		return nil
	}),
}

// readAttachment loads a resume file from disk.
func readAttachment(path string) (*types.Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}
	ctype := mime.TypeByExtension(filepath.Ext(path))
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	return &types.Attachment{Filename: filepath.Base(path), ContentType: ctype, Data: data}, nil
}

func init() {
	f := applicantsListCmd.Flags()
	f.StringVar(&applicantFilter.Status, "status", "", "Filter by status (all, pending, shortlisted...)")
	f.StringVar(&applicantFilter.Source, "source", "", "Filter by source")
	f.StringVar(&applicantFilter.JobID, "job", "", "Filter by job id, general or other")
	f.StringVar(&applicantFilter.Search, "search", "", "Search name, email and job title")

	f = applicantsAddCmd.Flags()
	f.StringVar(&applicationForm.Name, "name", "", "Applicant name (required)")
	f.StringVar(&applicationForm.Email, "email", "", "Applicant email (required)")
	f.StringVar(&applicationForm.Phone, "phone", "", "Phone")
	f.StringVar(&applicationForm.JobID, "job", "", "Job id, or other with --job-title")
	f.StringVar(&applicationForm.JobTitle, "job-title", "", "Job title for --job other")
	f.BoolVar(&generalApp, "general", false, "General application, not tied to a posting")
	f.StringVar((*string)(&applicationForm.Source), "source", "", "linkedin, indeed, company, referral or other")
	f.StringVar(&applicationForm.CoverLetter, "cover-letter", "", "Cover letter text")
	f.StringVar(&applicationForm.Experience, "experience", "", "Experience summary")
	f.StringVar(&applicantSkills, "skills", "", "Comma-separated skills")
	f.StringVar(&resumePath, "resume", "", "Resume file to upload")
	f.StringVar(&applicationForm.ResumeURL, "resume-url", "", "Link to an already hosted resume")

	applicantsCmd.AddCommand(applicantsListCmd, applicantsShowCmd, applicantsAddCmd,
		applicantsStatusCmd, applicantsNoteCmd, applicantsDeleteCmd)
	rootCmd.AddCommand(applicantsCmd)
}
