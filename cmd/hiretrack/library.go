package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/hiretrack/internal/types"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Manage custom and saved interview questions",
}

var (
	questionRole  string
	questionInput types.Question
)

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List custom questions for a role",
	Args:  cobra.NoArgs,
	RunE: withApp(func(e *env, _ []string) error {
		qs := e.app.Library.Custom(e.ctx, questionRole)
		return e.emit(qs, func() { e.printer.PrintQuestions(questionRole, qs) })
	}),
}

var questionsAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a custom question to a role",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(e *env, args []string) error {
		in := questionInput
		in.Text = args[0]
		q, err := e.app.Library.AddCustom(e.ctx, questionRole, in)
		if err != nil {
			return err
		}
		return e.emit(q, func() { e.done("Added question %s", q.ID) })
	}),
}

var questionsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a custom question from a role",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(e *env, args []string) error {
		ok, err := e.app.Library.RemoveCustom(e.ctx, questionRole, args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("question %s not found for role %q", args[0], questionRole)
		}
		e.done("Removed question %s", args[0])
		return nil
	}),
}

var questionsSaveCmd = &cobra.Command{
	Use:   "save <id> [text]",
	Short: "Toggle a question in the saved list",
	Args:  cobra.RangeArgs(1, 2),
	RunE: withApp(func(e *env, args []string) error {
		q := types.Question{ID: args[0], Role: questionRole}
		if len(args) == 2 {
			q.Text = args[1]
		} else {
			for _, c := range e.app.Library.Custom(e.ctx, questionRole) {
				if c.ID == q.ID {
					q = c
					break
				}
			}
		}
		saved, err := e.app.Library.ToggleSaved(e.ctx, q)
		if err != nil {
			return err
		}
		if saved {
			e.done("Saved question %s", q.ID)
		} else {
			e.done("Unsaved question %s", q.ID)
		}
		return nil
	}),
}

var questionsSavedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List saved questions",
	Args:  cobra.NoArgs,
	RunE: withApp(func(e *env, _ []string) error {
		qs := e.app.Library.Saved(e.ctx)
		return e.emit(qs, func() { e.printer.PrintQuestions("saved", qs) })
	}),
}

var interviewersCmd = &cobra.Command{
	Use:   "interviewers",
	Short: "Manage the interviewer directory",
}

var interviewerInput types.Interviewer

var interviewersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List interviewers",
	Args:  cobra.NoArgs,
	RunE: withApp(func(e *env, _ []string) error {
		list := e.app.Library.Interviewers(e.ctx)
		return e.emit(list, func() { e.printer.PrintInterviewers(list) })
	}),
}

var interviewersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an interviewer",
	Args:  cobra.NoArgs,
	RunE: withApp(func(e *env, _ []string) error {
		iv, err := e.app.Library.AddInterviewer(e.ctx, interviewerInput)
		if err != nil {
			return err
		}
		return e.emit(iv, func() { e.done("Added interviewer %s", iv.ID) })
	}),
}

var interviewersRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an interviewer",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(e *env, args []string) error {
		ok, err := e.app.Library.RemoveInterviewer(e.ctx, args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("interviewer %s not found", args[0])
		}
		e.done("Removed interviewer %s", args[0])
		return nil
	}),
}

func init() {
	questionsCmd.PersistentFlags().StringVar(&questionRole, "role", "general", "Role the question bank belongs to")
	questionsAddCmd.Flags().StringVar(&questionInput.Category, "category", "", "Category, e.g. technical")
	questionsAddCmd.Flags().StringVar(&questionInput.Difficulty, "difficulty", "", "easy, medium or hard")
	questionsCmd.AddCommand(questionsListCmd, questionsAddCmd, questionsRemoveCmd, questionsSaveCmd, questionsSavedCmd)

	f := interviewersAddCmd.Flags()
	f.StringVar(&interviewerInput.Name, "name", "", "Name (required)")
	f.StringVar(&interviewerInput.Email, "email", "", "Email (required)")
	f.StringVar(&interviewerInput.Title, "title", "", "Job title")
	f.StringVar(&interviewerInput.Department, "department", "", "Department")
	interviewersCmd.AddCommand(interviewersListCmd, interviewersAddCmd, interviewersRemoveCmd)

	rootCmd.AddCommand(questionsCmd, interviewersCmd)
}
