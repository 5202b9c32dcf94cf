package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/hiretrack/internal/demomode"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Inspect or override demo mode",
}

type demoStatus struct {
	Enabled bool            `json:"enabled"`
	Reason  demomode.Reason `json:"reason"`
}

var demoStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether demo mode is on and which rule decided it",
	Args:  cobra.NoArgs,
	RunE: withApp(func(e *env, _ []string) error {
		d := e.app.Demo.Decide(e.ctx)
		return e.emit(demoStatus{Enabled: d.Enabled, Reason: d.Reason}, func() {
			state := "off"
			if d.Enabled {
				state = "on"
			}
			e.done("Demo mode is %s (%s)", state, d.Reason)
		})
	}),
}

func setOverride(enabled bool) func(*cobra.Command, []string) error {
	return withApp(func(e *env, _ []string) error {
		if err := e.app.Demo.SetOverride(e.ctx, enabled); err != nil {
			return err
		}
		d := e.app.Demo.Decide(e.ctx)
		if d.Reason == demomode.ReasonForced {
			e.done("Override saved, but the force flag still decides (demo mode %v)", d.Enabled)
			return nil
		}
		e.done("Demo mode override set to %v", enabled)
		return nil
	})
}

var demoOnCmd = &cobra.Command{
	Use:   "on",
	Short: "Force demo mode on for this store",
	Args:  cobra.NoArgs,
	RunE:  setOverride(true),
}

var demoOffCmd = &cobra.Command{
	Use:   "off",
	Short: "Force demo mode off for this store",
	Args:  cobra.NoArgs,
	RunE:  setOverride(false),
}

var demoClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the override and go back to automatic detection",
	Args:  cobra.NoArgs,
	RunE: withApp(func(e *env, _ []string) error {
		if err := e.app.Demo.ClearOverride(e.ctx); err != nil {
			return err
		}
		e.done("Demo mode override cleared")
		return nil
	}),
}

func init() {
	demoCmd.AddCommand(demoStatusCmd, demoOnCmd, demoOffCmd, demoClearCmd)
	rootCmd.AddCommand(demoCmd)
}
