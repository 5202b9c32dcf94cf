package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/hiretrack/internal/state"
)

var (
	dashboardWatch    bool
	dashboardInterval time.Duration
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show applicant, job and interview counters",
	Args:  cobra.NoArgs,
	RunE: withApp(func(e *env, _ []string) error {
		render := func() error {
			return e.emit(e.app.Dashboard.Stats(), func() {
				e.printer.PrintDashboard(e.app.Dashboard.Stats())
			})
		}

		if err := e.app.Dashboard.Load(e.ctx); err != nil {
			return err
		}
		if err := render(); err != nil || !dashboardWatch {
			return err
		}

		interval := dashboardInterval
		if interval <= 0 {
			interval = e.app.Config.RefreshInterval.Std()
		}
		r := state.StartRefresher(e.ctx, interval, func(ctx context.Context) error {
			if err := e.app.Dashboard.Load(ctx); err != nil {
				return err
			}
			fmt.Fprintf(e.cmd.OutOrStdout(), "\nrefreshed %s\n", time.Now().Format(time.Kitchen))
			return render()
		}, e.app.Log)
		defer r.Stop()
		<-r.Done()
		return nil
	}),
}

func init() {
	dashboardCmd.Flags().BoolVar(&dashboardWatch, "watch", false, "Keep refreshing until interrupted")
	dashboardCmd.Flags().DurationVar(&dashboardInterval, "interval", 0, "Refresh interval for --watch (default from config)")
	rootCmd.AddCommand(dashboardCmd)
}
