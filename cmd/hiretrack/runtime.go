package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/hiretrack/internal/app"
	"github.com/jonathan/hiretrack/internal/config"
	"github.com/jonathan/hiretrack/internal/logging"
	"github.com/jonathan/hiretrack/internal/notify"
	"github.com/jonathan/hiretrack/internal/observability"
)

// env is what a command body gets to work with.
type env struct {
	ctx     context.Context
	cmd     *cobra.Command
	app     *app.App
	printer *observability.Printer
}

// loadConfig resolves env, file and flag settings. Flags win.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if storeFlag != "" {
		cfg.StorageDriver = storeFlag
	}
	if dsnFlag != "" {
		cfg.DSN = dsnFlag
	}
	if demoFlag != "" {
		force, err := config.ParseDemoFlag(demoFlag)
		if err != nil {
			return nil, fmt.Errorf("invalid --demo value %q: %w", demoFlag, err)
		}
		cfg.DemoMode = force
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *logrus.Logger {
	return logging.NewWithOutput(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
}

// withApp builds the App for one command run, prints any notices raised
// along the way to stderr, and closes the store.
func withApp(fn func(e *env, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		notices := &notify.Recorder{}
		a, err := app.New(cmd.Context(), cfg, app.Options{
			Notifier: notices,
			Log:      newLogger(cmd, cfg),
		})
		if err != nil {
			return err
		}
		defer func() {
			if cerr := a.Close(); cerr != nil {
				a.Log.WithError(cerr).Warn("failed to close store")
			}
		}()

		e := &env{
			ctx:     cmd.Context(),
			cmd:     cmd,
			app:     a,
			printer: observability.NewPrinter(cmd.OutOrStdout()),
		}
		err = fn(e, args)
		observability.NewPrinter(cmd.ErrOrStderr()).PrintNotices(notices.Messages())
		return err
	}
}

// emit prints v as JSON when --json is set, otherwise calls pretty.
func (e *env) emit(v any, pretty func()) error {
	if !jsonOutput {
		pretty()
		return nil
	}
	enc := json.NewEncoder(e.cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// done prints a one-line confirmation.
func (e *env) done(format string, args ...any) {
	if jsonOutput {
		return
	}
	fmt.Fprintf(e.cmd.OutOrStdout(), format+"\n", args...)
}
