// Package main provides the hiretrack command line: the view layer over the
// local-first repositories and the dev stub backend.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hiretrack",
	Short: "Applicant tracking with local-first storage",
	Long: `hiretrack manages job postings, applicants and interviews against a remote
backend, keeping a local copy that stays usable while the backend is
unreachable. Demo mode serves fixture data instead of the backend.`,
	SilenceUsage: true,
}

var (
	configPath string
	storeFlag  string
	dsnFlag    string
	demoFlag   string
	jsonOutput bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "Storage driver: memory, sqlite, postgres or redis")
	rootCmd.PersistentFlags().StringVar(&dsnFlag, "dsn", "", "Storage file path or connection URL")
	rootCmd.PersistentFlags().StringVar(&demoFlag, "demo", "", "Force demo mode on or off (true/false)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of formatted boxes")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
