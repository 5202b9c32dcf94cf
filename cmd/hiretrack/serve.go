package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/hiretrack/internal/config"
	"github.com/jonathan/hiretrack/internal/gateway"
	"github.com/jonathan/hiretrack/internal/server"
	"github.com/jonathan/hiretrack/internal/storage"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dev stub backend",
	Long: `Start an HTTP server that implements the backend wire contract over
fixture data kept in the configured store. Users register with a password
and receive a JWT bearer token.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cmd, cfg)

	auth, err := config.NewAuthConfig()
	if err != nil {
		return fmt.Errorf("failed to load auth config: %w", err)
	}

	ctx := cmd.Context()
	store, err := storage.Open(ctx, cfg.StorageDriver, cfg.DSN)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.StorageDriver, err)
	}
	defer func() {
		if err := storage.Close(store); err != nil {
			log.WithError(err).Warn("failed to close store")
		}
	}()

	addr := serveAddr
	if addr == "" {
		addr = cfg.ListenAddr
	}
	srv, err := server.New(server.Config{
		Addr: addr,
		Backend: gateway.NewMock(store, gateway.MockOptions{
			Latency: cfg.MockLatency.Std(),
			Log:     log,
		}),
		Users: store,
		Auth:  auth,
		Log:   log,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start(ctx)
}
