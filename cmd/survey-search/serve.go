package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	httpapi "github.com/custodia-labs/survey-search/internal/adapters/driving/http"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Port = servePort
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("survey-search starting", "version", version, "lock_backend", cfg.LockBackend())

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	serverCfg := httpapi.DefaultConfig()
	serverCfg.Port = cfg.Port
	serverCfg.Version = version
	serverCfg.AllowedOrigins = cfg.AllowedOrigins

	server := httpapi.NewServer(serverCfg, httpapi.Services{
		Auth:      a.auth,
		Search:    a.search,
		Highlight: a.highlight,
		Feedback:  a.feedback,
	}, map[string]httpapi.Pinger{
		"postgres": a.db,
		"lock":     a.lock,
	}, logger)

	return server.Start(ctx)
}
