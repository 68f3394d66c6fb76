// Package cli provides Cobra command definitions for chatfill.
package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/chazuruo/chatfill/internal/config"
	"github.com/chazuruo/chatfill/internal/server"
)

// ServeOptions contains the options for the serve command.
type ServeOptions struct {
	ConfigPath string
	Addr       string
	LogLevel   string
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the document fill HTTP server",
		Long: `Serve starts the HTTP API used by the web frontend.

Endpoints:
  POST /api/upload    accept a .docx template, return markup and placeholders
  POST /api/download  merge filled markup into a completed .docx
  GET  /healthz       liveness check

Examples:
  chatfill serve
  chatfill serve --addr 0.0.0.0:9090
  chatfill serve --config ./config.toml --log-level debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "config file path")
	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")

	return cmd
}

func runServe(opts *ServeOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Addr != "" {
		cfg.Server.Addr = opts.Addr
	}

	log := logrus.New()
	level, err := logrus.ParseLevel(opts.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %s", opts.LogLevel)
	}
	log.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, log)
	if err := srv.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// loadConfig loads the named config file, or the defaults when none is
// given.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}
	cfg, err := config.LoadWithDefaults()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
