package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/statectx/internal/config"
	"github.com/vango-dev/statectx/internal/demo"
	"github.com/vango-dev/statectx/pkg/telemetry"
)

func serveCmd() *cobra.Command {
	var (
		dir  string
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the live quote board",
		Long: `Serve the quote board. Every commit is rendered on the server and
pushed to connected browsers over WebSocket.

Configuration is read from statectx.json and .env in --dir, then from
STATECTX_* environment variables.

Examples:
  statectx serve
  statectx serve --port=9090
  STATECTX_DEMO_QUOTE_URL=https://api.quotable.io/random statectx serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(dir)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServe(cfg)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory holding statectx.json and .env")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")

	return cmd
}

func runServe(cfg *config.Config) error {
	logger := cfg.Logger(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		tp, err := telemetry.InitTracer(ctx, telemetry.ExportConfig{
			ServiceName: cfg.Name,
			Endpoint:    cfg.Tracing.Endpoint,
			Insecure:    cfg.Tracing.Insecure,
			SampleRate:  cfg.Tracing.SampleRate,
		})
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				logger.Warn("tracer shutdown failed", "error", err)
			}
		}()
	}

	srv, err := demo.NewServer(cfg, logger)
	if err != nil {
		return err
	}

	success("quote board on http://%s", cfg.Address())
	if cfg.Demo.QuoteURL == "" {
		info("set demo.quote_url to enable the fetch action")
	}
	return srv.Run(ctx)
}
