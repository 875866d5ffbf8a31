package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/statekit-dev/statekit/internal/config"
	"github.com/statekit-dev/statekit/pkg/live"
)

func serveCmd() *cobra.Command {
	var (
		port       int
		host       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the live state bridge",
		Long: `Start the WebSocket state bridge.

Each connection gets its own state container seeded from the
"fields" map in statekit.json. Metrics are served on /metrics,
health on /healthz.

Examples:
  statekit serve
  statekit serve --port=8080
  statekit serve --config=./statekit.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath, host, port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from statekit.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from statekit.json)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to statekit.json (default: current directory)")

	return cmd
}

func runServe(configPath, host string, port int) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if host != "" {
		cfg.Host = host
	}
	if port != 0 {
		cfg.Port = port
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	srv := live.New(live.Options{
		Addr:             cfg.Addr(),
		Fields:           cfg.Fields,
		MetricsNamespace: cfg.MetricsNamespace,
		Logger:           logger,
	})

	// Serve until interrupted.
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-stop:
		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

// loadConfig reads statekit.json, falling back to defaults when no file
// exists and no explicit path was given.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}

	// Running without a config file is fine; the bridge just has no
	// fields until one is provided.
	if _, err := os.Stat(config.ConfigFileName); os.IsNotExist(err) {
		return config.New(), nil
	}
	return config.Load(".")
}
