// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/credcheck/internal/api"
	"github.com/holomush/credcheck/internal/config"
	"github.com/holomush/credcheck/internal/logging"
	"github.com/holomush/credcheck/internal/observability"
	"github.com/holomush/credcheck/internal/xdg"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP validation API",
		Long: `Serve field and record validation over HTTP, along with metrics
and health probes. Settings come from the config file and flags; flags win.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := configFile
			if path == "" {
				path = xdg.DefaultConfigFile()
			}
			cfg, err := config.Load(path, cmd.Flags())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, cfg)
		},
	}

	config.AddFlags(cmd.Flags())

	return cmd
}

// runServe starts the API and observability servers and blocks until ctx is
// done or a server fails.
func runServe(ctx context.Context, cmd *cobra.Command, cfg config.Config) error {
	logger := logging.SetDefault(cfg.LogOptions("credcheck", version))
	logger.Info("starting credcheck",
		"listen_addr", cfg.ListenAddr,
		"metrics_addr", cfg.MetricsAddr,
		"log_format", cfg.Log.Format,
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var apiServer *api.Server
	var obsServer *observability.Server
	var metrics *observability.Metrics
	if cfg.MetricsAddr != "" {
		obsServer = observability.NewServer(cfg.MetricsAddr, func() bool {
			return apiServer != nil && apiServer.Ready()
		})
		metrics = obsServer.Metrics()
	}

	apiServer = api.NewServer(cfg.ListenAddr, api.NewHandler(metrics, logger), logger)
	apiErrCh, err := apiServer.Start()
	if err != nil {
		return err
	}
	go monitorServerErrors(ctx, cancel, apiErrCh, "api")

	if obsServer != nil {
		obsErrCh, err := obsServer.Start()
		if err != nil {
			shutdown(cfg, apiServer, nil)
			return err
		}
		go monitorServerErrors(ctx, cancel, obsErrCh, "observability")
	}

	cmd.Printf("credcheck serving on %s\n", apiServer.Addr())
	<-ctx.Done()

	logger.Info("shutting down")
	return shutdown(cfg, apiServer, obsServer)
}

func shutdown(cfg config.Config, apiServer *api.Server, obsServer *observability.Server) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := apiServer.Stop(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	if obsServer != nil {
		if err := obsServer.Stop(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return oops.Code("SERVE_SHUTDOWN_FAILED").Join(errs...)
	}
	return nil
}

// monitorServerErrors cancels ctx when a server reports a serve error.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errCh <-chan error, serverName string) {
	select {
	case err, ok := <-errCh:
		if !ok {
			return
		}
		if err != nil {
			slog.Error("server error, triggering shutdown",
				"server", serverName,
				"error", err,
			)
			cancel()
		}
	case <-ctx.Done():
	}
}
