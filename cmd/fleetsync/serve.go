package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/osse101/FleetSync_Go/internal/bootstrap"
	"github.com/osse101/FleetSync_Go/internal/server"
)

const shutdownTimeout = 30 * time.Second

func (c *cli) newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the sync scheduler",
		Args:  cobra.NoArgs,
		RunE:  c.runServe,
	}
}

func (c *cli) runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := c.cfg.ValidateForServer(); err != nil {
		return err
	}

	app, err := c.openApp(ctx)
	if err != nil {
		return err
	}
	if err := bootstrap.RecoverInterruptedRuns(ctx, app.Sync); err != nil {
		app.DB.Close()
		return err
	}

	// Background jobs outlive the signal context so the in-flight job can
	// finish during shutdown.
	jobsCtx, cancelJobs := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelJobs()
	pool, sched := bootstrap.StartBackgroundJobs(jobsCtx, c.cfg, app)

	srv := server.NewServer(server.Options{
		Port:           c.cfg.Port,
		APIKey:         c.cfg.APIKey,
		TrustedProxies: c.cfg.TrustedProxies,
		CORSOrigins:    c.cfg.CORSOrigins,
		RateLimit:      c.cfg.RateLimit,
	}, server.Services{
		DB:       app.DB,
		Sync:     app.Sync,
		Importer: app.Vehicles,
		Records:  app.Lookup,
		Events:   app.EventLog,
	})

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-serveErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:    srv,
		Scheduler: sched,
		Workers:   pool,
		DB:        app.DB,
	})
	if runErr != nil {
		slog.Error("Server failed", "error", runErr)
	}
	return runErr
}
