package main

import (
	"context"
	"log/slog"
	baseHttp "net/http"
	"time"

	"github.com/matthewbroadbent/blog-norivane/database/backup"
	"github.com/matthewbroadbent/blog-norivane/kernel"
	"github.com/matthewbroadbent/blog-norivane/pkg/endpoint"
	"github.com/matthewbroadbent/blog-norivane/pkg/portal"
)

func main() {
	validate := portal.GetDefaultValidator()

	secrets, err := kernel.Ignite("./.env", validate)
	if err != nil {
		panic("Error loading the environment: " + err.Error())
	}

	app, err := kernel.MakeApp(secrets, validate)
	if err != nil {
		panic("Error bootstrapping the application: " + err.Error())
	}

	defer app.CloseDB()
	defer app.CloseLogs()

	app.Boot()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	startBackups(ctx, app)

	sentry := app.GetSentry()

	handler := endpoint.NewServerHandler(endpoint.ServerHandlerConfig{
		Mux:           app.GetMux(),
		AllowedOrigin: secrets.Network.AllowedOrigin,
		Wrap:          sentry.Handler.Handle,
	})

	addr := secrets.Network.GetHostURL()

	server := &baseHttp.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := endpoint.RunServer(addr, server); err != nil {
		slog.Error("Error running server", "error", err)
		panic("Error running server: " + err.Error())
	}
}

func startBackups(ctx context.Context, app *kernel.App) {
	e := app.GetEnv()

	if !e.Backup.IsEnabled() {
		return
	}

	scheduler, err := backup.NewScheduler(e)
	if err != nil {
		panic("Error creating the backup scheduler: " + err.Error())
	}

	if err := scheduler.Start(ctx); err != nil {
		panic("Error starting the backup scheduler: " + err.Error())
	}

	slog.Info("database backups scheduled", "cron", e.Backup.Schedule)
}
