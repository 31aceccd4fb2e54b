// Package server boots the full application: configuration, logging,
// storage, background workers and the HTTP listener.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tracechain/tracechain/app/repositories"
	"github.com/tracechain/tracechain/app/routes"
	"github.com/tracechain/tracechain/app/services"
	"github.com/tracechain/tracechain/config"
	"github.com/tracechain/tracechain/pkg/cache"
	"github.com/tracechain/tracechain/pkg/database"
	grpcserver "github.com/tracechain/tracechain/pkg/grpc"
	"github.com/tracechain/tracechain/pkg/logger"
	"github.com/tracechain/tracechain/pkg/metrics"
	"github.com/tracechain/tracechain/pkg/middleware"
	"github.com/tracechain/tracechain/pkg/migration"
	"github.com/tracechain/tracechain/pkg/queue"
	"github.com/tracechain/tracechain/pkg/reqid"
	"github.com/tracechain/tracechain/pkg/router"
	"github.com/tracechain/tracechain/pkg/schedule"
	"github.com/tracechain/tracechain/pkg/session"
	"github.com/tracechain/tracechain/pkg/storage"

	// Registers all migrations via init().
	_ "github.com/tracechain/tracechain/database/migrations"
)

// Start boots every subsystem and serves until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	// Optional Mongo log sink alongside stdout.
	if uri := config.MongoLogURI(); uri != "" {
		h, err := logger.NewMongoHandler(uri, config.MongoLogDatabase(), config.MongoLogCollection())
		if err != nil {
			logger.Warn("mongo log sink unavailable", "error", err)
		} else {
			logger.Attach(h)
			defer h.Close()
		}
	}

	if err := database.Connect(); err != nil {
		return err
	}
	if err := migration.New(database.DB).Run(); err != nil {
		return err
	}

	// Redis is optional in development; cache and session degrade to
	// no-ops without it.
	if err := cache.Connect(); err != nil {
		logger.Warn("cache unavailable", "error", err)
	}
	storage.Connect()

	dir, err := loadDirectory()
	if err != nil {
		return err
	}
	if problems := dir.Verify(); len(problems) > 0 {
		for _, p := range problems {
			logger.Warn("fixture integrity", "problem", p)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	broker := services.NewActivityBroker()
	broker.Start()

	services.RegisterJobs()
	services.RegisterNotifications(dir)
	queue.StartWorkers(ctx, 4)

	services.NewAuditService(dir).Schedule()
	schedule.Start(ctx)

	if port := config.GRPCPort(); port != "" {
		srv, _, err := grpcserver.Start(port)
		if err != nil {
			logger.Warn("grpc server unavailable", "error", err)
		} else {
			defer grpcserver.Stop(srv)
		}
	}

	r := router.New()
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(session.Middleware(session.DefaultOptions()))
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	routes.RegisterAPI(r, dir, broker, config.ActivityWindow())

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func loadDirectory() (*repositories.Directory, error) {
	if path := config.FixturePath(); path != "" {
		dir, err := repositories.LoadDirectoryFile(path)
		if err != nil {
			return nil, err
		}
		logger.Info("fixture loaded", "path", path)
		return dir, nil
	}
	return repositories.DefaultDirectory(), nil
}
