package main

//
//  @title           spimexpulse API
//  @version         1.0
//  @description     SPIMEX oil products trading results: bulletin ingestion and read API.
//  @termsOfService  https://github.com/guttosm/spimexpulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/spimexpulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        results
//  @tag.description Stored trading results, aggregates and trading dates
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/spimexpulse/config"
	_ "github.com/guttosm/spimexpulse/docs" // swagger docs
	"github.com/guttosm/spimexpulse/internal/app"
	"github.com/guttosm/spimexpulse/internal/logger"
)

const shutdownTimeout = 10 * time.Second

// newServer builds the HTTP server for API mode.
func newServer(router http.Handler, port string) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// serve runs srv until ctx is cancelled or the listener fails, then shuts it
// down gracefully and calls cleanup.
func serve(ctx context.Context, srv *http.Server, cleanup func()) error {
	defer cleanup()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.L().Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.L().Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.L().Info().Msg("server exited gracefully")
	return nil
}

// run executes one mode to completion. Every resource it opens is released
// before it returns.
func run(ctx context.Context, mode, port string) error {
	switch mode {
	case "ingest":
		logger.L().Info().Msg("running ingestion")
		sum, err := app.RunIngestion(ctx, config.AppConfig)
		if err != nil {
			return fmt.Errorf("ingestion failed: %w", err)
		}
		logger.L().Info().
			Str("run_id", sum.RunID).
			Int("bulletins", sum.Bulletins).
			Int("rows", sum.Rows).
			Str("stop_reason", sum.StopReason).
			Msg("ingestion completed successfully")
		return nil

	case "api":
		logger.L().Info().Msg("starting API server")
		router, cleanup, err := app.InitializeApp()
		if err != nil {
			return fmt.Errorf("app init: %w", err)
		}
		return serve(ctx, newServer(router, port), cleanup)

	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

// main is the entry point of the spimexpulse application.
//
// Modes (selected via --mode flag):
//   - ingest: Crawls the SPIMEX bulletin index and stores every bulletin since the cutoff.
//   - api:    Starts the REST API over the stored trading results.
//
// Exit status is 1 on any unrecovered error, 0 otherwise.
func main() {
	config.LoadConfig()
	logger.Init()

	mode := flag.String("mode", "ingest", "Mode: ingest or api")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, *mode, *port)
	stop()

	if err != nil {
		logger.L().Error().Err(err).Str("mode", *mode).Msg("exiting with error")
		os.Exit(1)
	}
}
