// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/Fixturely/internal/api/live"
	"github.com/codr1/Fixturely/internal/config"
	"github.com/codr1/Fixturely/internal/db"
	leaguesvc "github.com/codr1/Fixturely/internal/leagues"
	"github.com/codr1/Fixturely/internal/scheduler"
)

const defaultShutdownTimeout = 30 * time.Second

func shutdownTimeout() time.Duration {
	if value, ok := os.LookupEnv("SHUTDOWN_TIMEOUT_SECONDS"); ok {
		if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultShutdownTimeout
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Features.EnableDebug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	log.Logger = log.With().Str("app", cfg.App.Name).Logger()
}

func main() {
	configPath := flag.String("config", "config/app.yaml", "Path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config", *configPath).Msg("Failed to load configuration")
	}

	setupLogger(cfg)

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	service := leaguesvc.NewService(database, rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)))

	var hub *live.Hub
	if cfg.Features.EnableLive {
		hub = live.NewHub()
	}

	deps, err := buildDependencies(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize external services")
	}
	initHandlers(cfg, database, service, hub, deps)

	if cfg.Features.EnableScheduler {
		if err := scheduler.Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize scheduler")
		}
		if _, err := scheduler.RegisterStandingsRefresh(service, cfg.Standings.RefreshSchedule); err != nil {
			log.Fatal().Err(err).Msg("Failed to register standings refresh")
		}
		if err := scheduler.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start scheduler")
		}
	}

	server := newServer(cfg)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Run server
	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Str("environment", cfg.App.Environment).Msg("Starting server")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	if hub != nil {
		g.Go(func() error {
			return hub.Run(ctx)
		})
	}

	// Wait for interrupt signal
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout())
		defer cancel()

		log.Info().Msg("Shutting down server")
		var errs []error
		if err := server.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown error: %w", err))
		}
		if cfg.Features.EnableScheduler {
			if err := scheduler.Stop(); err != nil {
				errs = append(errs, fmt.Errorf("scheduler stop: %w", err))
			}
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
