package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"clanTracker/clients/tracker"
	"clanTracker/envvars"
	"clanTracker/scheduler"
	"clanTracker/server"
	"clanTracker/services/pgcr"
	"clanTracker/services/pipeline"
	"clanTracker/services/report"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	os.Exit(run())
}

func run() int {
	env, err := envvars.GetEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err.Error())
		return 1
	}
	setupLogging(env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := newDependencies(ctx, env)
	if err != nil {
		log.Error().Err(err).Msg("Failed to set up dependencies")
		return 1
	}
	defer deps.Close()

	reports, err := report.NewWriter(env.OutputDir)
	if err != nil {
		log.Error().Err(err).Msg("Failed to set up report directory")
		return 1
	}
	extractor := pgcr.NewExtractor(pgcr.StrategyFromString(env.MatchStrategy))
	remote := tracker.NewClient(env.TrackerBaseURL, env.TrackerTimeout)
	service := pipeline.NewService(remote, deps.cache, reports, extractor, pipeline.NewLogProgress)
	runner := pipeline.NewRunner(deps.roster, service)

	switch env.Mode {
	case envvars.ServeMode:
		if err := serve(ctx, env, runner, reports); err != nil {
			log.Error().Err(err).Msg("Server stopped")
			return 1
		}
	default:
		summary, err := runner.RunOnce(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Run failed")
			return 1
		}
		if failed := summary.FailedMatches(); len(failed) > 0 {
			log.Warn().Int("failedMatches", len(failed)).Msg("Some matches could not be downloaded, rerun to retry them")
		}
	}
	return 0
}

func setupLogging(env envvars.Env) {
	level, err := zerolog.ParseLevel(strings.ToLower(env.LogLevel))
	if err != nil {
		slog.Warn("unknown log level, using info", "level", env.LogLevel)
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if envvars.IsDev(env) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	if envvars.IsProd(env) {
		gin.SetMode(gin.ReleaseMode)
	}
}

func serve(ctx context.Context, env envvars.Env, runner *pipeline.Runner, reports *report.Writer) error {
	if env.RunSchedule != "" {
		sched, err := scheduler.NewScheduler(ctx, runner)
		if err != nil {
			return err
		}
		if err := sched.Start(env.RunSchedule); err != nil {
			return err
		}
		defer func() {
			if err := sched.Stop(); err != nil {
				log.Warn().Err(err).Msg("Failed to stop scheduler")
			}
		}()
	}

	s := &http.Server{
		Handler: server.NewServer(ctx, runner, reports).Router(),
		Addr:    env.ServerAddr,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("Failed to shut down HTTP server")
		}
	}()

	slog.Info("Starting HTTP server", "addr", env.ServerAddr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
