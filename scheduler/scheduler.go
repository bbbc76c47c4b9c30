package scheduler

import (
	"context"
	"errors"
	"fmt"

	"clanTracker/services/pipeline"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

// Runner is what a scheduled job triggers.
type Runner interface {
	RunOnce(ctx context.Context) (pipeline.Summary, error)
}

type Scheduler struct {
	s      gocron.Scheduler
	runner Runner
	ctx    context.Context
}

func NewScheduler(ctx context.Context, runner Runner) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &Scheduler{
		s:      s,
		runner: runner,
		ctx:    ctx,
	}, nil
}

// Start registers the refresh job on a standard five field cron schedule.
func (s *Scheduler) Start(schedule string) error {
	_, err := s.s.NewJob(
		gocron.CronJob(schedule, false),
		gocron.NewTask(s.refresh),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create refresh job: %w", err)
	}
	s.s.Start()
	log.Info().Str("schedule", schedule).Msg("Scheduled report refresh")
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) refresh() {
	summary, err := s.runner.RunOnce(s.ctx)
	if errors.Is(err, pipeline.ErrRunInProgress) {
		log.Warn().Msg("Skipping scheduled refresh, a run is already in progress")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("Scheduled refresh failed")
		return
	}
	log.Info().
		Int("rows", summary.Rows()).
		Int("failedMatches", len(summary.FailedMatches())).
		Msg("Scheduled refresh finished")
}
