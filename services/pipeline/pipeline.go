package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"clanTracker/clients/tracker"
	"clanTracker/services/cache"
	"clanTracker/services/pgcr"
	"clanTracker/services/report"
	"clanTracker/services/roster"

	"github.com/rs/zerolog/log"
)

// Remote is the part of the tracker API the pipeline needs.
type Remote interface {
	ListSessions(ctx context.Context, network int64, playerID string) (*tracker.SessionsResponse, error)
	GetMatchDetail(ctx context.Context, matchID string) ([]byte, error)
}

// ReportWriter receives the rows of a run.
type ReportWriter interface {
	PlayerPath(displayName string) string
	AggregatePath() string
	Remove(path string) error
	WriteHeader(path string) error
	AppendRow(path string, row report.Row) error
}

// Service turns a roster into per-player and clan wide match reports.
type Service interface {
	// Run processes players one after another. Only failing to set up the
	// clan report aborts the run; every other failure is confined to a
	// player or a match and shows up in the returned Summary.
	Run(ctx context.Context, players []roster.Player) (Summary, error)
}

type service struct {
	remote      Remote
	cache       cache.Store
	reports     ReportWriter
	extractor   pgcr.Extractor
	newProgress ProgressFactory
}

var _ Service = (*service)(nil)

func NewService(remote Remote, store cache.Store, reports ReportWriter, extractor pgcr.Extractor, progress ProgressFactory) Service {
	if progress == nil {
		progress = NoProgress
	}
	return &service{
		remote:      remote,
		cache:       store,
		reports:     reports,
		extractor:   extractor,
		newProgress: progress,
	}
}

type matchSource int

const (
	fromCache matchSource = iota
	fromRemote
)

func (s *service) Run(ctx context.Context, players []roster.Player) (Summary, error) {
	summary := Summary{Started: time.Now()}

	aggregate := s.reports.AggregatePath()
	if err := s.reports.Remove(aggregate); err != nil {
		return summary, err
	}
	if err := s.reports.WriteHeader(aggregate); err != nil {
		return summary, err
	}

	for _, player := range players {
		summary.Players = append(summary.Players, s.runPlayer(ctx, player, aggregate))
	}

	summary.Finished = time.Now()
	log.Info().
		Int("players", len(summary.Players)).
		Int("rows", summary.Rows()).
		Dur("took", summary.Finished.Sub(summary.Started)).
		Msg("Run complete")
	return summary, nil
}

func (s *service) runPlayer(ctx context.Context, player roster.Player, aggregate string) PlayerSummary {
	result := PlayerSummary{Player: player}
	logger := log.With().Str("player", player.DisplayName).Str("membershipId", player.ID).Logger()

	path := s.reports.PlayerPath(player.DisplayName)
	if err := s.reports.Remove(path); err != nil {
		logger.Error().Err(err).Msg("Failed to remove previous report, skipping player")
		result.Skipped = true
		return result
	}
	if err := s.reports.WriteHeader(path); err != nil {
		logger.Error().Err(err).Msg("Failed to create report, skipping player")
		result.Skipped = true
		return result
	}

	logger.Info().Msgf("Fetching info for: %s...", player.DisplayName)
	sessions, err := s.remote.ListSessions(ctx, player.Network, player.ID)
	if err != nil {
		logger.Error().Err(err).Msgf("Failed to lookup session for %s. Skipping data for player %s. Perhaps retry later.", player.DisplayName, player.DisplayName)
		result.Skipped = true
		return result
	}

	progress := s.newProgress(player.DisplayName, sessions.MatchCount())
	for _, session := range sessions.Sessions {
		for _, match := range session.Matches {
			matchID := match.ActivityDetails.InstanceID
			result.Matches++
			s.processMatch(ctx, player, matchID, path, aggregate, &result)
			progress.Tick()
		}
	}

	if len(result.FetchFailures) > 0 {
		logger.Error().Msgf("Failed to download matches: %s. Perhaps retry later.", strings.Join(result.FetchFailures, ", "))
	}
	return result
}

func (s *service) processMatch(ctx context.Context, player roster.Player, matchID, path, aggregate string, result *PlayerSummary) {
	raw, source, err := s.resolve(ctx, matchID)
	if err != nil {
		log.Debug().Err(err).Str("matchId", matchID).Msg("Match fetch failed")
		result.FetchFailures = append(result.FetchFailures, matchID)
		return
	}
	if source == fromCache {
		result.CacheHits++
	} else {
		result.Fetched++
	}

	row, err := s.extract(raw, player)
	if err != nil {
		log.Error().Err(err).Str("player", player.DisplayName).Msgf("Error processing match: %s", matchID)
		result.ExtractionFailures = append(result.ExtractionFailures, matchID)
		return
	}

	if err := s.reports.AppendRow(path, row); err != nil {
		log.Error().Err(err).Str("matchId", matchID).Msg("Failed to append player row")
		result.WriteFailures = append(result.WriteFailures, matchID)
		return
	}
	if err := s.reports.AppendRow(aggregate, row); err != nil {
		log.Error().Err(err).Str("matchId", matchID).Msg("Failed to append clan row")
		result.WriteFailures = append(result.WriteFailures, matchID)
		return
	}
	result.Rows++
}

// resolve returns the cached record for matchID, downloading and caching it on
// a miss. An unreadable cache entry counts as a miss.
func (s *service) resolve(ctx context.Context, matchID string) ([]byte, matchSource, error) {
	raw, err := s.cache.Get(ctx, matchID)
	switch {
	case err == nil && json.Valid(raw):
		return raw, fromCache, nil
	case err == nil:
		log.Warn().Str("matchId", matchID).Msg("Cached match is not valid JSON, fetching again")
	case !errors.Is(err, cache.ErrNotFound):
		log.Warn().Err(err).Str("matchId", matchID).Msg("Failed to read cached match, fetching again")
	}

	raw, err = s.remote.GetMatchDetail(ctx, matchID)
	if err != nil {
		return nil, fromRemote, err
	}
	if err := s.cache.Put(ctx, matchID, raw); err != nil {
		log.Warn().Err(err).Str("matchId", matchID).Msg("Failed to cache match")
	}
	return raw, fromRemote, nil
}

func (s *service) extract(raw []byte, player roster.Player) (report.Row, error) {
	detail, err := pgcr.Decode(raw)
	if err != nil {
		return report.Row{}, err
	}
	row, err := s.extractor.Extract(detail, player)
	if err != nil {
		return report.Row{}, fmt.Errorf("failed to extract row: %w", err)
	}
	return row, nil
}
