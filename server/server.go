package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"

	"clanTracker/services/pipeline"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rs/zerolog/log"
)

// Runs controls pipeline runs.
type Runs interface {
	RunOnce(ctx context.Context) (pipeline.Summary, error)
	Running() bool
	Last() (pipeline.Summary, bool)
}

// Reports exposes the generated report files.
type Reports interface {
	List() ([]string, error)
	PlayerPath(displayName string) string
}

// minSimilarity is how close a requested name must be to a report name to be
// served in its place.
const minSimilarity = 0.7

type Server struct {
	ctx     context.Context
	runs    Runs
	reports Reports
}

func NewServer(ctx context.Context, runs Runs, reports Reports) *Server {
	return &Server{ctx: ctx, runs: runs, reports: reports}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	r.GET("/ping", s.ping)
	r.GET("/reports", s.listReports)
	r.GET("/reports/:name", s.getReport)
	r.POST("/runs", s.startRun)
	r.GET("/runs/last", s.lastRun)
	return r
}

func (s *Server) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ping": "pong"})
}

func (s *Server) listReports(c *gin.Context) {
	names, err := s.reports.List()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list reports")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": names})
}

func (s *Server) getReport(c *gin.Context) {
	name := c.Param("name")
	names, err := s.reports.List()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list reports")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
		return
	}

	resolved, ok := closestReport(name, names)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	path := s.reports.PlayerPath(resolved)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	c.Header("X-Report-Name", resolved)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.File(path)
}

func (s *Server) startRun(c *gin.Context) {
	if s.runs.Running() {
		c.JSON(http.StatusConflict, gin.H{"error": pipeline.ErrRunInProgress.Error()})
		return
	}
	go func() {
		summary, err := s.runs.RunOnce(s.ctx)
		if errors.Is(err, pipeline.ErrRunInProgress) {
			log.Warn().Msg("Triggered run skipped, a run is already in progress")
			return
		}
		if err != nil {
			log.Error().Err(err).Msg("Triggered run failed")
			return
		}
		log.Info().Int("rows", summary.Rows()).Msg("Triggered run finished")
	}()
	c.JSON(http.StatusAccepted, gin.H{"status": "started"})
}

func (s *Server) lastRun(c *gin.Context) {
	summary, ok := s.runs.Last()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no completed run"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// closestReport returns the exact report name when present, otherwise the most
// similar one above minSimilarity.
func closestReport(name string, names []string) (string, bool) {
	name = strings.TrimSuffix(name, ".csv")
	for _, n := range names {
		if n == name {
			return n, true
		}
	}

	var (
		best      string
		bestScore float64
	)
	lower := strings.ToLower(name)
	for _, n := range names {
		candidate := strings.ToLower(n)
		distance := fuzzy.LevenshteinDistance(lower, candidate)
		maxLen := float64(max(len(lower), len(candidate)))
		if maxLen == 0 {
			continue
		}
		similarity := 1 - float64(distance)/maxLen
		if similarity >= minSimilarity && similarity > bestScore {
			best = n
			bestScore = similarity
		}
	}
	return best, best != ""
}
