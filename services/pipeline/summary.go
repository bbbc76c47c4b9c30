package pipeline

import (
	"time"

	"clanTracker/services/roster"
)

// Summary describes the outcome of one run.
type Summary struct {
	Started  time.Time       `json:"started"`
	Finished time.Time       `json:"finished"`
	Players  []PlayerSummary `json:"players"`
}

// PlayerSummary counts what happened to a single player's matches.
type PlayerSummary struct {
	Player             roster.Player `json:"player"`
	Skipped            bool          `json:"skipped"`
	Matches            int           `json:"matches"`
	Rows               int           `json:"rows"`
	CacheHits          int           `json:"cacheHits"`
	Fetched            int           `json:"fetched"`
	FetchFailures      []string      `json:"fetchFailures,omitempty"`
	ExtractionFailures []string      `json:"extractionFailures,omitempty"`
	WriteFailures      []string      `json:"writeFailures,omitempty"`
}

// Rows is the number of rows written to the clan report.
func (s Summary) Rows() int {
	total := 0
	for _, p := range s.Players {
		total += p.Rows
	}
	return total
}

// FailedMatches lists every match id that could not be downloaded.
func (s Summary) FailedMatches() []string {
	failed := make([]string, 0)
	for _, p := range s.Players {
		failed = append(failed, p.FetchFailures...)
	}
	return failed
}
