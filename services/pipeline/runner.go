package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"clanTracker/services/roster"
)

var ErrRunInProgress = errors.New("a run is already in progress")

// Runner loads the roster and runs the pipeline, refusing to start a run while
// another is still going.
type Runner struct {
	roster  roster.Source
	service Service

	mu      sync.Mutex
	running bool
	last    *Summary
}

func NewRunner(source roster.Source, service Service) *Runner {
	return &Runner{roster: source, service: service}
}

func (r *Runner) RunOnce(ctx context.Context) (Summary, error) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return Summary{}, ErrRunInProgress
	}
	r.running = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	players, err := r.roster.Load(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load roster: %w", err)
	}
	summary, err := r.service.Run(ctx, players)
	if err != nil {
		return summary, err
	}

	r.mu.Lock()
	r.last = &summary
	r.mu.Unlock()
	return summary, nil
}

// Running reports whether a run is in progress.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Last returns the summary of the last completed run, if any.
func (r *Runner) Last() (Summary, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil {
		return Summary{}, false
	}
	return *r.last, true
}
