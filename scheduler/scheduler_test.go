package scheduler

import (
	"context"
	"testing"

	"clanTracker/services/pipeline"
)

type countingRunner struct {
	calls int
	err   error
}

func (c *countingRunner) RunOnce(context.Context) (pipeline.Summary, error) {
	c.calls++
	return pipeline.Summary{}, c.err
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	s, err := NewScheduler(context.Background(), &countingRunner{})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Stop()

	if err := s.Start("not a cron line"); err == nil {
		t.Error("expected error for invalid schedule")
	}
}

func TestRefreshInvokesRunner(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"success", nil},
		{"run in progress", pipeline.ErrRunInProgress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &countingRunner{err: tt.err}
			s, err := NewScheduler(context.Background(), runner)
			if err != nil {
				t.Fatal(err)
			}
			defer s.Stop()

			s.refresh()
			if runner.calls != 1 {
				t.Errorf("calls = %d, want 1", runner.calls)
			}
		})
	}
}
