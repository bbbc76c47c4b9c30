package pipeline

import (
	"context"
	"errors"
	"testing"

	"clanTracker/services/roster"
)

type staticRoster []roster.Player

func (s staticRoster) Load(context.Context) ([]roster.Player, error) { return s, nil }

type brokenRoster struct{}

func (brokenRoster) Load(context.Context) ([]roster.Player, error) {
	return nil, errors.New("no such file")
}

type blockingService struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingService) Run(_ context.Context, players []roster.Player) (Summary, error) {
	close(b.started)
	<-b.release
	return Summary{Players: []PlayerSummary{{Player: players[0], Rows: 3}}}, nil
}

func TestRunnerRejectsOverlappingRuns(t *testing.T) {
	svc := &blockingService{started: make(chan struct{}), release: make(chan struct{})}
	runner := NewRunner(staticRoster{zavala}, svc)

	done := make(chan error)
	go func() {
		_, err := runner.RunOnce(context.Background())
		done <- err
	}()
	<-svc.started

	if !runner.Running() {
		t.Error("Running() = false during a run")
	}
	if _, err := runner.RunOnce(context.Background()); !errors.Is(err, ErrRunInProgress) {
		t.Errorf("second RunOnce() error = %v, want ErrRunInProgress", err)
	}
	if _, ok := runner.Last(); ok {
		t.Error("Last() reported a summary before the first run finished")
	}

	close(svc.release)
	if err := <-done; err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}
	last, ok := runner.Last()
	if !ok || last.Rows() != 3 {
		t.Errorf("Last() = %+v, %v", last, ok)
	}
	if runner.Running() {
		t.Error("Running() = true after the run finished")
	}
}

func TestRunnerRosterFailure(t *testing.T) {
	runner := NewRunner(brokenRoster{}, &blockingService{})
	if _, err := runner.RunOnce(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if runner.Running() {
		t.Error("Running() = true after a failed run")
	}
}
