package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Progress advances once per match, whether it produced a row or not.
type Progress interface {
	Tick()
}

// ProgressFactory starts a progress indicator for a player's matches.
type ProgressFactory func(player string, total int) Progress

const barWidth = 50

// logProgress renders a text bar into the log every time another tenth of the
// matches is done.
type logProgress struct {
	player  string
	total   int
	current int
	step    int
	started time.Time
}

func NewLogProgress(player string, total int) Progress {
	return &logProgress{player: player, total: total, started: time.Now()}
}

func (p *logProgress) Tick() {
	if p.total == 0 || p.current >= p.total {
		return
	}
	p.current++
	step := p.current * 10 / p.total
	if step == p.step && p.current != p.total {
		return
	}
	p.step = step
	log.Info().Str("player", p.player).Msg(p.render())
}

func (p *logProgress) render() string {
	done := p.current * barWidth / p.total
	percent := p.current * 100 / p.total
	bar := strings.Repeat("=", done) + strings.Repeat(" ", barWidth-done)
	return fmt.Sprintf("    Matches [%s] %d%% of %d; eta %s", bar, percent, p.total, p.eta().Round(time.Second))
}

func (p *logProgress) eta() time.Duration {
	if p.current == 0 {
		return 0
	}
	elapsed := time.Since(p.started)
	perMatch := elapsed / time.Duration(p.current)
	return perMatch * time.Duration(p.total-p.current)
}

type noProgress struct{}

func (noProgress) Tick() {}

// NoProgress disables progress output.
func NoProgress(string, int) Progress { return noProgress{} }
