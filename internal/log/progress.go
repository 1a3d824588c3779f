package log

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Progress provides periodic feedback for long-running sweeps. Updates are
// throttled so tight loops do not flood the log.
type Progress struct {
	mu         sync.Mutex
	name       string
	total      int
	current    int
	startTime  time.Time
	lastEmit   time.Time
	minEmitGap time.Duration
}

// NewProgress creates a progress tracker for total units of work
func NewProgress(name string, total int) *Progress {
	return &Progress{
		name:       name,
		total:      total,
		startTime:  time.Now(),
		minEmitGap: 2 * time.Second,
	}
}

// Step records one completed unit and emits a throttled progress event.
// The label identifies the unit just finished.
func (p *Progress) Step(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current++
	now := time.Now()
	if now.Sub(p.lastEmit) < p.minEmitGap && p.current < p.total {
		return
	}
	p.lastEmit = now

	elapsed := now.Sub(p.startTime)
	ev := log.Info().
		Str("task", p.name).
		Str("unit", label).
		Int("done", p.current).
		Int("total", p.total).
		Dur("elapsed", elapsed)

	if p.total > 0 {
		ev = ev.Float64("pct", float64(p.current)/float64(p.total)*100)
		if p.current > 0 && p.current < p.total {
			eta := time.Duration(float64(elapsed) / float64(p.current) * float64(p.total-p.current))
			ev = ev.Dur("eta", eta.Round(time.Second))
		}
	}
	ev.Msg("progress")
}

// Done emits the final completion event
func (p *Progress) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()

	log.Info().
		Str("task", p.name).
		Int("done", p.current).
		Int("total", p.total).
		Dur("elapsed", time.Since(p.startTime)).
		Msg("complete")
}
