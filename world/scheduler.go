package world

import (
	"fmt"
	"log/slog"
	"time"
)

// PassFunc runs one update pass at game time now.
type PassFunc func(now time.Duration) error

type pass struct {
	name     string
	interval time.Duration
	run      PassFunc
	last     time.Duration
	ran      bool
	stats    PassStats
}

// PassStats counts how a pass has fared.
type PassStats struct {
	Runs     int
	Failures int
}

// Scheduler runs independently clocked passes. Each pass is gated by its
// own last-run time, so a slow cadence on one never delays another. A pass
// that errors or panics is logged and skipped for that cycle only.
type Scheduler struct {
	passes []*pass
}

// Add registers a pass. An interval of zero runs it on every tick. Passes
// run in registration order.
func (s *Scheduler) Add(name string, interval time.Duration, run PassFunc) {
	s.passes = append(s.passes, &pass{name: name, interval: interval, run: run})
}

// SetInterval changes a registered pass's cadence.
func (s *Scheduler) SetInterval(name string, interval time.Duration) {
	for _, p := range s.passes {
		if p.name == name {
			p.interval = interval
		}
	}
}

// Tick runs every pass that is due at now.
func (s *Scheduler) Tick(now time.Duration) {
	for _, p := range s.passes {
		if p.ran && now-p.last < p.interval {
			continue
		}
		p.last = now
		p.ran = true
		p.stats.Runs++
		if err := safeRun(p.run, now); err != nil {
			p.stats.Failures++
			slog.Error("pass failed", "pass", p.name, "at", now, "error", err)
		}
	}
}

// Stats reports the run and failure counts for a pass.
func (s *Scheduler) Stats(name string) PassStats {
	for _, p := range s.passes {
		if p.name == name {
			return p.stats
		}
	}
	return PassStats{}
}

func safeRun(run PassFunc, now time.Duration) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return run(now)
}
