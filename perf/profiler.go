package perf

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/profile"
)

var (
	ErrProfilerCooldown = errors.New("perf: capture on cooldown")
	ErrProfilerBusy     = errors.New("perf: already profiling")
)

type ProfilerConfig struct {
	Dir      string
	BelowFPS int           // capture when FPS drops under this
	Duration time.Duration // length of one capture
	Cooldown time.Duration // minimum time between capture starts
}

type stopper interface{ Stop() }

// Profiler captures a CPU profile when the frame rate drops. Captures never
// overlap and start at most once per cooldown.
type Profiler struct {
	cfg ProfilerConfig

	mu        sync.Mutex
	profiling bool
	lastStart time.Time

	now       func() time.Time
	start     func(dir string) stopper
	afterFunc func(d time.Duration, f func())
}

func NewProfiler(cfg ProfilerConfig) *Profiler {
	if cfg.Dir == "" {
		cfg.Dir = "profiles"
	}
	return &Profiler{
		cfg: cfg,
		now: time.Now,
		start: func(dir string) stopper {
			return profile.Start(profile.CPUProfile, profile.ProfilePath(dir), profile.Quiet, profile.NoShutdownHook)
		},
		afterFunc: func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
}

// Check starts a capture when fps is below the threshold. It reports
// whether a capture was started.
func (p *Profiler) Check(fps int) bool {
	if fps >= p.cfg.BelowFPS {
		return false
	}
	err := p.Capture(fmt.Sprintf("fps%d", fps))
	return err == nil
}

// Profiling reports whether a capture is running.
func (p *Profiler) Profiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.profiling
}

// Capture starts a CPU profile written under Dir/fps-drop-<time>-<reason>
// and stops it after Duration.
func (p *Profiler) Capture(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if !p.lastStart.IsZero() && now.Sub(p.lastStart) < p.cfg.Cooldown {
		return ErrProfilerCooldown
	}
	if p.profiling {
		return ErrProfilerBusy
	}

	dir := filepath.Join(p.cfg.Dir, fmt.Sprintf("fps-drop-%s-%s", now.Format("20060102-150405"), reason))
	p.profiling = true
	p.lastStart = now
	prof := p.start(dir)
	log.Printf("[perf] capturing CPU profile to %s for %v", dir, p.cfg.Duration)

	p.afterFunc(p.cfg.Duration, func() {
		prof.Stop()
		p.mu.Lock()
		p.profiling = false
		p.mu.Unlock()
		log.Printf("[perf] CPU profile saved to %s", dir)
	})
	return nil
}
