package systems

import (
	"fmt"
	"log"
	"strings"

	"github.com/automoto/lodis-galaga/components"
	cfg "github.com/automoto/lodis-galaga/config"
	"github.com/automoto/lodis-galaga/perf"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// globalProfiler outlives scenes so the capture cooldown holds across runs.
var globalProfiler *perf.Profiler

// CreatePerf creates the monitor singleton for a scene.
func CreatePerf(ecs *ecs.ECS) *components.PerfData {
	monitor := perf.NewMonitor(perf.Config{
		Window:      cfg.Perf.Window,
		HistorySize: cfg.Perf.HistorySize,
		GoodFPS:     cfg.Perf.GoodFPS,
		PlayableFPS: cfg.Perf.PlayableFPS,
	})
	monitor.SetEnabled(cfg.Debug.ShowPerf || cfg.Debug.AutoProfile)

	if cfg.Debug.AutoProfile && globalProfiler == nil {
		globalProfiler = perf.NewProfiler(perf.ProfilerConfig{
			Dir:      cfg.Perf.ProfileDir,
			BelowFPS: cfg.Perf.ProfileBelowFPS,
			Duration: cfg.Perf.CaptureDuration,
			Cooldown: cfg.Perf.CaptureCooldown,
		})
	}

	entry := ecs.World.Entry(ecs.World.Create(components.Perf))
	components.Perf.SetValue(entry, components.PerfData{Monitor: monitor, Profiler: globalProfiler})
	return components.Perf.Get(entry)
}

func getPerf(ecs *ecs.ECS) *components.PerfData {
	entry, ok := components.Perf.First(ecs.World)
	if !ok {
		return nil
	}
	return components.Perf.Get(entry)
}

// UpdatePerf closes the monitor's frame and captures a profile when the
// frame rate drops.
func UpdatePerf(ecs *ecs.ECS) {
	p := getPerf(ecs)
	if p == nil {
		return
	}
	p.Monitor.Update()
	if p.Profiler != nil && p.Monitor.Enabled() {
		p.Profiler.Check(p.Monitor.FPS())
	}
}

func logPerfReport(r perf.Report) {
	log.Printf("[perf] %s", formatPerfReport(r))
}

// formatPerfReport renders r on one line, tasks in report order.
func formatPerfReport(r perf.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "fps %d (avg %d), frame time %v", r.FPS, r.AvgFPS, r.TotalFrameTime)
	for _, t := range r.Tasks {
		fmt.Fprintf(&b, ", %s %v x%d (%.1f%%)", t.Task, t.Time, t.Calls, t.Percent)
	}
	return b.String()
}

// Measured wraps a system so its time is attributed to task.
func Measured(task perf.Task, system ecs.System) ecs.System {
	return func(e *ecs.ECS) {
		p := getPerf(e)
		if p == nil || !p.Monitor.Enabled() {
			system(e)
			return
		}
		p.Monitor.Measure(task, func() { system(e) })
	}
}

// MeasuredDraw wraps a renderer so its time is attributed to task.
func MeasuredDraw(task perf.Task, renderer func(*ecs.ECS, *ebiten.Image)) func(*ecs.ECS, *ebiten.Image) {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		p := getPerf(e)
		if p == nil || !p.Monitor.Enabled() {
			renderer(e, screen)
			return
		}
		p.Monitor.Measure(task, func() { renderer(e, screen) })
	}
}
