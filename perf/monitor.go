// Package perf measures per-task frame time and FPS, and captures CPU
// profiles when the frame rate drops.
package perf

import (
	"fmt"
	"image/color"
	"strings"
	"time"
)

// Task is a measured slice of the frame.
type Task int

const (
	TaskPlayer Task = iota
	TaskEnemies
	TaskProjectiles
	TaskCollision
	TaskPowerups
	TaskComets
	TaskUI
	TaskOther
	numTasks
)

var taskNames = [numTasks]string{
	"player", "enemies", "projectiles", "collision", "powerups", "comets", "ui", "other",
}

func (t Task) String() string {
	if t < 0 || t >= numTasks {
		return "unknown"
	}
	return taskNames[t]
}

// Tasks lists every measured task in report order.
func Tasks() []Task {
	out := make([]Task, numTasks)
	for i := range out {
		out[i] = Task(i)
	}
	return out
}

type profileData struct {
	time  time.Duration
	calls int
}

// Config holds the monitor's window and display thresholds.
type Config struct {
	Window      time.Duration
	HistorySize int
	GoodFPS     int // at or above: green
	PlayableFPS int // at or above: yellow, below: red
}

func DefaultConfig() Config {
	return Config{Window: time.Second, HistorySize: 60, GoodFPS: 55, PlayableFPS: 30}
}

// Monitor tracks FPS and where frame time goes. It is disabled until
// toggled on and does nothing while disabled.
type Monitor struct {
	cfg     Config
	enabled bool
	now     func() time.Time

	fps        int
	frameCount int
	lastUpdate time.Time
	history    []int

	profiles [numTasks]profileData
	last     [numTasks]profileData // totals of the last completed window

	current   Task
	measuring bool
	start     time.Time

	totalFrameTime  time.Duration
	heaviestTask    string
	heaviestPercent float64
}

func NewMonitor(cfg Config) *Monitor {
	if cfg.Window <= 0 {
		cfg.Window = time.Second
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = 60
	}
	return &Monitor{
		cfg:          cfg,
		now:          time.Now,
		fps:          60,
		history:      make([]int, 0, cfg.HistorySize),
		heaviestTask: "N/A",
	}
}

func (m *Monitor) Enabled() bool { return m.enabled }

func (m *Monitor) SetEnabled(v bool) { m.enabled = v }

func (m *Monitor) Toggle() { m.enabled = !m.enabled }

// Start begins timing task. A measurement already running is replaced.
func (m *Monitor) Start(task Task) {
	if !m.enabled {
		return
	}
	m.current = task
	m.measuring = true
	m.start = m.now()
}

// End stops the running measurement and adds it to its task.
func (m *Monitor) End() {
	if !m.enabled || !m.measuring {
		return
	}
	m.measuring = false
	if m.current < 0 || m.current >= numTasks {
		return
	}
	p := &m.profiles[m.current]
	p.time += m.now().Sub(m.start)
	p.calls++
}

// Measure times fn as task.
func (m *Monitor) Measure(task Task, fn func()) {
	m.Start(task)
	fn()
	m.End()
}

// Update counts a frame. Once per window it publishes the FPS, records it in
// the history and recomputes the heaviest task, then starts a new window.
func (m *Monitor) Update() {
	if !m.enabled {
		return
	}
	m.frameCount++
	now := m.now()
	if m.lastUpdate.IsZero() {
		m.lastUpdate = now
		m.frameCount = 0
		return
	}
	if now.Sub(m.lastUpdate) < m.cfg.Window {
		return
	}

	m.fps = m.frameCount
	if len(m.history) == m.cfg.HistorySize {
		copy(m.history, m.history[1:])
		m.history = m.history[:len(m.history)-1]
	}
	m.history = append(m.history, m.fps)

	m.totalFrameTime = 0
	var maxTime time.Duration
	maxTask := Task(-1)
	for t, p := range m.profiles {
		m.totalFrameTime += p.time
		if p.time > maxTime {
			maxTime = p.time
			maxTask = Task(t)
		}
	}
	if m.totalFrameTime > 0 && maxTask >= 0 {
		m.heaviestPercent = float64(maxTime) / float64(m.totalFrameTime) * 100
		m.heaviestTask = strings.ToUpper(maxTask.String())
	}

	m.last = m.profiles
	m.profiles = [numTasks]profileData{}
	m.frameCount = 0
	m.lastUpdate = now
}

// FPS returns the frame count of the last completed window.
func (m *Monitor) FPS() int { return m.fps }

// AvgFPS averages the history, or returns FPS when it is empty.
func (m *Monitor) AvgFPS() int {
	if len(m.history) == 0 {
		return m.fps
	}
	sum := 0
	for _, f := range m.history {
		sum += f
	}
	return int(float64(sum)/float64(len(m.history)) + 0.5)
}

// History returns a copy of the recorded FPS values, oldest first.
func (m *Monitor) History() []int {
	return append([]int(nil), m.history...)
}

// Heaviest returns the upper-cased name of the task that took the most time
// in the last window and its share of the measured time.
func (m *Monitor) Heaviest() (string, float64) {
	return m.heaviestTask, m.heaviestPercent
}

var (
	colorGood = color.RGBA{G: 255, A: 255}
	colorOK   = color.RGBA{R: 255, G: 255, A: 255}
	colorBad  = color.RGBA{R: 255, A: 255}
)

// FPSColor is green, yellow or red depending on the current FPS.
func (m *Monitor) FPSColor() color.Color {
	switch {
	case m.fps >= m.cfg.GoodFPS:
		return colorGood
	case m.fps >= m.cfg.PlayableFPS:
		return colorOK
	default:
		return colorBad
	}
}

// TaskReport is one task's share of the last window.
type TaskReport struct {
	Task    Task
	Time    time.Duration
	Calls   int
	Percent float64
}

type Report struct {
	FPS            int
	AvgFPS         int
	TotalFrameTime time.Duration
	Tasks          []TaskReport // only tasks that took time
}

// Report summarises the last completed window.
func (m *Monitor) Report() Report {
	r := Report{FPS: m.fps, AvgFPS: m.AvgFPS(), TotalFrameTime: m.totalFrameTime}
	for t, p := range m.last {
		if p.time <= 0 {
			continue
		}
		r.Tasks = append(r.Tasks, TaskReport{
			Task:    Task(t),
			Time:    p.time,
			Calls:   p.calls,
			Percent: float64(p.time) / float64(m.totalFrameTime) * 100,
		})
	}
	return r
}

func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "fps=%d avg=%d total=%.2fms", r.FPS, r.AvgFPS, ms(r.TotalFrameTime))
	for _, t := range r.Tasks {
		fmt.Fprintf(&b, " %s=%.2fms/%d/%.1f%%", t.Task, ms(t.Time), t.Calls, t.Percent)
	}
	return b.String()
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

// PanelLine is one line of the on-screen stats panel.
type PanelLine struct {
	Text  string
	Color color.Color
	Size  float64
	Y     float64 // offset from the panel's top
}

var (
	panelGrey   = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	panelOrange = color.RGBA{R: 255, G: 180, B: 100, A: 255}
	panelPink   = color.RGBA{R: 255, G: 150, B: 150, A: 255}
)

// Panel returns the lines of the compact stats panel, nil when disabled.
func (m *Monitor) Panel() []PanelLine {
	if !m.enabled {
		return nil
	}
	task, pct := m.Heaviest()
	return []PanelLine{
		{Text: fmt.Sprintf("%d FPS", m.fps), Color: m.FPSColor(), Size: 24, Y: 7},
		{Text: fmt.Sprintf("avg: %d", m.AvgFPS()), Color: panelGrey, Size: 12, Y: 33},
		{Text: "Heavy: " + task, Color: panelOrange, Size: 11, Y: 49},
		{Text: fmt.Sprintf("%.1f%% frame", pct), Color: panelPink, Size: 11, Y: 63},
	}
}
