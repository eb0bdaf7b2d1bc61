package systems

import (
	"bytes"
	"errors"
	"image/color"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/automoto/lodis-galaga/batch"
	"github.com/automoto/lodis-galaga/components"
	"github.com/automoto/lodis-galaga/perf"
	"github.com/automoto/lodis-galaga/render"
	"github.com/automoto/lodis-galaga/shared/gamemath"
	"github.com/automoto/lodis-galaga/spatial"
	"github.com/automoto/lodis-galaga/systems/factory"
	"github.com/automoto/lodis-galaga/tags"
)

// validPremultiplied reports whether c converts to a premultiplied colour
// whose channels do not exceed its alpha.
func validPremultiplied(c color.Color) bool {
	r, g, b, a := c.RGBA()
	return r <= a && g <= a && b <= a
}

func TestTranslucentColorsStayTranslucent(t *testing.T) {
	tests := []struct {
		name string
		c    color.Color
	}{
		{"grid line", gridLineColor},
		{"heat one", heatColor(1)},
		{"heat full", heatColor(20)},
		{"rapid fire glow", rapidFireGlow},
		{"explosion start", fadeOut(color.RGBA{R: 255, G: 160, B: 40, A: 255}, 0)},
		{"explosion half", fadeOut(color.RGBA{R: 255, G: 160, B: 40, A: 255}, 0.5)},
		{"explosion end", fadeOut(color.RGBA{R: 255, G: 160, B: 40, A: 255}, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !validPremultiplied(tt.c) {
				r, g, b, a := tt.c.RGBA()
				t.Errorf("channels exceed alpha: %d %d %d / %d", r, g, b, a)
			}
		})
	}
}

func TestHeatColorScalesRedWithAlpha(t *testing.T) {
	r, g, b, a := heatColor(1).RGBA()
	if g != 0 || b != 0 {
		t.Fatalf("heat should be pure red, got %d %d %d", r, g, b)
	}
	if a != 30*0x101 || r != a {
		t.Fatalf("one member: r=%#x a=%#x, want both %#x", r, a, 30*0x101)
	}
}

func TestFadeOutAlpha(t *testing.T) {
	c := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	if got := fadeOut(c, 0).A; got != 255 {
		t.Errorf("start alpha = %d, want 255", got)
	}
	if got := fadeOut(c, 1).A; got != 0 {
		t.Errorf("end alpha = %d, want 0", got)
	}
	if got := fadeOut(c, 2).A; got != 0 {
		t.Errorf("past end alpha = %d, want 0", got)
	}
}

func TestBatchEnemiesReportsRejected(t *testing.T) {
	e := newTestECS(t)
	factory.CreateEnemy(e, factory.EnemyPenguin, 0, 0, 40, 40, 0)
	broken := factory.CreateEnemy(e, factory.EnemyPenguin, 0, 0, 120, 40, 0)
	components.Health.Get(broken).Max = 0

	b := batch.New()
	err := batchEnemies(e.World, b)
	if !errors.Is(err, batch.ErrInvalidMaxHealth) {
		t.Fatalf("err = %v, want ErrInvalidMaxHealth", err)
	}
	if n := len(b.Bucket(batch.Key{Group: batch.IdleNormal})); n != 1 {
		t.Fatalf("idle-normal bucket has %d enemies, want 1", n)
	}

	components.Health.Get(broken).Max = 3
	if err := batchEnemies(e.World, b); err != nil {
		t.Fatalf("healthy enemies: %v", err)
	}
	if n := len(b.Bucket(batch.Key{Group: batch.IdleNormal})); n != 2 {
		t.Fatalf("after refill bucket has %d enemies, want 2", n)
	}
}

func TestWarnBatchLogsOncePerDistinctError(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)
	defer func() { lastBatchWarning = "" }()
	lastBatchWarning = ""

	err := errors.Join(batch.ErrInvalidMaxHealth, batch.ErrInvalidMaxHealth)
	warnBatch(err)
	warnBatch(err)
	if n := strings.Count(buf.String(), "Warning: enemies not drawn"); n != 1 {
		t.Fatalf("logged %d times, want 1:\n%s", n, buf.String())
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Fatalf("joined errors should log on one line:\n%s", buf.String())
	}

	warnBatch(batch.ErrInvalidMaxHealth)
	if n := strings.Count(buf.String(), "Warning: enemies not drawn"); n != 2 {
		t.Fatalf("a different error should log again, got %d lines", n)
	}
}

func TestHoverCell(t *testing.T) {
	grid, err := spatial.NewGrid(50, gamemath.Rect{W: 200, H: 100})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	grid.Insert(components.NewBody(10, 10, 5, 5, tags.ResolvEnemy))
	grid.Insert(components.NewBody(20, 20, 5, 5, tags.ResolvEnemy))

	c, n, ok := hoverCell(grid, 12, 12)
	if !ok || c != (spatial.Cell{}) || n != 2 {
		t.Fatalf("hoverCell = %v %d %v, want {0 0} 2 true", c, n, ok)
	}
	if c, n, ok = hoverCell(grid, 160, 60); !ok || c != (spatial.Cell{Col: 3, Row: 1}) || n != 0 {
		t.Fatalf("empty cell = %v %d %v", c, n, ok)
	}
	if _, _, ok = hoverCell(grid, 250, 10); ok {
		t.Fatal("pointer outside the play area has no cell")
	}
}

func TestFormatPerfReport(t *testing.T) {
	r := perf.Report{
		FPS:            58,
		AvgFPS:         59,
		TotalFrameTime: 12 * time.Millisecond,
		Tasks: []perf.TaskReport{
			{Task: perf.TaskCollision, Time: 3 * time.Millisecond, Calls: 60, Percent: 25},
		},
	}
	got := formatPerfReport(r)
	want := "fps 58 (avg 59), frame time 12ms, collision 3ms x60 (25.0%)"
	if got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestReleaseRenderStateDropsLabels(t *testing.T) {
	e := newTestECS(t)
	entry := e.World.Entry(e.World.Create(components.Render))
	components.Render.SetValue(entry, components.RenderData{Text: render.NewTextCache()})
	rd := components.Render.Get(entry)
	rd.Label("score")
	rd.Label("wave")

	ReleaseRenderState(e)

	if len(rd.Labels) != 0 {
		t.Fatalf("labels left: %d", len(rd.Labels))
	}
	if rd.Text.Len() != 0 {
		t.Fatalf("text cache entries left: %d", rd.Text.Len())
	}

	// Labels are recreated on demand afterwards.
	if rd.Label("score") == nil {
		t.Fatal("label not recreated")
	}
}
