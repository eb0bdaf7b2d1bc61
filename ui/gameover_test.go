package ui

import (
	"image"
	"math"
	"testing"

	cfg "github.com/automoto/lodis-galaga/config"
	"github.com/automoto/lodis-galaga/render"
	"github.com/automoto/lodis-galaga/scores"
)

type fakeText struct {
	s string
}

func (f *fakeText) Bounds() image.Rectangle { return image.Rect(0, 0, 10*len(f.s), 20) }
func (f *fakeText) Deallocate()             {}

func newTestGameOver(c cfg.GameOverConfig) (*GameOver, *[]string) {
	var rendered []string
	g := NewGameOver(c, render.NewTextCache())
	g.RenderText = func(s string, _ render.Style) render.Graphic {
		rendered = append(rendered, s)
		return &fakeText{s: s}
	}
	g.rand = func() float64 { return 0.75 }
	return g, &rendered
}

func near(a, b float64) bool { return math.Abs(a-b) < 0.01 }

func TestGameOverTitleAnimation(t *testing.T) {
	g, _ := newTestGameOver(cfg.GameOver)

	if g.Alpha() != 0 || g.Scale() != 5.0 {
		t.Fatalf("expected alpha 0 scale 5 at start, got %v %v", g.Alpha(), g.Scale())
	}

	g.Update(-100, -100, 0.2)
	g.Update(-100, -100, 0.2)
	if !near(g.Alpha(), 0.4/0.45*255) {
		t.Errorf("alpha = %v, want %v", g.Alpha(), 0.4/0.45*255)
	}
	if !near(g.Scale(), 5.0-3.8*0.4/0.45) {
		t.Errorf("scale = %v, want %v", g.Scale(), 5.0-3.8*0.4/0.45)
	}
	if g.Shaking() {
		t.Fatal("shake must not start before the animation ends")
	}

	g.Update(-100, -100, 0.1)
	if g.Alpha() != 255 || !near(g.Scale(), 1.2) {
		t.Fatalf("expected final alpha 255 scale 1.2, got %v %v", g.Alpha(), g.Scale())
	}
	if !g.Shaking() {
		t.Fatal("expected shake after the animation ends")
	}
	// Started at 15px and decayed 50px/s for the same 0.1s frame.
	if !near(g.ShakeIntensity(), 10) {
		t.Errorf("shake intensity = %v, want 10", g.ShakeIntensity())
	}

	g.Update(-100, -100, 1)
	if g.Shaking() || g.ShakeIntensity() != 0 {
		t.Errorf("expected shake to end, shaking=%v intensity=%v", g.Shaking(), g.ShakeIntensity())
	}

	g.Reset()
	if g.Alpha() != 0 || g.Scale() != 5.0 || g.Shaking() {
		t.Error("Reset should restart the animation")
	}
}

func TestGameOverDefaultFrameStep(t *testing.T) {
	g, _ := newTestGameOver(cfg.GameOver)
	g.Update(0, 0, 0)
	if !near(g.Alpha(), (1.0/60)/0.45*255) {
		t.Errorf("zero dt should advance one 60Hz frame, alpha = %v", g.Alpha())
	}
}

func TestGameOverHoverAndClick(t *testing.T) {
	g, _ := newTestGameOver(cfg.GameOver)

	g.Update(80, 80, 0.016)
	if !g.Restart.Hovered || g.Message.Hovered {
		t.Fatalf("expected restart hovered only, got restart=%v message=%v", g.Restart.Hovered, g.Message.Hovered)
	}
	// With a pointer the hover state decides, not the click position.
	if a := g.HandleClick(700, 500); a != ActionRestart {
		t.Errorf("HandleClick = %v, want restart", a)
	}

	g.Update(80, 300, 0.016)
	if a := g.HandleClick(80, 300); a != ActionMessage {
		t.Errorf("HandleClick = %v, want message", a)
	}

	g.Update(400, 400, 0.016)
	if a := g.HandleClick(80, 80); a != ActionNone {
		t.Errorf("HandleClick = %v, want none", a)
	}

	// Edge of the circle is outside.
	g.Update(80+62.5, 80, 0.016)
	if g.Restart.Hovered {
		t.Error("point on the circle edge should not hover")
	}
}

func TestGameOverTouchClicks(t *testing.T) {
	c := cfg.GameOver
	c.Touch = true
	g, _ := newTestGameOver(c)

	// 800 wide: letters start at 400 - 6*80/2 = 160, buttons halfway.
	if g.Restart.X != 80 || g.Message.X != 80 {
		t.Fatalf("touch layout x = %v/%v, want 80", g.Restart.X, g.Message.X)
	}

	g.Update(80, 80, 0.016)
	if g.Restart.Hovered {
		t.Error("touch input has no hover")
	}
	if a := g.HandleClick(80, 80); a != ActionRestart {
		t.Errorf("HandleClick = %v, want restart", a)
	}
	if a := g.HandleClick(90, 310); a != ActionMessage {
		t.Errorf("HandleClick = %v, want message", a)
	}
	if a := g.HandleClick(400, 400); a != ActionNone {
		t.Errorf("HandleClick = %v, want none", a)
	}

	// Overlapping buttons: message wins.
	g.Message.Y = g.Restart.Y
	if a := g.HandleClick(80, 80); a != ActionMessage {
		t.Errorf("HandleClick = %v, want message to win", a)
	}
}

func TestFormatScore(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1 000"},
		{12345, "12 345"},
		{123456789, "123 456 789"},
		{-1234, "-1 234"},
	}
	for _, tt := range tests {
		if got := FormatScore(tt.in); got != tt.want {
			t.Errorf("FormatScore(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0:00"},
		{59.9, "0:59"},
		{61, "1:01"},
		{3600, "60:00"},
		{-5, "0:00"},
	}
	for _, tt := range tests {
		if got := FormatTime(tt.in); got != tt.want {
			t.Errorf("FormatTime(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncateNick(t *testing.T) {
	if got := truncateNick("short", 12); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncateNick("averyveryverylongnick", 12); got != "averyveryver..." {
		t.Errorf("got %q", got)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestGameOverDrawTopRank(t *testing.T) {
	g, rendered := newTestGameOver(cfg.GameOver)
	rec := &render.Recorder{}
	ctx := render.NewContext(rec)

	me := scores.Entry{Nick: "ace", Score: 5000, Wave: 4, Time: 95}
	s := Summary{
		Player:  scores.Player{Nick: "ace"},
		Score:   5000,
		Wave:    4,
		Time:    95.7,
		Top:     []scores.Entry{me, {Nick: "bob", Score: 1200, Time: 40}},
		Rank:    scores.Rank{Rank: 1, Entry: me},
		HasRank: true,
	}
	g.Update(0, 0, 1)
	g.Draw(ctx, s)

	for _, want := range []string{"ace", "CONGRATULATIONS! YOU'RE #1!", "TOP 4 RANKINGS", "5 000", "1:35", "---", "W", "D"} {
		if !contains(*rendered, want) {
			t.Errorf("expected %q to be rendered, got %v", want, *rendered)
		}
	}
	if want := "Score: 5 000 • Wave: 4 • Time: 1:35"; !contains(*rendered, want) {
		t.Errorf("missing stats line %q", want)
	}
	if n := rec.Count(render.OpFillCircle); n != 2 {
		t.Errorf("expected two button backgrounds, got %d", n)
	}
	if ctx.Depth() != 0 {
		t.Errorf("draw left %d unbalanced scopes", ctx.Depth())
	}
}

func TestGameOverDrawOwnRankBelowTable(t *testing.T) {
	g, rendered := newTestGameOver(cfg.GameOver)
	rec := &render.Recorder{}
	ctx := render.NewContext(rec)

	top := []scores.Entry{
		{Nick: "a", Score: 900}, {Nick: "b", Score: 800}, {Nick: "c", Score: 700}, {Nick: "d", Score: 600},
	}
	me := scores.Entry{Nick: "zed", Score: 10, Time: 5}
	g.Draw(ctx, Summary{
		Player:  scores.Player{Nick: "zed"},
		Score:   10,
		Time:    5,
		Top:     top,
		Rank:    scores.Rank{Rank: 7, Entry: me},
		HasRank: true,
	})

	if !contains(*rendered, "7.") {
		t.Errorf("expected own rank row, got %v", *rendered)
	}
	if contains(*rendered, "---") {
		t.Error("full table should have no empty slots")
	}
	for _, s := range *rendered {
		if s == "WELL DONE! YOU'RE #7!" {
			t.Error("no congratulations outside the top rows")
		}
	}
}
