package batch

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/automoto/lodis-galaga/render"
	"github.com/automoto/lodis-galaga/shared/gamemath"
)

type sprite string

func (sprite) Bounds() image.Rectangle { return image.Rect(0, 0, 64, 64) }

func fullSprites() Sprites {
	s := Sprites{
		Boss:        sprite("boss"),
		Enemy:       sprite("enemy"),
		PenguinIdle: sprite("idle"),
	}
	for i := range s.Death {
		s.Death[i] = sprite(fmt.Sprintf("death%d", i))
	}
	return s
}

func images(rec *render.Recorder) []string {
	var out []string
	for _, c := range rec.Calls {
		if c.Op == render.OpImage {
			out = append(out, string(c.Image.(sprite)))
		}
	}
	return out
}

func newRenderFixture() (*Batcher, *render.Recorder, *render.Context) {
	rec := &render.Recorder{}
	return New(), rec, render.NewContext(rec)
}

func TestRenderOneScopePerNonEmptyBucket(t *testing.T) {
	b, rec, ctx := newRenderFixture()
	for i := 0; i < 10; i++ {
		_ = b.Add(&fakeEnemy{r: gamemath.Rect{X: float64(i * 70), W: 64, H: 64}, v: penguin(3, 3)})
	}
	for i := 0; i < 4; i++ {
		_ = b.Add(&fakeEnemy{v: penguin(1, 3)})
	}
	_ = b.Add(&fakeEnemy{v: dyingPenguin(2)})
	_ = b.Add(&fakeEnemy{v: dyingPenguin(2)})

	b.Render(ctx, fullSprites())

	if got := ctx.Stats().Scopes; got != 3 {
		t.Fatalf("scopes = %d, want 3", got)
	}
	if got := rec.Count(render.OpImage); got != 16 {
		t.Fatalf("image draws = %d, want 16", got)
	}
	if ctx.Depth() != 0 || ctx.State() != render.DefaultState() {
		t.Fatalf("context state leaked: depth %d state %+v", ctx.Depth(), ctx.State())
	}
}

func TestRenderFallbackChain(t *testing.T) {
	b, rec, ctx := newRenderFixture()
	_ = b.Add(&fakeEnemy{v: boss(50, 50, false)})
	_ = b.Add(&fakeEnemy{v: penguin(3, 3)})
	_ = b.Add(&fakeEnemy{v: penguin(1, 3)})
	_ = b.Add(&fakeEnemy{v: penguin(0, 3)})

	s := Sprites{Enemy: sprite("enemy"), PenguinIdle: sprite("idle")}
	b.Render(ctx, s)

	want := []string{"enemy", "idle", "idle", "idle"}
	if got := images(rec); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("images = %v, want %v", got, want)
	}
	if tint := rec.Calls[0].Color; tint != b.Style.BossFallbackTint {
		t.Fatalf("boss fallback tint = %v", tint)
	}
	if rec.Calls[1].Color != nil {
		t.Fatalf("idle batch inherited a tint: %v", rec.Calls[1].Color)
	}
}

func TestRenderDamagedUsesDeathFrames(t *testing.T) {
	b, rec, ctx := newRenderFixture()
	_ = b.Add(&fakeEnemy{v: penguin(1, 3)})
	_ = b.Add(&fakeEnemy{v: penguin(0, 3)})
	b.Render(ctx, fullSprites())

	want := "death2,death4"
	if got := strings.Join(images(rec), ","); got != want {
		t.Fatalf("images = %s, want %s", got, want)
	}
}

func TestRenderBossHealthBarsAfterBossSprites(t *testing.T) {
	b, rec, ctx := newRenderFixture()
	_ = b.Add(&fakeEnemy{r: gamemath.Rect{X: 100, Y: 100, W: 128, H: 128}, v: boss(25, 50, false)})
	_ = b.Add(&fakeEnemy{r: gamemath.Rect{X: 300, Y: 100, W: 128, H: 128}, v: boss(50, 50, false)})
	_ = b.Add(&fakeEnemy{v: penguin(3, 3)})
	b.Render(ctx, fullSprites())

	var kinds []string
	for _, c := range rec.Calls {
		kinds = append(kinds, c.Op.String())
	}
	// two boss sprites, background, fill, border for the damaged boss only, then the penguin
	want := "image,image,fill,fill,stroke,image"
	if got := strings.Join(kinds, ","); got != want {
		t.Fatalf("calls = %s, want %s", got, want)
	}

	bg, fill, border := rec.Calls[2], rec.Calls[3], rec.Calls[4]
	wantBar := gamemath.Rect{X: 100, Y: 88, W: 128, H: 6}
	if bg.Rect != wantBar || border.Rect != wantBar {
		t.Fatalf("bar rect = %+v / %+v, want %+v", bg.Rect, border.Rect, wantBar)
	}
	if fill.Rect.W != 64 {
		t.Fatalf("fill width = %v, want 64", fill.Rect.W)
	}
	if fill.Color != b.Style.BarFill || border.Width != 1 {
		t.Fatalf("unexpected bar style: fill %v border width %v", fill.Color, border.Width)
	}
}

func TestRenderSkipsBarForZeroMaxHealth(t *testing.T) {
	b, rec, ctx := newRenderFixture()
	_ = b.Add(&fakeEnemy{v: boss(0, 0, false)})
	b.Render(ctx, fullSprites())
	if rec.Count(render.OpFillRect) != 0 || rec.Count(render.OpStrokeRect) != 0 {
		t.Fatalf("health bar drawn for boss with zero max health")
	}
}

func TestRenderBossDyingUsesOwnFrame(t *testing.T) {
	b, rec, ctx := newRenderFixture()
	v := boss(0, 50, true)
	v.DeathFrame = 5
	_ = b.Add(&fakeEnemy{v: v})
	v.DeathFrame = 1
	_ = b.Add(&fakeEnemy{v: v})
	b.Render(ctx, fullSprites())

	if got := strings.Join(images(rec), ","); got != "death5,death1" {
		t.Fatalf("images = %s", got)
	}
}

func TestRenderMissingSpriteSkipsBucket(t *testing.T) {
	var warnings []string
	b, rec, ctx := newRenderFixture()
	b.Strict = true
	b.Warnf = func(format string, args ...any) { warnings = append(warnings, fmt.Sprintf(format, args...)) }

	_ = b.Add(&fakeEnemy{v: dyingPenguin(6)})
	_ = b.Add(&fakeEnemy{v: penguin(3, 3)})
	b.Render(ctx, Sprites{PenguinIdle: sprite("idle")})

	if got := strings.Join(images(rec), ","); got != "idle" {
		t.Fatalf("images = %s", got)
	}
	if ctx.Stats().Scopes != 1 {
		t.Fatalf("scopes = %d, want 1", ctx.Stats().Scopes)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "dying[6]") {
		t.Fatalf("warnings = %v", warnings)
	}
}

func TestRenderResetsInheritedState(t *testing.T) {
	b, rec, ctx := newRenderFixture()
	_ = b.Add(&fakeEnemy{r: gamemath.Rect{X: 10, Y: 10, W: 64, H: 64}, v: penguin(3, 3)})

	ctx.Tint(color.RGBA{G: 255, A: 255})
	ctx.SetImageMode(render.ImageModeCenter)
	b.Render(ctx, fullSprites())

	c := rec.Calls[0]
	if c.Color != nil || c.Rect.X != 10 {
		t.Fatalf("batch drew with caller state: %+v", c)
	}
	if ctx.State().ImageMode != render.ImageModeCenter {
		t.Fatalf("caller state not restored")
	}
}

func BenchmarkRender(b *testing.B) {
	bt := New()
	for i := 0; i < 300; i++ {
		_ = bt.Add(&fakeEnemy{v: penguin(float64(i%4), 3)})
	}
	rec := &render.Recorder{}
	ctx := render.NewContext(rec)
	s := fullSprites()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rec.Reset()
		ctx.ResetStats()
		bt.Render(ctx, s)
	}
}
