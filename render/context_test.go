package render

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/automoto/lodis-galaga/shared/gamemath"
)

type fakeImage struct {
	w, h     int
	released int
}

func (f *fakeImage) Bounds() image.Rectangle { return image.Rect(0, 0, f.w, f.h) }
func (f *fakeImage) Deallocate()             { f.released++ }

var red = color.RGBA{R: 255, A: 255}

func TestScopeRestoresState(t *testing.T) {
	ctx := NewContext(&Recorder{})
	ctx.Tint(red)
	before := ctx.State()

	ctx.Scope(func(ctx *Context) {
		ctx.NoTint()
		ctx.Fill(color.Black)
		ctx.Stroke(color.White)
		ctx.SetImageMode(ImageModeCenter)
		if ctx.Depth() != 1 {
			t.Errorf("expected depth 1 inside scope, got %d", ctx.Depth())
		}
	})

	if ctx.State() != before {
		t.Fatalf("state not restored: got %+v, want %+v", ctx.State(), before)
	}
	if ctx.Depth() != 0 {
		t.Fatalf("expected empty stack, got depth %d", ctx.Depth())
	}
}

func TestScopeRestoresAfterUnbalancedPushAndPanic(t *testing.T) {
	ctx := NewContext(&Recorder{})
	before := ctx.State()

	ctx.Scope(func(ctx *Context) {
		ctx.Push()
		ctx.Push()
		ctx.Tint(red)
	})
	if ctx.Depth() != 0 || ctx.State() != before {
		t.Fatal("expected scope to discard pushes left open by its body")
	}

	func() {
		defer func() { _ = recover() }()
		ctx.Scope(func(ctx *Context) {
			ctx.Tint(red)
			panic("boom")
		})
	}()
	if ctx.Depth() != 0 || ctx.State() != before {
		t.Fatal("expected scope to restore state when its body panics")
	}
}

func TestPopWithoutPush(t *testing.T) {
	ctx := NewContext(&Recorder{})
	if err := ctx.Pop(); !errors.Is(err, ErrUnbalancedPop) {
		t.Fatalf("expected ErrUnbalancedPop, got %v", err)
	}
}

func TestNestedScopesDoNotLeak(t *testing.T) {
	rec := &Recorder{}
	ctx := NewContext(rec)
	img := &fakeImage{w: 4, h: 4}

	ctx.Scope(func(ctx *Context) {
		ctx.Tint(red)
		ctx.Scope(func(ctx *Context) {
			ctx.NoTint()
			ctx.Image(img, gamemath.Rect{W: 4, H: 4})
		})
		ctx.Image(img, gamemath.Rect{W: 4, H: 4})
	})
	ctx.Image(img, gamemath.Rect{W: 4, H: 4})

	if len(rec.Calls) != 3 {
		t.Fatalf("expected 3 draws, got %d", len(rec.Calls))
	}
	if rec.Calls[0].Color != nil {
		t.Error("inner scope draw should be untinted")
	}
	if rec.Calls[1].Color != red {
		t.Error("outer scope draw should keep its tint after the inner scope ends")
	}
	if rec.Calls[2].Color != nil {
		t.Error("tint leaked out of the outer scope")
	}
}

func TestImageModeCenter(t *testing.T) {
	rec := &Recorder{}
	ctx := NewContext(rec)
	ctx.SetImageMode(ImageModeCenter)
	ctx.Image(&fakeImage{w: 1, h: 1}, gamemath.Rect{X: 50, Y: 50, W: 20, H: 10})

	want := gamemath.Rect{X: 40, Y: 45, W: 20, H: 10}
	if rec.Calls[0].Rect != want {
		t.Fatalf("expected %+v, got %+v", want, rec.Calls[0].Rect)
	}
}

func TestRectHonoursFillAndStroke(t *testing.T) {
	rec := &Recorder{}
	ctx := NewContext(rec)
	r := gamemath.Rect{X: 1, Y: 2, W: 3, H: 4}

	ctx.NoFill()
	ctx.NoStroke()
	ctx.Rect(r)
	if len(rec.Calls) != 0 {
		t.Fatalf("expected nothing drawn with no fill and no stroke, got %d calls", len(rec.Calls))
	}

	ctx.Fill(red)
	ctx.Stroke(color.White)
	ctx.StrokeWeight(2)
	ctx.Rect(r)
	if rec.Count(OpFillRect) != 1 || rec.Count(OpStrokeRect) != 1 {
		t.Fatalf("expected one fill and one stroke, got %v", rec.Calls)
	}
	if rec.Calls[1].Width != 2 {
		t.Errorf("expected stroke width 2, got %v", rec.Calls[1].Width)
	}
}

func TestStatsCountScopesAndDraws(t *testing.T) {
	ctx := NewContext(&Recorder{})
	img := &fakeImage{w: 1, h: 1}
	for i := 0; i < 3; i++ {
		ctx.Scope(func(ctx *Context) {
			ctx.Image(img, gamemath.Rect{W: 1, H: 1})
			ctx.Image(nil, gamemath.Rect{W: 1, H: 1})
		})
	}
	if s := ctx.Stats(); s.Scopes != 3 || s.Draws != 3 {
		t.Fatalf("expected 3 scopes and 3 draws, got %+v", s)
	}
	ctx.ResetStats()
	if ctx.Stats() != (Stats{}) {
		t.Fatal("expected zeroed stats after ResetStats")
	}
}

func TestLineNeedsStroke(t *testing.T) {
	rec := &Recorder{}
	ctx := NewContext(rec)
	ctx.Line(0, 0, 10, 10)
	if len(rec.Calls) != 0 {
		t.Fatal("expected no line without a stroke colour")
	}
	ctx.Stroke(red)
	ctx.Line(0, 0, 10, 10)
	if rec.Count(OpLine) != 1 {
		t.Fatal("expected one line")
	}
}

func TestCircle(t *testing.T) {
	rec := &Recorder{}
	ctx := NewContext(rec)
	ctx.Scope(func(ctx *Context) {
		ctx.Stroke(red)
		ctx.StrokeWeight(3)
		ctx.Circle(80, 80, 62.5)
		ctx.Circle(80, 80, 0)
	})
	if len(rec.Calls) != 2 || rec.Calls[0].Op != OpFillCircle || rec.Calls[1].Op != OpStrokeCircle {
		t.Fatalf("unexpected calls %+v", rec.Calls)
	}
	if rec.Calls[1].R != 62.5 || rec.Calls[1].Width != 3 {
		t.Fatalf("stroke circle = %+v", rec.Calls[1])
	}
}
