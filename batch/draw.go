package batch

import (
	"image/color"

	"github.com/automoto/lodis-galaga/render"
	"github.com/automoto/lodis-galaga/shared/gamemath"
)

// Sprites are the images the batcher draws with. Any of them may be nil;
// missing images fall back along a fixed chain or the bucket is skipped.
type Sprites struct {
	Boss        render.Image
	Enemy       render.Image // generic enemy, fallback for boss and idle
	PenguinIdle render.Image
	Death       [DeathFrames]render.Image
}

// DeathFrame returns frame i of the death animation, nil when out of range.
func (s Sprites) DeathFrame(i int) render.Image {
	if i < 0 || i >= DeathFrames {
		return nil
	}
	return s.Death[i]
}

func firstImage(imgs ...render.Image) render.Image {
	for _, img := range imgs {
		if img != nil {
			return img
		}
	}
	return nil
}

// Style holds the tint and health-bar appearance used by Render.
type Style struct {
	BossFallbackTint color.Color // applied when the boss is drawn with the generic sprite
	BarHeight        float64
	BarOffset        float64 // distance of the bar's top above the boss
	BarBackground    color.Color
	BarFill          color.Color
	BarBorder        color.Color
	BarBorderWidth   float32
}

func DefaultStyle() Style {
	return Style{
		BossFallbackTint: color.RGBA{R: 255, G: 100, B: 100, A: 255},
		BarHeight:        6,
		BarOffset:        12,
		BarBackground:    color.RGBA{R: 50, G: 50, B: 50, A: 255},
		BarFill:          color.RGBA{R: 255, A: 255},
		BarBorder:        color.White,
		BarBorderWidth:   1,
	}
}

// Render draws every non-empty bucket, one state scope per bucket, in the
// order of Keys. Boss health bars follow the boss sprites in their own scope.
// The context's state is unchanged on return.
func (b *Batcher) Render(ctx *render.Context, s Sprites) {
	bosses := b.groups[BossNormal]
	if len(bosses) > 0 {
		img, tint := s.Boss, color.Color(nil)
		if img == nil && s.Enemy != nil {
			img, tint = s.Enemy, b.Style.BossFallbackTint
		}
		b.drawBucket(ctx, BossNormal.String(), bosses, img, tint)
		b.drawBossBars(ctx, bosses)
	}

	if dying := b.groups[BossDying]; len(dying) > 0 {
		ctx.Scope(func(ctx *render.Context) {
			resetImageState(ctx)
			for _, e := range dying {
				img := s.DeathFrame(e.VisualState().DeathFrame)
				if img == nil {
					b.warnf("[batch] Warning: no death frame for dying boss, skipped")
					continue
				}
				ctx.Image(img, e.Bounds())
			}
		})
	}

	b.drawBucket(ctx, IdleNormal.String(), b.groups[IdleNormal],
		firstImage(s.PenguinIdle, s.Enemy), nil)
	b.drawBucket(ctx, IdleDamaged.String(), b.groups[IdleDamaged],
		firstImage(s.DeathFrame(2), s.PenguinIdle), nil)
	b.drawBucket(ctx, IdleVeryDamaged.String(), b.groups[IdleVeryDamaged],
		firstImage(s.DeathFrame(4), s.PenguinIdle), nil)

	for f := range b.dying {
		b.drawBucket(ctx, Key{Group: Dying, Frame: f}.String(), b.dying[f], s.DeathFrame(f), nil)
	}
}

func resetImageState(ctx *render.Context) {
	ctx.NoTint()
	ctx.SetImageMode(render.ImageModeCorner)
}

func (b *Batcher) drawBucket(ctx *render.Context, name string, members []Enemy, img render.Image, tint color.Color) {
	if len(members) == 0 {
		return
	}
	if img == nil {
		b.warnf("[batch] Warning: no sprite for %s, %d enemies skipped", name, len(members))
		return
	}
	ctx.Scope(func(ctx *render.Context) {
		resetImageState(ctx)
		if tint != nil {
			ctx.Tint(tint)
		}
		for _, e := range members {
			ctx.Image(img, e.Bounds())
		}
	})
}

// drawBossBars draws the bars layer by layer so the state changes once per
// layer rather than once per boss.
func (b *Batcher) drawBossBars(ctx *render.Context, bosses []Enemy) {
	st := b.Style
	ctx.Scope(func(ctx *render.Context) {
		ctx.NoStroke()
		ctx.Fill(st.BarBackground)
		for _, e := range bosses {
			if bar, _, ok := healthBar(e, st); ok {
				ctx.Rect(bar)
			}
		}
		ctx.Fill(st.BarFill)
		for _, e := range bosses {
			if bar, frac, ok := healthBar(e, st); ok && frac > 0 {
				bar.W *= frac
				ctx.Rect(bar)
			}
		}
		ctx.NoFill()
		ctx.Stroke(st.BarBorder)
		ctx.StrokeWeight(st.BarBorderWidth)
		for _, e := range bosses {
			if bar, _, ok := healthBar(e, st); ok {
				ctx.Rect(bar)
			}
		}
	})
}

// healthBar returns the bar rectangle and health fraction for a boss that
// has taken damage. ok is false for full health or a non-positive maximum.
func healthBar(e Enemy, st Style) (gamemath.Rect, float64, bool) {
	v := e.VisualState()
	if !(v.MaxHealth > 0) || v.Health >= v.MaxHealth {
		return gamemath.Rect{}, 0, false
	}
	r := e.Bounds()
	bar := gamemath.Rect{X: r.X, Y: r.Y - st.BarOffset, W: r.W, H: st.BarHeight}
	return bar, gamemath.Clamp01(v.Health / v.MaxHealth), true
}
