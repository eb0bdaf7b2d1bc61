package systems

import (
	"image/color"
	"math"

	"github.com/automoto/lodis-galaga/assets"
	"github.com/automoto/lodis-galaga/batch"
	"github.com/automoto/lodis-galaga/components"
	cfg "github.com/automoto/lodis-galaga/config"
	"github.com/automoto/lodis-galaga/render"
	"github.com/automoto/lodis-galaga/shared/gamemath"
	"github.com/automoto/lodis-galaga/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const starCount = 90

var (
	playerShotColor = color.RGBA{R: 255, G: 240, B: 120, A: 255}
	enemyShotColor  = color.RGBA{R: 255, G: 90, B: 90, A: 255}
	rapidFireGlow   = color.NRGBA{R: 120, G: 200, B: 255, A: 160}
)

// CreateRenderState creates the drawing singleton for a scene.
func CreateRenderState(ecs *ecs.ECS, sprites *assets.Sprites) *components.RenderData {
	b := batch.New()
	b.Strict = cfg.Debug.Strict
	b.Style = batch.Style{
		BossFallbackTint: cfg.Batch.BossTint,
		BarHeight:        cfg.Batch.BarHeight,
		BarOffset:        cfg.Batch.BarOffset,
		BarBackground:    cfg.Batch.BarBackground,
		BarFill:          cfg.Batch.BarFill,
		BarBorder:        cfg.Batch.BarBorder,
		BarBorderWidth:   cfg.Batch.BarBorderWidth,
	}

	surface := render.NewEbitenSurface(nil, cfg.PlayArea.X, cfg.PlayArea.Y)
	entry := ecs.World.Entry(ecs.World.Create(components.Render))
	components.Render.SetValue(entry, components.RenderData{
		Images:  sprites,
		Batcher: b,
		Sprites: sprites.Batch(),
		Context: render.NewContext(surface),
		Surface: surface,
		Text:    render.NewTextCache(),
	})
	return components.Render.Get(entry)
}

// ReleaseRenderState frees the scene's cached text graphics. Call it when
// the scene is left.
func ReleaseRenderState(ecs *ecs.ECS) {
	rd := getRender(ecs)
	if rd == nil {
		return
	}
	if rd.Text != nil {
		rd.Text.ClearAll()
	}
	clear(rd.Labels)
}

func getRender(ecs *ecs.ECS) *components.RenderData {
	entry, ok := components.Render.First(ecs.World)
	if !ok {
		return nil
	}
	return components.Render.Get(entry)
}

// DrawBegin points the drawing context at this frame's screen, shifted by
// the screen shake, and draws the starfield.
func DrawBegin(ecs *ecs.ECS, screen *ebiten.Image) {
	rd := getRender(ecs)
	if rd == nil {
		return
	}
	screen.Fill(cfg.Space)

	dx, dy := shakeOffset(ecs)
	rd.Surface.Target = screen
	rd.Surface.OffsetX = cfg.PlayArea.X + dx
	rd.Surface.OffsetY = cfg.PlayArea.Y + dy
	rd.Context.ResetStats()

	t := 0.0
	if entry, ok := components.Session.First(ecs.World); ok {
		t = components.Session.Get(entry).Time
	}
	rd.Context.Scope(func(ctx *render.Context) {
		ctx.NoStroke()
		for i := 0; i < starCount; i++ {
			x, y, size, bright := star(i, t)
			ctx.Fill(color.RGBA{R: bright, G: bright, B: bright, A: 255})
			ctx.Rect(gamemath.Rect{X: x, Y: y, W: size, H: size})
		}
	})
}

// star places star i of the scrolling backdrop at time t. Positions are
// derived from the index so the field needs no state.
func star(i int, t float64) (x, y, size float64, bright uint8) {
	h := uint32(i)*2654435761 + 12345
	x = float64(h%1000) / 1000 * cfg.PlayArea.W
	layer := float64(i%3 + 1)
	speed := 12 * layer
	y = math.Mod(float64((h>>10)%1000)/1000*cfg.PlayArea.H+t*speed, cfg.PlayArea.H)
	return x, y, layer, uint8(80 + 55*layer)
}

func DrawPlayer(ecs *ecs.ECS, screen *ebiten.Image) {
	rd := getRender(ecs)
	if rd == nil {
		return
	}
	tags.Player.Each(ecs.World, func(e *donburi.Entry) {
		flash := components.Flash.Get(e)
		// Blink while invulnerable
		if flash.Duration > 0 && (flash.Duration/4)%2 == 0 {
			return
		}
		body := components.Object.Get(e).Body
		rd.Context.Scope(func(ctx *render.Context) {
			if components.Player.Get(e).RapidFire > 0 {
				cx, cy := body.Center()
				ctx.NoFill()
				ctx.Stroke(rapidFireGlow)
				ctx.StrokeWeight(2)
				ctx.Circle(cx, cy, body.W*0.7)
			}
			ctx.Image(rd.Images.Ship, body.Rect())
		})
	})
}

func DrawProjectiles(ecs *ecs.ECS, screen *ebiten.Image) {
	rd := getRender(ecs)
	if rd == nil {
		return
	}
	rd.Context.Scope(func(ctx *render.Context) {
		ctx.NoStroke()
		tags.Projectile.Each(ecs.World, func(e *donburi.Entry) {
			if components.Projectile.Get(e).FromPlayer {
				ctx.Fill(playerShotColor)
			} else {
				ctx.Fill(enemyShotColor)
			}
			ctx.Rect(components.Object.Get(e).Body.Rect())
		})
	})
}

// DrawHazards draws comets and powerups.
func DrawHazards(ecs *ecs.ECS, screen *ebiten.Image) {
	rd := getRender(ecs)
	if rd == nil {
		return
	}
	rd.Context.Scope(func(ctx *render.Context) {
		tags.Comet.Each(ecs.World, func(e *donburi.Entry) {
			body := components.Object.Get(e).Body
			ctx.Image(rd.Images.Comet, body.Rect())
		})
		tags.Powerup.Each(ecs.World, func(e *donburi.Entry) {
			img := rd.Images.RapidFire
			if components.Powerup.Get(e).Kind == components.PowerupExtraLife {
				img = rd.Images.ExtraLife
			}
			ctx.Image(img, components.Object.Get(e).Body.Rect())
		})
	})
}

// DrawEffects draws explosion rings growing and fading over their lifetime.
func DrawEffects(ecs *ecs.ECS, screen *ebiten.Image) {
	rd := getRender(ecs)
	if rd == nil {
		return
	}
	rd.Context.Scope(func(ctx *render.Context) {
		ctx.NoFill()
		ctx.StrokeWeight(3)
		components.Explosion.Each(ecs.World, func(e *donburi.Entry) {
			ex := components.Explosion.Get(e)
			ad := components.AutoDestroy.Get(e)
			if ad.TotalFrames <= 0 {
				return
			}
			progress := 1 - float64(ad.FramesRemaining)/float64(ad.TotalFrames)
			ctx.Stroke(fadeOut(ex.Color, progress))
			ctx.Circle(ex.X, ex.Y, ex.MaxRadius*(0.2+0.8*progress))
		})
	})
}

// fadeOut is c with its opacity lowered as progress goes from 0 to 1.
func fadeOut(c color.RGBA, progress float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(255 * gamemath.Clamp01(1-progress))}
}
