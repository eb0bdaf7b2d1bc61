package systems

import (
	"fmt"
	"image/color"

	"github.com/automoto/lodis-galaga/components"
	cfg "github.com/automoto/lodis-galaga/config"
	"github.com/automoto/lodis-galaga/fonts"
	"github.com/automoto/lodis-galaga/render"
	"github.com/automoto/lodis-galaga/shared/gamemath"
	"github.com/automoto/lodis-galaga/tags"
	"github.com/automoto/lodis-galaga/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const (
	hudHeartSize  = 24
	hudHeartGap   = 4
	perfPanelW    = 140
	perfPanelH    = 80
	perfLineInset = 10
)

var perfBackdrop = color.RGBA{R: 0, G: 0, B: 0, A: 170}

// DrawHUD renders score, wave and lives, plus the perf panel when enabled.
func DrawHUD(ecs *ecs.ECS, screen *ebiten.Image) {
	rd := getRender(ecs)
	if rd == nil {
		return
	}
	// The HUD does not shake with the play field
	rd.Surface.OffsetX = cfg.PlayArea.X
	rd.Surface.OffsetY = cfg.PlayArea.Y

	session := GetOrCreateSession(ecs)
	m := cfg.HUD.Margin
	style := render.Style{Font: fonts.Regular, Size: cfg.HUD.FontSize, Color: cfg.HUD.TextColor}

	rd.Label("score").Draw(rd.Context, m, m, "SCORE "+ui.FormatScore(session.Score), style)

	waveStyle := style
	waveStyle.Align = render.AlignRight
	rd.Label("wave").Draw(rd.Context, cfg.PlayArea.W-m, m, fmt.Sprintf("WAVE %d", session.Wave), waveStyle)

	if player, ok := tags.Player.First(ecs.World); ok {
		drawLives(rd, player)
	}
	drawPerfPanel(ecs, rd)
}

func drawLives(rd *components.RenderData, player *donburi.Entry) {
	lives := components.Lives.Get(player)
	y := cfg.PlayArea.H - cfg.HUD.Margin - hudHeartSize
	rd.Context.Scope(func(ctx *render.Context) {
		for i := 0; i < lives.Lives; i++ {
			x := cfg.HUD.Margin + float64(i)*(hudHeartSize+hudHeartGap)
			ctx.Image(rd.Images.Heart, gamemath.Rect{X: x, Y: y, W: hudHeartSize, H: hudHeartSize})
		}
	})

	if rapid := components.Player.Get(player).RapidFire; rapid > 0 {
		style := render.Style{
			Font:     fonts.Regular,
			Size:     cfg.HUD.FontSize * 0.7,
			Color:    rapidFireGlow,
			Align:    render.AlignRight,
			Baseline: render.BaselineBottom,
		}
		rd.Label("rapid").Draw(rd.Context, cfg.PlayArea.W-cfg.HUD.Margin, cfg.PlayArea.H-cfg.HUD.Margin,
			fmt.Sprintf("RAPID %.1fs", rapid), style)
	}
}

func drawPerfPanel(ecs *ecs.ECS, rd *components.RenderData) {
	p := getPerf(ecs)
	if p == nil || !cfg.Debug.ShowPerf {
		return
	}
	lines := p.Monitor.Panel()
	if len(lines) == 0 {
		return
	}

	x, y := cfg.HUD.PerfX, cfg.HUD.PerfY+cfg.HUD.FontSize+cfg.HUD.Margin
	rd.Context.Scope(func(ctx *render.Context) {
		ctx.NoStroke()
		ctx.Fill(perfBackdrop)
		ctx.Rect(gamemath.Rect{X: x, Y: y, W: perfPanelW, H: perfPanelH})
	})
	for i, line := range lines {
		style := render.Style{Font: fonts.Regular, Size: line.Size, Color: line.Color}
		rd.Label(fmt.Sprintf("perf%d", i)).Draw(rd.Context, x+perfLineInset, y+line.Y, line.Text, style)
	}
}
