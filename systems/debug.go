package systems

import (
	"fmt"
	"image/color"
	"log"

	"github.com/automoto/lodis-galaga/components"
	cfg "github.com/automoto/lodis-galaga/config"
	"github.com/automoto/lodis-galaga/fonts"
	"github.com/automoto/lodis-galaga/render"
	"github.com/automoto/lodis-galaga/spatial"
	"github.com/automoto/lodis-galaga/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	gridLineColor = color.NRGBA{R: 0, G: 255, B: 0, A: 60}
	gridHeatColor = color.NRGBA{R: 255, G: 0, B: 0}
)

// UpdateToggles handles the debug and settings hotkeys. It runs while
// paused so the overlays can be inspected on a frozen frame.
func UpdateToggles(ecs *ecs.ECS) {
	input := getOrCreateInput(ecs)
	if GetAction(input, cfg.ActionToggleGrid).JustPressed {
		cfg.Debug.ShowGrid = !cfg.Debug.ShowGrid
		log.Printf("[debug] grid overlay: %v", cfg.Debug.ShowGrid)
	}
	if GetAction(input, cfg.ActionTogglePerf).JustPressed {
		if p := getPerf(ecs); p != nil {
			p.Monitor.Toggle()
			cfg.Debug.ShowPerf = p.Monitor.Enabled()
			if !cfg.Debug.ShowPerf {
				logPerfReport(p.Monitor.Report())
			}
		}
	}
	if GetAction(input, cfg.ActionMute).JustPressed {
		toggleMute()
	}
	if GetAction(input, cfg.ActionFullscreen).JustPressed {
		toggleFullscreen()
	}
}

// heatAlpha is the overlay opacity for a cell holding count entities.
func heatAlpha(count int) uint8 {
	return uint8(min(count*30, 150))
}

func heatColor(count int) color.NRGBA {
	c := gridHeatColor
	c.A = heatAlpha(count)
	return c
}

// DrawGridDebug draws the broad-phase grid: cell lines, a heat map of
// occupancy and the outline of every body.
func DrawGridDebug(ecs *ecs.ECS, screen *ebiten.Image) {
	if !cfg.Debug.ShowGrid {
		return
	}
	rd := getRender(ecs)
	space := getSpace(ecs)
	if rd == nil || space == nil {
		return
	}
	grid := space.Grid

	rd.Context.Scope(func(ctx *render.Context) {
		ctx.NoStroke()
		grid.EachCell(func(c spatial.Cell, count int) {
			if count == 0 {
				return
			}
			ctx.Fill(heatColor(count))
			ctx.Rect(grid.CellRect(c))
		})

		area := grid.Area()
		ctx.Stroke(gridLineColor)
		ctx.StrokeWeight(1)
		for col := 0; col <= grid.Cols(); col++ {
			x := area.X + float64(col)*grid.CellSize()
			ctx.Line(x, area.Y, x, area.Y+area.H)
		}
		for row := 0; row <= grid.Rows(); row++ {
			y := area.Y + float64(row)*grid.CellSize()
			ctx.Line(area.X, y, area.X+area.W, y)
		}

		ctx.NoFill()
		components.Object.Each(ecs.World, func(e *donburi.Entry) {
			body := components.Object.Get(e).Body
			if body == nil {
				return
			}
			ctx.Stroke(bodyDebugColor(body))
			ctx.Rect(body.Rect())
		})

		input := getOrCreateInput(ecs)
		if c, n, ok := hoverCell(grid, input.CursorX, input.CursorY); ok {
			ctx.Stroke(cfg.Yellow)
			ctx.StrokeWeight(2)
			ctx.Rect(grid.CellRect(c))
			style := render.Style{Font: fonts.Regular, Size: cfg.HUD.FontSize * 0.6, Color: cfg.Yellow}
			rd.Label("gridcell").Draw(ctx, input.CursorX+12, input.CursorY+12,
				fmt.Sprintf("%d,%d: %d", c.Col, c.Row, n), style)
		}
	})
}

// hoverCell is the grid cell under the pointer and its member count.
func hoverCell(grid *spatial.Grid, x, y float64) (spatial.Cell, int, bool) {
	if !grid.Area().Contains(x, y) {
		return spatial.Cell{}, 0, false
	}
	return grid.CellAt(x, y), len(grid.MembersAt(x, y)), true
}

func bodyDebugColor(b *components.Body) color.Color {
	switch {
	case b.HasTags(tags.ResolvPlayer):
		return cfg.Green
	case b.HasTags(tags.ResolvEnemy):
		return cfg.LightRed
	case b.HasTags(tags.ResolvPlayerShot, tags.ResolvEnemyShot):
		return cfg.Yellow
	case b.HasTags(tags.ResolvComet):
		return cfg.Orange
	default:
		return cfg.LightBlue
	}
}
