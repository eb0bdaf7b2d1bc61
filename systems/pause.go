package systems

import (
	"github.com/automoto/lodis-galaga/components"
	cfg "github.com/automoto/lodis-galaga/config"
	"github.com/automoto/lodis-galaga/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePause handles the pause toggle and quitting the run from the
// pause overlay. It runs AFTER UpdateInput but BEFORE the game systems.
func UpdatePause(ecs *ecs.ECS) {
	if IsGameOver(ecs) {
		return
	}
	pause := GetOrCreatePause(ecs)
	input := getOrCreateInput(ecs)

	if GetAction(input, cfg.ActionPause).JustPressed {
		pause.IsPaused = !pause.IsPaused
		PlaySFX(ecs, cfg.SoundMenuSelect)
		return
	}

	if !pause.IsPaused {
		return
	}

	if GetAction(input, cfg.ActionMenuSelect).JustPressed {
		pause.IsPaused = false
		PlaySFX(ecs, cfg.SoundMenuSelect)
		return
	}

	// Quitting ends the run so the score is still recorded
	if GetAction(input, cfg.ActionMenuBack).JustPressed {
		pause.IsPaused = false
		EndRun(ecs)
	}
}

// DrawPause renders the pause overlay.
func DrawPause(ecs *ecs.ECS, screen *ebiten.Image) {
	pause := GetOrCreatePause(ecs)
	if !pause.IsPaused {
		return
	}

	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())

	vector.FillRect(
		screen,
		0, 0,
		float32(width), float32(height),
		cfg.Pause.OverlayColor,
		false,
	)

	title := "PAUSED"
	titleFont := fonts.Regular.Get(40)
	titleWidth := len(title) * 26 // Approximate width for title font
	text.Draw(screen, title, titleFont, int((width-float64(titleWidth))/2), int(cfg.Pause.TitleY), cfg.Pause.TextColor)

	input := getOrCreateInput(ecs)
	hint := getPauseHint(input.LastInputMethod)
	hintFont := fonts.Regular.Get(14)
	hintWidth := len(hint) * 7
	text.Draw(screen, hint, hintFont, int((width-float64(hintWidth))/2), int(cfg.Pause.TitleY)+60, cfg.Pause.TextColor)
}

// getPauseHint returns the appropriate hint for the pause overlay
func getPauseHint(method components.InputMethod) string {
	switch method {
	case components.InputPlayStation:
		return "Options: Resume   Circle: Quit run"
	case components.InputXbox:
		return "Start: Resume   B: Quit run"
	}
	return "Esc/Enter: Resume   Q: Quit run"
}

// WithPauseCheck wraps a system to skip execution when paused.
func WithPauseCheck(system ecs.System) ecs.System {
	return func(e *ecs.ECS) {
		if pause := GetOrCreatePause(e); pause.IsPaused {
			return
		}
		system(e)
	}
}

// GetOrCreatePause returns the singleton Pause component, creating if needed.
func GetOrCreatePause(ecs *ecs.ECS) *components.PauseData {
	if _, ok := components.Pause.First(ecs.World); !ok {
		ent := ecs.World.Entry(ecs.World.Create(components.Pause))
		components.Pause.SetValue(ent, components.PauseData{IsPaused: false})
	}

	ent, _ := components.Pause.First(ecs.World)
	return components.Pause.Get(ent)
}
