package systems

import (
	"log"
	"math"

	"github.com/automoto/lodis-galaga/components"
	cfg "github.com/automoto/lodis-galaga/config"
	"github.com/automoto/lodis-galaga/scores"
	"github.com/automoto/lodis-galaga/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// SceneChanger allows systems to trigger scene transitions
type SceneChanger interface {
	ChangeScene(scene interface{})
}

// CreateGameOver saves the finished run to the leaderboard and builds the
// game over screen for it. The run time is stored in whole seconds.
func CreateGameOver(e *ecs.ECS, player scores.Player, run components.SessionData) *components.GameOverData {
	seconds := math.Floor(run.Time)
	board := ScoreManager()
	if board.IsTopScore(run.Score, cfg.Score.TopCount) {
		log.Printf("[game] %s made the top %d with %d", player.Nick, cfg.Score.TopCount, run.Score)
	}
	if _, err := board.Save(player, run.Score, run.Wave, seconds); err != nil {
		log.Printf("Warning: Could not save score: %v", err)
	}
	rank, hasRank := board.FindRank(player, run.Score, seconds)
	log.Printf("[game] %s scored %d (wave %d, %.0fs), rank %d", player.Nick, run.Score, run.Wave, seconds, rank.Rank)

	rd := getRender(e)
	entry := e.World.Entry(e.World.Create(components.GameOver))
	components.GameOver.SetValue(entry, components.GameOverData{
		Summary: ui.Summary{
			Player:  player,
			Score:   run.Score,
			Wave:    run.Wave,
			Time:    seconds,
			Top:     board.Top(cfg.Score.TopCount),
			Rank:    rank,
			HasRank: hasRank,
		},
	})
	g := components.GameOver.Get(entry)
	if rd != nil {
		g.Screen = ui.NewGameOver(cfg.GameOver, rd.Text)
		g.Screen.Heart = rd.Images.Heart
		g.Screen.Envelope = rd.Images.Envelope
	} else {
		g.Screen = ui.NewGameOver(cfg.GameOver, nil)
	}
	g.Message = ui.NewMessageUI(cfg.Score.MessageMaxLen,
		func(msg string) {
			if g := getGameOver(e); g != nil {
				sendMessage(g, msg)
			}
		},
		func() {
			if g := getGameOver(e); g != nil {
				g.MessageOpen = false
			}
		},
	)
	return g
}

func getGameOver(e *ecs.ECS) *components.GameOverData {
	entry, ok := components.GameOver.First(e.World)
	if !ok {
		return nil
	}
	return components.GameOver.Get(entry)
}

// sendMessage logs the player's message. With remote logging on, the
// line is forwarded to the log server like any other log output.
func sendMessage(g *components.GameOverData, msg string) {
	text, ok := scores.TrimMessage(msg, cfg.Score.MessageMaxLen)
	if !ok {
		g.Message.SetStatus("Write something first")
		return
	}
	p := g.Summary.Player
	log.Printf("[message] from %s <%s> after scoring %d: %s", p.Nick, p.Email, g.Summary.Score, text)
	g.Message.Clear()
	g.MessageOpen = false
}

// NewUpdateGameOver creates the game over system. Restarting builds a new
// run with createShooterScene.
func NewUpdateGameOver(sceneChanger SceneChanger, createShooterScene func() interface{}) ecs.System {
	return func(e *ecs.ECS) {
		g := getGameOver(e)
		if g == nil {
			return
		}
		if g.MessageOpen {
			g.Message.Update()
			return
		}

		input := getOrCreateInput(e)
		g.Screen.Update(input.CursorX, input.CursorY, frameDt)

		action := ui.ActionNone
		if input.Clicked {
			action = g.Screen.HandleClick(input.CursorX, input.CursorY)
		}
		if GetAction(input, cfg.ActionMenuSelect).JustPressed {
			action = ui.ActionRestart
		}

		switch action {
		case ui.ActionRestart:
			PlaySFX(e, cfg.SoundMenuSelect)
			ReleaseRenderState(e)
			sceneChanger.ChangeScene(createShooterScene())
		case ui.ActionMessage:
			PlaySFX(e, cfg.SoundMenuSelect)
			g.Message.Clear()
			g.MessageOpen = true
		}
	}
}

// DrawGameOver renders the game over screen and, when open, the message
// prompt over it.
func DrawGameOver(e *ecs.ECS, screen *ebiten.Image) {
	g := getGameOver(e)
	rd := getRender(e)
	if g == nil || rd == nil {
		return
	}

	rd.Surface.Target = screen
	rd.Surface.OffsetX, rd.Surface.OffsetY = cfg.PlayArea.X, cfg.PlayArea.Y
	if g.Screen.Shaking() {
		s := g.Screen.ShakeIntensity()
		rd.Surface.OffsetX += (rng.Float64()*2 - 1) * s
		rd.Surface.OffsetY += (rng.Float64()*2 - 1) * s
	}
	g.Screen.Draw(rd.Context, g.Summary)

	if g.MessageOpen {
		g.Message.UI.Draw(screen)
	}
}
