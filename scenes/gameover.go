package scenes

import (
	"sync"

	"github.com/automoto/lodis-galaga/components"
	cfg "github.com/automoto/lodis-galaga/config"
	"github.com/automoto/lodis-galaga/scores"
	"github.com/automoto/lodis-galaga/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// GameOverScene shows the finished run and the leaderboard
type GameOverScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	player       scores.Player
	run          components.SessionData
	once         sync.Once
}

// NewGameOverScene creates a new game over scene for a finished run
func NewGameOverScene(sc SceneChanger, player scores.Player, run components.SessionData) *GameOverScene {
	return &GameOverScene{sceneChanger: sc, player: player, run: run}
}

func (gs *GameOverScene) Update() {
	gs.once.Do(gs.configure)
	gs.ecs.Update()
}

func (gs *GameOverScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(cfg.Space)

	if gs.ecs == nil {
		return
	}
	gs.ecs.Draw(screen)
}

func (gs *GameOverScene) configure() {
	gs.ecs = ecs.NewECS(donburi.NewWorld())

	createShooterScene := func() interface{} {
		return NewShooterScene(gs.sceneChanger, gs.player)
	}

	// Audio system
	gs.ecs.AddSystem(systems.UpdateAudio)

	// Minimal systems for game over
	gs.ecs.AddSystem(systems.UpdateInput)
	gs.ecs.AddSystem(systems.NewUpdateGameOver(gs.sceneChanger, createShooterScene))

	// Renderer
	gs.ecs.AddRenderer(cfg.Default, systems.DrawGameOver)

	systems.CreateRenderState(gs.ecs, loadSprites())
	systems.CreateGameOver(gs.ecs, gs.player, gs.run)
}
