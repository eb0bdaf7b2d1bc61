package scenes

import (
	"log"
	"sync"

	"github.com/automoto/lodis-galaga/perf"
	"github.com/automoto/lodis-galaga/scores"
	"github.com/automoto/lodis-galaga/systems"
	"github.com/automoto/lodis-galaga/systems/factory"

	cfg "github.com/automoto/lodis-galaga/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// ShooterScene is one run: waves of penguins until the ship is out of lives.
type ShooterScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	player       scores.Player
	overFrames   int
	once         sync.Once
}

// Frames the finished run stays on screen so the last explosions play out.
const gameOverDelay = 90

// NewShooterScene creates a new run for player
func NewShooterScene(sc SceneChanger, player scores.Player) *ShooterScene {
	return &ShooterScene{sceneChanger: sc, player: player}
}

func (ss *ShooterScene) Update() {
	ss.once.Do(ss.configure)
	ss.ecs.Update()

	if !systems.IsGameOver(ss.ecs) {
		return
	}
	ss.overFrames++
	if ss.overFrames >= gameOverDelay {
		run := systems.RunSummary(ss.ecs)
		systems.ReleaseRenderState(ss.ecs)
		ss.sceneChanger.ChangeScene(NewGameOverScene(ss.sceneChanger, ss.player, run))
	}
}

func (ss *ShooterScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(cfg.Space)

	if ss.ecs == nil {
		return
	}
	ss.ecs.Draw(screen)
}

func (ss *ShooterScene) configure() {
	// Preload assets to avoid lag on first use (important for WASM)
	systems.PreloadAllSFX()
	images := loadSprites()

	ecs := ecs.NewECS(donburi.NewWorld())

	// Audio system (runs first, even when paused for menu sounds)
	ecs.AddSystem(systems.UpdateAudio)

	// Systems that always run
	ecs.AddSystem(systems.UpdateInput)
	ecs.AddSystem(systems.UpdateToggles)
	ecs.AddSystem(systems.UpdatePause)

	// Game systems wrapped with pause and game over checks
	ecs.AddSystem(systems.WithGameplayChecks(systems.UpdateSession))
	ecs.AddSystem(systems.WithGameplayChecks(systems.Measured(perf.TaskEnemies, systems.UpdateWaves)))
	ecs.AddSystem(systems.WithGameplayChecks(systems.Measured(perf.TaskPlayer, systems.UpdatePlayer)))
	ecs.AddSystem(systems.WithGameplayChecks(systems.Measured(perf.TaskEnemies, systems.UpdateEnemies)))
	ecs.AddSystem(systems.WithGameplayChecks(systems.Measured(perf.TaskProjectiles, systems.UpdateProjectiles)))
	ecs.AddSystem(systems.WithGameplayChecks(systems.Measured(perf.TaskComets, systems.UpdateComets)))
	ecs.AddSystem(systems.WithGameplayChecks(systems.Measured(perf.TaskPowerups, systems.UpdatePowerups)))
	ecs.AddSystem(systems.WithGameplayChecks(systems.Measured(perf.TaskCollision, systems.UpdateSpatialGrid)))
	ecs.AddSystem(systems.WithGameplayChecks(systems.Measured(perf.TaskCollision, systems.UpdateCollisions)))

	// Animations keep running after the run ends
	ecs.AddSystem(systems.WithPauseCheck(systems.Measured(perf.TaskEnemies, systems.UpdateDeaths)))
	ecs.AddSystem(systems.WithPauseCheck(systems.Measured(perf.TaskOther, systems.UpdateEffects)))

	// Frame accounting runs last so it sees every measured system
	ecs.AddSystem(systems.UpdatePerf)

	// Add renderers
	ecs.AddRenderer(cfg.Default, systems.DrawBegin)
	ecs.AddRenderer(cfg.Default, systems.MeasuredDraw(perf.TaskEnemies, systems.DrawEnemies))
	ecs.AddRenderer(cfg.Default, systems.MeasuredDraw(perf.TaskComets, systems.DrawHazards))
	ecs.AddRenderer(cfg.Default, systems.MeasuredDraw(perf.TaskProjectiles, systems.DrawProjectiles))
	ecs.AddRenderer(cfg.Default, systems.MeasuredDraw(perf.TaskPlayer, systems.DrawPlayer))
	ecs.AddRenderer(cfg.Default, systems.DrawEffects)
	ecs.AddRenderer(cfg.Default, systems.DrawGridDebug)
	ecs.AddRenderer(cfg.Default, systems.MeasuredDraw(perf.TaskUI, systems.DrawHUD))
	ecs.AddRenderer(cfg.Default, systems.DrawPause)

	ss.ecs = ecs

	if _, err := factory.CreateSpace(ss.ecs); err != nil {
		panic("failed to create collision grid: " + err.Error())
	}
	factory.CreateSession(ss.ecs)
	systems.CreatePerf(ss.ecs)
	systems.CreateRenderState(ss.ecs, images)
	factory.CreatePlayer(ss.ecs)

	log.Printf("[game] run started for %s", ss.player.Nick)
}
