package systems

import (
	"math/rand"
	"time"

	"github.com/automoto/lodis-galaga/components"
	"github.com/automoto/lodis-galaga/systems/factory"
	"github.com/yohamta/donburi/ecs"
)

// frameDt is the fixed update step in seconds. Ebiten runs Update at 60 TPS.
const frameDt = 1.0 / 60

// rng drives enemy fire, comet spawns and powerup drops.
var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

// GetOrCreateSession returns the run's session singleton, creating if needed.
func GetOrCreateSession(e *ecs.ECS) *components.SessionData {
	entry, ok := components.Session.First(e.World)
	if !ok {
		entry = factory.CreateSession(e)
	}
	return components.Session.Get(entry)
}

// getOrCreateWave returns the wave singleton, which shares the session entity.
func getOrCreateWave(e *ecs.ECS) *components.WaveData {
	entry, ok := components.Wave.First(e.World)
	if !ok {
		entry = factory.CreateSession(e)
	}
	return components.Wave.Get(entry)
}

// IsGameOver reports whether the run has ended.
func IsGameOver(e *ecs.ECS) bool {
	entry, ok := components.Session.First(e.World)
	return ok && components.Session.Get(entry).Over
}

// WithGameOverCheck wraps a system to skip execution once the run has ended.
func WithGameOverCheck(system ecs.System) ecs.System {
	return func(e *ecs.ECS) {
		if IsGameOver(e) {
			return
		}
		system(e)
	}
}

// WithGameplayChecks wraps a system to skip while paused or after game over.
func WithGameplayChecks(system ecs.System) ecs.System {
	return WithPauseCheck(WithGameOverCheck(system))
}

// UpdateSession advances the run clock.
func UpdateSession(e *ecs.ECS) {
	GetOrCreateSession(e).Time += frameDt
}
