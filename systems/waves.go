package systems

import (
	"log"

	"github.com/automoto/lodis-galaga/components"
	cfg "github.com/automoto/lodis-galaga/config"
	"github.com/automoto/lodis-galaga/systems/factory"
	"github.com/automoto/lodis-galaga/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateWaves spawns the next wave once every enemy of the current one is
// gone, after a short delay. The first wave spawns immediately.
func UpdateWaves(ecs *ecs.ECS) {
	wave := getOrCreateWave(ecs)

	if wave.Spawned {
		if countEnemies(ecs) > 0 {
			return
		}
		wave.Spawned = false
		wave.ClearTimer = cfg.Wave.ClearDelay
		log.Printf("[waves] wave %d cleared", wave.Number)
		return
	}

	if wave.ClearTimer > 0 {
		wave.ClearTimer -= frameDt
		if wave.ClearTimer > 0 {
			return
		}
	}

	next := wave.Number + 1
	count := factory.SpawnWave(ecs, wave, next)
	GetOrCreateSession(ecs).Wave = next
	PlaySFX(ecs, cfg.SoundWave)
	log.Printf("[waves] wave %d: %d enemies, boss=%v", next, count, factory.IsBossWave(next))
}

// countEnemies counts enemies still in the world, dying ones included.
func countEnemies(ecs *ecs.ECS) int {
	n := 0
	tags.Enemy.Each(ecs.World, func(*donburi.Entry) {
		n++
	})
	return n
}

// EndRun marks the run as over. The scene picks this up and moves to the
// game over screen.
func EndRun(ecs *ecs.ECS) {
	session := GetOrCreateSession(ecs)
	if session.Over {
		return
	}
	session.Over = true
	PlaySFX(ecs, cfg.SoundGameOver)
	log.Printf("[game] run over: score %d, wave %d, %d kills, %.0fs", session.Score, session.Wave, session.Kills, session.Time)
}

// RunSummary returns the final numbers of the run.
func RunSummary(ecs *ecs.ECS) components.SessionData {
	return *GetOrCreateSession(ecs)
}
