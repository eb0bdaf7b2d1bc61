package systems

import (
	"github.com/automoto/lodis-galaga/components"
	cfg "github.com/automoto/lodis-galaga/config"
	"github.com/automoto/lodis-galaga/systems/factory"
	"github.com/automoto/lodis-galaga/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateComets spawns comets from MinWave on and lets them fall.
func UpdateComets(ecs *ecs.ECS) {
	wave := getOrCreateWave(ecs)
	if wave.Spawned && wave.Number >= cfg.Comet.MinWave && rng.Float64() < cfg.Comet.SpawnChance {
		x := cfg.PlayArea.X + rng.Float64()*(cfg.PlayArea.W-cfg.Comet.Width)
		speed := cfg.Comet.MinSpeed + rng.Float64()*(cfg.Comet.MaxSpeed-cfg.Comet.MinSpeed)
		factory.CreateComet(ecs, x, speed)
	}

	var toRemove []*donburi.Entry
	tags.Comet.Each(ecs.World, func(e *donburi.Entry) {
		body := components.Object.Get(e).Body
		body.Y += components.Comet.Get(e).Speed * frameDt
		if body.Y > cfg.PlayArea.Y+cfg.PlayArea.H {
			toRemove = append(toRemove, e)
		}
	})
	for _, e := range toRemove {
		ecs.World.Remove(e.Entity())
	}
}

// damageComet breaks the comet apart once its health is gone.
func damageComet(ecs *ecs.ECS, cometEntry *donburi.Entry, damage int) bool {
	health := components.Health.Get(cometEntry)
	health.Current -= damage
	if health.Current > 0 {
		PlaySFX(ecs, cfg.SoundHit)
		return false
	}
	body := components.Object.Get(cometEntry).Body
	cx, cy := body.Center()
	factory.SpawnExplosion(ecs, cx, cy, body.H/2, 20, cfg.Orange)
	GetOrCreateSession(ecs).Score += cfg.Comet.Score
	PlaySFX(ecs, cfg.SoundExplosion)
	return true
}

// UpdatePowerups lets powerups drift down and removes those that were missed.
func UpdatePowerups(ecs *ecs.ECS) {
	var toRemove []*donburi.Entry
	tags.Powerup.Each(ecs.World, func(e *donburi.Entry) {
		body := components.Object.Get(e).Body
		body.Y += components.Powerup.Get(e).Speed * frameDt
		if body.Y > cfg.PlayArea.Y+cfg.PlayArea.H {
			toRemove = append(toRemove, e)
		}
	})
	for _, e := range toRemove {
		ecs.World.Remove(e.Entity())
	}
}
