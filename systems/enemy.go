package systems

import (
	"math"

	"github.com/automoto/lodis-galaga/components"
	cfg "github.com/automoto/lodis-galaga/config"
	"github.com/automoto/lodis-galaga/systems/factory"
	"github.com/automoto/lodis-galaga/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateEnemies moves the formation and the boss and lets enemies shoot.
// A penguin reaching the ship's row ends the run.
func UpdateEnemies(ecs *ecs.ECS) {
	wave := getOrCreateWave(ecs)
	if !wave.Spawned {
		return
	}
	wave.Elapsed += frameDt
	wave.OriginY += cfg.Enemy.DescentSpeed * frameDt
	sway := math.Sin(wave.Elapsed*cfg.Enemy.SwaySpeed) * cfg.Enemy.SwayAmplitude

	invasionLine := math.Inf(1)
	tags.Player.Each(ecs.World, func(playerEntry *donburi.Entry) {
		invasionLine = math.Min(invasionLine, components.Object.Get(playerEntry).Body.Y)
	})

	var shots [][2]float64
	invaded := false
	tags.Enemy.Each(ecs.World, func(enemyEntry *donburi.Entry) {
		if enemyEntry.HasComponent(components.Death) {
			return
		}
		enemy := components.Enemy.Get(enemyEntry)
		body := components.Object.Get(enemyEntry).Body

		if enemy.IsBoss() {
			moveBoss(enemy, body, wave)
		} else {
			body.X = wave.OriginX + sway + enemy.SlotX
			body.Y = wave.OriginY + enemy.SlotY
			if body.Y+body.H >= invasionLine {
				invaded = true
			}
		}

		if rng.Float64() < enemy.FireChance {
			cx, _ := body.Center()
			shots = append(shots, [2]float64{cx, body.Y + body.H})
		}
	})

	for _, s := range shots {
		factory.CreateProjectile(ecs, s[0], s[1], false)
		PlaySFX(ecs, cfg.SoundEnemyShoot)
	}

	if invaded {
		tags.Player.Each(ecs.World, func(playerEntry *donburi.Entry) {
			components.Lives.Get(playerEntry).Lives = 0
		})
		EndRun(ecs)
	}
}

// moveBoss slides the boss across the top of the formation, turning at the
// play area's edges.
func moveBoss(enemy *components.EnemyData, body *components.Body, wave *components.WaveData) {
	speed := enemy.TypeConfig.Speed
	body.X += enemy.Direction * speed * frameDt
	body.Y = wave.StartY + enemy.SlotY

	minX := cfg.PlayArea.X
	maxX := cfg.PlayArea.X + cfg.PlayArea.W - body.W
	if body.X <= minX {
		body.X = minX
		enemy.Direction = 1
	} else if body.X >= maxX {
		body.X = maxX
		enemy.Direction = -1
	}
}

// damageEnemy applies damage and starts the death animation when health
// runs out. It reports whether the enemy was killed.
func damageEnemy(ecs *ecs.ECS, enemyEntry *donburi.Entry, damage int) bool {
	if enemyEntry.HasComponent(components.Death) {
		return false
	}
	health := components.Health.Get(enemyEntry)
	health.Current -= damage
	if health.Current > 0 {
		PlaySFX(ecs, cfg.SoundHit)
		return false
	}
	health.Current = 0
	killEnemy(ecs, enemyEntry)
	return true
}

// killEnemy scores the enemy and hands it to the death animation.
func killEnemy(ecs *ecs.ECS, enemyEntry *donburi.Entry) {
	enemy := components.Enemy.Get(enemyEntry)
	body := components.Object.Get(enemyEntry).Body

	session := GetOrCreateSession(ecs)
	session.Kills++
	if enemy.TypeConfig != nil {
		session.Score += enemy.TypeConfig.Score
	}

	frameTicks := 4
	if enemy.TypeConfig != nil && enemy.TypeConfig.DeathFrameTicks > 0 {
		frameTicks = enemy.TypeConfig.DeathFrameTicks
	}
	enemyEntry.AddComponent(components.Death)
	components.Death.SetValue(enemyEntry, components.DeathData{FrameTicks: frameTicks})

	cx, cy := body.Center()
	if enemy.IsBoss() {
		factory.SpawnExplosion(ecs, cx, cy, body.W, 45, cfg.Orange)
		factory.ShakeScreen(ecs, 12, 30)
		PlaySFX(ecs, cfg.SoundBossExplosion)
	} else {
		factory.SpawnExplosion(ecs, cx, cy, body.W*0.75, 20, cfg.Yellow)
		PlaySFX(ecs, cfg.SoundExplosion)
	}

	if rng.Float64() < cfg.Powerup.DropChance || enemy.IsBoss() {
		kind := components.PowerupRapidFire
		if rng.Float64() < 0.3 {
			kind = components.PowerupExtraLife
		}
		factory.CreatePowerup(ecs, cx, cy, kind)
	}
}
