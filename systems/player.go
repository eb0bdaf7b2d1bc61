package systems

import (
	"github.com/automoto/lodis-galaga/components"
	cfg "github.com/automoto/lodis-galaga/config"
	"github.com/automoto/lodis-galaga/shared/gamemath"
	"github.com/automoto/lodis-galaga/systems/factory"
	"github.com/automoto/lodis-galaga/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func UpdatePlayer(ecs *ecs.ECS) {
	input := getOrCreateInput(ecs)

	var shots [][2]float64
	tags.Player.Each(ecs.World, func(playerEntry *donburi.Entry) {
		if x, y, fired := updatePlayer(input, playerEntry); fired {
			shots = append(shots, [2]float64{x, y})
		}
	})

	// Spawn outside the query so the world is not changed mid-iteration
	for _, s := range shots {
		factory.CreateProjectile(ecs, s[0], s[1], true)
		PlaySFX(ecs, cfg.SoundShoot)
	}
}

// updatePlayer moves the ship and runs its weapon. It returns where a new
// shot starts when one was fired.
func updatePlayer(input *components.InputData, playerEntry *donburi.Entry) (float64, float64, bool) {
	player := components.Player.Get(playerEntry)
	body := components.Object.Get(playerEntry).Body

	dir := 0.0
	if GetAction(input, cfg.ActionMoveLeft).Pressed {
		dir--
	}
	if GetAction(input, cfg.ActionMoveRight).Pressed {
		dir++
	}
	minX := cfg.PlayArea.X
	maxX := cfg.PlayArea.X + cfg.PlayArea.W - body.W
	body.X = gamemath.Clamp(body.X+dir*cfg.Player.Speed*frameDt, minX, maxX)

	if player.FireCooldown > 0 {
		player.FireCooldown -= frameDt
	}
	if player.RapidFire > 0 {
		player.RapidFire -= frameDt
	}

	if !GetAction(input, cfg.ActionFire).Pressed || player.FireCooldown > 0 {
		return 0, 0, false
	}

	player.FireCooldown = cfg.Player.FireCooldown
	if player.RapidFire > 0 {
		player.FireCooldown = cfg.Powerup.RapidFireCooldown
	}
	player.Shots++

	cx, _ := body.Center()
	return cx, body.Y - cfg.Projectile.Height, true
}

// hitPlayer takes a life unless the ship is still flashing from the last
// hit. It ends the run when no lives are left.
func hitPlayer(ecs *ecs.ECS, playerEntry *donburi.Entry) bool {
	flash := components.Flash.Get(playerEntry)
	if flash.Duration > 0 {
		return false
	}
	lives := components.Lives.Get(playerEntry)
	lives.Lives--
	flash.Duration = int(cfg.Player.InvulnTime / frameDt)

	body := components.Object.Get(playerEntry).Body
	cx, cy := body.Center()
	factory.SpawnExplosion(ecs, cx, cy, body.W, 30, cfg.LightRed)
	factory.ShakeScreen(ecs, 8, 20)
	PlaySFX(ecs, cfg.SoundPlayerHit)

	if lives.Lives <= 0 {
		lives.Lives = 0
		EndRun(ecs)
	}
	return true
}

// applyPowerup gives the player the powerup's effect.
func applyPowerup(ecs *ecs.ECS, playerEntry *donburi.Entry, kind components.PowerupKind) {
	switch kind {
	case components.PowerupExtraLife:
		lives := components.Lives.Get(playerEntry)
		if lives.Lives < lives.MaxLives {
			lives.Lives++
		}
	case components.PowerupRapidFire:
		components.Player.Get(playerEntry).RapidFire = cfg.Powerup.RapidFireTime
	}
	GetOrCreateSession(ecs).Score += cfg.Powerup.Score
	PlaySFX(ecs, cfg.SoundMenuSelect)
}
