package factory

import (
	"github.com/automoto/lodis-galaga/archetypes"
	"github.com/automoto/lodis-galaga/components"
	cfg "github.com/automoto/lodis-galaga/config"
	"github.com/automoto/lodis-galaga/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateProjectile spawns a shot centred on x with its top at y. Player
// shots travel up, enemy shots down.
func CreateProjectile(ecs *ecs.ECS, x, y float64, fromPlayer bool) *donburi.Entry {
	shot := archetypes.Projectile.Spawn(ecs)

	tag, speed := tags.ResolvEnemyShot, cfg.Projectile.EnemySpeed
	if fromPlayer {
		tag, speed = tags.ResolvPlayerShot, -cfg.Projectile.PlayerSpeed
	}

	w, h := cfg.Projectile.Width, cfg.Projectile.Height
	body := components.NewBody(x-w/2, y, w, h, tag)
	body.Entry = shot
	body.Data = shot
	components.Object.SetValue(shot, components.ObjectData{Body: body})

	components.Projectile.SetValue(shot, components.ProjectileData{
		SpeedY:     speed,
		Damage:     cfg.Projectile.Damage,
		FromPlayer: fromPlayer,
	})
	return shot
}
