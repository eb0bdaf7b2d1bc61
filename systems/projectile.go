package systems

import (
	"github.com/automoto/lodis-galaga/components"
	cfg "github.com/automoto/lodis-galaga/config"
	"github.com/automoto/lodis-galaga/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateProjectiles moves shots and removes those that left the play area.
func UpdateProjectiles(ecs *ecs.ECS) {
	var toRemove []*donburi.Entry

	tags.Projectile.Each(ecs.World, func(e *donburi.Entry) {
		shot := components.Projectile.Get(e)
		body := components.Object.Get(e).Body
		body.X += shot.SpeedX * frameDt
		body.Y += shot.SpeedY * frameDt
		if outOfPlay(body) {
			toRemove = append(toRemove, e)
		}
	})

	for _, e := range toRemove {
		ecs.World.Remove(e.Entity())
	}
}

// outOfPlay reports whether the body is entirely above or below the play area.
func outOfPlay(b *components.Body) bool {
	return b.Y+b.H < cfg.PlayArea.Y || b.Y > cfg.PlayArea.Y+cfg.PlayArea.H
}
