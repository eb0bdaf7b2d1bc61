package factory

import (
	"github.com/automoto/lodis-galaga/archetypes"
	"github.com/automoto/lodis-galaga/components"
	cfg "github.com/automoto/lodis-galaga/config"
	"github.com/automoto/lodis-galaga/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateComet spawns a comet just above the play area at x.
func CreateComet(ecs *ecs.ECS, x, speed float64) *donburi.Entry {
	comet := archetypes.Comet.Spawn(ecs)

	body := components.NewBody(x, cfg.PlayArea.Y-cfg.Comet.Height, cfg.Comet.Width, cfg.Comet.Height, tags.ResolvComet)
	body.Entry = comet
	body.Data = comet
	components.Object.SetValue(comet, components.ObjectData{Body: body})

	components.Comet.SetValue(comet, components.CometData{Speed: speed})
	components.Health.SetValue(comet, components.HealthData{
		Current: cfg.Comet.Health,
		Max:     cfg.Comet.Health,
	})
	return comet
}

// CreatePowerup drops a powerup centred on x, y.
func CreatePowerup(ecs *ecs.ECS, x, y float64, kind components.PowerupKind) *donburi.Entry {
	powerup := archetypes.Powerup.Spawn(ecs)

	size := cfg.Powerup.Size
	body := components.NewBody(x-size/2, y-size/2, size, size, tags.ResolvPowerup)
	body.Entry = powerup
	body.Data = powerup
	components.Object.SetValue(powerup, components.ObjectData{Body: body})

	components.Powerup.SetValue(powerup, components.PowerupData{Kind: kind, Speed: cfg.Powerup.Speed})
	return powerup
}
