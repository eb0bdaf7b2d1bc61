package factory

import (
	"image/color"

	"github.com/automoto/lodis-galaga/archetypes"
	"github.com/automoto/lodis-galaga/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// SpawnExplosion creates an expanding ring at x, y that removes itself
// after frames ticks.
func SpawnExplosion(ecs *ecs.ECS, x, y, radius float64, frames int, c color.RGBA) *donburi.Entry {
	e := archetypes.Explosion.Spawn(ecs)
	components.Explosion.SetValue(e, components.ExplosionData{
		X:         x,
		Y:         y,
		MaxRadius: radius,
		Color:     c,
	})
	components.AutoDestroy.SetValue(e, components.AutoDestroyData{
		FramesRemaining: frames,
		TotalFrames:     frames,
	})
	return e
}

// ShakeScreen starts or strengthens the screen shake.
func ShakeScreen(ecs *ecs.ECS, intensity float64, frames int) {
	entry, ok := components.ScreenShake.First(ecs.World)
	if !ok {
		entry = ecs.World.Entry(ecs.World.Create(components.ScreenShake))
	}
	shake := components.ScreenShake.Get(entry)
	if intensity >= shake.Intensity || shake.Duration <= 0 {
		shake.Intensity = intensity
		shake.Duration = frames
		shake.Elapsed = 0
	}
}
