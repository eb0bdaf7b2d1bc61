package systems

import (
	"github.com/automoto/lodis-galaga/batch"
	"github.com/automoto/lodis-galaga/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateDeaths advances death animations and removes enemies whose
// animation has played out.
func UpdateDeaths(ecs *ecs.ECS) {
	var toRemove []*donburi.Entry

	components.Death.Each(ecs.World, func(e *donburi.Entry) {
		death := components.Death.Get(e)
		death.Ticks++
		if death.Ticks >= death.FrameTicks {
			death.Ticks = 0
			death.Frame++
		}
		if death.Frame >= batch.DeathFrames {
			toRemove = append(toRemove, e)
		}
	})

	for _, e := range toRemove {
		ecs.World.Remove(e.Entity())
	}
}
