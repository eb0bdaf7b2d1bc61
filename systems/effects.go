package systems

import (
	"math"

	"github.com/automoto/lodis-galaga/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateEffects processes visual effect components (flash, shake, auto-destroy)
func UpdateEffects(ecs *ecs.ECS) {
	updateFlashEffects(ecs)
	updateScreenShake(ecs)
	updateAutoDestroy(ecs)
}

// updateFlashEffects decrements flash timers
func updateFlashEffects(ecs *ecs.ECS) {
	components.Flash.Each(ecs.World, func(e *donburi.Entry) {
		flash := components.Flash.Get(e)
		if flash.Duration > 0 {
			flash.Duration--
		}
	})
}

func updateScreenShake(ecs *ecs.ECS) {
	entry, ok := components.ScreenShake.First(ecs.World)
	if !ok {
		return
	}
	shake := components.ScreenShake.Get(entry)
	if shake.Duration > 0 {
		shake.Duration--
		shake.Elapsed++
	} else {
		shake.Intensity = 0
	}
}

// shakeOffset returns the current screen offset of the shake. The offset
// oscillates and fades out with the remaining duration.
func shakeOffset(ecs *ecs.ECS) (float64, float64) {
	entry, ok := components.ScreenShake.First(ecs.World)
	if !ok {
		return 0, 0
	}
	shake := components.ScreenShake.Get(entry)
	if shake.Duration <= 0 || shake.Intensity <= 0 {
		return 0, 0
	}
	decay := float64(shake.Duration) / float64(shake.Duration+shake.Elapsed)
	t := float64(shake.Elapsed)
	return math.Sin(t*1.7) * shake.Intensity * decay, math.Cos(t*2.3) * shake.Intensity * decay
}

// updateAutoDestroy removes entities whose frame budget ran out
func updateAutoDestroy(ecs *ecs.ECS) {
	var toDestroy []*donburi.Entry

	components.AutoDestroy.Each(ecs.World, func(e *donburi.Entry) {
		ad := components.AutoDestroy.Get(e)
		ad.FramesRemaining--
		if ad.FramesRemaining <= 0 {
			toDestroy = append(toDestroy, e)
		}
	})

	for _, e := range toDestroy {
		ecs.World.Remove(e.Entity())
	}
}
