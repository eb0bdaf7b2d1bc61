package components

import (
	"image/color"

	"github.com/yohamta/donburi"
)

// ScreenShakeData tracks the active screen shake (singleton component)
type ScreenShakeData struct {
	Intensity float64 // max offset in pixels
	Duration  int     // frames remaining
	Elapsed   int     // frames elapsed (for oscillation)
}

var ScreenShake = donburi.NewComponentType[ScreenShakeData]()

// FlashData blinks a sprite while the timer runs (player invulnerability)
type FlashData struct {
	Duration int // frames remaining
}

var Flash = donburi.NewComponentType[FlashData]()

// AutoDestroyData removes an entity after a number of frames
type AutoDestroyData struct {
	FramesRemaining int
	TotalFrames     int
}

var AutoDestroy = donburi.NewComponentType[AutoDestroyData]()

// ExplosionData is an expanding ring drawn where something blew up
type ExplosionData struct {
	X, Y      float64
	MaxRadius float64
	Color     color.RGBA
}

var Explosion = donburi.NewComponentType[ExplosionData]()
