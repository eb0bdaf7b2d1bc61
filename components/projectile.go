package components

import (
	"github.com/yohamta/donburi"
)

// ProjectileData is a shot in flight. Player shots travel up, enemy shots
// travel down.
type ProjectileData struct {
	SpeedX     float64
	SpeedY     float64
	Damage     int
	FromPlayer bool
}

var Projectile = donburi.NewComponentType[ProjectileData]()
