package components

import (
	"github.com/yohamta/donburi"
)

// PlayerData is the ship's weapon state. Invulnerability after a hit is
// the Flash component's timer.
type PlayerData struct {
	FireCooldown float64 // seconds until the next shot
	RapidFire    float64 // seconds of rapid fire left
	Shots        int
}

var Player = donburi.NewComponentType[PlayerData]()
