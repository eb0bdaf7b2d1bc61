package components

import "github.com/yohamta/donburi"

// CometData is a falling hazard that costs a life on contact.
type CometData struct {
	Speed float64
}

var Comet = donburi.NewComponentType[CometData]()

type PowerupKind int

const (
	PowerupExtraLife PowerupKind = iota
	PowerupRapidFire
)

// PowerupData is a pickup drifting down from a destroyed enemy.
type PowerupData struct {
	Kind  PowerupKind
	Speed float64
}

var Powerup = donburi.NewComponentType[PowerupData]()
