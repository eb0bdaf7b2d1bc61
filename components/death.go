package components

import "github.com/yohamta/donburi"

// DeathData marks an entity that has started its death sequence. Frame
// advances every FrameTicks ticks; once it runs past the last death frame
// the entity is removed from the world.
type DeathData struct {
	Frame      int
	Ticks      int
	FrameTicks int
}

var Death = donburi.NewComponentType[DeathData]()
