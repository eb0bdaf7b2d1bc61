package components

import (
	"github.com/automoto/lodis-galaga/config"
	"github.com/yohamta/donburi"
)

type EnemyData struct {
	TypeName   string                  // "penguin", "boss"
	TypeConfig *config.EnemyTypeConfig // Cached reference to type configuration

	// Formation slot, relative to the formation origin. Bosses ignore it.
	SlotX, SlotY float64

	Direction  float64 // boss travel direction, -1 or 1
	FireChance float64 // chance per tick to shoot, ramped per wave
}

// IsBoss reports whether the enemy uses boss rules.
func (e *EnemyData) IsBoss() bool {
	return e.TypeConfig != nil && e.TypeConfig.IsBoss
}

var Enemy = donburi.NewComponentType[EnemyData]()
