package factory

import (
	"github.com/automoto/lodis-galaga/archetypes"
	"github.com/automoto/lodis-galaga/components"
	cfg "github.com/automoto/lodis-galaga/config"
	"github.com/automoto/lodis-galaga/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreatePlayer spawns the ship centred above the bottom of the play area.
func CreatePlayer(ecs *ecs.ECS) *donburi.Entry {
	player := archetypes.Player.Spawn(ecs)

	x := cfg.PlayArea.X + (cfg.PlayArea.W-cfg.Player.Width)/2
	y := cfg.PlayArea.Y + cfg.PlayArea.H - cfg.Player.Height - cfg.Player.BottomMargin

	body := components.NewBody(x, y, cfg.Player.Width, cfg.Player.Height, tags.ResolvPlayer)
	body.Entry = player
	body.Data = player
	components.Object.SetValue(player, components.ObjectData{Body: body})

	components.Player.SetValue(player, components.PlayerData{})
	components.Lives.SetValue(player, components.LivesData{
		Lives:    cfg.Player.StartingLives,
		MaxLives: cfg.Player.StartingLives,
	})
	// Flash is permanently attached to avoid archetype thrashing
	components.Flash.SetValue(player, components.FlashData{Duration: 0})

	return player
}
