package factory

import (
	"fmt"

	"github.com/automoto/lodis-galaga/archetypes"
	"github.com/automoto/lodis-galaga/components"
	cfg "github.com/automoto/lodis-galaga/config"
	"github.com/automoto/lodis-galaga/spatial"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateSpace creates the broad-phase grid over the play area.
func CreateSpace(ecs *ecs.ECS) (*donburi.Entry, error) {
	grid, err := spatial.NewGrid(cfg.Grid.CellSize, cfg.PlayArea)
	if err != nil {
		return nil, fmt.Errorf("create space: %w", err)
	}
	space := ecs.World.Entry(ecs.World.Create(components.Space))
	components.Space.SetValue(space, components.SpaceData{
		Grid:       grid,
		Candidates: make([]spatial.Entity, 0, 32),
	})
	return space, nil
}

// CreateSession creates the run's score and wave singleton.
func CreateSession(ecs *ecs.ECS) *donburi.Entry {
	session := archetypes.Session.Spawn(ecs)
	components.Session.SetValue(session, components.SessionData{})
	components.Wave.SetValue(session, components.WaveData{})
	return session
}
