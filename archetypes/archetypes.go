package archetypes

import (
	"github.com/automoto/lodis-galaga/components"
	cfg "github.com/automoto/lodis-galaga/config"
	"github.com/automoto/lodis-galaga/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Player = newArchetype(
		tags.Player,
		components.Player,
		components.Object,
		components.Lives,
		components.Flash,
	)
	Enemy = newArchetype(
		tags.Enemy,
		components.Enemy,
		components.Object,
		components.Health,
	)
	Projectile = newArchetype(
		tags.Projectile,
		components.Projectile,
		components.Object,
	)
	Comet = newArchetype(
		tags.Comet,
		components.Comet,
		components.Object,
		components.Health,
	)
	Powerup = newArchetype(
		tags.Powerup,
		components.Powerup,
		components.Object,
	)
	Explosion = newArchetype(
		tags.Effect,
		components.Explosion,
		components.AutoDestroy,
	)
	Session = newArchetype(
		components.Session,
		components.Wave,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
