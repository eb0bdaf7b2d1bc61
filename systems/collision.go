package systems

import (
	"github.com/automoto/lodis-galaga/components"
	"github.com/automoto/lodis-galaga/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Scratch state reused every frame
var (
	collisionShots []*donburi.Entry
	collisionHits  []*components.Body
	collisionGone  = make(map[donburi.Entity]struct{})
)

func getSpace(ecs *ecs.ECS) *components.SpaceData {
	entry, ok := components.Space.First(ecs.World)
	if !ok {
		return nil
	}
	return components.Space.Get(entry)
}

// UpdateSpatialGrid rebuilds the broad-phase grid from every live body.
// Dying enemies are left out so shots pass through them.
func UpdateSpatialGrid(ecs *ecs.ECS) {
	space := getSpace(ecs)
	if space == nil {
		return
	}
	space.Grid.Clear()
	components.Object.Each(ecs.World, func(e *donburi.Entry) {
		if e.HasComponent(components.Death) {
			return
		}
		body := components.Object.Get(e).Body
		body.Sync()
		space.Grid.Insert(body)
	})
}

// UpdateCollisions resolves this frame's hits. Candidates come from the
// grid, and each candidate pair is confirmed with the exact shape test.
// Player shots damage enemies and comets; the ship is hurt by enemy shots,
// enemies and comets and collects powerups. Entities consumed by a hit
// are removed once all pairs are handled.
func UpdateCollisions(ecs *ecs.ECS) {
	space := getSpace(ecs)
	if space == nil {
		return
	}
	clear(collisionGone)

	collisionShots = collisionShots[:0]
	tags.Projectile.Each(ecs.World, func(e *donburi.Entry) {
		if components.Projectile.Get(e).FromPlayer {
			collisionShots = append(collisionShots, e)
		}
	})
	for _, shot := range collisionShots {
		resolvePlayerShot(ecs, space, shot)
	}

	var players []*donburi.Entry
	tags.Player.Each(ecs.World, func(e *donburi.Entry) {
		players = append(players, e)
	})
	for _, p := range players {
		resolvePlayer(ecs, space, p)
	}

	for entity := range collisionGone {
		if ecs.World.Valid(entity) {
			ecs.World.Remove(entity)
		}
	}
}

func consumed(e *donburi.Entry) bool {
	_, gone := collisionGone[e.Entity()]
	return gone
}

func consume(e *donburi.Entry) {
	collisionGone[e.Entity()] = struct{}{}
}

// hits returns the bodies the given body really overlaps, skipping
// anything already consumed this frame. The slice is reused by the next call.
func hits(space *components.SpaceData, body *components.Body) []*components.Body {
	space.Candidates = space.Grid.AppendPotentialCollisions(space.Candidates[:0], body)
	out := collisionHits[:0]
	for _, c := range space.Candidates {
		other, ok := c.(*components.Body)
		if !ok || !other.Alive() || consumed(other.Entry) {
			continue
		}
		if body.Overlaps(other) {
			out = append(out, other)
		}
	}
	collisionHits = out
	return out
}

func resolvePlayerShot(ecs *ecs.ECS, space *components.SpaceData, shotEntry *donburi.Entry) {
	if consumed(shotEntry) {
		return
	}
	shot := components.Projectile.Get(shotEntry)
	body := components.Object.Get(shotEntry).Body

	for _, other := range hits(space, body) {
		switch {
		case other.HasTags(tags.ResolvEnemy):
			if other.Entry.HasComponent(components.Death) {
				continue
			}
			damageEnemy(ecs, other.Entry, shot.Damage)
		case other.HasTags(tags.ResolvComet):
			if damageComet(ecs, other.Entry, shot.Damage) {
				consume(other.Entry)
			}
		default:
			continue
		}
		consume(shotEntry)
		return
	}
}

func resolvePlayer(ecs *ecs.ECS, space *components.SpaceData, playerEntry *donburi.Entry) {
	body := components.Object.Get(playerEntry).Body

	for _, other := range hits(space, body) {
		switch {
		case other.HasTags(tags.ResolvPowerup):
			applyPowerup(ecs, playerEntry, components.Powerup.Get(other.Entry).Kind)
			consume(other.Entry)
		case other.HasTags(tags.ResolvEnemyShot):
			if hitPlayer(ecs, playerEntry) {
				consume(other.Entry)
			}
		case other.HasTags(tags.ResolvComet):
			if hitPlayer(ecs, playerEntry) {
				consume(other.Entry)
			}
		case other.HasTags(tags.ResolvEnemy):
			if other.Entry.HasComponent(components.Death) {
				continue
			}
			if hitPlayer(ecs, playerEntry) {
				killEnemy(ecs, other.Entry)
			}
		}
	}
}
