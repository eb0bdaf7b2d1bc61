package components

import (
	"github.com/automoto/lodis-galaga/shared/gamemath"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// Body is an entity's collision box. It lives on the heap so the spatial
// grid can hold it for the frame while the world changes around it.
type Body struct {
	*resolv.Object
	Entry *donburi.Entry
}

// NewBody creates a body with a rectangle shape matching its bounds.
func NewBody(x, y, w, h float64, tags ...string) *Body {
	obj := resolv.NewObject(x, y, w, h, tags...)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	b := &Body{Object: obj}
	b.Sync()
	return b
}

func (b *Body) Position() (float64, float64) { return b.X, b.Y }

func (b *Body) Size() (float64, float64) { return b.W, b.H }

func (b *Body) Rect() gamemath.Rect { return gamemath.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H} }

// Center returns the middle of the box.
func (b *Body) Center() (float64, float64) { return b.X + b.W/2, b.Y + b.H/2 }

// Sync moves the collision shape to the body's current position.
func (b *Body) Sync() {
	if b.Shape != nil {
		b.Shape.SetPosition(b.X, b.Y)
	}
}

// Overlaps is the exact overlap test between two synced bodies.
func (b *Body) Overlaps(o *Body) bool {
	if o == nil {
		return false
	}
	if b.Shape == nil || o.Shape == nil {
		return b.Rect().Overlaps(o.Rect())
	}
	return b.Shape.Intersection(0, 0, o.Shape) != nil
}

// Alive reports whether the body's entity still exists.
func (b *Body) Alive() bool {
	return b.Entry != nil && b.Entry.Valid()
}

type ObjectData struct {
	*Body
}

var Object = donburi.NewComponentType[ObjectData]()
