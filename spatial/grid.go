// Package spatial implements a uniform-cell spatial hash used as the
// broad phase of collision detection. The grid is rebuilt every frame:
// Clear, then Insert every collidable, then query candidates per entity.
package spatial

import (
	"errors"
	"fmt"
	"math"

	"github.com/automoto/lodis-galaga/shared/gamemath"
)

// ErrInvalidCellSize is returned by NewGrid for a cell size that is not a
// positive finite number.
var ErrInvalidCellSize = errors.New("spatial: cell size must be a positive finite number")

// Entity is anything with a top-left world position. Entities are used as
// set members, so the dynamic type must be comparable (pointers in practice).
type Entity interface {
	Position() (x, y float64)
}

// Sizer reports an entity's extent as w/h.
type Sizer interface {
	Size() (w, h float64)
}

// Dimensioner reports an entity's extent as width/height. It is consulted
// for any axis that Sizer leaves at zero.
type Dimensioner interface {
	Dimensions() (width, height float64)
}

// Cell addresses one grid bucket. Coordinates may be negative or exceed
// Cols/Rows when an entity leaves the nominal play area.
type Cell struct {
	Col, Row int
}

func (c Cell) String() string {
	return fmt.Sprintf("%d,%d", c.Col, c.Row)
}

// bucket is the member set of one cell. members keeps insertion order,
// index gives set semantics.
type bucket struct {
	members []Entity
	index   map[Entity]struct{}
}

func newBucket() *bucket {
	return &bucket{
		members: make([]Entity, 0, 8),
		index:   make(map[Entity]struct{}, 8),
	}
}

func (b *bucket) add(e Entity) {
	if _, ok := b.index[e]; ok {
		return
	}
	b.index[e] = struct{}{}
	b.members = append(b.members, e)
}

// reset empties the bucket but keeps its capacity.
func (b *bucket) reset() {
	for i := range b.members {
		b.members[i] = nil
	}
	b.members = b.members[:0]
	clear(b.index)
}

// Grid is a sparse spatial hash over a play area. It is not safe for
// concurrent use; the frame loop owns it exclusively.
type Grid struct {
	cellSize float64
	area     gamemath.Rect
	cols     int
	rows     int

	cells    map[Cell]*bucket
	occupied []Cell    // occupied cells in creation order
	free     []*bucket // recycled buckets from previous frames
	seen     map[Entity]struct{}
}

// NewGrid creates a grid whose cell coordinates are measured from the
// top-left corner of area.
func NewGrid(cellSize float64, area gamemath.Rect) (*Grid, error) {
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCellSize, cellSize)
	}
	return &Grid{
		cellSize: cellSize,
		area:     area,
		cols:     int(math.Ceil(area.W / cellSize)),
		rows:     int(math.Ceil(area.H / cellSize)),
		cells:    make(map[Cell]*bucket),
		seen:     make(map[Entity]struct{}),
	}, nil
}

// CellSize returns the edge length of a cell in world units.
func (g *Grid) CellSize() float64 { return g.cellSize }

// Area returns the play area the grid is anchored to.
func (g *Grid) Area() gamemath.Rect { return g.area }

// Cols is the number of columns covering the play area. Informational only.
func (g *Grid) Cols() int { return g.cols }

// Rows is the number of rows covering the play area. Informational only.
func (g *Grid) Rows() int { return g.rows }

// Len returns the number of occupied cells.
func (g *Grid) Len() int { return len(g.occupied) }

// Clear empties every cell. Buckets are kept for reuse on the next frame.
func (g *Grid) Clear() {
	for _, c := range g.occupied {
		b := g.cells[c]
		b.reset()
		g.free = append(g.free, b)
	}
	clear(g.cells)
	g.occupied = g.occupied[:0]
}

// CellAt maps a world point to the cell containing it.
func (g *Grid) CellAt(x, y float64) Cell {
	return Cell{
		Col: int(math.Floor((x - g.area.X) / g.cellSize)),
		Row: int(math.Floor((y - g.area.Y) / g.cellSize)),
	}
}

// CellRect returns the world-space rectangle of a cell.
func (g *Grid) CellRect(c Cell) gamemath.Rect {
	return gamemath.Rect{
		X: g.area.X + float64(c.Col)*g.cellSize,
		Y: g.area.Y + float64(c.Row)*g.cellSize,
		W: g.cellSize,
		H: g.cellSize,
	}
}

// Insert registers e in every cell its bounding rectangle touches.
// Entities with a non-finite position or extent are ignored.
func (g *Grid) Insert(e Entity) {
	lo, hi, ok := g.cellRange(e)
	if !ok {
		return
	}
	for col := lo.Col; col <= hi.Col; col++ {
		for row := lo.Row; row <= hi.Row; row++ {
			g.bucketFor(Cell{Col: col, Row: row}).add(e)
		}
	}
}

// PotentialCollisions returns every entity sharing at least one cell with e,
// excluding e itself. Cells are scanned column by column and members keep
// insertion order, so the result is deterministic for a given frame.
func (g *Grid) PotentialCollisions(e Entity) []Entity {
	return g.AppendPotentialCollisions(nil, e)
}

// AppendPotentialCollisions is PotentialCollisions appending into buf, so
// callers can reuse one slice across queries.
func (g *Grid) AppendPotentialCollisions(buf []Entity, e Entity) []Entity {
	lo, hi, ok := g.cellRange(e)
	if !ok {
		return buf
	}
	clear(g.seen)
	for col := lo.Col; col <= hi.Col; col++ {
		for row := lo.Row; row <= hi.Row; row++ {
			b, ok := g.cells[Cell{Col: col, Row: row}]
			if !ok {
				continue
			}
			for _, candidate := range b.members {
				if candidate == e {
					continue
				}
				if _, dup := g.seen[candidate]; dup {
					continue
				}
				g.seen[candidate] = struct{}{}
				buf = append(buf, candidate)
			}
		}
	}
	return buf
}

// Members returns the entities registered in cell c. The slice is owned by
// the grid and is only valid until the next Clear.
func (g *Grid) Members(c Cell) []Entity {
	if b, ok := g.cells[c]; ok {
		return b.members
	}
	return nil
}

// MembersAt returns the members of the cell containing the world point.
func (g *Grid) MembersAt(x, y float64) []Entity {
	return g.Members(g.CellAt(x, y))
}

// EachCell calls fn for every occupied cell with its member count.
func (g *Grid) EachCell(fn func(c Cell, count int)) {
	for _, c := range g.occupied {
		fn(c, len(g.cells[c].members))
	}
}

func (g *Grid) bucketFor(c Cell) *bucket {
	if b, ok := g.cells[c]; ok {
		return b
	}
	var b *bucket
	if n := len(g.free); n > 0 {
		b = g.free[n-1]
		g.free[n-1] = nil
		g.free = g.free[:n-1]
	} else {
		b = newBucket()
	}
	g.cells[c] = b
	g.occupied = append(g.occupied, c)
	return b
}

// cellRange returns the inclusive cell range covered by e's bounds.
func (g *Grid) cellRange(e Entity) (lo, hi Cell, ok bool) {
	x, y := e.Position()
	w, h := Extent(e)
	if !gamemath.IsFinite(x+w) || !gamemath.IsFinite(y+h) {
		return Cell{}, Cell{}, false
	}
	return g.CellAt(x, y), g.CellAt(x+w, y+h), true
}

// Extent returns e's width and height, preferring Sizer and falling back to
// Dimensioner per axis. Missing or negative extents are 0, so every entity
// occupies at least the cell holding its top-left corner.
func Extent(e Entity) (w, h float64) {
	if s, ok := e.(Sizer); ok {
		w, h = s.Size()
	}
	if w == 0 || h == 0 {
		if d, ok := e.(Dimensioner); ok {
			dw, dh := d.Dimensions()
			if w == 0 {
				w = dw
			}
			if h == 0 {
				h = dh
			}
		}
	}
	return gamemath.NonNegative(w), gamemath.NonNegative(h)
}
