package spatial

import (
	"errors"
	"math"
	"testing"

	"github.com/automoto/lodis-galaga/shared/gamemath"
)

type box struct {
	x, y, w, h float64
}

func (b *box) Position() (float64, float64) { return b.x, b.y }
func (b *box) Size() (float64, float64)     { return b.w, b.h }

type panel struct {
	x, y, width, height float64
}

func (p *panel) Position() (float64, float64)   { return p.x, p.y }
func (p *panel) Dimensions() (float64, float64) { return p.width, p.height }

type point struct {
	x, y float64
}

func (p *point) Position() (float64, float64) { return p.x, p.y }

var testArea = gamemath.Rect{X: 0, Y: 0, W: 800, H: 600}

func newTestGrid(t testing.TB, cellSize float64) *Grid {
	t.Helper()
	g, err := NewGrid(cellSize, testArea)
	if err != nil {
		t.Fatalf("NewGrid(%v): %v", cellSize, err)
	}
	return g
}

func contains(list []Entity, e Entity) bool {
	for _, c := range list {
		if c == e {
			return true
		}
	}
	return false
}

func TestNewGridRejectsInvalidCellSize(t *testing.T) {
	for _, size := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := NewGrid(size, testArea); !errors.Is(err, ErrInvalidCellSize) {
			t.Errorf("NewGrid(%v) error = %v, want ErrInvalidCellSize", size, err)
		}
	}
}

func TestNewGridDimensions(t *testing.T) {
	g := newTestGrid(t, 100)
	if g.Cols() != 8 || g.Rows() != 6 {
		t.Fatalf("expected 8x6 grid, got %dx%d", g.Cols(), g.Rows())
	}

	g = newTestGrid(t, 70)
	if g.Cols() != 12 || g.Rows() != 9 {
		t.Fatalf("expected dimensions to round up to 12x9, got %dx%d", g.Cols(), g.Rows())
	}
}

func TestCellAtHonoursOrigin(t *testing.T) {
	g, err := NewGrid(100, gamemath.Rect{X: 40, Y: 20, W: 800, H: 600})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		x, y float64
		want Cell
	}{
		{40, 20, Cell{0, 0}},
		{139.9, 119.9, Cell{0, 0}},
		{140, 120, Cell{1, 1}},
		{39, 19, Cell{-1, -1}},
		{2000, 20, Cell{19, 0}},
	}
	for _, tt := range tests {
		if got := g.CellAt(tt.x, tt.y); got != tt.want {
			t.Errorf("CellAt(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestInsertRegistersEveryCoveredCell(t *testing.T) {
	g := newTestGrid(t, 100)
	e := &box{x: 150, y: 50, w: 200, h: 100}
	g.Insert(e)

	// Covers cols 1..3, rows 0..1.
	for col := 0; col <= 4; col++ {
		for row := 0; row <= 2; row++ {
			want := col >= 1 && col <= 3 && row <= 1
			got := contains(g.Members(Cell{col, row}), e)
			if got != want {
				t.Errorf("cell %d,%d membership = %v, want %v", col, row, got, want)
			}
		}
	}
	if g.Len() != 6 {
		t.Errorf("expected 6 occupied cells, got %d", g.Len())
	}
}

func TestInsertIsASetPerCell(t *testing.T) {
	g := newTestGrid(t, 100)
	e := &box{x: 10, y: 10, w: 10, h: 10}
	g.Insert(e)
	g.Insert(e)
	if n := len(g.MembersAt(10, 10)); n != 1 {
		t.Fatalf("expected entity once in its cell, got %d", n)
	}
}

func TestInsertZeroAndNegativeSizeOccupiesOriginCell(t *testing.T) {
	g := newTestGrid(t, 100)
	p := &point{x: 250, y: 250}
	neg := &box{x: 450, y: 50, w: -30, h: -30}
	g.Insert(p)
	g.Insert(neg)

	if !contains(g.Members(Cell{2, 2}), p) {
		t.Error("expected point entity in cell 2,2")
	}
	if !contains(g.Members(Cell{4, 0}), neg) {
		t.Error("expected negative-size entity in its origin cell 4,0")
	}
	if g.Len() != 2 {
		t.Errorf("expected exactly 2 occupied cells, got %d", g.Len())
	}
}

func TestInsertFallsBackToWidthHeight(t *testing.T) {
	g := newTestGrid(t, 100)
	e := &panel{x: 50, y: 50, width: 100, height: 100}
	g.Insert(e)
	if !contains(g.Members(Cell{1, 1}), e) {
		t.Fatal("expected width/height entity to reach cell 1,1")
	}
}

func TestInsertIgnoresNonFinitePosition(t *testing.T) {
	g := newTestGrid(t, 100)
	g.Insert(&box{x: math.NaN(), y: 0, w: 10, h: 10})
	g.Insert(&box{x: 0, y: 0, w: math.Inf(1), h: 10})
	if g.Len() != 0 {
		t.Fatalf("expected no occupied cells, got %d", g.Len())
	}
}

func TestPotentialCollisionsExcludesSelf(t *testing.T) {
	g := newTestGrid(t, 100)
	a := &box{x: 10, y: 10, w: 20, h: 20}
	b := &box{x: 30, y: 30, w: 20, h: 20}
	g.Insert(a)
	g.Insert(b)

	got := g.PotentialCollisions(a)
	if contains(got, a) {
		t.Fatal("candidate list must not contain the queried entity")
	}
	if !contains(got, b) {
		t.Fatal("expected b as a candidate for a")
	}
}

func TestPotentialCollisionsDeduplicatesAcrossCells(t *testing.T) {
	g := newTestGrid(t, 100)
	big := &box{x: 0, y: 0, w: 300, h: 300}
	probe := &box{x: 50, y: 50, w: 200, h: 200}
	g.Insert(big)
	g.Insert(probe)

	got := g.PotentialCollisions(probe)
	if len(got) != 1 || got[0] != big {
		t.Fatalf("expected exactly [big], got %d candidates", len(got))
	}
}

func TestPotentialCollisionsMultiCellEntity(t *testing.T) {
	g := newTestGrid(t, 100)
	boss := &box{x: 20, y: 20, w: 260, h: 160}
	g.Insert(boss)

	// One small probe in every cell the boss overlaps.
	for col := 0; col <= 2; col++ {
		for row := 0; row <= 1; row++ {
			probe := &box{x: float64(col)*100 + 90, y: float64(row)*100 + 90, w: 5, h: 5}
			if !contains(g.PotentialCollisions(probe), boss) {
				t.Errorf("probe in cell %d,%d did not see the boss", col, row)
			}
		}
	}

	far := &box{x: 500, y: 500, w: 5, h: 5}
	if contains(g.PotentialCollisions(far), boss) {
		t.Error("probe outside the boss footprint must not see it")
	}
}

func TestPotentialCollisionsOrderIsStable(t *testing.T) {
	g := newTestGrid(t, 100)
	a := &box{x: 10, y: 10, w: 5, h: 5}
	b := &box{x: 20, y: 20, w: 5, h: 5}
	c := &box{x: 110, y: 10, w: 5, h: 5}
	probe := &box{x: 50, y: 5, w: 100, h: 10}
	for _, e := range []*box{a, b, c, probe} {
		g.Insert(e)
	}

	want := []Entity{a, b, c}
	for i := 0; i < 3; i++ {
		got := g.PotentialCollisions(probe)
		if len(got) != len(want) {
			t.Fatalf("expected %d candidates, got %d", len(want), len(got))
		}
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("run %d: candidate %d out of order", i, j)
			}
		}
	}
}

func TestAppendPotentialCollisionsReusesBuffer(t *testing.T) {
	g := newTestGrid(t, 100)
	a := &box{x: 10, y: 10, w: 5, h: 5}
	b := &box{x: 20, y: 20, w: 5, h: 5}
	g.Insert(a)
	g.Insert(b)

	buf := make([]Entity, 0, 4)
	buf = g.AppendPotentialCollisions(buf[:0], a)
	if len(buf) != 1 || buf[0] != b {
		t.Fatalf("expected [b], got %v", buf)
	}
	buf = g.AppendPotentialCollisions(buf[:0], b)
	if len(buf) != 1 || buf[0] != a {
		t.Fatalf("expected [a], got %v", buf)
	}
}

func TestClearRemovesAllMembership(t *testing.T) {
	g := newTestGrid(t, 100)
	entities := []*box{
		{x: 10, y: 10, w: 300, h: 300},
		{x: 40, y: 40, w: 10, h: 10},
		{x: -150, y: 700, w: 10, h: 10},
	}
	for frame := 0; frame < 3; frame++ {
		for _, e := range entities {
			g.Insert(e)
		}
		g.Clear()
		if g.Len() != 0 {
			t.Fatalf("frame %d: expected empty grid after Clear, got %d cells", frame, g.Len())
		}
		for _, e := range entities {
			if got := g.PotentialCollisions(e); len(got) != 0 {
				t.Fatalf("frame %d: expected no candidates after Clear, got %d", frame, len(got))
			}
		}
	}
}

func TestOutsidePlayAreaIsIndexed(t *testing.T) {
	g := newTestGrid(t, 100)
	a := &box{x: -250, y: -250, w: 10, h: 10}
	b := &box{x: -240, y: -240, w: 10, h: 10}
	g.Insert(a)
	g.Insert(b)
	if !contains(g.Members(Cell{-3, -3}), a) {
		t.Fatal("expected entity in negative cell -3,-3")
	}
	if !contains(g.PotentialCollisions(a), b) {
		t.Fatal("expected neighbours outside the play area to see each other")
	}
}

func TestEndToEndNoFalsePositiveAcrossBoundary(t *testing.T) {
	g := newTestGrid(t, 100)
	a := &box{x: 50, y: 50, w: 40, h: 40}
	b := &box{x: 140, y: 50, w: 40, h: 40}
	g.Insert(a)
	g.Insert(b)

	if m := g.Members(Cell{0, 0}); len(m) != 1 || m[0] != a {
		t.Fatal("expected only A in cell 0,0")
	}
	if m := g.Members(Cell{1, 0}); len(m) != 1 || m[0] != b {
		t.Fatal("expected only B in cell 1,0")
	}
	if got := g.PotentialCollisions(a); len(got) != 0 {
		t.Fatalf("expected no candidates for A, got %d", len(got))
	}
}

func TestEachCellReportsCounts(t *testing.T) {
	g := newTestGrid(t, 100)
	g.Insert(&box{x: 10, y: 10, w: 5, h: 5})
	g.Insert(&box{x: 20, y: 20, w: 5, h: 5})
	g.Insert(&box{x: 210, y: 10, w: 5, h: 5})

	counts := map[Cell]int{}
	g.EachCell(func(c Cell, n int) { counts[c] = n })
	if counts[Cell{0, 0}] != 2 || counts[Cell{2, 0}] != 1 || len(counts) != 2 {
		t.Fatalf("unexpected occupancy %v", counts)
	}
}

func BenchmarkGridFrame(b *testing.B) {
	g := newTestGrid(b, 100)
	entities := make([]*box, 0, 500)
	for i := 0; i < 500; i++ {
		entities = append(entities, &box{
			x: float64((i * 37) % 780),
			y: float64((i * 53) % 580),
			w: 20, h: 20,
		})
	}
	buf := make([]Entity, 0, 64)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Clear()
		for _, e := range entities {
			g.Insert(e)
		}
		for _, e := range entities {
			buf = g.AppendPotentialCollisions(buf[:0], e)
		}
	}
}
