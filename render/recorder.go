package render

import (
	"image/color"

	"github.com/automoto/lodis-galaga/shared/gamemath"
)

// Op identifies a recorded surface primitive.
type Op int

const (
	OpImage Op = iota
	OpFillRect
	OpStrokeRect
	OpLine
	OpFillCircle
	OpStrokeCircle
)

func (o Op) String() string {
	switch o {
	case OpImage:
		return "image"
	case OpFillRect:
		return "fill"
	case OpStrokeRect:
		return "stroke"
	case OpLine:
		return "line"
	case OpFillCircle:
		return "fill-circle"
	case OpStrokeCircle:
		return "stroke-circle"
	}
	return "unknown"
}

// Call is one recorded primitive.
type Call struct {
	Op     Op
	Image  Image
	Rect   gamemath.Rect
	Color  color.Color // tint for OpImage
	Width  float32
	X0, Y0 float64 // line start or circle center
	X1, Y1 float64
	R      float64
}

// Recorder is a Surface that records calls instead of drawing. It backs
// headless runs and tests.
type Recorder struct {
	Calls []Call
}

// Reset drops recorded calls, keeping capacity.
func (r *Recorder) Reset() { r.Calls = r.Calls[:0] }

// Count returns the number of recorded calls of the given kind.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

func (r *Recorder) DrawImage(img Image, dst gamemath.Rect, tint color.Color) {
	r.Calls = append(r.Calls, Call{Op: OpImage, Image: img, Rect: dst, Color: tint})
}

func (r *Recorder) FillRect(rect gamemath.Rect, c color.Color) {
	r.Calls = append(r.Calls, Call{Op: OpFillRect, Rect: rect, Color: c})
}

func (r *Recorder) StrokeRect(rect gamemath.Rect, c color.Color, width float32) {
	r.Calls = append(r.Calls, Call{Op: OpStrokeRect, Rect: rect, Color: c, Width: width})
}

func (r *Recorder) Line(x0, y0, x1, y1 float64, c color.Color, width float32) {
	r.Calls = append(r.Calls, Call{Op: OpLine, X0: x0, Y0: y0, X1: x1, Y1: y1, Color: c, Width: width})
}

func (r *Recorder) FillCircle(cx, cy, radius float64, c color.Color) {
	r.Calls = append(r.Calls, Call{Op: OpFillCircle, X0: cx, Y0: cy, R: radius, Color: c})
}

func (r *Recorder) StrokeCircle(cx, cy, radius float64, c color.Color, width float32) {
	r.Calls = append(r.Calls, Call{Op: OpStrokeCircle, X0: cx, Y0: cy, R: radius, Color: c, Width: width})
}
