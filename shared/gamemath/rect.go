package gamemath

import "math"

// Rect is an axis-aligned rectangle in world space. X, Y is the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// NewRect returns a rectangle with negative or NaN extents collapsed to zero.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: NonNegative(w), H: NonNegative(h)}
}

// Max returns the bottom-right corner.
func (r Rect) Max() (float64, float64) {
	return r.X + r.W, r.Y + r.H
}

// Center returns the center point.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Contains reports whether the point lies inside r. The right and bottom
// edges are exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Overlaps reports whether r and o share interior area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Translate returns r moved by dx, dy.
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// NonNegative maps negative and NaN values to 0.
func NonNegative(v float64) float64 {
	if v > 0 {
		return v
	}
	return 0
}

// Clamp01 clamps v to [0, 1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
