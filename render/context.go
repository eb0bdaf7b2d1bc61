// Package render provides an explicit drawing context over a stateless
// drawing surface. Draw state (tint, fill, stroke, image mode) lives in the
// Context and is saved and restored by scopes instead of being global.
package render

import (
	"errors"
	"image"
	"image/color"

	"github.com/automoto/lodis-galaga/shared/gamemath"
)

// ErrUnbalancedPop is returned by Pop when there is no saved state.
var ErrUnbalancedPop = errors.New("render: pop without matching push")

// Image is a drawable resource. *ebiten.Image satisfies it.
type Image interface {
	Bounds() image.Rectangle
}

// Surface is the immediate-mode backend. Every call carries the state it
// needs, so a Surface never holds draw state between calls.
type Surface interface {
	DrawImage(img Image, dst gamemath.Rect, tint color.Color)
	FillRect(r gamemath.Rect, c color.Color)
	StrokeRect(r gamemath.Rect, c color.Color, width float32)
	Line(x0, y0, x1, y1 float64, c color.Color, width float32)
	FillCircle(cx, cy, r float64, c color.Color)
	StrokeCircle(cx, cy, r float64, c color.Color, width float32)
}

// ImageMode selects how the rectangle passed to Context.Image is anchored.
type ImageMode int

const (
	ImageModeCorner ImageMode = iota // X, Y is the top-left corner
	ImageModeCenter                  // X, Y is the center
)

// State is the draw state a scope saves and restores. A nil colour disables
// the corresponding operation (no tint, no fill, no stroke).
type State struct {
	Tint        color.Color
	Fill        color.Color
	Stroke      color.Color
	StrokeWidth float32
	ImageMode   ImageMode
}

// DefaultState is the state of a fresh Context: no tint, white fill,
// no stroke, corner image mode.
func DefaultState() State {
	return State{
		Fill:        color.White,
		StrokeWidth: 1,
		ImageMode:   ImageModeCorner,
	}
}

// Stats counts the work issued through a Context since the last ResetStats.
type Stats struct {
	Scopes int // state scopes entered
	Draws  int // primitives sent to the surface
}

// Context wraps a Surface with a draw state stack.
type Context struct {
	surface Surface
	state   State
	stack   []State
	stats   Stats
}

// NewContext returns a Context drawing to s with DefaultState.
func NewContext(s Surface) *Context {
	return &Context{
		surface: s,
		state:   DefaultState(),
		stack:   make([]State, 0, 8),
	}
}

// Surface returns the backend the context draws to.
func (c *Context) Surface() Surface { return c.surface }

// SetSurface swaps the backend, e.g. when the screen image changes.
func (c *Context) SetSurface(s Surface) { c.surface = s }

// State returns the current draw state.
func (c *Context) State() State { return c.state }

// Depth returns the number of saved states.
func (c *Context) Depth() int { return len(c.stack) }

// Stats returns counters accumulated since the last ResetStats.
func (c *Context) Stats() Stats { return c.stats }

// ResetStats zeroes the counters. Call once per frame.
func (c *Context) ResetStats() { c.stats = Stats{} }

// Push saves the current state.
func (c *Context) Push() {
	c.stack = append(c.stack, c.state)
	c.stats.Scopes++
}

// Pop restores the most recently saved state.
func (c *Context) Pop() error {
	n := len(c.stack)
	if n == 0 {
		return ErrUnbalancedPop
	}
	c.state = c.stack[n-1]
	c.stack = c.stack[:n-1]
	return nil
}

// Scope runs fn with a saved copy of the current state and restores it
// afterwards, including any pushes fn left unbalanced or a panic in fn.
func (c *Context) Scope(fn func(c *Context)) {
	depth := len(c.stack)
	c.Push()
	defer func() {
		if len(c.stack) > depth {
			c.state = c.stack[depth]
			c.stack = c.stack[:depth]
		}
	}()
	fn(c)
}

// Tint sets the colour multiplied into images.
func (c *Context) Tint(col color.Color) { c.state.Tint = col }

// NoTint disables image tinting.
func (c *Context) NoTint() { c.state.Tint = nil }

// Fill sets the shape fill colour.
func (c *Context) Fill(col color.Color) { c.state.Fill = col }

// NoFill disables shape filling.
func (c *Context) NoFill() { c.state.Fill = nil }

// Stroke sets the outline colour.
func (c *Context) Stroke(col color.Color) { c.state.Stroke = col }

// StrokeWeight sets the outline width.
func (c *Context) StrokeWeight(w float32) { c.state.StrokeWidth = w }

// NoStroke disables outlines.
func (c *Context) NoStroke() { c.state.Stroke = nil }

// SetImageMode sets how Image anchors its rectangle.
func (c *Context) SetImageMode(m ImageMode) { c.state.ImageMode = m }

// Image draws img stretched over r using the current tint and image mode.
// A nil image is skipped.
func (c *Context) Image(img Image, r gamemath.Rect) {
	if img == nil {
		return
	}
	if c.state.ImageMode == ImageModeCenter {
		r = r.Translate(-r.W/2, -r.H/2)
	}
	c.surface.DrawImage(img, r, c.state.Tint)
	c.stats.Draws++
}

// Rect fills and/or outlines r according to the current state.
func (c *Context) Rect(r gamemath.Rect) {
	if c.state.Fill != nil {
		c.surface.FillRect(r, c.state.Fill)
		c.stats.Draws++
	}
	if c.state.Stroke != nil && c.state.StrokeWidth > 0 {
		c.surface.StrokeRect(r, c.state.Stroke, c.state.StrokeWidth)
		c.stats.Draws++
	}
}

// Line draws a segment with the current stroke.
func (c *Context) Line(x0, y0, x1, y1 float64) {
	if c.state.Stroke == nil || c.state.StrokeWidth <= 0 {
		return
	}
	c.surface.Line(x0, y0, x1, y1, c.state.Stroke, c.state.StrokeWidth)
	c.stats.Draws++
}

// Circle fills and/or outlines the circle at cx, cy.
func (c *Context) Circle(cx, cy, r float64) {
	if r <= 0 {
		return
	}
	if c.state.Fill != nil {
		c.surface.FillCircle(cx, cy, r, c.state.Fill)
		c.stats.Draws++
	}
	if c.state.Stroke != nil && c.state.StrokeWidth > 0 {
		c.surface.StrokeCircle(cx, cy, r, c.state.Stroke, c.state.StrokeWidth)
		c.stats.Draws++
	}
}
