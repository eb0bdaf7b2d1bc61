package render

import (
	"image/color"
	"math"

	"github.com/automoto/lodis-galaga/fonts"
	"github.com/automoto/lodis-galaga/shared/gamemath"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
)

// Graphic is an offscreen render target owned by the cache. *ebiten.Image
// satisfies it.
type Graphic interface {
	Deallocate()
}

type cacheEntry struct {
	value   string
	graphic Graphic
}

// TextCache keeps pre-rendered text keyed by label, re-rendering only when
// the displayed value changes.
type TextCache struct {
	entries map[string]cacheEntry
}

func NewTextCache() *TextCache {
	return &TextCache{entries: make(map[string]cacheEntry)}
}

// Get returns the graphic cached under key if it was rendered for value,
// otherwise it calls renderFn, caches the result and releases the graphic it
// replaces.
func (c *TextCache) Get(key, value string, renderFn func() Graphic) Graphic {
	if e, ok := c.entries[key]; ok && e.value == value && e.graphic != nil {
		return e.graphic
	}
	g := renderFn()
	if old, ok := c.entries[key]; ok && old.graphic != nil && old.graphic != g {
		old.graphic.Deallocate()
	}
	c.entries[key] = cacheEntry{value: value, graphic: g}
	return g
}

// Clear releases and forgets one entry.
func (c *TextCache) Clear(key string) {
	if e, ok := c.entries[key]; ok && e.graphic != nil {
		e.graphic.Deallocate()
	}
	delete(c.entries, key)
}

// ClearAll releases every cached graphic.
func (c *TextCache) ClearAll() {
	for _, e := range c.entries {
		if e.graphic != nil {
			e.graphic.Deallocate()
		}
	}
	clear(c.entries)
}

// Len returns the number of cached entries.
func (c *TextCache) Len() int { return len(c.entries) }

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

type Baseline int

const (
	BaselineTop Baseline = iota
	BaselineCenter
	BaselineBottom
)

const (
	labelPadX       = 10
	labelPadY       = 5
	defaultTextSize = 24
)

// Style describes how a label is rendered.
type Style struct {
	Font     fonts.FontName
	Size     float64
	Color    color.Color
	Align    Align
	Baseline Baseline
}

func (s Style) size() float64 {
	if s.Size > 0 {
		return s.Size
	}
	return defaultTextSize
}

// CachedLabel draws one piece of changing text through a TextCache.
type CachedLabel struct {
	cache *TextCache
	key   string

	// Render produces the offscreen graphic for a string. It defaults to
	// rendering with ebiten and the fonts package.
	Render func(s string, style Style) Graphic
}

func NewCachedLabel(cache *TextCache, key string) *CachedLabel {
	return &CachedLabel{cache: cache, key: key, Render: RenderText}
}

// Draw blits the cached text anchored at x, y per style.Align and
// style.Baseline.
func (l *CachedLabel) Draw(ctx *Context, x, y float64, s string, style Style) {
	l.DrawScaled(ctx, x, y, s, style, 1, nil)
}

// DrawScaled is Draw with the graphic scaled about the anchor point and
// multiplied by tint. A nil tint draws the text as rendered.
func (l *CachedLabel) DrawScaled(ctx *Context, x, y float64, s string, style Style, scale float64, tint color.Color) {
	if scale <= 0 {
		return
	}
	g := l.cache.Get(l.key, s, func() Graphic { return l.Render(s, style) })
	img, ok := g.(Image)
	if !ok || img == nil {
		return
	}
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	dx, dy := LabelOrigin(x, y, w, h, style.Align, style.Baseline)
	r := gamemath.Rect{
		X: x + (dx-x)*scale,
		Y: y + (dy-y)*scale,
		W: w * scale,
		H: h * scale,
	}

	ctx.Scope(func(ctx *Context) {
		ctx.NoTint()
		if tint != nil {
			ctx.Tint(tint)
		}
		ctx.SetImageMode(ImageModeCorner)
		ctx.Image(img, r)
	})
}

// Clear drops this label's cached graphic.
func (l *CachedLabel) Clear() {
	l.cache.Clear(l.key)
}

// LabelOrigin returns the top-left corner for a label graphic of size w×h
// so the text lands at x, y. Graphics carry labelPadX/labelPadY of padding.
func LabelOrigin(x, y, w, h float64, align Align, baseline Baseline) (float64, float64) {
	dx := x - labelPadX
	dy := y - labelPadY

	switch align {
	case AlignCenter:
		dx = x - w/2
	case AlignRight:
		dx = x - w + labelPadX
	}

	switch baseline {
	case BaselineCenter:
		dy = y - h/2
	case BaselineBottom:
		dy = y - h + labelPadY
	}
	return dx, dy
}

// LabelSize estimates the graphic size needed for s at the given font size.
func LabelSize(s string, size float64) (int, int) {
	w := float64(len(s))*size*0.8 + 4*labelPadX
	h := size + 4*labelPadY
	return int(math.Ceil(w)), int(math.Ceil(h))
}

// RenderText renders s left/top aligned with padding into a new image.
func RenderText(s string, style Style) Graphic {
	size := style.size()
	w, h := LabelSize(s, size)
	img := ebiten.NewImage(w, h)

	clr := style.Color
	if clr == nil {
		clr = color.White
	}
	face := fonts.Face(style.Font, size)
	ascent := face.Metrics().Ascent.Ceil()
	text.Draw(img, s, face, labelPadX, labelPadY+ascent, clr)
	return img
}
