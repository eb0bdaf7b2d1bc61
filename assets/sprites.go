package assets

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/automoto/lodis-galaga/batch"
)

// Sprite names double as override file names (<name>.png).
const (
	SpriteShip      = "spaceship"
	SpritePenguin   = "penguin"
	SpriteEnemy     = "enemy"
	SpriteBoss      = "boss"
	SpriteComet     = "comet"
	SpriteHeart     = "heart"
	SpriteEnvelope  = "envelope"
	SpriteExtraLife = "powerup_life"
	SpriteRapidFire = "powerup_rapid"
)

// DeathSprite returns the name of death animation frame i.
func DeathSprite(i int) string {
	return fmt.Sprintf("penguin_death_%d", i)
}

// SpriteDef is one image the game draws: its target size and the
// procedural fallback used when no override file exists.
type SpriteDef struct {
	Name string
	W, H int
	draw func(w, h int) *image.RGBA
}

// Generate paints the procedural version of the sprite.
func (d SpriteDef) Generate() *image.RGBA {
	return d.draw(d.W, d.H)
}

// Catalog lists every sprite with its target size.
func Catalog() []SpriteDef {
	defs := []SpriteDef{
		{Name: SpriteShip, W: 64, H: 64, draw: drawShip},
		{Name: SpritePenguin, W: 64, H: 64, draw: func(w, h int) *image.RGBA { return paint(w, h, penguin(w, h, 1, 1)...) }},
		{Name: SpriteEnemy, W: 64, H: 64, draw: drawSaucer},
		{Name: SpriteBoss, W: 128, H: 128, draw: drawBoss},
		{Name: SpriteComet, W: 64, H: 128, draw: drawComet},
		{Name: SpriteHeart, W: 64, H: 64, draw: func(w, h int) *image.RGBA { return paint(w, h, heart(w, h, heartRed)) }},
		{Name: SpriteEnvelope, W: 64, H: 64, draw: drawEnvelope},
		{Name: SpriteExtraLife, W: 32, H: 32, draw: drawExtraLife},
		{Name: SpriteRapidFire, W: 32, H: 32, draw: drawRapidFire},
	}
	for i := 0; i < batch.DeathFrames; i++ {
		frame := i
		defs = append(defs, SpriteDef{Name: DeathSprite(i), W: 64, H: 64, draw: func(w, h int) *image.RGBA {
			return drawDeathFrame(w, h, frame)
		}})
	}
	return defs
}

var (
	shipBlue    = color.RGBA{R: 110, G: 170, B: 255, A: 255}
	shipDark    = color.RGBA{R: 40, G: 70, B: 140, A: 255}
	flameOrange = color.RGBA{R: 255, G: 150, B: 40, A: 255}
	penguinBody = color.RGBA{R: 30, G: 32, B: 45, A: 255}
	bellyWhite  = color.RGBA{R: 240, G: 240, B: 245, A: 255}
	beakOrange  = color.RGBA{R: 255, G: 160, B: 30, A: 255}
	black       = color.RGBA{A: 255}
	crownGold   = color.RGBA{R: 255, G: 210, B: 40, A: 255}
	saucerGreen = color.RGBA{R: 90, G: 220, B: 120, A: 255}
	heartRed    = color.RGBA{R: 230, G: 40, B: 60, A: 255}
	paperWhite  = color.RGBA{R: 235, G: 235, B: 225, A: 255}
	foldGray    = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	boltYellow  = color.RGBA{R: 255, G: 230, B: 60, A: 255}
)

// layer reports the colour a shape puts at a pixel centre, if any.
type layer func(x, y float64) (color.RGBA, bool)

// paint rasterizes layers in order; later layers cover earlier ones.
func paint(w, h int, layers ...layer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			x, y := float64(px)+0.5, float64(py)+0.5
			for _, l := range layers {
				if c, ok := l(x, y); ok {
					img.SetRGBA(px, py, c)
				}
			}
		}
	}
	return img
}

func ellipse(cx, cy, rx, ry float64, c color.RGBA) layer {
	return func(x, y float64) (color.RGBA, bool) {
		dx, dy := (x-cx)/rx, (y-cy)/ry
		return c, dx*dx+dy*dy <= 1
	}
}

func rect(x0, y0, w, h float64, c color.RGBA) layer {
	return func(x, y float64) (color.RGBA, bool) {
		return c, x >= x0 && x < x0+w && y >= y0 && y < y0+h
	}
}

func triangle(ax, ay, bx, by, cx, cy float64, c color.RGBA) layer {
	edge := func(x0, y0, x1, y1, x, y float64) float64 {
		return (x1-x0)*(y-y0) - (y1-y0)*(x-x0)
	}
	return func(x, y float64) (color.RGBA, bool) {
		d0 := edge(ax, ay, bx, by, x, y)
		d1 := edge(bx, by, cx, cy, x, y)
		d2 := edge(cx, cy, ax, ay, x, y)
		neg := d0 < 0 || d1 < 0 || d2 < 0
		pos := d0 > 0 || d1 > 0 || d2 > 0
		return c, !(neg && pos)
	}
}

func segment(x0, y0, x1, y1, width float64, c color.RGBA) layer {
	return func(x, y float64) (color.RGBA, bool) {
		dx, dy := x1-x0, y1-y0
		t := ((x-x0)*dx + (y-y0)*dy) / (dx*dx + dy*dy)
		t = math.Max(0, math.Min(1, t))
		px, py := x0+t*dx-x, y0+t*dy-y
		return c, math.Hypot(px, py) <= width/2
	}
}

// heart fills the curve (x²+y²-1)³ - x²y³ <= 0 scaled into the box.
func heart(w, h int, c color.RGBA) layer {
	fw, fh := float64(w), float64(h)
	return func(x, y float64) (color.RGBA, bool) {
		u := (x/fw - 0.5) * 2.6
		v := (0.45 - y/fh) * 2.6
		a := u*u + v*v - 1
		return c, a*a*a-u*u*v*v*v <= 0
	}
}

func fade(c color.RGBA, k float64) color.RGBA {
	k = math.Max(0, math.Min(1, k))
	return color.RGBA{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
		A: uint8(float64(c.A) * k),
	}
}

func drawShip(w, h int) *image.RGBA {
	fw, fh := float64(w), float64(h)
	return paint(w, h,
		rect(fw*0.28, fh*0.84, fw*0.12, fh*0.14, flameOrange),
		rect(fw*0.60, fh*0.84, fw*0.12, fh*0.14, flameOrange),
		triangle(fw*0.5, fh*0.04, fw*0.08, fh*0.88, fw*0.92, fh*0.88, shipBlue),
		triangle(fw*0.5, fh*0.45, fw*0.2, fh*0.88, fw*0.8, fh*0.88, shipDark),
		ellipse(fw*0.5, fh*0.42, fw*0.09, fh*0.16, bellyWhite),
	)
}

// penguin returns the layers of a penguin filling a w×h box, shrunk by
// scale about the centre and faded by alpha.
func penguin(w, h int, scale, alpha float64) []layer {
	fw, fh := float64(w), float64(h)
	cx, cy := fw/2, fh/2
	s := func(v float64) float64 { return v * scale }
	return []layer{
		ellipse(cx-s(fw*0.14), cy+s(fh*0.42), s(fw*0.1), s(fh*0.05), fade(beakOrange, alpha)),
		ellipse(cx+s(fw*0.14), cy+s(fh*0.42), s(fw*0.1), s(fh*0.05), fade(beakOrange, alpha)),
		ellipse(cx, cy+s(fh*0.05), s(fw*0.36), s(fh*0.42), fade(penguinBody, alpha)),
		ellipse(cx, cy+s(fh*0.12), s(fw*0.23), s(fh*0.3), fade(bellyWhite, alpha)),
		ellipse(cx-s(fw*0.1), cy-s(fh*0.18), s(fw*0.06), s(fh*0.06), fade(bellyWhite, alpha)),
		ellipse(cx+s(fw*0.1), cy-s(fh*0.18), s(fw*0.06), s(fh*0.06), fade(bellyWhite, alpha)),
		ellipse(cx-s(fw*0.1), cy-s(fh*0.17), s(fw*0.03), s(fh*0.03), fade(black, alpha)),
		ellipse(cx+s(fw*0.1), cy-s(fh*0.17), s(fw*0.03), s(fh*0.03), fade(black, alpha)),
		triangle(cx-s(fw*0.07), cy-s(fh*0.08), cx+s(fw*0.07), cy-s(fh*0.08), cx, cy+s(fh*0.02), fade(beakOrange, alpha)),
	}
}

func drawBoss(w, h int) *image.RGBA {
	fw, fh := float64(w), float64(h)
	layers := penguin(w, h, 0.85, 1)
	layers = append(layers,
		triangle(fw*0.3, fh*0.14, fw*0.38, fh*0.02, fw*0.44, fh*0.14, crownGold),
		triangle(fw*0.42, fh*0.14, fw*0.5, fh*0.0, fw*0.58, fh*0.14, crownGold),
		triangle(fw*0.56, fh*0.14, fw*0.62, fh*0.02, fw*0.7, fh*0.14, crownGold),
		rect(fw*0.3, fh*0.13, fw*0.4, fh*0.05, crownGold),
	)
	return paint(w, h, layers...)
}

func drawSaucer(w, h int) *image.RGBA {
	fw, fh := float64(w), float64(h)
	return paint(w, h,
		ellipse(fw*0.5, fh*0.4, fw*0.2, fh*0.2, bellyWhite),
		ellipse(fw*0.5, fh*0.55, fw*0.46, fh*0.16, saucerGreen),
		ellipse(fw*0.5, fh*0.55, fw*0.3, fh*0.06, shipDark),
	)
}

// drawDeathFrame shrinks and fades the penguin while a flash ring grows.
func drawDeathFrame(w, h, frame int) *image.RGBA {
	t := float64(frame) / float64(batch.DeathFrames)
	fw, fh := float64(w), float64(h)
	ring := math.Min(fw, fh) * (0.15 + 0.35*t)
	ringColor := fade(flameOrange, 1-t)
	layers := []layer{
		func(x, y float64) (color.RGBA, bool) {
			d := math.Hypot(x-fw/2, y-fh/2)
			return ringColor, math.Abs(d-ring) <= 2.5
		},
	}
	layers = append(layers, penguin(w, h, 1-0.09*float64(frame), 1-t)...)
	return paint(w, h, layers...)
}

func drawComet(w, h int) *image.RGBA {
	fw, fh := float64(w), float64(h)
	headY, headR := fh*0.78, fw*0.4
	tail := func(x, y float64) (color.RGBA, bool) {
		if y >= headY {
			return color.RGBA{}, false
		}
		k := y / headY
		half := headR * k
		if math.Abs(x-fw/2) > half {
			return color.RGBA{}, false
		}
		return fade(flameOrange, k*0.8), true
	}
	return paint(w, h,
		tail,
		ellipse(fw/2, headY, headR, headR, color.RGBA{R: 255, G: 120, B: 40, A: 255}),
		ellipse(fw/2, headY, headR*0.6, headR*0.6, boltYellow),
	)
}

func drawEnvelope(w, h int) *image.RGBA {
	fw, fh := float64(w), float64(h)
	x0, y0, x1, y1 := fw*0.12, fh*0.25, fw*0.88, fh*0.75
	return paint(w, h,
		rect(x0, y0, x1-x0, y1-y0, paperWhite),
		segment(x0, y0, fw*0.5, fh*0.52, 3, foldGray),
		segment(x1, y0, fw*0.5, fh*0.52, 3, foldGray),
	)
}

func drawExtraLife(w, h int) *image.RGBA {
	fw, fh := float64(w), float64(h)
	return paint(w, h,
		ellipse(fw/2, fh/2, fw/2, fh/2, fade(bellyWhite, 0.35)),
		heart(w, h, heartRed),
	)
}

func drawRapidFire(w, h int) *image.RGBA {
	fw, fh := float64(w), float64(h)
	return paint(w, h,
		ellipse(fw/2, fh/2, fw/2, fh/2, fade(shipBlue, 0.5)),
		triangle(fw*0.58, fh*0.08, fw*0.25, fh*0.56, fw*0.52, fh*0.56, boltYellow),
		triangle(fw*0.42, fh*0.92, fw*0.75, fh*0.44, fw*0.48, fh*0.44, boltYellow),
	)
}
