package render

import (
	"image/color"

	"github.com/automoto/lodis-galaga/shared/gamemath"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenSurface draws onto an ebiten image. World coordinates are shifted
// by OffsetX/OffsetY, which places the play area inside the screen.
type EbitenSurface struct {
	Target    *ebiten.Image
	OffsetX   float64
	OffsetY   float64
	AntiAlias bool

	op ebiten.DrawImageOptions
}

// NewEbitenSurface returns a surface drawing to target.
func NewEbitenSurface(target *ebiten.Image, offsetX, offsetY float64) *EbitenSurface {
	return &EbitenSurface{Target: target, OffsetX: offsetX, OffsetY: offsetY}
}

func (s *EbitenSurface) DrawImage(img Image, dst gamemath.Rect, tint color.Color) {
	src, ok := img.(*ebiten.Image)
	if !ok || src == nil || s.Target == nil {
		return
	}
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}

	s.op.GeoM.Reset()
	s.op.ColorScale.Reset()
	s.op.GeoM.Scale(dst.W/float64(b.Dx()), dst.H/float64(b.Dy()))
	s.op.GeoM.Translate(dst.X+s.OffsetX, dst.Y+s.OffsetY)
	if tint != nil {
		s.op.ColorScale.ScaleWithColor(tint)
	}
	s.Target.DrawImage(src, &s.op)
}

func (s *EbitenSurface) FillRect(r gamemath.Rect, c color.Color) {
	if s.Target == nil {
		return
	}
	vector.FillRect(s.Target,
		float32(r.X+s.OffsetX), float32(r.Y+s.OffsetY),
		float32(r.W), float32(r.H),
		c, s.AntiAlias)
}

func (s *EbitenSurface) StrokeRect(r gamemath.Rect, c color.Color, width float32) {
	if s.Target == nil {
		return
	}
	vector.StrokeRect(s.Target,
		float32(r.X+s.OffsetX), float32(r.Y+s.OffsetY),
		float32(r.W), float32(r.H),
		width, c, s.AntiAlias)
}

func (s *EbitenSurface) Line(x0, y0, x1, y1 float64, c color.Color, width float32) {
	if s.Target == nil {
		return
	}
	vector.StrokeLine(s.Target,
		float32(x0+s.OffsetX), float32(y0+s.OffsetY),
		float32(x1+s.OffsetX), float32(y1+s.OffsetY),
		width, c, s.AntiAlias)
}

func (s *EbitenSurface) FillCircle(cx, cy, r float64, c color.Color) {
	if s.Target == nil {
		return
	}
	vector.FillCircle(s.Target, float32(cx+s.OffsetX), float32(cy+s.OffsetY), float32(r), c, s.AntiAlias)
}

func (s *EbitenSurface) StrokeCircle(cx, cy, r float64, c color.Color, width float32) {
	if s.Target == nil {
		return
	}
	vector.StrokeCircle(s.Target, float32(cx+s.OffsetX), float32(cy+s.OffsetY), float32(r), width, c, s.AntiAlias)
}
