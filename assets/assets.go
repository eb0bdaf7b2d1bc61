package assets

import (
	"errors"
	"image"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/automoto/lodis-galaga/batch"
	"github.com/automoto/lodis-galaga/render"
	"github.com/disintegration/imaging"
	"github.com/hajimehoshi/ebiten/v2"
)

// Sprites holds every image the game draws.
type Sprites struct {
	Ship      *ebiten.Image
	Penguin   *ebiten.Image
	Enemy     *ebiten.Image
	Boss      *ebiten.Image
	Comet     *ebiten.Image
	Heart     *ebiten.Image
	Envelope  *ebiten.Image
	ExtraLife *ebiten.Image
	RapidFire *ebiten.Image
	Death     [batch.DeathFrames]*ebiten.Image
}

// Images returns every sprite keyed by name. When dir is set, <name>.png
// inside it replaces the procedural image and is resized to the sprite's
// target size.
func Images(dir string) map[string]image.Image {
	catalog := Catalog()
	out := make(map[string]image.Image, len(catalog))
	for _, def := range catalog {
		if img, ok := loadOverride(dir, def); ok {
			out[def.Name] = img
			continue
		}
		out[def.Name] = def.Generate()
	}
	return out
}

func loadOverride(dir string, def SpriteDef) (image.Image, bool) {
	if dir == "" {
		return nil, false
	}
	path := filepath.Join(dir, def.Name+".png")
	img, err := imaging.Open(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("Warning: Could not load sprite %s: %v", path, err)
		}
		return nil, false
	}
	b := img.Bounds()
	if b.Dx() != def.W || b.Dy() != def.H {
		img = imaging.Resize(img, def.W, def.H, imaging.Lanczos)
	}
	log.Printf("[assets] using %s", path)
	return img, true
}

// Load builds the GPU images for every sprite.
func Load(dir string) *Sprites {
	imgs := Images(dir)
	get := func(name string) *ebiten.Image {
		return ebiten.NewImageFromImage(imgs[name])
	}
	s := &Sprites{
		Ship:      get(SpriteShip),
		Penguin:   get(SpritePenguin),
		Enemy:     get(SpriteEnemy),
		Boss:      get(SpriteBoss),
		Comet:     get(SpriteComet),
		Heart:     get(SpriteHeart),
		Envelope:  get(SpriteEnvelope),
		ExtraLife: get(SpriteExtraLife),
		RapidFire: get(SpriteRapidFire),
	}
	for i := range s.Death {
		s.Death[i] = get(DeathSprite(i))
	}
	return s
}

func asImage(img *ebiten.Image) render.Image {
	if img == nil {
		return nil
	}
	return img
}

// Batch returns the images the enemy batcher draws with.
func (s *Sprites) Batch() batch.Sprites {
	out := batch.Sprites{
		Boss:        asImage(s.Boss),
		Enemy:       asImage(s.Enemy),
		PenguinIdle: asImage(s.Penguin),
	}
	for i, img := range s.Death {
		out.Death[i] = asImage(img)
	}
	return out
}
