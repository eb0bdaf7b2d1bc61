package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

type FontName string

const (
	Regular FontName = "regular"
)

type faceKey struct {
	name FontName
	size float64
}

var (
	mu     sync.Mutex
	parsed = map[FontName]*truetype.Font{}
	faces  = map[faceKey]font.Face{}
)

func init() {
	if err := Load(Regular, goregular.TTF); err != nil {
		panic(err)
	}
}

// Load parses a TrueType font and registers it under name. Faces already
// built for name are dropped.
func Load(name FontName, ttf []byte) error {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", name, err)
	}
	mu.Lock()
	defer mu.Unlock()
	parsed[name] = f
	for k := range faces {
		if k.name == name {
			delete(faces, k)
		}
	}
	return nil
}

// Face returns a face for name at size, building and caching it on first
// use. An empty name selects Regular.
func Face(name FontName, size float64) font.Face {
	if name == "" {
		name = Regular
	}
	mu.Lock()
	defer mu.Unlock()

	key := faceKey{name: name, size: size}
	if f, ok := faces[key]; ok {
		return f
	}
	ttf, ok := parsed[name]
	if !ok {
		panic(fmt.Sprintf("Font %s not found", name))
	}
	f := truetype.NewFace(ttf, &truetype.Options{Size: size})
	faces[key] = f
	return f
}

func (f FontName) Get(size float64) font.Face {
	return Face(f, size)
}
