package scenes

import (
	"sync"

	"github.com/automoto/lodis-galaga/assets"
	cfg "github.com/automoto/lodis-galaga/config"
)

// SceneChanger allows scenes to trigger transitions
type SceneChanger interface {
	ChangeScene(scene interface{})
}

var (
	sprites     *assets.Sprites
	spritesOnce sync.Once
)

// loadSprites builds the sprite images once and shares them between scenes.
func loadSprites() *assets.Sprites {
	spritesOnce.Do(func() {
		sprites = assets.Load(cfg.Debug.AssetDir)
	})
	return sprites
}
