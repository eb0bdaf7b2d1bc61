package systems

import (
	"log"
	"strings"

	"github.com/automoto/lodis-galaga/batch"
	"github.com/automoto/lodis-galaga/components"
	"github.com/automoto/lodis-galaga/shared/gamemath"
	"github.com/automoto/lodis-galaga/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// enemyView is the batcher's view of one enemy for the current frame.
type enemyView struct {
	bounds gamemath.Rect
	state  batch.VisualState
}

func (v *enemyView) Bounds() gamemath.Rect           { return v.bounds }
func (v *enemyView) VisualState() batch.VisualState { return v.state }

// enemyVisualState reads the fields that decide how an enemy is drawn.
func enemyVisualState(e *donburi.Entry) batch.VisualState {
	enemy := components.Enemy.Get(e)
	health := components.Health.Get(e)
	v := batch.VisualState{
		Active:    true,
		Kind:      batch.KindPenguin,
		Animation: batch.AnimIdle,
		Health:    float64(health.Current),
		MaxHealth: float64(health.Max),
	}
	if enemy.IsBoss() {
		v.Kind = batch.KindBoss
	}
	if e.HasComponent(components.Death) {
		v.Animation = batch.AnimDying
		v.DeathFrame = components.Death.Get(e).Frame
	}
	return v
}

// DrawEnemies batches every enemy by visual state and draws each batch
// with one state setup.
func DrawEnemies(ecs *ecs.ECS, screen *ebiten.Image) {
	rd := getRender(ecs)
	if rd == nil {
		return
	}
	if err := batchEnemies(ecs.World, rd.Batcher); err != nil {
		warnBatch(err)
	} else {
		lastBatchWarning = ""
	}
	rd.Batcher.Render(rd.Context, rd.Sprites)
}

var (
	// Pooled across frames; the batcher holds pointers into enemyViews
	// until Clear.
	enemyViews []enemyView
	enemyBatch []batch.Enemy

	lastBatchWarning string
)

// batchEnemies refills b with the world's enemies. The error joins every
// enemy the batcher rejected.
func batchEnemies(w donburi.World, b *batch.Batcher) error {
	enemyViews = enemyViews[:0]
	tags.Enemy.Each(w, func(e *donburi.Entry) {
		enemyViews = append(enemyViews, enemyView{
			bounds: components.Object.Get(e).Body.Rect(),
			state:  enemyVisualState(e),
		})
	})

	// Pointers are taken only after the pool stops growing.
	enemyBatch = enemyBatch[:0]
	for i := range enemyViews {
		enemyBatch = append(enemyBatch, &enemyViews[i])
	}
	b.Clear()
	return b.AddAll(enemyBatch)
}

// warnBatch logs rejected enemies once, not again every frame while the
// same enemies stay broken.
func warnBatch(err error) {
	msg := strings.ReplaceAll(err.Error(), "\n", "; ")
	if msg == lastBatchWarning {
		return
	}
	lastBatchWarning = msg
	log.Printf("[render] Warning: enemies not drawn: %s", msg)
}
