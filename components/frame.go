package components

import (
	"github.com/automoto/lodis-galaga/assets"
	"github.com/automoto/lodis-galaga/batch"
	"github.com/automoto/lodis-galaga/perf"
	"github.com/automoto/lodis-galaga/render"
	"github.com/automoto/lodis-galaga/spatial"
	"github.com/yohamta/donburi"
)

// SpaceData holds the broad-phase grid rebuilt every frame (singleton
// component). Candidates is scratch space reused between queries.
type SpaceData struct {
	Grid       *spatial.Grid
	Candidates []spatial.Entity
}

var Space = donburi.NewComponentType[SpaceData]()

// RenderData holds the per-scene drawing state (singleton component).
type RenderData struct {
	Images  *assets.Sprites
	Batcher *batch.Batcher
	Sprites batch.Sprites // Images as the batcher sees them
	Context *render.Context
	Surface *render.EbitenSurface
	Text    *render.TextCache
	Labels  map[string]*render.CachedLabel
}

// Label returns the cached label for key, creating it on first use.
func (r *RenderData) Label(key string) *render.CachedLabel {
	l, ok := r.Labels[key]
	if !ok {
		if r.Labels == nil {
			r.Labels = make(map[string]*render.CachedLabel)
		}
		l = render.NewCachedLabel(r.Text, key)
		r.Labels[key] = l
	}
	return l
}

var Render = donburi.NewComponentType[RenderData]()

// PerfData holds the frame monitor and the profiler (singleton component).
type PerfData struct {
	Monitor  *perf.Monitor
	Profiler *perf.Profiler
}

var Perf = donburi.NewComponentType[PerfData]()
