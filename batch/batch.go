// Package batch groups enemies by exact visual state so each group can be
// drawn with a single state setup instead of one per enemy.
package batch

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/automoto/lodis-galaga/shared/gamemath"
)

// DeathFrames is the number of sprites in the death animation.
const DeathFrames = 8

const (
	healthyAbove    = 0.66 // health fraction above which an enemy looks undamaged
	badlyDamagedMax = 0.33 // health fraction at or below which it looks very damaged
)

// ErrInvalidMaxHealth is returned for an idle enemy whose MaxHealth cannot
// be used to compute a health fraction.
var ErrInvalidMaxHealth = errors.New("batch: max health must be positive")

type Kind int

const (
	KindPenguin Kind = iota
	KindBoss
)

type Animation int

const (
	AnimIdle Animation = iota
	AnimDying
)

// VisualState is the subset of an enemy's fields that decides how it is drawn.
type VisualState struct {
	Active     bool
	Kind       Kind
	Animation  Animation
	DeathFrame int
	Health     float64
	MaxHealth  float64
}

// Enemy is the per-frame view of an entity the batcher classifies and draws.
type Enemy interface {
	Bounds() gamemath.Rect
	VisualState() VisualState
}

// Group is a visual-state class.
type Group int

const (
	BossNormal Group = iota
	BossDying
	IdleNormal
	IdleDamaged
	IdleVeryDamaged
	Dying // indexed by death frame
	numFixedGroups = Dying
)

func (g Group) String() string {
	switch g {
	case BossNormal:
		return "boss-normal"
	case BossDying:
		return "boss-dying"
	case IdleNormal:
		return "idle-normal"
	case IdleDamaged:
		return "idle-damaged"
	case IdleVeryDamaged:
		return "idle-very-damaged"
	case Dying:
		return "dying"
	}
	return fmt.Sprintf("group(%d)", int(g))
}

// Key names one bucket. Frame is only meaningful for the Dying group.
type Key struct {
	Group Group
	Frame int
}

func (k Key) String() string {
	if k.Group == Dying {
		return fmt.Sprintf("dying[%d]", k.Frame)
	}
	return k.Group.String()
}

// Classify returns the bucket for v. ok is false when v is not drawn at all:
// inactive enemies and dying penguins with a frame outside [0, DeathFrames).
// err is ErrInvalidMaxHealth for an idle penguin with MaxHealth <= 0.
func Classify(v VisualState) (key Key, ok bool, err error) {
	if !v.Active {
		return Key{}, false, nil
	}

	if v.Kind == KindBoss {
		if v.Animation == AnimDying {
			return Key{Group: BossDying}, true, nil
		}
		return Key{Group: BossNormal}, true, nil
	}

	if v.Animation == AnimDying {
		if v.DeathFrame >= 0 && v.DeathFrame < DeathFrames {
			return Key{Group: Dying, Frame: v.DeathFrame}, true, nil
		}
		return Key{}, false, nil
	}

	if !(v.MaxHealth > 0) || math.IsInf(v.MaxHealth, 0) {
		return Key{}, false, fmt.Errorf("%w: got %v", ErrInvalidMaxHealth, v.MaxHealth)
	}

	// A single point of damage on a one- or two-hit-point enemy never maps
	// to the medium-damage sprite. The healthy test runs first, so a full
	// two-hit-point enemy is still normal.
	pct := v.Health / v.MaxHealth
	switch {
	case v.MaxHealth == 1 || pct > healthyAbove:
		return Key{Group: IdleNormal}, true, nil
	case v.MaxHealth == 2 || pct <= badlyDamagedMax:
		return Key{Group: IdleVeryDamaged}, true, nil
	default:
		return Key{Group: IdleDamaged}, true, nil
	}
}

// Batcher holds one frame's buckets. Clear it once per frame before adding.
// It is not safe for concurrent use.
type Batcher struct {
	groups [numFixedGroups][]Enemy
	dying  [DeathFrames][]Enemy

	// Strict logs a warning for every enemy or asset that is silently
	// skipped while drawing.
	Strict bool
	// Warnf receives strict-mode warnings. Defaults to log.Printf.
	Warnf func(format string, args ...any)
	Style Style
}

func New() *Batcher {
	b := &Batcher{
		Warnf: log.Printf,
		Style: DefaultStyle(),
	}
	for i := range b.groups {
		b.groups[i] = make([]Enemy, 0, 16)
	}
	for i := range b.dying {
		b.dying[i] = make([]Enemy, 0, 8)
	}
	return b
}

// Clear empties every bucket, death-frame buckets included, keeping capacity.
func (b *Batcher) Clear() {
	for i := range b.groups {
		b.groups[i] = resetBucket(b.groups[i])
	}
	for i := range b.dying {
		b.dying[i] = resetBucket(b.dying[i])
	}
}

func resetBucket(s []Enemy) []Enemy {
	for i := range s {
		s[i] = nil
	}
	return s[:0]
}

// Add classifies e and appends it to its bucket. Inactive enemies and
// dying enemies with an out-of-range frame are skipped without error.
func (b *Batcher) Add(e Enemy) error {
	v := e.VisualState()
	key, ok, err := Classify(v)
	if err != nil {
		b.warnf("[batch] Warning: enemy not drawn: %v", err)
		return err
	}
	if !ok {
		if v.Active && v.Animation == AnimDying {
			b.warnf("[batch] Warning: death frame %d out of range [0,%d), enemy not drawn", v.DeathFrame, DeathFrames)
		}
		return nil
	}
	if key.Group == Dying {
		b.dying[key.Frame] = append(b.dying[key.Frame], e)
	} else {
		b.groups[key.Group] = append(b.groups[key.Group], e)
	}
	return nil
}

// AddAll adds every enemy and joins the errors of those rejected.
func (b *Batcher) AddAll(enemies []Enemy) error {
	var errs []error
	for _, e := range enemies {
		if err := b.Add(e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Bucket returns the members of k in insertion order. The slice is owned by
// the batcher and valid until the next Clear.
func (b *Batcher) Bucket(k Key) []Enemy {
	if k.Group == Dying {
		if k.Frame < 0 || k.Frame >= DeathFrames {
			return nil
		}
		return b.dying[k.Frame]
	}
	if k.Group < 0 || k.Group >= numFixedGroups {
		return nil
	}
	return b.groups[k.Group]
}

// Group returns the members of a non-dying group.
func (b *Batcher) Group(g Group) []Enemy {
	return b.Bucket(Key{Group: g})
}

// DyingFrame returns the dying penguins showing the given frame.
func (b *Batcher) DyingFrame(frame int) []Enemy {
	return b.Bucket(Key{Group: Dying, Frame: frame})
}

// Keys lists every bucket in draw order.
func Keys() []Key {
	keys := make([]Key, 0, int(numFixedGroups)+DeathFrames)
	for g := BossNormal; g < numFixedGroups; g++ {
		keys = append(keys, Key{Group: g})
	}
	for f := 0; f < DeathFrames; f++ {
		keys = append(keys, Key{Group: Dying, Frame: f})
	}
	return keys
}

// Len returns the number of batched enemies.
func (b *Batcher) Len() int {
	n := 0
	for _, g := range b.groups {
		n += len(g)
	}
	for _, d := range b.dying {
		n += len(d)
	}
	return n
}

func (b *Batcher) warnf(format string, args ...any) {
	if !b.Strict || b.Warnf == nil {
		return
	}
	b.Warnf(format, args...)
}
