package batch

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/automoto/lodis-galaga/shared/gamemath"
)

type fakeEnemy struct {
	id string
	r  gamemath.Rect
	v  VisualState
}

func (f *fakeEnemy) Bounds() gamemath.Rect     { return f.r }
func (f *fakeEnemy) VisualState() VisualState { return f.v }

func penguin(health, max float64) VisualState {
	return VisualState{Active: true, Kind: KindPenguin, Animation: AnimIdle, Health: health, MaxHealth: max}
}

func dyingPenguin(frame int) VisualState {
	return VisualState{Active: true, Kind: KindPenguin, Animation: AnimDying, DeathFrame: frame, MaxHealth: 3}
}

func boss(health, max float64, dying bool) VisualState {
	v := VisualState{Active: true, Kind: KindBoss, Health: health, MaxHealth: max}
	if dying {
		v.Animation = AnimDying
	}
	return v
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		v    VisualState
		want Key
		ok   bool
	}{
		{"inactive", VisualState{Kind: KindBoss}, Key{}, false},
		{"boss full", boss(50, 50, false), Key{Group: BossNormal}, true},
		{"boss hurt", boss(1, 50, false), Key{Group: BossNormal}, true},
		{"boss dying", boss(0, 50, true), Key{Group: BossDying}, true},
		{"penguin full", penguin(3, 3), Key{Group: IdleNormal}, true},
		{"one hit point always normal", penguin(0, 1), Key{Group: IdleNormal}, true},
		{"two hit points damaged once", penguin(1, 2), Key{Group: IdleVeryDamaged}, true},
		{"full two hit points takes the healthy branch first", penguin(2, 2), Key{Group: IdleNormal}, true},
		{"two of three is normal", penguin(2, 3), Key{Group: IdleNormal}, true},
		{"one of three is damaged", penguin(1, 3), Key{Group: IdleDamaged}, true},
		{"none of three is very damaged", penguin(0, 3), Key{Group: IdleVeryDamaged}, true},
		{"just above two thirds", penguin(67, 100), Key{Group: IdleNormal}, true},
		{"exactly a third of a hundred", penguin(33, 100), Key{Group: IdleVeryDamaged}, true},
		{"half", penguin(5, 10), Key{Group: IdleDamaged}, true},
		{"dying frame 0", dyingPenguin(0), Key{Group: Dying, Frame: 0}, true},
		{"dying frame 3", dyingPenguin(3), Key{Group: Dying, Frame: 3}, true},
		{"dying frame 7", dyingPenguin(7), Key{Group: Dying, Frame: 7}, true},
		{"dying frame 8 dropped", dyingPenguin(8), Key{}, false},
		{"dying negative frame dropped", dyingPenguin(-1), Key{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := Classify(tt.v)
			if err != nil {
				t.Fatalf("Classify: unexpected error %v", err)
			}
			if ok != tt.ok || got != tt.want {
				t.Errorf("Classify = %v, %v; want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestClassifyInvalidMaxHealth(t *testing.T) {
	for _, max := range []float64{0, -3} {
		_, ok, err := Classify(penguin(1, max))
		if ok || !errors.Is(err, ErrInvalidMaxHealth) {
			t.Errorf("max %v: got ok=%v err=%v, want ErrInvalidMaxHealth", max, ok, err)
		}
	}
	// Bosses do not depend on the health fraction to be classified.
	if _, ok, err := Classify(boss(0, 0, false)); !ok || err != nil {
		t.Errorf("boss with zero max health: ok=%v err=%v", ok, err)
	}
}

func TestAddRoutesDeathFrames(t *testing.T) {
	b := New()
	e3 := &fakeEnemy{id: "d3", v: dyingPenguin(3)}
	e8 := &fakeEnemy{id: "d8", v: dyingPenguin(8)}
	for _, e := range []*fakeEnemy{e3, e8} {
		if err := b.Add(e); err != nil {
			t.Fatalf("Add(%s): %v", e.id, err)
		}
	}
	if got := b.DyingFrame(3); len(got) != 1 || got[0] != e3 {
		t.Fatalf("dying[3] = %v, want [d3]", got)
	}
	if b.Len() != 1 {
		t.Fatalf("Len = %d, want 1 (frame 8 dropped)", b.Len())
	}
}

func TestAddRejectsInvalidMaxHealth(t *testing.T) {
	b := New()
	err := b.Add(&fakeEnemy{v: penguin(0, 0)})
	if !errors.Is(err, ErrInvalidMaxHealth) {
		t.Fatalf("Add err = %v, want ErrInvalidMaxHealth", err)
	}
	if b.Len() != 0 {
		t.Fatalf("rejected enemy was batched")
	}
}

func TestAddAllJoinsErrors(t *testing.T) {
	b := New()
	err := b.AddAll([]Enemy{
		&fakeEnemy{v: penguin(0, 0)},
		&fakeEnemy{v: penguin(3, 3)},
		&fakeEnemy{v: penguin(1, -1)},
	})
	if !errors.Is(err, ErrInvalidMaxHealth) {
		t.Fatalf("AddAll err = %v", err)
	}
	if b.Len() != 1 {
		t.Fatalf("Len = %d, want 1", b.Len())
	}
}

func randomState(r *rand.Rand) VisualState {
	switch r.Intn(4) {
	case 0:
		return VisualState{Kind: KindPenguin, MaxHealth: 3}
	case 1:
		return boss(float64(r.Intn(51)), 50, r.Intn(2) == 0)
	case 2:
		return dyingPenguin(r.Intn(10) - 1)
	default:
		max := float64(1 + r.Intn(5))
		return penguin(float64(r.Intn(int(max)+1)), max)
	}
}

func bucketOf(b *Batcher, e Enemy) []Key {
	var keys []Key
	for _, k := range Keys() {
		for _, m := range b.Bucket(k) {
			if m == e {
				keys = append(keys, k)
			}
		}
	}
	return keys
}

func TestCompletenessAndExclusivity(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	b := New()
	enemies := make([]*fakeEnemy, 200)
	for i := range enemies {
		enemies[i] = &fakeEnemy{id: fmt.Sprint(i), v: randomState(r)}
		if err := b.Add(enemies[i]); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	for _, e := range enemies {
		keys := bucketOf(b, e)
		_, ok, _ := Classify(e.v)
		switch {
		case ok && len(keys) != 1:
			t.Fatalf("enemy %s (%+v) in %d buckets, want 1", e.id, e.v, len(keys))
		case !ok && len(keys) != 0:
			t.Fatalf("enemy %s (%+v) should not be batched, found in %v", e.id, e.v, keys)
		}
	}
}

func TestClassificationIndependentOfOrder(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	enemies := make([]Enemy, 100)
	for i := range enemies {
		enemies[i] = &fakeEnemy{id: fmt.Sprint(i), v: randomState(r)}
	}

	forward := New()
	if err := forward.AddAll(enemies); err != nil {
		t.Fatal(err)
	}
	shuffled := append([]Enemy(nil), enemies...)
	r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	other := New()
	if err := other.AddAll(shuffled); err != nil {
		t.Fatal(err)
	}

	for _, e := range enemies {
		a, c := bucketOf(forward, e), bucketOf(other, e)
		if fmt.Sprint(a) != fmt.Sprint(c) {
			t.Fatalf("enemy %v: %v vs %v", e, a, c)
		}
	}
}

func TestBucketKeepsInsertionOrder(t *testing.T) {
	b := New()
	var want []Enemy
	for i := 0; i < 5; i++ {
		e := &fakeEnemy{id: fmt.Sprint(i), v: penguin(3, 3)}
		want = append(want, e)
		_ = b.Add(e)
	}
	got := b.Group(IdleNormal)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestClearEmptiesEveryBucket(t *testing.T) {
	b := New()
	_ = b.Add(&fakeEnemy{v: boss(10, 50, false)})
	_ = b.Add(&fakeEnemy{v: penguin(1, 3)})
	for f := 0; f < DeathFrames; f++ {
		_ = b.Add(&fakeEnemy{v: dyingPenguin(f)})
	}
	b.Clear()
	if b.Len() != 0 {
		t.Fatalf("Len after Clear = %d", b.Len())
	}
	for _, k := range Keys() {
		if n := len(b.Bucket(k)); n != 0 {
			t.Errorf("bucket %v has %d members after Clear", k, n)
		}
	}
	if cap(b.DyingFrame(5)) == 0 {
		t.Errorf("Clear dropped bucket capacity")
	}
}

func TestStrictModeWarnsOnDroppedFrame(t *testing.T) {
	var lines []string
	b := New()
	b.Warnf = func(format string, args ...any) { lines = append(lines, fmt.Sprintf(format, args...)) }

	_ = b.Add(&fakeEnemy{v: dyingPenguin(9)})
	if len(lines) != 0 {
		t.Fatalf("non-strict batcher warned: %v", lines)
	}

	b.Strict = true
	_ = b.Add(&fakeEnemy{v: dyingPenguin(9)})
	if len(lines) != 1 || !strings.Contains(lines[0], "Warning:") {
		t.Fatalf("strict warnings = %v", lines)
	}
}

func TestKeysOrder(t *testing.T) {
	keys := Keys()
	if len(keys) != 5+DeathFrames {
		t.Fatalf("len(Keys) = %d", len(keys))
	}
	if keys[0] != (Key{Group: BossNormal}) || keys[len(keys)-1] != (Key{Group: Dying, Frame: DeathFrames - 1}) {
		t.Fatalf("unexpected key order %v", keys)
	}
}

func BenchmarkBatchFrame(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	enemies := make([]Enemy, 500)
	for i := range enemies {
		enemies[i] = &fakeEnemy{v: randomState(r)}
	}
	bt := New()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bt.Clear()
		_ = bt.AddAll(enemies)
	}
}
