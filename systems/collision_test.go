package systems

import (
	"math/rand"
	"testing"

	"github.com/automoto/lodis-galaga/components"
	cfg "github.com/automoto/lodis-galaga/config"
	"github.com/automoto/lodis-galaga/systems/factory"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func newTestECS(t *testing.T) *ecs.ECS {
	t.Helper()
	rng = rand.New(rand.NewSource(1))
	e := ecs.NewECS(donburi.NewWorld())
	if _, err := factory.CreateSpace(e); err != nil {
		t.Fatalf("CreateSpace: %v", err)
	}
	return e
}

func step(e *ecs.ECS) {
	UpdateSpatialGrid(e)
	UpdateCollisions(e)
}

func TestPlayerShotDamagesEnemy(t *testing.T) {
	e := newTestECS(t)
	enemy := factory.CreateEnemy(e, factory.EnemyPenguin, 200, 100, 0, 0, 0)
	body := components.Object.Get(enemy).Body
	cx, _ := body.Center()
	shot := factory.CreateProjectile(e, cx, body.Y+body.H/2, true)

	step(e)

	if shot.Valid() {
		t.Fatal("shot should be consumed by the hit")
	}
	health := components.Health.Get(enemy)
	if want := health.Max - cfg.Projectile.Damage; health.Current != want {
		t.Fatalf("health = %d, want %d", health.Current, want)
	}
	if enemy.HasComponent(components.Death) {
		t.Fatal("enemy should survive one shot")
	}
}

func TestShotKillsEnemyAndScores(t *testing.T) {
	e := newTestECS(t)
	enemy := factory.CreateEnemy(e, factory.EnemyPenguin, 200, 100, 0, 0, 0)
	components.Health.Get(enemy).Current = 1
	body := components.Object.Get(enemy).Body
	cx, _ := body.Center()
	factory.CreateProjectile(e, cx, body.Y+body.H/2, true)

	step(e)

	if !enemy.HasComponent(components.Death) {
		t.Fatal("enemy should be dying")
	}
	session := GetOrCreateSession(e)
	if session.Kills != 1 || session.Score != cfg.Enemy.Types[factory.EnemyPenguin].Score {
		t.Fatalf("session = %+v", *session)
	}

	// A second shot passes through the dying enemy
	shot := factory.CreateProjectile(e, cx, body.Y+body.H/2, true)
	step(e)
	if !shot.Valid() {
		t.Fatal("dying enemies should not absorb shots")
	}
}

func TestMissedShotSurvives(t *testing.T) {
	e := newTestECS(t)
	factory.CreateEnemy(e, factory.EnemyPenguin, 200, 100, 0, 0, 0)
	shot := factory.CreateProjectile(e, 600, 400, true)

	step(e)

	if !shot.Valid() {
		t.Fatal("a shot that hits nothing stays alive")
	}
}

func TestEnemyShotHitsPlayerOnce(t *testing.T) {
	e := newTestECS(t)
	player := factory.CreatePlayer(e)
	body := components.Object.Get(player).Body
	cx, cy := body.Center()
	lives := components.Lives.Get(player)
	start := lives.Lives

	first := factory.CreateProjectile(e, cx, cy, false)
	step(e)
	if first.Valid() {
		t.Fatal("the shot that hit should be removed")
	}
	if lives.Lives != start-1 {
		t.Fatalf("lives = %d, want %d", lives.Lives, start-1)
	}
	if components.Flash.Get(player).Duration <= 0 {
		t.Fatal("player should be invulnerable after a hit")
	}

	second := factory.CreateProjectile(e, cx, cy, false)
	step(e)
	if lives.Lives != start-1 {
		t.Fatal("invulnerable player should not lose a life")
	}
	if !second.Valid() {
		t.Fatal("shots pass through an invulnerable player")
	}
}

func TestLastLifeEndsRun(t *testing.T) {
	e := newTestECS(t)
	player := factory.CreatePlayer(e)
	components.Lives.Get(player).Lives = 1
	body := components.Object.Get(player).Body
	cx, cy := body.Center()
	factory.CreateProjectile(e, cx, cy, false)

	step(e)

	if !IsGameOver(e) {
		t.Fatal("run should be over")
	}
	if components.Lives.Get(player).Lives != 0 {
		t.Fatal("lives should not go negative")
	}
}

func TestPowerupPickup(t *testing.T) {
	e := newTestECS(t)
	player := factory.CreatePlayer(e)
	body := components.Object.Get(player).Body
	cx, cy := body.Center()
	lives := components.Lives.Get(player)
	lives.Lives = 1

	life := factory.CreatePowerup(e, cx, cy, components.PowerupExtraLife)
	rapid := factory.CreatePowerup(e, cx, cy, components.PowerupRapidFire)
	step(e)

	if life.Valid() || rapid.Valid() {
		t.Fatal("collected powerups should be removed")
	}
	if lives.Lives != 2 {
		t.Fatalf("lives = %d, want 2", lives.Lives)
	}
	if components.Player.Get(player).RapidFire != cfg.Powerup.RapidFireTime {
		t.Fatal("rapid fire should be active")
	}
	if got := GetOrCreateSession(e).Score; got != 2*cfg.Powerup.Score {
		t.Fatalf("score = %d", got)
	}
}

func TestExtraLifeCapped(t *testing.T) {
	e := newTestECS(t)
	player := factory.CreatePlayer(e)
	lives := components.Lives.Get(player)
	lives.Lives = lives.MaxLives

	applyPowerup(e, player, components.PowerupExtraLife)

	if lives.Lives != lives.MaxLives {
		t.Fatalf("lives = %d, want cap %d", lives.Lives, lives.MaxLives)
	}
}

func TestHeatAlpha(t *testing.T) {
	tests := []struct {
		count int
		want  uint8
	}{
		{0, 0},
		{1, 30},
		{4, 120},
		{5, 150},
		{20, 150},
	}
	for _, tt := range tests {
		if got := heatAlpha(tt.count); got != tt.want {
			t.Errorf("heatAlpha(%d) = %d, want %d", tt.count, got, tt.want)
		}
	}
}
