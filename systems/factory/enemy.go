package factory

import (
	"math"

	"github.com/automoto/lodis-galaga/archetypes"
	"github.com/automoto/lodis-galaga/components"
	cfg "github.com/automoto/lodis-galaga/config"
	"github.com/automoto/lodis-galaga/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const (
	EnemyPenguin = "penguin"
	EnemyBoss    = "boss"
)

// CreateEnemy spawns an enemy of the given type at a formation slot. The
// slot is an offset from the formation origin.
func CreateEnemy(ecs *ecs.ECS, enemyType string, originX, originY, slotX, slotY, fireChance float64) *donburi.Entry {
	typeCfg, ok := cfg.Enemy.Types[enemyType]
	if !ok {
		typeCfg = cfg.Enemy.Types[EnemyPenguin]
	}

	enemy := archetypes.Enemy.Spawn(ecs)

	body := components.NewBody(originX+slotX, originY+slotY, typeCfg.Width, typeCfg.Height, tags.ResolvEnemy)
	body.Entry = enemy
	body.Data = enemy
	components.Object.SetValue(enemy, components.ObjectData{Body: body})

	components.Enemy.SetValue(enemy, components.EnemyData{
		TypeName:   enemyType,
		TypeConfig: &typeCfg,
		SlotX:      slotX,
		SlotY:      slotY,
		Direction:  1,
		FireChance: fireChance,
	})
	components.Health.SetValue(enemy, components.HealthData{
		Current: typeCfg.Health,
		Max:     typeCfg.Health,
	})

	return enemy
}

// IsBossWave reports whether wave n is a boss wave.
func IsBossWave(n int) bool {
	return cfg.Wave.BossEvery > 0 && n > 0 && n%cfg.Wave.BossEvery == 0
}

// FormationRows is the number of penguin rows in wave n.
func FormationRows(n int) int {
	rows := cfg.Enemy.Rows
	if cfg.Wave.ExtraRowEvery > 0 && n > 1 {
		rows += (n - 1) / cfg.Wave.ExtraRowEvery
	}
	if cfg.Wave.MaxRows > 0 && rows > cfg.Wave.MaxRows {
		rows = cfg.Wave.MaxRows
	}
	return rows
}

// FireChance is the per-tick shooting chance of an enemy type in wave n.
func FireChance(typeCfg cfg.EnemyTypeConfig, n int) float64 {
	if typeCfg.IsBoss {
		return typeCfg.FireChance
	}
	chance := typeCfg.FireChance + cfg.Wave.FireRamp*float64(max(n-1, 0))
	return math.Min(chance, cfg.Enemy.MaxFireChance)
}

// FormationStart returns the origin of wave n's formation: horizontally
// centred, a little lower every wave.
func FormationStart(n, cols int) (float64, float64) {
	width := float64(cols-1)*cfg.Enemy.SpacingX + cfg.Enemy.Types[EnemyPenguin].Width
	x := cfg.PlayArea.X + (cfg.PlayArea.W-width)/2
	y := cfg.PlayArea.Y + cfg.Enemy.FormationTop + cfg.Enemy.DescentPerWave*float64(max(n-1, 0))
	return x, y
}

// SpawnWave creates wave n's enemies and resets the wave state. A boss
// wave puts the boss above a single row of penguins.
func SpawnWave(ecs *ecs.ECS, wave *components.WaveData, n int) int {
	cols := cfg.Enemy.Columns
	rows := FormationRows(n)
	originX, originY := FormationStart(n, cols)

	*wave = components.WaveData{
		Number:  n,
		OriginX: originX,
		OriginY: originY,
		StartY:  originY,
		Spawned: true,
	}

	penguin := cfg.Enemy.Types[EnemyPenguin]
	penguinChance := FireChance(penguin, n)
	count := 0

	rowOffset := 0.0
	if IsBossWave(n) {
		boss := cfg.Enemy.Types[EnemyBoss]
		bossX := (cfg.PlayArea.W-boss.Width)/2 - originX + cfg.PlayArea.X
		CreateEnemy(ecs, EnemyBoss, originX, originY, bossX, 0, FireChance(boss, n))
		count++
		rowOffset = boss.Height + cfg.Enemy.SpacingY/2
		rows = 1
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			slotX := float64(col) * cfg.Enemy.SpacingX
			slotY := rowOffset + float64(row)*cfg.Enemy.SpacingY
			CreateEnemy(ecs, EnemyPenguin, originX, originY, slotX, slotY, penguinChance)
			count++
		}
	}
	return count
}
