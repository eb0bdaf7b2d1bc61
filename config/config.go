package config

import (
	"image/color"
	"time"

	"github.com/automoto/lodis-galaga/debuglog"
	"github.com/automoto/lodis-galaga/shared/gamemath"
	"github.com/yohamta/donburi/ecs"
)

// Default is the only render layer; renderers draw in registration order.
const Default ecs.LayerID = iota

// Config holds general game configuration
type Config struct {
	Width  int
	Height int
}

// GridConfig contains spatial grid configuration
type GridConfig struct {
	CellSize float64
}

// BatchConfig contains enemy batch renderer configuration
type BatchConfig struct {
	BossTint       color.RGBA
	BarHeight      float64
	BarOffset      float64
	BarBackground  color.RGBA
	BarFill        color.RGBA
	BarBorder      color.RGBA
	BarBorderWidth float32
}

// EnemyTypeConfig contains configuration for specific enemy types
type EnemyTypeConfig struct {
	Name            string
	Health          int
	Width           float64
	Height          float64
	Score           int
	FireChance      float64 // chance per tick to shoot at the player
	DeathFrameTicks int     // ticks each death animation frame is shown
	IsBoss          bool
	Speed           float64 // boss horizontal speed
}

// EnemyConfig contains enemy formation configuration
type EnemyConfig struct {
	Types map[string]EnemyTypeConfig

	Columns        int
	Rows           int
	SpacingX       float64
	SpacingY       float64
	FormationTop   float64
	SwayAmplitude  float64 // pixels
	SwaySpeed      float64 // radians per second
	DescentPerWave float64 // extra pixels the formation starts lower each wave
	DescentSpeed   float64 // pixels per second
	MaxFireChance  float64
}

// PlayerConfig contains all player-related configuration values
type PlayerConfig struct {
	Width         float64
	Height        float64
	Speed         float64 // pixels per second
	StartingLives int
	FireCooldown  float64 // seconds
	InvulnTime    float64 // seconds after being hit
	BottomMargin  float64
}

// ProjectileConfig contains projectile configuration
type ProjectileConfig struct {
	Width       float64
	Height      float64
	PlayerSpeed float64 // pixels per second, upwards
	EnemySpeed  float64 // pixels per second, downwards
	Damage      int
}

// CometConfig contains the falling comet hazard configuration
type CometConfig struct {
	Width       float64
	Height      float64
	MinSpeed    float64
	MaxSpeed    float64
	SpawnChance float64 // chance per tick once MinWave is reached
	MinWave     int
	Health      int
	Score       int
}

// PowerupConfig contains powerup drop configuration
type PowerupConfig struct {
	Size              float64
	Speed             float64
	DropChance        float64 // chance a destroyed enemy drops one
	RapidFireTime     float64 // seconds
	RapidFireCooldown float64
	Score             int
}

// WaveConfig contains wave progression configuration
type WaveConfig struct {
	BossEvery     int
	ClearDelay    float64 // seconds between a cleared wave and the next
	ExtraRowEvery int
	MaxRows       int
	FireRamp      float64 // added to enemy fire chance per wave
}

// ScoreConfig contains leaderboard configuration
type ScoreConfig struct {
	StorageKey    string
	PlayerKey     string
	MaxEntries    int
	TopCount      int
	NickMaxLen    int
	NickDisplay   int // longer nicks are truncated on the leaderboard
	MessageMaxLen int
}

// PerfConfig contains performance monitor and profiler configuration
type PerfConfig struct {
	Window          time.Duration
	HistorySize     int
	GoodFPS         int
	PlayableFPS     int
	ProfileDir      string
	ProfileBelowFPS int
	CaptureDuration time.Duration
	CaptureCooldown time.Duration
}

// GameOverConfig contains game over screen configuration values
type GameOverConfig struct {
	AnimDuration   float64 // seconds
	StartScale     float64
	EndScale       float64
	ShakeDuration  float64 // seconds
	ShakeIntensity float64 // pixels
	ShakeDecay     float64 // pixels per second
	ButtonRadius   float64
	RestartX       float64
	RestartY       float64
	MessageX       float64
	MessageY       float64
	TitleY         float64
	TitleSize      float64
	Touch          bool // touch input: no hover, clicks hit-test directly

	BackgroundColor color.RGBA
	TitleColor      color.RGBA
	NickColor       color.RGBA
	StatsColor      color.RGBA
	CongratsColor   color.RGBA
	EmptyRowColor   color.RGBA
	RankColors      [4]color.RGBA
	RestartColor    color.RGBA
	MessageColor    color.RGBA
}

// HUDConfig contains HUD configuration
type HUDConfig struct {
	Margin    float64
	FontSize  float64
	TextColor color.RGBA
	LifeColor color.RGBA
	PerfX     float64
	PerfY     float64
}

// PauseConfig contains pause overlay configuration values
type PauseConfig struct {
	OverlayColor color.RGBA
	TextColor    color.RGBA
	TitleY       float64
}

// DebugConfig contains debug/testing command-line options
type DebugConfig struct {
	SkipMenu    bool // Skip player entry and go directly to game
	Strict      bool // log silent render degradations as warnings
	ShowGrid    bool
	ShowPerf    bool
	AutoProfile bool
	AssetDir    string // optional directory of PNG overrides
}

// Global configuration instances
var C *Config
var PlayArea gamemath.Rect
var Grid GridConfig
var Batch BatchConfig
var Enemy EnemyConfig
var Player PlayerConfig
var Projectile ProjectileConfig
var Comet CometConfig
var Powerup PowerupConfig
var Wave WaveConfig
var Score ScoreConfig
var Perf PerfConfig
var GameOver GameOverConfig
var HUD HUDConfig
var Pause PauseConfig
var Debug DebugConfig
var DebugLog debuglog.Config

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Gray         = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	DarkGray     = color.RGBA{R: 80, G: 80, B: 80, A: 255}
	Yellow       = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Gold         = color.RGBA{R: 255, G: 215, B: 0, A: 255}
	Orange       = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	Red          = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	LightRed     = color.RGBA{R: 255, G: 100, B: 100, A: 255}
	Green        = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	LightBlue    = color.RGBA{R: 100, G: 150, B: 255, A: 255}
	Space        = color.RGBA{R: 5, G: 5, B: 20, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
)

func init() {
	C = &Config{
		Width:  800,
		Height: 600,
	}

	PlayArea = gamemath.Rect{X: 0, Y: 0, W: float64(C.Width), H: float64(C.Height)}

	Grid = GridConfig{
		CellSize: 100,
	}

	Batch = BatchConfig{
		BossTint:       color.RGBA{R: 255, G: 100, B: 100, A: 255},
		BarHeight:      6,
		BarOffset:      12,
		BarBackground:  color.RGBA{R: 50, G: 50, B: 50, A: 255},
		BarFill:        Red,
		BarBorder:      White,
		BarBorderWidth: 1,
	}

	penguinType := EnemyTypeConfig{
		Name:            "Penguin",
		Health:          3,
		Width:           40,
		Height:          40,
		Score:           100,
		FireChance:      0.0008,
		DeathFrameTicks: 4,
	}
	bossType := EnemyTypeConfig{
		Name:            "Boss",
		Health:          40,
		Width:           128,
		Height:          128,
		Score:           2500,
		FireChance:      0.03,
		DeathFrameTicks: 6,
		IsBoss:          true,
		Speed:           90,
	}
	Enemy = EnemyConfig{
		Types: map[string]EnemyTypeConfig{
			"penguin": penguinType,
			"boss":    bossType,
		},
		Columns:        10,
		Rows:           4,
		SpacingX:       60,
		SpacingY:       52,
		FormationTop:   70,
		SwayAmplitude:  60,
		SwaySpeed:      1.2,
		DescentPerWave: 8,
		DescentSpeed:   2,
		MaxFireChance:  0.01,
	}

	Player = PlayerConfig{
		Width:         48,
		Height:        48,
		Speed:         320,
		StartingLives: 3,
		FireCooldown:  0.25,
		InvulnTime:    1.5,
		BottomMargin:  20,
	}

	Projectile = ProjectileConfig{
		Width:       4,
		Height:      14,
		PlayerSpeed: 520,
		EnemySpeed:  260,
		Damage:      1,
	}

	Comet = CometConfig{
		Width:       32,
		Height:      64,
		MinSpeed:    140,
		MaxSpeed:    260,
		SpawnChance: 0.004,
		MinWave:     2,
		Health:      2,
		Score:       250,
	}

	Powerup = PowerupConfig{
		Size:              24,
		Speed:             120,
		DropChance:        0.06,
		RapidFireTime:     6,
		RapidFireCooldown: 0.1,
		Score:             50,
	}

	Wave = WaveConfig{
		BossEvery:     5,
		ClearDelay:    1.5,
		ExtraRowEvery: 2,
		MaxRows:       7,
		FireRamp:      0.0004,
	}

	Score = ScoreConfig{
		StorageKey:    "spaceInvScores",
		PlayerKey:     "playerData",
		MaxEntries:    100,
		TopCount:      4,
		NickMaxLen:    20,
		NickDisplay:   12,
		MessageMaxLen: 200,
	}

	Perf = PerfConfig{
		Window:          time.Second,
		HistorySize:     60,
		GoodFPS:         55,
		PlayableFPS:     30,
		ProfileDir:      "profiles",
		ProfileBelowFPS: 30,
		CaptureDuration: 5 * time.Second,
		CaptureCooldown: time.Minute,
	}

	GameOver = GameOverConfig{
		AnimDuration:   0.45,
		StartScale:     5.0,
		EndScale:       1.2,
		ShakeDuration:  0.3,
		ShakeIntensity: 15,
		ShakeDecay:     50,
		ButtonRadius:   62.5,
		RestartX:       80,
		RestartY:       80,
		MessageX:       80,
		MessageY:       300,
		TitleY:         120,
		TitleSize:      90,

		BackgroundColor: color.RGBA{R: 30, G: 30, B: 35, A: 180},
		TitleColor:      color.RGBA{R: 190, G: 0, B: 0, A: 255},
		NickColor:       color.RGBA{R: 255, G: 215, B: 100, A: 255},
		StatsColor:      Gray,
		CongratsColor:   Gold,
		EmptyRowColor:   DarkGray,
		RankColors: [4]color.RGBA{
			Gold,
			{R: 192, G: 192, B: 192, A: 255},
			{R: 205, G: 127, B: 50, A: 255},
			{R: 150, G: 150, B: 150, A: 255},
		},
		RestartColor: LightRed,
		MessageColor: LightBlue,
	}

	HUD = HUDConfig{
		Margin:    12,
		FontSize:  20,
		TextColor: White,
		LifeColor: LightRed,
		PerfX:     float64(C.Width) - 150,
		PerfY:     10,
	}

	Pause = PauseConfig{
		OverlayColor: BlackOverlay,
		TextColor:    White,
		TitleY:       260,
	}

	Debug = DebugConfig{}

	DebugLog = debuglog.DefaultConfig("localhost")
}
