package config

// SoundID represents a logical sound effect
type SoundID int

const (
	SoundNone SoundID = iota
	SoundShoot
	SoundEnemyShoot
	SoundHit
	SoundExplosion
	SoundBossExplosion
	SoundPlayerHit
	SoundWave
	SoundGameOver
	SoundMenuSelect
)

// ToneConfig describes the synthesized fallback for a sound effect.
type ToneConfig struct {
	StartHz  float64
	EndHz    float64 // frequency slides linearly from StartHz to EndHz
	Duration float64 // seconds
	Noise    float64 // 0..1 mix of white noise
}

// AudioConfig contains audio-related configuration values
type AudioConfig struct {
	SampleRate    int
	DefaultSFXVol float64
}

// SoundConfig maps sound IDs to optional override files and tones
type SoundConfig struct {
	SFXPaths          map[SoundID]string
	Tones             map[SoundID]ToneConfig
	VolumeMultipliers map[SoundID]float64
}

var Audio AudioConfig
var Sound SoundConfig

func init() {
	Audio = AudioConfig{
		SampleRate:    44100,
		DefaultSFXVol: 0.5,
	}

	Sound = SoundConfig{
		SFXPaths: map[SoundID]string{
			SoundShoot:         "sfx/shoot.wav",
			SoundEnemyShoot:    "sfx/enemy_shoot.wav",
			SoundHit:           "sfx/hit.wav",
			SoundExplosion:     "sfx/explosion.wav",
			SoundBossExplosion: "sfx/boss_explosion.ogg",
			SoundPlayerHit:     "sfx/player_hit.wav",
			SoundWave:          "sfx/wave.wav",
			SoundGameOver:      "sfx/game_over.ogg",
			SoundMenuSelect:    "sfx/menu_select.wav",
		},
		Tones: map[SoundID]ToneConfig{
			SoundShoot:         {StartHz: 880, EndHz: 440, Duration: 0.08},
			SoundEnemyShoot:    {StartHz: 300, EndHz: 200, Duration: 0.1},
			SoundHit:           {StartHz: 600, EndHz: 500, Duration: 0.05, Noise: 0.3},
			SoundExplosion:     {StartHz: 200, EndHz: 40, Duration: 0.25, Noise: 0.8},
			SoundBossExplosion: {StartHz: 120, EndHz: 20, Duration: 0.8, Noise: 0.9},
			SoundPlayerHit:     {StartHz: 400, EndHz: 80, Duration: 0.3, Noise: 0.5},
			SoundWave:          {StartHz: 440, EndHz: 880, Duration: 0.3},
			SoundGameOver:      {StartHz: 330, EndHz: 110, Duration: 1.0},
			SoundMenuSelect:    {StartHz: 660, EndHz: 990, Duration: 0.06},
		},
		VolumeMultipliers: map[SoundID]float64{
			SoundShoot:         0.4,
			SoundBossExplosion: 1.5,
		},
	}
}
