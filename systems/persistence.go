package systems

import (
	"encoding/json"
	"log"

	cfg "github.com/automoto/lodis-galaga/config"
	"github.com/automoto/lodis-galaga/scores"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata"
)

// SavedSettings represents the settings data stored on disk
type SavedSettings struct {
	SFXVolume  float64 `json:"sfxVolume"`
	Muted      bool    `json:"muted"`
	Fullscreen bool    `json:"fullscreen"`
}

var gdataManager *gdata.Manager
var gdataInitialized bool
var scoreManager *scores.Manager
var currentSettings = SavedSettings{SFXVolume: cfg.Audio.DefaultSFXVol}

// InitPersistence initializes the gdata manager for scores, the player and
// settings storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "lodis-galaga",
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true
	scoreManager = nil
	return nil
}

// Store returns the persistent key/value store, nil when unavailable.
func Store() scores.Store {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}
	return gdataManager
}

// ScoreManager returns the leaderboard backed by the persistent store.
// Without a store the leaderboard is empty and saves are dropped.
func ScoreManager() *scores.Manager {
	if scoreManager == nil {
		scoreManager = scores.NewManager(Store(), scores.Config{
			Key:        cfg.Score.StorageKey,
			MaxEntries: cfg.Score.MaxEntries,
		})
	}
	return scoreManager
}

// LoadPlayer returns the last player who started a run.
func LoadPlayer() (scores.Player, bool) {
	return scores.LoadPlayer(Store(), cfg.Score.PlayerKey)
}

// SavePlayer remembers the player for the next session.
func SavePlayer(p scores.Player) error {
	return scores.SavePlayer(Store(), cfg.Score.PlayerKey, p)
}

// LoadSettings loads settings from disk
func LoadSettings() (*SavedSettings, error) {
	if !gdataInitialized || gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem("settings")
	if err != nil {
		log.Printf("Warning: Could not load settings: %v", err)
		return nil, nil
	}
	if data == nil {
		// No saved settings yet, use defaults
		return nil, nil
	}

	var settings SavedSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		log.Printf("Warning: Could not parse saved settings: %v", err)
		return nil, err
	}

	return &settings, nil
}

// SaveSettings saves settings to disk
func SaveSettings(s *SavedSettings) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("Warning: Could not serialize settings: %v", err)
		return err
	}

	if err := gdataManager.SaveItem("settings", data); err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
		return err
	}
	return nil
}

// ApplySavedSettingsGlobal applies settings during startup, before any
// scene exists.
func ApplySavedSettingsGlobal(saved *SavedSettings) {
	if saved == nil {
		return
	}
	currentSettings = *saved
	applySettings()
}

func applySettings() {
	vol := currentSettings.SFXVolume
	if currentSettings.Muted {
		vol = 0
	}
	SetSFXVolume(vol)
	ebiten.SetFullscreen(currentSettings.Fullscreen)
}

// toggleMute flips the mute setting and saves it.
func toggleMute() {
	currentSettings.Muted = !currentSettings.Muted
	applySettings()
	_ = SaveSettings(&currentSettings)
}

// toggleFullscreen flips fullscreen and saves it.
func toggleFullscreen() {
	currentSettings.Fullscreen = !currentSettings.Fullscreen
	applySettings()
	_ = SaveSettings(&currentSettings)
}
