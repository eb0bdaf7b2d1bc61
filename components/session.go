package components

import "github.com/yohamta/donburi"

// SessionData is the state of the current run (singleton component).
type SessionData struct {
	Score int
	Wave  int
	Kills int
	Time  float64 // seconds played, pauses excluded
	Over  bool
}

var Session = donburi.NewComponentType[SessionData]()

// WaveData drives the enemy formation (singleton component).
type WaveData struct {
	Number     int
	Elapsed    float64 // seconds since the wave spawned
	OriginX    float64 // formation origin, moved by sway and descent
	OriginY    float64
	StartY     float64
	ClearTimer float64 // seconds until the next wave once cleared
	Spawned    bool
}

var Wave = donburi.NewComponentType[WaveData]()
