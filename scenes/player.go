package scenes

import (
	"errors"
	"log"
	"os"
	"sync"

	cfg "github.com/automoto/lodis-galaga/config"
	"github.com/automoto/lodis-galaga/scores"
	"github.com/automoto/lodis-galaga/systems"
	"github.com/automoto/lodis-galaga/ui"
	"github.com/hajimehoshi/ebiten/v2"
)

// PlayerScene is the entry form asking who is playing
type PlayerScene struct {
	sceneChanger SceneChanger
	form         *ui.PlayerUI
	once         sync.Once
}

// NewPlayerScene creates the entry form scene
func NewPlayerScene(sc SceneChanger) *PlayerScene {
	return &PlayerScene{sceneChanger: sc}
}

func (ps *PlayerScene) Update() {
	ps.once.Do(ps.configure)
	ps.form.Update()
}

func (ps *PlayerScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(cfg.Space)

	if ps.form == nil {
		return
	}
	ps.form.UI.Draw(screen)
}

func (ps *PlayerScene) configure() {
	ps.form = ui.NewPlayerUI(ps.start, func() { os.Exit(0) })
	if p, ok := systems.LoadPlayer(); ok {
		ps.form.SetPlayer(p.Nick, p.Email)
	}
}

// start validates the form and begins a run.
func (ps *PlayerScene) start(nick, email string) {
	p, err := scores.NewPlayer(nick, email, cfg.Score.NickMaxLen)
	if err != nil {
		ps.form.SetStatus(formError(err))
		return
	}
	if err := systems.SavePlayer(p); err != nil {
		log.Printf("Warning: Could not remember player: %v", err)
	}
	ps.sceneChanger.ChangeScene(NewShooterScene(ps.sceneChanger, p))
}

// formError turns a validation error into the status line text.
func formError(err error) string {
	switch {
	case errors.Is(err, scores.ErrEmptyNick):
		return "Please enter a nick"
	case errors.Is(err, scores.ErrNickTooLong):
		return "That nick is too long"
	case errors.Is(err, scores.ErrInvalidEmail):
		return "That email doesn't look right"
	default:
		return err.Error()
	}
}

// DefaultPlayer is who plays when the entry form is skipped.
func DefaultPlayer() scores.Player {
	if p, ok := systems.LoadPlayer(); ok {
		return p
	}
	return scores.Player{Nick: "pilot"}
}
