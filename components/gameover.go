package components

import (
	"github.com/automoto/lodis-galaga/ui"
	"github.com/yohamta/donburi"
)

// GameOverData is the game over screen state (singleton component).
type GameOverData struct {
	Screen      *ui.GameOver
	Message     *ui.MessageUI
	MessageOpen bool
	Summary     ui.Summary
}

var GameOver = donburi.NewComponentType[GameOverData]()
