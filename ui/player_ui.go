package ui

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
)

// PlayerUI is the entry form shown before a run: nick, optional email and
// the play / quit buttons.
type PlayerUI struct {
	UI *ebitenui.UI

	OnStart func(nick, email string)
	OnQuit  func()

	nickInput   *widget.TextInput
	emailInput  *widget.TextInput
	statusLabel *widget.Label

	faces *faces
}

func NewPlayerUI(onStart func(nick, email string), onQuit func()) *PlayerUI {
	ui := &PlayerUI{
		OnStart: onStart,
		OnQuit:  onQuit,
		faces:   loadFaces(),
	}
	ui.buildUI()
	return ui
}

func (ui *PlayerUI) buildUI() {
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.RGBA{5, 5, 20, 255})),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	content := newCenteredColumn(nil)
	content.AddChild(newLabel("LODIS GALAGA", &ui.faces.title, color.RGBA{255, 215, 0, 255}))
	content.AddChild(newLabel("Enter your nick to save your score", &ui.faces.small, labelColor))

	panel := newCenteredColumn(panelColor)

	nickRow := newRow(8)
	nickRow.AddChild(newLabel("Nick: ", &ui.faces.normal, labelColor))
	ui.nickInput = newTextInput(ui.faces, 220, "pilot")
	nickRow.AddChild(ui.nickInput)
	panel.AddChild(nickRow)

	emailRow := newRow(8)
	emailRow.AddChild(newLabel("Email:", &ui.faces.normal, labelColor))
	ui.emailInput = newTextInput(ui.faces, 220, "optional")
	emailRow.AddChild(ui.emailInput)
	panel.AddChild(emailRow)

	content.AddChild(panel)

	ui.statusLabel = newLabel("", &ui.faces.small, statusColor)
	content.AddChild(ui.statusLabel)

	buttons := newRow(10)
	buttons.AddChild(newButton(ui.faces, "Play", true, ui.Submit))
	buttons.AddChild(newButton(ui.faces, "Quit", false, func() {
		if ui.OnQuit != nil {
			ui.OnQuit()
		}
	}))
	content.AddChild(buttons)

	rootContainer.AddChild(content)

	ui.UI = &ebitenui.UI{Container: rootContainer}
}

// SetPlayer prefills the form.
func (ui *PlayerUI) SetPlayer(nick, email string) {
	ui.nickInput.SetText(nick)
	ui.emailInput.SetText(email)
}

// Submit behaves like pressing Play.
func (ui *PlayerUI) Submit() {
	if ui.OnStart != nil {
		ui.OnStart(ui.nickInput.GetText(), ui.emailInput.GetText())
	}
}

func (ui *PlayerUI) SetStatus(msg string) {
	if ui.statusLabel != nil {
		ui.statusLabel.Label = msg
	}
}

func (ui *PlayerUI) Update() {
	ui.UI.Update()
}
