package ui

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
)

// MessageUI is the leave-a-message prompt opened from the game over
// screen. It is drawn over the screen with a dimmed backdrop.
type MessageUI struct {
	UI *ebitenui.UI

	OnSend   func(msg string)
	OnCancel func()

	input       *widget.TextInput
	statusLabel *widget.Label
	faces       *faces
}

func NewMessageUI(maxLen int, onSend func(msg string), onCancel func()) *MessageUI {
	ui := &MessageUI{
		OnSend:   onSend,
		OnCancel: onCancel,
		faces:    loadFaces(),
	}
	ui.buildUI(maxLen)
	return ui
}

func (ui *MessageUI) buildUI(maxLen int) {
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.RGBA{0, 0, 0, 160})),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	panel := newCenteredColumn(panelColor)
	panel.AddChild(newLabel(fmt.Sprintf("Leave a message (max %d characters)", maxLen), &ui.faces.normal, labelColor))

	ui.input = newTextInput(ui.faces, 420, "")
	panel.AddChild(ui.input)

	ui.statusLabel = newLabel("", &ui.faces.small, statusColor)
	panel.AddChild(ui.statusLabel)

	buttons := newRow(10)
	buttons.AddChild(newButton(ui.faces, "Send", true, ui.Submit))
	buttons.AddChild(newButton(ui.faces, "Cancel", false, func() {
		if ui.OnCancel != nil {
			ui.OnCancel()
		}
	}))
	panel.AddChild(buttons)

	rootContainer.AddChild(panel)

	ui.UI = &ebitenui.UI{Container: rootContainer}
}

// Submit behaves like pressing Send.
func (ui *MessageUI) Submit() {
	if ui.OnSend != nil {
		ui.OnSend(ui.input.GetText())
	}
}

// Clear empties the input for the next message.
func (ui *MessageUI) Clear() {
	ui.input.SetText("")
	ui.SetStatus("")
}

func (ui *MessageUI) SetStatus(msg string) {
	if ui.statusLabel != nil {
		ui.statusLabel.Label = msg
	}
}

func (ui *MessageUI) Update() {
	ui.UI.Update()
}
