package ui

import (
	"bytes"
	"image/color"
	"log"
	"sync"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

type faces struct {
	title  text.Face
	normal text.Face
	small  text.Face
}

var (
	facesOnce sync.Once
	uiFaces   faces
)

func loadFaces() *faces {
	facesOnce.Do(func() {
		fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			log.Fatalf("failed to load UI font: %v", err)
		}
		uiFaces = faces{
			title:  &text.GoTextFace{Source: fontSource, Size: 32},
			normal: &text.GoTextFace{Source: fontSource, Size: 16},
			small:  &text.GoTextFace{Source: fontSource, Size: 12},
		}
	})
	return &uiFaces
}

var (
	panelColor      = color.RGBA{30, 30, 45, 230}
	inputIdleColor  = color.RGBA{50, 50, 70, 255}
	inputOffColor   = color.RGBA{40, 40, 50, 255}
	labelColor      = color.RGBA{200, 200, 200, 255}
	statusColor     = color.RGBA{255, 200, 100, 255}
	primaryColor    = color.RGBA{40, 100, 40, 255}
	primaryHover    = color.RGBA{60, 140, 60, 255}
	primaryPressed  = color.RGBA{30, 80, 30, 255}
	secondaryColor  = color.RGBA{60, 60, 80, 255}
	secondaryHover  = color.RGBA{80, 80, 100, 255}
	secondaryPress  = color.RGBA{40, 40, 60, 255}
	disabledColor   = color.RGBA{40, 50, 40, 255}
	disabledTextCol = color.RGBA{100, 100, 100, 255}
)

func newRow(spacing int) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(spacing),
		)),
	)
}

func newCenteredColumn(bg color.Color) *widget.Container {
	opts := []widget.ContainerOpt{
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(16)),
			widget.RowLayoutOpts.Spacing(10),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	}
	if bg != nil {
		opts = append(opts, widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(bg)))
	}
	return widget.NewContainer(opts...)
}

func newLabel(s string, face *text.Face, c color.Color) *widget.Label {
	return widget.NewLabel(
		widget.LabelOpts.Text(s, face, &widget.LabelColor{Idle: c}),
	)
}

func newTextInput(f *faces, width int, placeholder string) *widget.TextInput {
	return widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(width, 26)),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     image.NewNineSliceColor(inputIdleColor),
			Disabled: image.NewNineSliceColor(inputOffColor),
		}),
		widget.TextInputOpts.Face(&f.normal),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:          color.RGBA{255, 255, 255, 255},
			Disabled:      color.RGBA{128, 128, 128, 255},
			Caret:         color.RGBA{255, 255, 255, 255},
			DisabledCaret: color.RGBA{128, 128, 128, 255},
		}),
		widget.TextInputOpts.Placeholder(placeholder),
		widget.TextInputOpts.Padding(widget.NewInsetsSimple(4)),
	)
}

func newButton(f *faces, label string, primary bool, onClick func()) *widget.Button {
	idle, hover, pressed := secondaryColor, secondaryHover, secondaryPress
	if primary {
		idle, hover, pressed = primaryColor, primaryHover, primaryPressed
	}
	return widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(120, 30)),
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:     image.NewNineSliceColor(idle),
			Hover:    image.NewNineSliceColor(hover),
			Pressed:  image.NewNineSliceColor(pressed),
			Disabled: image.NewNineSliceColor(disabledColor),
		}),
		widget.ButtonOpts.Text(label, &f.normal, &widget.ButtonTextColor{
			Idle:     color.RGBA{255, 255, 255, 255},
			Hover:    color.RGBA{200, 255, 200, 255},
			Pressed:  color.RGBA{150, 200, 150, 255},
			Disabled: disabledTextCol,
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if onClick != nil {
				onClick()
			}
		}),
	)
}
