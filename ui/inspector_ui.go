package ui

import (
	"bytes"
	"fmt"
	"image/color"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/automoto/ember/input"
)

// InspectorUI is the live input inspector: one block per action context
// with enable/propagate toggles and the current value of every action.
type InspectorUI struct {
	UI      *ebitenui.UI
	Manager *input.Manager

	// Callbacks
	OnResetBindings func()

	// Widget references for updates
	enableButtons    map[string]*widget.Button
	propagateButtons map[string]*widget.Button
	actionLabels     map[string]*widget.Label // keyed by "context.action"

	titleFace  text.Face
	normalFace text.Face
	smallFace  text.Face
}

// NewInspectorUI builds the inspector over the manager's current contexts.
// Rebuild it after a configuration reload; the widget set is static.
func NewInspectorUI(m *input.Manager, onResetBindings func()) *InspectorUI {
	iui := &InspectorUI{
		Manager:          m,
		OnResetBindings:  onResetBindings,
		enableButtons:    map[string]*widget.Button{},
		propagateButtons: map[string]*widget.Button{},
		actionLabels:     map[string]*widget.Label{},
	}

	iui.loadFonts()
	iui.buildUI()

	return iui
}

func (iui *InspectorUI) loadFonts() {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic(err)
	}

	iui.titleFace = &text.GoTextFace{
		Source: fontSource,
		Size:   16,
	}
	iui.normalFace = &text.GoTextFace{
		Source: fontSource,
		Size:   12,
	}
	iui.smallFace = &text.GoTextFace{
		Source: fontSource,
		Size:   10,
	}
}

func (iui *InspectorUI) buildUI() {
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.RGBA{20, 20, 30, 220})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(8)),
			widget.RowLayoutOpts.Spacing(4),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)

	panel.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("INPUT INSPECTOR", &iui.titleFace, &widget.LabelColor{
			Idle: color.RGBA{255, 255, 255, 255},
		}),
	))

	for _, name := range iui.Manager.ContextNames() {
		ctx, ok := iui.Manager.ActionContext(name)
		if !ok {
			continue
		}
		panel.AddChild(iui.buildContextBlock(ctx))
	}

	resetButton := widget.NewButton(
		widget.ButtonOpts.Image(iui.buttonImage()),
		widget.ButtonOpts.Text("Reset Bindings", &iui.normalFace, &widget.ButtonTextColor{
			Idle: color.RGBA{255, 200, 200, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if iui.OnResetBindings != nil {
				iui.OnResetBindings()
			}
		}),
	)
	panel.AddChild(resetButton)

	rootContainer.AddChild(panel)
	iui.UI = &ebitenui.UI{Container: rootContainer}
}

func (iui *InspectorUI) buildContextBlock(ctx *input.Context) *widget.Container {
	name := ctx.Name()

	block := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(2),
		)),
	)

	header := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(6),
		)),
	)
	header.AddChild(widget.NewLabel(
		widget.LabelOpts.Text(name, &iui.normalFace, &widget.LabelColor{
			Idle: color.RGBA{255, 255, 0, 255},
		}),
	))

	enableButton := widget.NewButton(
		widget.ButtonOpts.Image(iui.buttonImage()),
		widget.ButtonOpts.Text("enabled", &iui.smallFace, &widget.ButtonTextColor{
			Idle: color.RGBA{220, 220, 220, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			enabled := !ctx.Enabled()
			ctx.SetEnabled(enabled)
			// A disabled context must not keep reporting stale values.
			if !enabled {
				ctx.ResetAllActionData(time.Now().UnixMilli())
			}
		}),
	)
	iui.enableButtons[name] = enableButton
	header.AddChild(enableButton)

	propagateButton := widget.NewButton(
		widget.ButtonOpts.Image(iui.buttonImage()),
		widget.ButtonOpts.Text("propagates", &iui.smallFace, &widget.ButtonTextColor{
			Idle: color.RGBA{220, 220, 220, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			ctx.SetPropagateAllowed(!ctx.PropagateAllowed())
		}),
	)
	iui.propagateButtons[name] = propagateButton
	header.AddChild(propagateButton)

	block.AddChild(header)

	for _, action := range ctx.ActionNames() {
		label := widget.NewLabel(
			widget.LabelOpts.Text("  "+action, &iui.smallFace, &widget.LabelColor{
				Idle: color.RGBA{180, 180, 180, 255},
			}),
		)
		iui.actionLabels[name+"."+action] = label
		block.AddChild(label)
	}

	return block
}

func (iui *InspectorUI) buttonImage() *widget.ButtonImage {
	idle := image.NewNineSliceColor(color.RGBA{60, 60, 80, 255})
	hover := image.NewNineSliceColor(color.RGBA{80, 80, 100, 255})
	pressed := image.NewNineSliceColor(color.RGBA{40, 40, 60, 255})
	disabled := image.NewNineSliceColor(color.RGBA{40, 40, 40, 255})

	return &widget.ButtonImage{
		Idle:     idle,
		Hover:    hover,
		Pressed:  pressed,
		Disabled: disabled,
	}
}

// UpdateUI refreshes toggle captions and action value labels from the
// manager's live state.
func (iui *InspectorUI) UpdateUI() {
	for _, name := range iui.Manager.ContextNames() {
		ctx, ok := iui.Manager.ActionContext(name)
		if !ok {
			continue
		}

		if b := iui.enableButtons[name]; b != nil {
			if textWidget := b.Text(); textWidget != nil {
				if ctx.Enabled() {
					textWidget.Label = "enabled"
				} else {
					textWidget.Label = "disabled"
				}
			}
		}
		if b := iui.propagateButtons[name]; b != nil {
			if textWidget := b.Text(); textWidget != nil {
				if ctx.PropagateAllowed() {
					textWidget.Label = "propagates"
				} else {
					textWidget.Label = "consumes"
				}
			}
		}

		for _, action := range ctx.ActionNames() {
			label := iui.actionLabels[name+"."+action]
			if label == nil {
				continue
			}
			data, ok := ctx.ActionValue(action)
			if !ok {
				continue
			}
			mark := " "
			if data.Activated {
				mark = "*"
			}
			label.Label = fmt.Sprintf("  %s%s [%.2f %.2f %.2f]", mark, action, data.Axes[0], data.Axes[1], data.Axes[2])
		}
	}
}

func (iui *InspectorUI) Update() {
	iui.UI.Update()
	iui.UpdateUI()
}

func (iui *InspectorUI) Draw(screen *ebiten.Image) {
	iui.UI.Draw(screen)
}
