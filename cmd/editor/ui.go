package main

import (
	"bytes"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

const toolbarHeight = 48

type Tool int

const (
	ToolRect Tool = iota
	ToolSelect
	ToolSpawn
)

func (t Tool) String() string {
	switch t {
	case ToolRect:
		return "Rect"
	case ToolSelect:
		return "Select"
	case ToolSpawn:
		return "Spawn"
	default:
		return "Unknown"
	}
}

// solidNineSlice returns a solid color *image.NineSlice for widget backgrounds.
func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

func newEditorTheme(fontFace *text.Face) *widget.Theme {
	return &widget.Theme{
		PanelTheme: &widget.PanelParams{
			BackgroundImage: solidNineSlice(color.RGBA{40, 40, 40, 255}),
		},
		ButtonTheme: &widget.ButtonParams{
			Image: &widget.ButtonImage{
				Idle:    solidNineSlice(color.RGBA{180, 180, 180, 255}),
				Hover:   solidNineSlice(color.RGBA{200, 200, 200, 255}),
				Pressed: solidNineSlice(color.RGBA{160, 160, 160, 255}),
			},
			TextFace: fontFace,
			TextColor: &widget.ButtonTextColor{
				Idle: color.Black,
			},
		},
	}
}

// editorUI is the toolbar along the top of the window.
type editorUI struct {
	ui     *ebitenui.UI
	status *widget.Text
}

func (u *editorUI) SetStatus(s string) {
	if u == nil || u.status == nil {
		return
	}
	u.status.Label = s
}

func buildEditorUI(onTool func(Tool), onSave func(), onUndo func()) *editorUI {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}
	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newEditorTheme(&fontFace)

	buttonTextColor := &widget.ButtonTextColor{
		Idle:     color.Black,
		Hover:    color.Black,
		Pressed:  color.RGBA{0, 0, 200, 255},
		Disabled: color.Gray{Y: 128},
	}

	toolbar := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(220, toolbarHeight),
		),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{220, 220, 240, 255})),
	)

	var toolButtons []*widget.Button
	for _, tool := range []Tool{ToolRect, ToolSelect, ToolSpawn} {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(ui.PrimaryTheme.ButtonTheme.Image),
			widget.ButtonOpts.Text(tool.String(), &fontFace, buttonTextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(64, 40),
			),
		)
		toolButtons = append(toolButtons, btn)
		toolbar.AddChild(btn)
	}

	elements := make([]widget.RadioGroupElement, 0, len(toolButtons))
	for _, b := range toolButtons {
		elements = append(elements, b)
	}
	group := widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			for idx, b := range toolButtons {
				if args.Active == b {
					onTool(Tool(idx))
					return
				}
			}
		}),
	)
	group.SetActive(toolButtons[ToolRect])

	for _, action := range []struct {
		label string
		fn    func()
	}{
		{"Undo", onUndo},
		{"Save", onSave},
	} {
		fn := action.fn
		toolbar.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(ui.PrimaryTheme.ButtonTheme.Image),
			widget.ButtonOpts.Text(action.label, &fontFace, buttonTextColor),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(64, 40),
			),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				fn()
			}),
		))
	}

	status := widget.NewText(
		widget.TextOpts.Text("", &fontFace, color.Black),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	toolbar.AddChild(status)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	toolbar.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
		StretchHorizontal:  true,
	}
	root.AddChild(toolbar)
	ui.Container = root

	return &editorUI{ui: ui, status: status}
}
