package ui

import (
	"bytes"
	"image/color"

	cfg "github.com/automoto/doomerang-tracer/config"
	"github.com/automoto/doomerang-tracer/settings"
	"github.com/automoto/doomerang-tracer/tracer"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// ToggleText renders a boolean setting as a button caption.
func ToggleText(label string, on bool) string {
	if on {
		return label + ": On"
	}
	return label + ": Off"
}

// toggleRow binds one boolean setting to a caption. setText is nil until the
// button's text widget exists.
type toggleRow struct {
	label   string
	value   *settings.Value[bool]
	setText func(string)
	dirty   bool
}

func newToggleRow(label string, value *settings.Value[bool]) *toggleRow {
	row := &toggleRow{label: label, value: value, dirty: true}
	// Changes from the hotkey or the overrides file refresh the caption too
	value.OnChanged(func(bool) { row.dirty = true })
	return row
}

func (r *toggleRow) flip() {
	r.value.Set(!r.value.Get())
}

// refresh rewrites the caption if the value changed since the last refresh.
func (r *toggleRow) refresh() {
	if !r.dirty || r.setText == nil {
		return
	}
	r.setText(ToggleText(r.label, r.value.Get()))
	r.dirty = false
}

// SettingsUI is the settings overlay: a Visuals page with the ESP/Highlights
// category and a Hotkeys page.
type SettingsUI struct {
	UI *ebitenui.UI

	OnClose func()

	settings *tracer.Settings
	rows     []*toggleRow
	swatches []*swatch

	titleFace  text.Face
	normalFace text.Face
	smallFace  text.Face

	initialized bool
}

type swatch struct {
	value *settings.Value[color.RGBA]
	label *widget.Label
}

func NewSettingsUI(s *tracer.Settings, onClose func()) *SettingsUI {
	ui := &SettingsUI{
		settings: s,
		OnClose:  onClose,
	}
	ui.loadFonts()
	ui.buildUI()
	return ui
}

func (ui *SettingsUI) loadFonts() {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic(err)
	}

	ui.titleFace = &text.GoTextFace{Source: fontSource, Size: 18}
	ui.normalFace = &text.GoTextFace{Source: fontSource, Size: 12}
	ui.smallFace = &text.GoTextFace{Source: fontSource, Size: 10}
}

func (ui *SettingsUI) buildUI() {
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(cfg.BlackOverlay)),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	contentContainer := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.RGBA{20, 20, 30, 240})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(12)),
			widget.RowLayoutOpts.Spacing(6),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)

	contentContainer.AddChild(ui.heading("SETTINGS", &ui.titleFace))

	contentContainer.AddChild(ui.heading(cfg.Tracer.MenuPage, &ui.normalFace))
	contentContainer.AddChild(ui.caption(cfg.Tracer.MenuCategory))
	contentContainer.AddChild(ui.buildToggle(cfg.Tracer.ToggleLabel, ui.settings.Enabled))
	contentContainer.AddChild(ui.buildToggle(cfg.Tracer.PrioritizeLabel, ui.settings.FriendPrioritize))
	contentContainer.AddChild(ui.buildPalette())

	contentContainer.AddChild(ui.heading(cfg.Tracer.HotkeysPage, &ui.normalFace))
	contentContainer.AddChild(ui.buildToggle(cfg.Tracer.HotkeyLabel, ui.settings.HotkeyEnabled))

	contentContainer.AddChild(ui.buildCloseButton())

	rootContainer.AddChild(contentContainer)

	ui.UI = &ebitenui.UI{
		Container: rootContainer,
	}
}

func (ui *SettingsUI) heading(s string, face *text.Face) *widget.Label {
	return widget.NewLabel(
		widget.LabelOpts.Text(s, face, &widget.LabelColor{
			Idle: color.RGBA{255, 255, 255, 255},
		}),
	)
}

func (ui *SettingsUI) caption(s string) *widget.Label {
	return widget.NewLabel(
		widget.LabelOpts.Text(s, &ui.smallFace, &widget.LabelColor{
			Idle: color.RGBA{160, 160, 180, 255},
		}),
	)
}

// buildToggle lays out a toggle button with its description underneath.
func (ui *SettingsUI) buildToggle(label string, value *settings.Value[bool]) *widget.Container {
	container := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(2),
		)),
	)

	row := newToggleRow(label, value)
	ui.rows = append(ui.rows, row)

	button := widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(220, 24)),
		widget.ButtonOpts.Image(buttonImage()),
		widget.ButtonOpts.Text(ToggleText(label, value.Get()), &ui.normalFace, &widget.ButtonTextColor{
			Idle:    color.RGBA{255, 255, 255, 255},
			Hover:   color.RGBA{200, 255, 200, 255},
			Pressed: color.RGBA{150, 200, 150, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			row.flip()
		}),
	)
	row.setText = func(s string) {
		if textWidget := button.Text(); textWidget != nil {
			textWidget.Label = s
		}
	}
	container.AddChild(button)
	container.AddChild(ui.caption(value.Description()))

	return container
}

func (ui *SettingsUI) buildPalette() *widget.Container {
	container := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(10),
		)),
	)

	for _, v := range []*settings.Value[color.RGBA]{
		ui.settings.FriendsColor,
		ui.settings.MarkedPeerColor,
		ui.settings.OthersColor,
	} {
		label := widget.NewLabel(
			widget.LabelOpts.Text(swatchText(v), &ui.smallFace, &widget.LabelColor{
				Idle: color.RGBA{200, 200, 200, 255},
			}),
		)
		ui.swatches = append(ui.swatches, &swatch{value: v, label: label})
		container.AddChild(label)
	}

	reset := widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(80, 20)),
		widget.ButtonOpts.Image(buttonImage()),
		widget.ButtonOpts.Text("Reset colors", &ui.smallFace, &widget.ButtonTextColor{
			Idle: color.RGBA{255, 255, 255, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			ui.ResetColors()
		}),
	)
	container.AddChild(reset)

	return container
}

func (ui *SettingsUI) buildCloseButton() *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(80, 26)),
		widget.ButtonOpts.Image(buttonImage()),
		widget.ButtonOpts.Text("Close", &ui.normalFace, &widget.ButtonTextColor{
			Idle:    color.RGBA{255, 255, 255, 255},
			Hover:   color.RGBA{255, 200, 200, 255},
			Pressed: color.RGBA{200, 150, 150, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if ui.OnClose != nil {
				ui.OnClose()
			}
		}),
	)
}

// ResetColors restores the default palette.
func (ui *SettingsUI) ResetColors() {
	for _, s := range ui.swatches {
		s.value.Set(s.value.Default())
	}
}

func swatchText(v *settings.Value[color.RGBA]) string {
	return v.Description() + " " + settings.FormatHexColor(v.Get())
}

func buttonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:     image.NewNineSliceColor(color.RGBA{60, 60, 80, 255}),
		Hover:    image.NewNineSliceColor(color.RGBA{80, 80, 100, 255}),
		Pressed:  image.NewNineSliceColor(color.RGBA{40, 40, 60, 255}),
		Disabled: image.NewNineSliceColor(color.RGBA{40, 40, 40, 255}),
	}
}

// Update runs the widgets and syncs captions with the current values.
func (ui *SettingsUI) Update() {
	ui.UI.Update()
	// Text widgets exist only after the first update
	if !ui.initialized {
		ui.initialized = true
		for _, r := range ui.rows {
			r.dirty = true
		}
	}
	for _, r := range ui.rows {
		r.refresh()
	}
	for _, s := range ui.swatches {
		s.label.Label = swatchText(s.value)
	}
}

func (ui *SettingsUI) Draw(screen *ebiten.Image) {
	ui.UI.Draw(screen)
}
