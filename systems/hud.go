package systems

import (
	"fmt"
	"image/color"

	"github.com/automoto/doomerang-tracer/components"
	cfg "github.com/automoto/doomerang-tracer/config"
	"github.com/automoto/doomerang-tracer/fonts"
	"github.com/automoto/doomerang-tracer/tracer"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const (
	hudSwatchSize = 10
	tickSeconds   = float32(1.0 / 60.0)
)

// ShowToast flashes msg at the bottom of the screen, fading out over HUD.ToastSeconds.
func ShowToast(w donburi.World, msg string) {
	entry, ok := components.HUD.First(w)
	if !ok {
		return
	}
	hud := components.HUD.Get(entry)
	hud.Toast = msg
	hud.ToastAlpha = 1
	hud.ToastFade = gween.New(1, 0, cfg.HUD.ToastSeconds, ease.InQuad)
}

// UpdateHUD advances the toast fade.
func UpdateHUD(ecs *ecs.ECS) {
	entry, ok := components.HUD.First(ecs.World)
	if !ok {
		return
	}
	hud := components.HUD.Get(entry)
	if hud.ToastFade == nil {
		return
	}
	alpha, done := hud.ToastFade.Update(tickSeconds)
	hud.ToastAlpha = alpha
	if done {
		hud.ToastFade = nil
		hud.Toast = ""
		hud.ToastAlpha = 0
	}
}

// UpdateSettingsToggle opens and closes the settings overlay.
func UpdateSettingsToggle(e *ecs.ECS) {
	input := getOrCreateInput(e.World)
	if GetAction(input, cfg.ActionToggleSettings).JustPressed {
		SetSettingsOpen(e.World, !settingsOpen(e.World))
	}
}

// SettingsOpen reports whether the settings overlay has focus.
func SettingsOpen(w donburi.World) bool {
	return settingsOpen(w)
}

func SetSettingsOpen(w donburi.World, open bool) {
	if entry, ok := components.HUD.First(w); ok {
		components.HUD.Get(entry).SettingsOpen = open
	}
}

// HUDSystem draws the tracer status block and legend.
type HUDSystem struct {
	tracer *tracer.Tracer
	host   *TracerHost
}

func NewHUDSystem(t *tracer.Tracer, host *TracerHost) *HUDSystem {
	return &HUDSystem{tracer: t, host: host}
}

func (h *HUDSystem) Draw(e *ecs.ECS, screen *ebiten.Image) {
	entry, ok := components.HUD.First(e.World)
	if !ok {
		return
	}
	hud := components.HUD.Get(entry)
	face := fonts.Regular.Get()
	small := fonts.Small.Get()

	x := cfg.HUD.Margin
	y := cfg.HUD.Margin + cfg.HUD.LineHeight

	stateColor := cfg.DimGrey
	state := "Off"
	if h.tracer.Enabled() {
		state = "On"
		stateColor = cfg.LightGreen
	}
	text.Draw(screen, cfg.Tracer.ToggleToastLabel+": "+state, face, x, y, stateColor)
	y += cfg.HUD.LineHeight

	text.Draw(screen, h.modeLine(), small, x, y, cfg.HUD.TextColor)
	y += cfg.HUD.LineHeight

	text.Draw(screen, roomLine(e.World), small, x, y, cfg.HUD.TextColor)
	y += cfg.HUD.LineHeight

	text.Draw(screen, fmt.Sprintf("Tracked %d  Drawn %d", hud.Tracked, hud.Segments), small, x, y, cfg.HUD.TextColor)
	y += cfg.HUD.LineHeight

	h.drawLegend(screen, x, y)

	bounds := screen.Bounds()
	hint := "Ctrl+T toggle  F1 settings  R room  N/K bots"
	text.Draw(screen, hint, small, x, bounds.Dy()-cfg.HUD.Margin, cfg.DimGrey)

	if hud.Toast != "" && hud.ToastAlpha > 0 {
		c := cfg.HUD.ToastColor
		c.A = uint8(float32(c.A) * hud.ToastAlpha)
		width := text.BoundString(face, hud.Toast).Dx()
		text.Draw(screen, hud.Toast, face, (bounds.Dx()-width)/2, bounds.Dy()-cfg.HUD.Margin-2*cfg.HUD.LineHeight, premultiply(c))
	}
}

func (h *HUDSystem) modeLine() string {
	if !h.host.Immersive() {
		return "Mode: Flatscreen"
	}
	return fmt.Sprintf("Mode: Immersive  Trigger %.2f", h.host.TriggerValue())
}

func roomLine(w donburi.World) string {
	entry, ok := components.Session.First(w)
	if !ok || !components.Session.Get(entry).InRoom {
		return "Room: none"
	}
	d := components.Session.Get(entry).Descriptor
	if d.Server != "" {
		return fmt.Sprintf("Room: %s/%s @ %s", d.World, d.Instance, d.Server)
	}
	return fmt.Sprintf("Room: %s/%s", d.World, d.Instance)
}

func (h *HUDSystem) drawLegend(screen *ebiten.Image, x, y int) {
	palette := h.tracer.Palette()
	small := fonts.Small.Get()
	for _, item := range []struct {
		label string
		c     color.RGBA
	}{
		{"Friend", palette.Friend},
		{"Verified", palette.MarkedPeer},
		{"Other", palette.Other},
	} {
		vector.DrawFilledRect(screen, float32(x), float32(y-hudSwatchSize), hudSwatchSize, hudSwatchSize, item.c, false)
		text.Draw(screen, item.label, small, x+hudSwatchSize+4, y, cfg.HUD.TextColor)
		x += hudSwatchSize + 4 + text.BoundString(small, item.label).Dx() + 10
	}
}

// premultiply converts a straight-alpha color for ebiten's premultiplied draw calls.
func premultiply(c color.RGBA) color.RGBA {
	a := uint16(c.A)
	return color.RGBA{
		R: uint8(uint16(c.R) * a / 255),
		G: uint8(uint16(c.G) * a / 255),
		B: uint8(uint16(c.B) * a / 255),
		A: c.A,
	}
}
