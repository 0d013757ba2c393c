package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// HUDData stores the status overlay state
type HUDData struct {
	Segments int // Segments emitted by the last tracer pass
	Tracked  int

	// SettingsOpen pauses movement while the settings overlay has focus
	SettingsOpen bool

	Toast      string
	ToastAlpha float32
	ToastFade  *gween.Tween
}

var HUD = donburi.NewComponentType[HUDData]()
