package tracer

import "github.com/automoto/doomerang-tracer/settings"

// HotkeyController flips the tracer on a hotkey press, once per key-down edge.
type HotkeyController struct {
	enabled       *settings.Value[bool]
	hotkeyEnabled *settings.Value[bool]
	wasDown       bool
}

func NewHotkeyController(enabled, hotkeyEnabled *settings.Value[bool]) *HotkeyController {
	return &HotkeyController{
		enabled:       enabled,
		hotkeyEnabled: hotkeyEnabled,
	}
}

// Poll takes whether the chord is held this frame and reports whether it toggled.
// Edges are tracked even while the hotkey is disabled, so enabling it mid-hold does not fire.
func (h *HotkeyController) Poll(down bool) bool {
	edge := down && !h.wasDown
	h.wasDown = down
	if !edge || !h.hotkeyEnabled.Get() {
		return false
	}
	h.enabled.Set(!h.enabled.Get())
	return true
}
