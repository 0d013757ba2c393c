package ui

import (
	"testing"

	"github.com/automoto/doomerang-tracer/settings"
)

func TestToggleText(t *testing.T) {
	if got := ToggleText("[VR] Line Tracer", true); got != "[VR] Line Tracer: On" {
		t.Fatalf("got %q", got)
	}
	if got := ToggleText("Prioritize Friends", false); got != "Prioritize Friends: Off" {
		t.Fatalf("got %q", got)
	}
}

func TestToggleRowFollowsValue(t *testing.T) {
	store := settings.NewStore(settings.NewMemoryBackend())
	value := settings.NewValue(store, "flag", false, "a flag")

	var caption string
	row := newToggleRow("Flag", value)
	row.setText = func(s string) { caption = s }

	row.refresh()
	if caption != "Flag: Off" {
		t.Fatalf("caption = %q", caption)
	}

	row.flip()
	if !value.Get() {
		t.Fatalf("flip should toggle the setting")
	}
	row.refresh()
	if caption != "Flag: On" {
		t.Fatalf("caption = %q", caption)
	}

	// Changed elsewhere, e.g. by the hotkey
	value.Set(false)
	row.refresh()
	if caption != "Flag: Off" {
		t.Fatalf("caption should follow external changes, got %q", caption)
	}
}

func TestToggleRowWithoutWidget(t *testing.T) {
	store := settings.NewStore(settings.NewMemoryBackend())
	row := newToggleRow("Flag", settings.NewValue(store, "flag", true, ""))
	row.refresh()
	if !row.dirty {
		t.Fatalf("row must stay dirty until it has a widget")
	}
}
