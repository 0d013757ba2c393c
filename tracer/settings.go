package tracer

import (
	"image/color"

	cfg "github.com/automoto/doomerang-tracer/config"
	"github.com/automoto/doomerang-tracer/settings"
)

// Settings are the user-editable tracer values
type Settings struct {
	Enabled          *settings.Value[bool]
	FriendPrioritize *settings.Value[bool]
	HotkeyEnabled    *settings.Value[bool]
	FriendsColor     *settings.Value[color.RGBA]
	MarkedPeerColor  *settings.Value[color.RGBA]
	OthersColor      *settings.Value[color.RGBA]
}

// NewSettings registers the tracer values in s with their documented defaults.
func NewSettings(s *settings.Store) *Settings {
	return &Settings{
		Enabled:          settings.NewValue(s, cfg.KeyLineTracerEnabled, false, cfg.Tracer.ToggleTooltip),
		FriendPrioritize: settings.NewValue(s, cfg.KeyFriendPrioritize, false, cfg.Tracer.PrioritizeTip),
		HotkeyEnabled:    settings.NewValue(s, cfg.KeyHotkeyEnabled, true, cfg.Tracer.HotkeyTooltip),
		FriendsColor:     settings.NewValue(s, cfg.KeyFriendsColor, cfg.Tracer.DefaultFriendsColor, "Friends color"),
		MarkedPeerColor:  settings.NewValue(s, cfg.KeyMarkedPeerColor, cfg.Tracer.DefaultMarkedPeerColor, "Verified peers color"),
		OthersColor:      settings.NewValue(s, cfg.KeyOthersColor, cfg.Tracer.DefaultOthersColor, "Others color"),
	}
}
