package factory

import (
	"github.com/automoto/doomerang-tracer/archetypes"
	"github.com/automoto/doomerang-tracer/components"
	"github.com/yohamta/donburi"
)

// CreateSession spawns the room-state singleton, initially outside any room.
func CreateSession(w donburi.World) *donburi.Entry {
	entry := archetypes.Session.Spawn(w)
	components.Session.SetValue(entry, components.SessionData{})
	return entry
}

func CreateHUD(w donburi.World) *donburi.Entry {
	entry := archetypes.HUD.Spawn(w)
	components.HUD.SetValue(entry, components.HUDData{})
	return entry
}
