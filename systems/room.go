package systems

import (
	"github.com/automoto/doomerang-tracer/systems/factory"
	"github.com/yohamta/donburi"
)

// CreateRoomSingletons spawns the session state, the HUD and the main camera.
func CreateRoomSingletons(w donburi.World) {
	factory.CreateSession(w)
	factory.CreateHUD(w)
	factory.CreateCamera(w)
}
