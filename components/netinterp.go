package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// NetInterpData stores interpolation state for smooth rendering of remote
// participants between server snapshots.
type NetInterpData struct {
	PrevRoot, TargetRoot mgl64.Vec3
	PrevYaw, TargetYaw   float64
	T                    float64
	Initialized          bool
}

var NetInterp = donburi.NewComponentType[NetInterpData]()
