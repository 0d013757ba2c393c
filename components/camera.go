package components

import (
	"github.com/yohamta/donburi"
)

// CameraData holds the viewport camera's projection and look angles.
// The camera pose itself is the entity's Transform.
type CameraData struct {
	FovY  float64 // degrees
	Near  float64
	Far   float64
	Yaw   float64
	Pitch float64
}

var Camera = donburi.NewComponentType[CameraData]()
