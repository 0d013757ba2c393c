package netcomponents

import (
	"math"

	"github.com/yohamta/donburi"
)

// NetPoseData is a participant's root pose plus the rig it is wearing.
type NetPoseData struct {
	X, Y, Z float64
	Yaw     float64
	// AvatarKey selects the rig layout; a change means the avatar was swapped
	AvatarKey uint32
}

var NetPose = donburi.NewComponentType[NetPoseData]()

// LerpNetPose interpolates position and yaw. Yaw takes the short way around;
// the avatar key snaps to the target.
func LerpNetPose(from, to NetPoseData, t float64) *NetPoseData {
	dyaw := math.Remainder(to.Yaw-from.Yaw, 2*math.Pi)
	return &NetPoseData{
		X:         from.X + (to.X-from.X)*t,
		Y:         from.Y + (to.Y-from.Y)*t,
		Z:         from.Z + (to.Z-from.Z)*t,
		Yaw:       from.Yaw + dyaw*t,
		AvatarKey: to.AvatarKey,
	}
}
