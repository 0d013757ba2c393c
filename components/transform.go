package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// TransformData is a world-space pose. Bones, avatar roots and the main camera all carry one.
type TransformData struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

var Transform = donburi.NewComponentType[TransformData]()

// Forward returns the unit +Z axis rotated by the transform's rotation.
// A zero quaternion is treated as identity.
func (t *TransformData) Forward() mgl64.Vec3 {
	q := t.Rotation
	if q.Len() == 0 {
		return mgl64.Vec3{0, 0, 1}
	}
	return q.Normalize().Rotate(mgl64.Vec3{0, 0, 1})
}

// NewTransform builds a transform at pos facing yaw radians around +Y.
func NewTransform(pos mgl64.Vec3, yaw float64) TransformData {
	return TransformData{
		Position: pos,
		Rotation: mgl64.QuatRotate(yaw, mgl64.Vec3{0, 1, 0}),
	}
}
