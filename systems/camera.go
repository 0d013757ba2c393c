package systems

import (
	"math"

	"github.com/automoto/doomerang-tracer/components"
	cfg "github.com/automoto/doomerang-tracer/config"
	"github.com/automoto/doomerang-tracer/shared/gamemath"
	"github.com/automoto/doomerang-tracer/systems/factory"
	"github.com/automoto/doomerang-tracer/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const maxPitch = 1.4

var worldUp = mgl64.Vec3{0, 1, 0}

// UpdateCamera steers the local viewer and keeps the main camera at its eyes.
// Without a local viewer the camera flies on its own.
func UpdateCamera(e *ecs.ECS) {
	w := e.World
	cameraEntry, ok := tags.MainCamera.First(w)
	if !ok {
		return
	}
	camera := components.Camera.Get(cameraEntry)
	camTransform := components.Transform.Get(cameraEntry)
	input := getOrCreateInput(w)

	var move mgl64.Vec3
	if !settingsOpen(w) {
		move = steer(camera, input)
	}

	self, hasSelf := localViewer(w)
	if hasSelf {
		root := components.Transform.Get(self)
		*root = components.NewTransform(root.Position.Add(move), camera.Yaw)
		factory.PoseRig(w, self)
		camTransform.Position = root.Position.Add(worldUp.Mul(cfg.Scene.EyeHeight))
	} else {
		camTransform.Position = camTransform.Position.Add(move)
	}
	camTransform.Rotation = cameraRotation(camera.Yaw, camera.Pitch)
}

// steer applies look actions to the camera angles and returns the movement for this tick.
func steer(camera *components.CameraData, input *components.InputData) mgl64.Vec3 {
	if input.Current[cfg.ActionTurnLeft] {
		camera.Yaw += cfg.Scene.TurnSpeed
	}
	if input.Current[cfg.ActionTurnRight] {
		camera.Yaw -= cfg.Scene.TurnSpeed
	}
	if input.Current[cfg.ActionLookUp] {
		camera.Pitch += cfg.Scene.TurnSpeed
	}
	if input.Current[cfg.ActionLookDown] {
		camera.Pitch -= cfg.Scene.TurnSpeed
	}
	camera.Yaw = gamemath.WrapAngle(camera.Yaw)
	camera.Pitch = gamemath.Clamp(camera.Pitch, -maxPitch, maxPitch)

	forward := mgl64.Vec3{math.Sin(camera.Yaw), 0, math.Cos(camera.Yaw)}
	right := forward.Cross(worldUp)

	var move mgl64.Vec3
	if input.Current[cfg.ActionMoveForward] {
		move = move.Add(forward)
	}
	if input.Current[cfg.ActionMoveBack] {
		move = move.Sub(forward)
	}
	if input.Current[cfg.ActionStrafeRight] {
		move = move.Add(right)
	}
	if input.Current[cfg.ActionStrafeLeft] {
		move = move.Sub(right)
	}
	if move.Len() == 0 {
		return move
	}
	return move.Normalize().Mul(cfg.Scene.MoveSpeed)
}

// cameraRotation composes yaw around +Y with pitch, positive pitch looking up.
func cameraRotation(yaw, pitch float64) mgl64.Quat {
	return mgl64.QuatRotate(yaw, worldUp).Mul(mgl64.QuatRotate(-pitch, mgl64.Vec3{1, 0, 0}))
}

// CameraProjector builds the projector for the main camera at the given screen size.
func CameraProjector(w donburi.World, width, height int) (gamemath.Projector, bool) {
	entry, ok := tags.MainCamera.First(w)
	if !ok {
		return gamemath.Projector{}, false
	}
	cam := components.Camera.Get(entry)
	t := components.Transform.Get(entry)
	return gamemath.NewProjector(t.Position, t.Rotation, cam.FovY, cam.Near, cam.Far, width, height), true
}

// localViewer returns the participant flagged as the local user, if any.
func localViewer(w donburi.World) (*donburi.Entry, bool) {
	var self *donburi.Entry
	components.Player.Each(w, func(entry *donburi.Entry) {
		if self == nil && components.Player.Get(entry).IsSelf {
			self = entry
		}
	})
	return self, self != nil
}

func settingsOpen(w donburi.World) bool {
	entry, ok := components.HUD.First(w)
	return ok && components.HUD.Get(entry).SettingsOpen
}
