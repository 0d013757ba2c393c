package factory

import (
	"github.com/automoto/doomerang-tracer/archetypes"
	"github.com/automoto/doomerang-tracer/components"
	cfg "github.com/automoto/doomerang-tracer/config"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

func CreateCamera(w donburi.World) *donburi.Entry {
	camera := archetypes.Camera.Spawn(w)
	components.Camera.SetValue(camera, components.CameraData{
		FovY: cfg.Scene.FovY,
		Near: cfg.Scene.Near,
		Far:  cfg.Scene.Far,
	})
	components.Transform.SetValue(camera, components.NewTransform(mgl64.Vec3{0, cfg.Scene.EyeHeight, 0}, 0))
	return camera
}
