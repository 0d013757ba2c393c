package systems

import (
	"github.com/automoto/doomerang-tracer/components"
	cfg "github.com/automoto/doomerang-tracer/config"
	"github.com/automoto/doomerang-tracer/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// DrawDebug marks every rig bone and labels participants when cfg.Debug.ShowRigs is set.
func DrawDebug(ecs *ecs.ECS, screen *ebiten.Image) {
	if !cfg.Debug.ShowRigs {
		return
	}
	bounds := screen.Bounds()
	proj, ok := CameraProjector(ecs.World, bounds.Dx(), bounds.Dy())
	if !ok {
		return
	}
	face := fonts.Mono.Get()

	components.Skeleton.Each(ecs.World, func(avatar *donburi.Entry) {
		skel := components.Skeleton.Get(avatar)
		for bone, e := range skel.Bones {
			if !ecs.World.Valid(e) {
				continue
			}
			x, y, ok := proj.Project(components.Transform.Get(ecs.World.Entry(e)).Position)
			if !ok {
				continue
			}
			c := cfg.BrightOrange
			if bone == components.BoneHips {
				c = cfg.LightGreen
			}
			vector.DrawFilledRect(screen, float32(x)-1, float32(y)-1, 3, 3, c, false)
		}
	})

	components.Player.Each(ecs.World, func(entry *donburi.Entry) {
		p := components.Player.Get(entry)
		head := components.Transform.Get(entry).Position.Add(worldUp.Mul(1.9))
		x, y, ok := proj.Project(head)
		if !ok {
			return
		}
		text.Draw(screen, p.DisplayName, face, int(x), int(y), cfg.White)
	})
}
