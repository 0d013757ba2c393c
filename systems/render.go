package systems

import (
	"image/color"
	"math"

	"github.com/automoto/doomerang-tracer/components"
	cfg "github.com/automoto/doomerang-tracer/config"
	"github.com/automoto/doomerang-tracer/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const minMarkerRadius = 2

// DrawWorld renders the ground grid and a marker per participant.
func DrawWorld(ecs *ecs.ECS, screen *ebiten.Image) {
	screen.Fill(cfg.SkyDark)

	bounds := screen.Bounds()
	proj, ok := CameraProjector(ecs.World, bounds.Dx(), bounds.Dy())
	if !ok {
		return
	}
	drawGrid(screen, proj)

	components.Player.Each(ecs.World, func(entry *donburi.Entry) {
		drawParticipant(ecs.World, screen, proj, entry)
	})
}

func drawGrid(screen *ebiten.Image, proj gamemath.Projector) {
	n := float64(cfg.Scene.GridExtent)
	for i := -n; i <= n; i++ {
		strokeWorld(screen, proj, mgl64.Vec3{i, 0, -n}, mgl64.Vec3{i, 0, n}, 1, cfg.Scene.GridColor)
		strokeWorld(screen, proj, mgl64.Vec3{-n, 0, i}, mgl64.Vec3{n, 0, i}, 1, cfg.Scene.GridColor)
	}
}

func drawParticipant(w donburi.World, screen *ebiten.Image, proj gamemath.Projector, entry *donburi.Entry) {
	p := components.Player.Get(entry)
	if p.IsSelf && cfg.Debug.Immersive {
		// The viewer's own body is only drawn from outside
		return
	}
	root := components.Transform.Get(entry).Position
	body := root.Add(mgl64.Vec3{0, 0.95, 0})
	head := root.Add(mgl64.Vec3{0, 1.65, 0})

	c := cfg.Scene.MarkerColor
	if p.IsSelf {
		c = cfg.Scene.SelfColor
	}
	strokeWorld(screen, proj, root, head, 2, c)

	x, y, ok := proj.Project(body)
	if !ok {
		return
	}
	radius := cfg.Scene.MarkerSize / float32(math.Max(proj.Depth(body), 1))
	if radius < minMarkerRadius {
		radius = minMarkerRadius
	}
	vector.DrawFilledCircle(screen, float32(x), float32(y), radius, c, true)

	if !p.HasAvatar || !w.Valid(p.Avatar) {
		return
	}
	// Non-humanoid avatars get a hollow ring so the root fallback is visible
	if skel := components.Skeleton.Get(w.Entry(p.Avatar)); !skel.Humanoid {
		vector.StrokeCircle(screen, float32(x), float32(y), radius+3, 1, cfg.White, true)
	}
}

// strokeWorld draws a world-space segment, clipped to the near plane.
func strokeWorld(screen *ebiten.Image, proj gamemath.Projector, a, b mgl64.Vec3, width float32, c color.Color) {
	ax, ay, bx, by, ok := proj.ProjectSegment(a, b)
	if !ok {
		return
	}
	vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), width, c, true)
}
