package tracer

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// LineSurface receives line-list primitives in world space. Vertices come in
// pairs; each vertex takes the most recent Color.
type LineSurface interface {
	PushMatrix()
	PopMatrix()
	Begin(m *Material)
	Color(c color.RGBA)
	Vertex(p mgl64.Vec3)
	End()
}

// Material is the render state lines are drawn with. Colors passed to a
// surface are straight (not premultiplied) alpha to match Blend.
type Material struct {
	Blend      ebiten.Blend
	CullFaces  bool
	DepthWrite bool
}

func newLineMaterial() *Material {
	return &Material{
		Blend: ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorSourceAlpha,
			BlendFactorSourceAlpha:      ebiten.BlendFactorSourceAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		},
		CullFaces:  false,
		DepthWrite: false,
	}
}
