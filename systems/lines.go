package systems

import (
	"image"
	"image/color"
	"math"

	cfg "github.com/automoto/doomerang-tracer/config"
	"github.com/automoto/doomerang-tracer/shared/gamemath"
	"github.com/automoto/doomerang-tracer/tracer"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

// whiteSource is the 1x1 texture line quads sample from; created on first use.
func whiteSource() *ebiten.Image {
	if whiteSubImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// LineBatch draws world-space line lists onto a screen as thin quads.
// It is reused across frames so its vertex buffers stop growing after warm-up.
type LineBatch struct {
	screen *ebiten.Image
	proj   gamemath.Projector
	stack  []gamemath.Projector
	width  float32

	material *tracer.Material
	current  color.RGBA
	pending  mgl64.Vec3
	odd      bool

	vertices []ebiten.Vertex
	indices  []uint16
	op       ebiten.DrawTrianglesOptions
}

var _ tracer.LineSurface = (*LineBatch)(nil)

func NewLineBatch() *LineBatch {
	return &LineBatch{
		width:    cfg.Tracer.LineWidth,
		vertices: make([]ebiten.Vertex, 0, 64*4),
		indices:  make([]uint16, 0, 64*6),
	}
}

// Reset targets a new frame.
func (b *LineBatch) Reset(screen *ebiten.Image, proj gamemath.Projector) {
	b.screen = screen
	b.proj = proj
	b.stack = b.stack[:0]
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
	b.odd = false
}

// PushMatrix saves the current projection. Lines are always given in world space.
func (b *LineBatch) PushMatrix() {
	b.stack = append(b.stack, b.proj)
}

func (b *LineBatch) PopMatrix() {
	if n := len(b.stack); n > 0 {
		b.proj = b.stack[n-1]
		b.stack = b.stack[:n-1]
	}
}

func (b *LineBatch) Begin(m *tracer.Material) {
	b.material = m
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
	b.odd = false
}

func (b *LineBatch) Color(c color.RGBA) {
	b.current = c
}

func (b *LineBatch) Vertex(p mgl64.Vec3) {
	if !b.odd {
		b.pending = p
		b.odd = true
		return
	}
	b.odd = false
	ax, ay, bx, by, ok := b.proj.ProjectSegment(b.pending, p)
	if !ok {
		return
	}
	b.vertices, b.indices = appendSegmentQuad(b.vertices, b.indices,
		float32(ax), float32(ay), float32(bx), float32(by), b.width, b.current)
}

// End submits the batched quads with the material's blend state.
func (b *LineBatch) End() {
	if b.screen == nil || len(b.indices) == 0 {
		return
	}
	b.op = ebiten.DrawTrianglesOptions{AntiAlias: true}
	if b.material != nil {
		b.op.Blend = b.material.Blend
		// The material blends with source alpha, so colors go through unmultiplied
		b.op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	}
	b.screen.DrawTriangles(b.vertices, b.indices, whiteSource(), &b.op)
}

// Quads is the number of segments queued since Begin.
func (b *LineBatch) Quads() int { return len(b.indices) / 6 }

// appendSegmentQuad expands a screen-space segment into a quad of the given width.
func appendSegmentQuad(vs []ebiten.Vertex, is []uint16, x0, y0, x1, y1, width float32, c color.RGBA) ([]ebiten.Vertex, []uint16) {
	dx, dy := x1-x0, y1-y0
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return vs, is
	}
	if len(vs)+4 > math.MaxUint16 {
		return vs, is
	}
	// Perpendicular, half the stroke width
	nx, ny := -dy/length*width/2, dx/length*width/2

	r := float32(c.R) / 255
	g := float32(c.G) / 255
	bl := float32(c.B) / 255
	a := float32(c.A) / 255

	base := uint16(len(vs))
	for _, p := range [4][2]float32{
		{x0 + nx, y0 + ny},
		{x1 + nx, y1 + ny},
		{x1 - nx, y1 - ny},
		{x0 - nx, y0 - ny},
	} {
		vs = append(vs, ebiten.Vertex{
			DstX: p[0], DstY: p[1],
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: bl, ColorA: a,
		})
	}
	is = append(is, base, base+1, base+2, base, base+2, base+3)
	return vs, is
}
