package gamemath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	axisForward = mgl64.Vec3{0, 0, 1}
	axisUp      = mgl64.Vec3{0, 1, 0}
)

// Projector maps world-space points to screen pixels for one camera pose.
type Projector struct {
	view   mgl64.Mat4
	proj   mgl64.Mat4
	near   float64
	width  float64
	height float64
}

// NewProjector builds a perspective projector for a camera at eye with rotation rot.
// The camera looks down its local +Z with +Y up.
func NewProjector(eye mgl64.Vec3, rot mgl64.Quat, fovYDeg, near, far float64, width, height int) Projector {
	if rot.Len() == 0 {
		rot = mgl64.QuatIdent()
	}
	rot = rot.Normalize()
	forward := rot.Rotate(axisForward)
	up := rot.Rotate(axisUp)

	aspect := 1.0
	if height > 0 {
		aspect = float64(width) / float64(height)
	}
	return Projector{
		view:   mgl64.LookAtV(eye, eye.Add(forward), up),
		proj:   mgl64.Perspective(mgl64.DegToRad(fovYDeg), aspect, near, far),
		near:   near,
		width:  float64(width),
		height: float64(height),
	}
}

// ToView transforms a world-space point into camera space, where visible points have z < -near.
func (p Projector) ToView(v mgl64.Vec3) mgl64.Vec3 {
	return p.view.Mul4x1(v.Vec4(1)).Vec3()
}

// Project returns the screen position of a world point, or false when it is behind the near plane.
func (p Projector) Project(v mgl64.Vec3) (x, y float64, ok bool) {
	view := p.ToView(v)
	if view.Z() > -p.near {
		return 0, 0, false
	}
	x, y = p.viewToScreen(view)
	return x, y, true
}

// ProjectSegment clips a world-space segment against the near plane and
// returns its screen endpoints. false means the whole segment is behind the camera.
func (p Projector) ProjectSegment(a, b mgl64.Vec3) (ax, ay, bx, by float64, ok bool) {
	va, vb := p.ToView(a), p.ToView(b)
	limit := -p.near
	aIn, bIn := va.Z() <= limit, vb.Z() <= limit
	switch {
	case !aIn && !bIn:
		return 0, 0, 0, 0, false
	case !aIn:
		va = clipToPlane(vb, va, limit)
	case !bIn:
		vb = clipToPlane(va, vb, limit)
	}
	ax, ay = p.viewToScreen(va)
	bx, by = p.viewToScreen(vb)
	return ax, ay, bx, by, true
}

// Depth is the distance in front of the camera along its view axis.
func (p Projector) Depth(v mgl64.Vec3) float64 {
	return -p.ToView(v).Z()
}

func (p Projector) viewToScreen(v mgl64.Vec3) (float64, float64) {
	clip := p.proj.Mul4x1(v.Vec4(1))
	w := clip.W()
	if w == 0 {
		w = math.SmallestNonzeroFloat64
	}
	ndcX, ndcY := clip.X()/w, clip.Y()/w
	return (ndcX + 1) / 2 * p.width, (1 - ndcY) / 2 * p.height
}

// clipToPlane moves out toward in until it lies on z == limit.
func clipToPlane(in, out mgl64.Vec3, limit float64) mgl64.Vec3 {
	t := (limit - in.Z()) / (out.Z() - in.Z())
	return in.Add(out.Sub(in).Mul(t))
}
