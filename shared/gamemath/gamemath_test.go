package gamemath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const eps = 1e-6

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func newTestProjector() Projector {
	return NewProjector(mgl64.Vec3{}, mgl64.QuatIdent(), 90, 0.1, 100, 200, 100)
}

func TestProjectCenter(t *testing.T) {
	p := newTestProjector()
	x, y, ok := p.Project(mgl64.Vec3{0, 0, 10})
	if !ok {
		t.Fatalf("point ahead should project")
	}
	if !near(x, 100) || !near(y, 50) {
		t.Fatalf("expected screen center, got (%v, %v)", x, y)
	}
}

func TestProjectUpIsScreenUp(t *testing.T) {
	p := newTestProjector()
	_, y, ok := p.Project(mgl64.Vec3{0, 2, 10})
	if !ok || y >= 50 {
		t.Fatalf("point above the axis should be above center, got y=%v ok=%v", y, ok)
	}
}

func TestProjectBehind(t *testing.T) {
	p := newTestProjector()
	if _, _, ok := p.Project(mgl64.Vec3{0, 0, -1}); ok {
		t.Fatalf("point behind the camera must not project")
	}
	if _, _, ok := p.Project(mgl64.Vec3{0, 0, 0.05}); ok {
		t.Fatalf("point inside the near plane must not project")
	}
}

func TestProjectSegment(t *testing.T) {
	p := newTestProjector()

	tests := []struct {
		name string
		a, b mgl64.Vec3
		ok   bool
	}{
		{"both ahead", mgl64.Vec3{-1, 0, 5}, mgl64.Vec3{1, 0, 5}, true},
		{"both behind", mgl64.Vec3{-1, 0, -5}, mgl64.Vec3{1, 0, -5}, false},
		{"crosses near plane", mgl64.Vec3{0, 1, -5}, mgl64.Vec3{0, 1, 5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, _, ok := p.ProjectSegment(tt.a, tt.b)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
		})
	}
}

func TestProjectSegmentClipsBehindEndpoint(t *testing.T) {
	p := newTestProjector()
	ax, ay, bx, by, ok := p.ProjectSegment(mgl64.Vec3{0, 0, -5}, mgl64.Vec3{0, 0, 5})
	if !ok {
		t.Fatalf("expected clipped segment")
	}
	// Along the view axis both endpoints land on the screen center
	for _, v := range []float64{ax, bx} {
		if !near(v, 100) {
			t.Fatalf("expected x at center, got %v", v)
		}
	}
	for _, v := range []float64{ay, by} {
		if !near(v, 50) {
			t.Fatalf("expected y at center, got %v", v)
		}
	}
	if math.IsNaN(ax) || math.IsInf(ax, 0) {
		t.Fatalf("clipped endpoint is not finite")
	}
}

func TestProjectorFollowsYaw(t *testing.T) {
	// Rotated to face +X, a point on +X is straight ahead
	rot := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})
	p := NewProjector(mgl64.Vec3{}, rot, 90, 0.1, 100, 200, 100)
	x, y, ok := p.Project(mgl64.Vec3{10, 0, 0})
	if !ok || !near(x, 100) || !near(y, 50) {
		t.Fatalf("expected center, got (%v, %v) ok=%v", x, y, ok)
	}
	if d := p.Depth(mgl64.Vec3{10, 0, 0}); !near(d, 10) {
		t.Fatalf("expected depth 10, got %v", d)
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{4 * math.Pi, 0},
	}
	for _, tt := range tests {
		if got := WrapAngle(tt.in); !near(got, tt.want) {
			t.Errorf("WrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLerpAngleTakesShortArc(t *testing.T) {
	a := math.Pi - 0.1
	b := -math.Pi + 0.1
	mid := LerpAngle(a, b, 0.5)
	if !near(math.Abs(mid), math.Pi) {
		t.Fatalf("expected to pass through pi, got %v", mid)
	}
	if got := LerpAngle(0, 1, 0.25); !near(got, 0.25) {
		t.Fatalf("expected 0.25, got %v", got)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-2, -1, 1) != -1 || Clamp(2, -1, 1) != 1 || Clamp(0.5, -1, 1) != 0.5 {
		t.Fatalf("clamp out of range")
	}
}
