package tracer

import "github.com/go-gl/mathgl/mgl64"

// Render draws one segment per live tracked participant and returns how many it drew.
//
// Nothing is drawn unless the tracer is enabled, the immersive trigger is held
// past the threshold (flatscreen has no trigger gate), the viewer is in a room
// and the origin resolves. A missing origin is retried on the next frame.
func (t *Tracer) Render(surface LineSurface) int {
	if !t.enabled {
		return 0
	}
	immersive := t.host.Immersive()
	if immersive && t.host.TriggerValue() < t.threshold {
		return 0
	}
	if !t.host.InRoom() {
		return 0
	}
	if t.material == nil {
		t.material = newLineMaterial()
	}
	if !t.ensureOrigin(immersive) {
		return 0
	}

	originPos := t.origin.Position()
	start := originPos
	var forward mgl64.Vec3
	if !immersive {
		forward = t.origin.Forward()
		start = originPos.Add(forward.Mul(t.startOffset))
	}

	surface.PushMatrix()
	surface.Begin(t.material)

	drawn := 0
	items := t.tracked.All()
	for i := range items {
		tr := &items[i]
		if !tr.Participant.IsAlive() || !tr.Target.IsAlive() {
			continue
		}
		end := tr.Target.Position()
		if !immersive && Culled(start, forward, end) {
			continue
		}
		c := Classify(tr.MarkedPeer, tr.Friend, t.prioritize)
		surface.Color(t.palette.Color(c.Category))
		surface.Vertex(start)
		surface.Vertex(end)
		drawn++
	}

	surface.End()
	surface.PopMatrix()
	return drawn
}

// Culled reports whether target is behind, or level with, start along forward.
func Culled(start, forward, target mgl64.Vec3) bool {
	return target.Sub(start).Dot(forward) <= 0
}

func (t *Tracer) ensureOrigin(immersive bool) bool {
	if t.hasOrigin && t.origin.IsAlive() {
		return true
	}
	if t.resolver == nil {
		return false
	}
	t.origin, t.hasOrigin = t.resolver.ResolveOrigin(immersive)
	return t.hasOrigin
}
