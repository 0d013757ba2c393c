package tracer

import (
	"github.com/automoto/doomerang-tracer/components"
	"github.com/automoto/doomerang-tracer/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// Anchor is a weak reference to an entity's Transform. The entity can be
// removed from the world at any time, so check IsAlive before reading.
type Anchor struct {
	world  donburi.World
	entity donburi.Entity
}

func NewAnchor(w donburi.World, e donburi.Entity) Anchor {
	return Anchor{world: w, entity: e}
}

func (a Anchor) IsZero() bool           { return a.world == nil }
func (a Anchor) Entity() donburi.Entity { return a.entity }

// IsAlive reports whether the referenced entity still exists and has a Transform.
func (a Anchor) IsAlive() bool {
	if a.world == nil || !a.world.Valid(a.entity) {
		return false
	}
	return a.world.Entry(a.entity).HasComponent(components.Transform)
}

// Position is only meaningful when IsAlive is true.
func (a Anchor) Position() mgl64.Vec3 {
	return components.Transform.Get(a.world.Entry(a.entity)).Position
}

// Forward is only meaningful when IsAlive is true.
func (a Anchor) Forward() mgl64.Vec3 {
	return components.Transform.Get(a.world.Entry(a.entity)).Forward()
}

// originChain is tried in order, from the tip of the right index finger back to the hand.
var originChain = [...]components.HumanBone{
	components.BoneRightIndexDistal,
	components.BoneRightIndexIntermediate,
	components.BoneRightIndexProximal,
	components.BoneRightHand,
}

// AnchorResolver finds line endpoints on participants' rigs.
type AnchorResolver struct {
	world  donburi.World
	camera Anchor
}

func NewAnchorResolver(w donburi.World) *AnchorResolver {
	return &AnchorResolver{world: w}
}

// ResolveOrigin returns the local viewer's anchor. In immersive mode that is
// the deepest available right index finger joint of a humanoid rig; otherwise
// the main camera. false means not ready yet; callers retry next frame.
func (r *AnchorResolver) ResolveOrigin(immersive bool) (Anchor, bool) {
	if !immersive {
		return r.resolveCamera()
	}

	self, ok := r.localViewer()
	if !ok {
		return Anchor{}, false
	}
	skel, ok := avatarSkeleton(r.world, self)
	if !ok || !skel.Humanoid {
		return Anchor{}, false
	}
	for _, bone := range originChain {
		e, ok := skel.Bone(r.world, bone)
		if !ok {
			continue
		}
		if a := NewAnchor(r.world, e); a.IsAlive() {
			return a, true
		}
	}
	return Anchor{}, false
}

// ResolveEntityAnchor returns the hips of a humanoid rig, or the participant root.
// The root fallback cannot fail while the participant exists.
func (r *AnchorResolver) ResolveEntityAnchor(entry *donburi.Entry) Anchor {
	if skel, ok := avatarSkeleton(r.world, entry); ok && skel.Humanoid {
		if e, ok := skel.Bone(r.world, components.BoneHips); ok {
			if a := NewAnchor(r.world, e); a.IsAlive() {
				return a
			}
		}
	}
	return NewAnchor(r.world, entry.Entity())
}

// resolveCamera caches the main camera once found; it keeps its identity across sessions.
func (r *AnchorResolver) resolveCamera() (Anchor, bool) {
	if r.camera.IsAlive() {
		return r.camera, true
	}
	entry, ok := tags.MainCamera.First(r.world)
	if !ok {
		return Anchor{}, false
	}
	a := NewAnchor(r.world, entry.Entity())
	if !a.IsAlive() {
		return Anchor{}, false
	}
	r.camera = a
	return a, true
}

func (r *AnchorResolver) localViewer() (*donburi.Entry, bool) {
	var self *donburi.Entry
	components.Player.Each(r.world, func(entry *donburi.Entry) {
		if self == nil && components.Player.Get(entry).IsSelf {
			self = entry
		}
	})
	return self, self != nil
}

func avatarSkeleton(w donburi.World, entry *donburi.Entry) (*components.SkeletonData, bool) {
	if entry == nil || !entry.HasComponent(components.Player) {
		return nil, false
	}
	p := components.Player.Get(entry)
	if !p.HasAvatar || !w.Valid(p.Avatar) {
		return nil, false
	}
	avatar := w.Entry(p.Avatar)
	if !avatar.HasComponent(components.Skeleton) {
		return nil, false
	}
	return components.Skeleton.Get(avatar), true
}
