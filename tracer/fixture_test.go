package tracer

import (
	"image/color"
	"testing"

	"github.com/automoto/doomerang-tracer/components"
	"github.com/automoto/doomerang-tracer/settings"
	"github.com/automoto/doomerang-tracer/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

type fakeHost struct {
	immersive bool
	inRoom    bool
	trigger   float64
}

func (h *fakeHost) Immersive() bool       { return h.immersive }
func (h *fakeHost) InRoom() bool          { return h.inRoom }
func (h *fakeHost) TriggerValue() float64 { return h.trigger }

type segment struct {
	from, to mgl64.Vec3
	color    color.RGBA
}

type recordingSurface struct {
	pushes, pops int
	begins, ends int
	material     *Material
	current      color.RGBA
	pending      []mgl64.Vec3
	segments     []segment
}

func (s *recordingSurface) PushMatrix()        { s.pushes++ }
func (s *recordingSurface) PopMatrix()         { s.pops++ }
func (s *recordingSurface) Begin(m *Material)  { s.begins++; s.material = m }
func (s *recordingSurface) Color(c color.RGBA) { s.current = c }
func (s *recordingSurface) End()               { s.ends++ }

func (s *recordingSurface) Vertex(p mgl64.Vec3) {
	s.pending = append(s.pending, p)
	if len(s.pending) == 2 {
		s.segments = append(s.segments, segment{from: s.pending[0], to: s.pending[1], color: s.current})
		s.pending = s.pending[:0]
	}
}

type rig struct {
	humanoid bool
	bones    map[components.HumanBone]mgl64.Vec3
}

func humanoidRig(bones ...components.HumanBone) rig {
	r := rig{humanoid: true, bones: make(map[components.HumanBone]mgl64.Vec3)}
	for i, b := range bones {
		// Distinct, recognisable positions per bone
		r.bones[b] = mgl64.Vec3{float64(b), 1, float64(i)}
	}
	return r
}

func spawnCamera(w donburi.World, pos mgl64.Vec3) *donburi.Entry {
	entry := w.Entry(w.Create(tags.MainCamera, components.Camera, components.Transform))
	components.Transform.SetValue(entry, components.NewTransform(pos, 0))
	return entry
}

func spawnParticipant(w donburi.World, p components.PlayerData, root mgl64.Vec3, r *rig) *donburi.Entry {
	entry := w.Entry(w.Create(tags.Player, components.Player, components.Transform))
	components.Player.SetValue(entry, p)
	components.Transform.SetValue(entry, components.NewTransform(root, 0))
	if r != nil {
		attachRig(w, entry, *r)
	}
	return entry
}

func attachRig(w donburi.World, owner *donburi.Entry, r rig) *donburi.Entry {
	avatar := w.Entry(w.Create(tags.Avatar, components.Skeleton, components.AvatarOwner, components.Transform))
	skel := components.SkeletonData{
		Humanoid: r.humanoid,
		Bones:    make(map[components.HumanBone]donburi.Entity, len(r.bones)),
	}
	for b, pos := range r.bones {
		bone := w.Entry(w.Create(tags.Bone, components.Transform))
		components.Transform.SetValue(bone, components.NewTransform(pos, 0))
		skel.Bones[b] = bone.Entity()
	}
	components.Skeleton.SetValue(avatar, skel)
	components.AvatarOwner.SetValue(avatar, components.AvatarOwnerData{Owner: owner.Entity()})

	p := components.Player.Get(owner)
	p.Avatar = avatar.Entity()
	p.HasAvatar = true
	return avatar
}

func boneEntity(w donburi.World, participant *donburi.Entry, b components.HumanBone) donburi.Entity {
	p := components.Player.Get(participant)
	skel := components.Skeleton.Get(w.Entry(p.Avatar))
	return skel.Bones[b]
}

type harness struct {
	world    donburi.World
	host     *fakeHost
	settings *Settings
	tracer   *Tracer
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	w := donburi.NewWorld()
	host := &fakeHost{inRoom: true}
	s := NewSettings(settings.NewStore(settings.NewMemoryBackend()))
	tr := New(host, s, opts)
	tr.Bind(w)
	return &harness{world: w, host: host, settings: s, tracer: tr}
}

func (h *harness) join(p components.PlayerData, root mgl64.Vec3, r *rig) *donburi.Entry {
	entry := spawnParticipant(h.world, p, root, r)
	h.tracer.OnEntityJoined(entry)
	return entry
}

func (h *harness) render() *recordingSurface {
	surf := &recordingSurface{}
	h.tracer.Render(surf)
	return surf
}
