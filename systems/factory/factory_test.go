package factory

import (
	"testing"

	"github.com/automoto/doomerang-tracer/components"
	"github.com/automoto/doomerang-tracer/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

const eps = 1e-9

func count(w donburi.World, c donburi.IComponentType) int {
	return donburi.NewQuery(filter.Contains(c)).Count(w)
}

func TestCreateParticipantAttachesRig(t *testing.T) {
	w := donburi.NewWorld()
	entry := CreateParticipant(w, components.PlayerData{UserID: "u"}, mgl64.Vec3{1, 0, 2}, 0, RigHumanoid)

	p := components.Player.Get(entry)
	if !p.HasAvatar || !w.Valid(p.Avatar) {
		t.Fatalf("expected a live avatar")
	}
	skel := components.Skeleton.Get(w.Entry(p.Avatar))
	if !skel.Humanoid || len(skel.Bones) != len(RigHumanoid.Layout().Bones) {
		t.Fatalf("unexpected skeleton %+v", skel)
	}

	hips, ok := skel.Bone(w, components.BoneHips)
	if !ok {
		t.Fatalf("expected hips bone")
	}
	got := components.Transform.Get(w.Entry(hips)).Position
	if !got.ApproxEqualThreshold(mgl64.Vec3{1, 0.95, 2}, eps) {
		t.Fatalf("hips at %v", got)
	}
}

func TestRigLayouts(t *testing.T) {
	tests := []struct {
		key      RigKey
		humanoid bool
		hasHips  bool
		hasTip   bool
	}{
		{RigHumanoid, true, true, true},
		{RigHumanoidNoHips, true, false, true},
		{RigHumanoidNoFingers, true, true, false},
		{RigNonHumanoid, false, true, false},
		{RigKey(99), true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			w := donburi.NewWorld()
			entry := CreateParticipant(w, components.PlayerData{}, mgl64.Vec3{}, 0, tt.key)
			skel := components.Skeleton.Get(w.Entry(components.Player.Get(entry).Avatar))

			if skel.Humanoid != tt.humanoid {
				t.Errorf("humanoid = %v, want %v", skel.Humanoid, tt.humanoid)
			}
			if _, ok := skel.Bone(w, components.BoneHips); ok != tt.hasHips {
				t.Errorf("hips = %v, want %v", ok, tt.hasHips)
			}
			if _, ok := skel.Bone(w, components.BoneRightIndexDistal); ok != tt.hasTip {
				t.Errorf("fingertip = %v, want %v", ok, tt.hasTip)
			}
		})
	}
}

func TestAttachAvatarReplacesPrevious(t *testing.T) {
	w := donburi.NewWorld()
	entry := CreateParticipant(w, components.PlayerData{}, mgl64.Vec3{}, 0, RigHumanoid)
	old := components.Player.Get(entry).Avatar
	oldBones := components.Skeleton.Get(w.Entry(old)).Bones

	AttachAvatar(w, entry, RigNonHumanoid)

	if w.Valid(old) {
		t.Fatalf("previous avatar must be removed")
	}
	for b, e := range oldBones {
		if w.Valid(e) {
			t.Fatalf("previous bone %s still alive", b)
		}
	}
	if n := count(w, tags.Bone); n != len(RigNonHumanoid.Layout().Bones) {
		t.Fatalf("expected only the new bones, found %d", n)
	}
}

func TestPoseRigFollowsYaw(t *testing.T) {
	w := donburi.NewWorld()
	// Facing +X, the right hand sits on +Z
	yaw := mgl64.DegToRad(90)
	entry := CreateParticipant(w, components.PlayerData{}, mgl64.Vec3{5, 0, 5}, yaw, RigHumanoid)
	skel := components.Skeleton.Get(w.Entry(components.Player.Get(entry).Avatar))

	hand, _ := skel.Bone(w, components.BoneRightHand)
	got := components.Transform.Get(w.Entry(hand)).Position
	want := mgl64.Vec3{5 + 0.30, 1.05, 5 + 0.22}
	if !got.ApproxEqualThreshold(want, 1e-6) {
		t.Fatalf("right hand at %v, want %v", got, want)
	}

	components.Transform.Get(entry).Position = mgl64.Vec3{0, 0, 0}
	PoseRig(w, entry)
	hips, _ := skel.Bone(w, components.BoneHips)
	if got := components.Transform.Get(w.Entry(hips)).Position; !got.ApproxEqualThreshold(mgl64.Vec3{0, 0.95, 0}, eps) {
		t.Fatalf("hips did not follow the root: %v", got)
	}
}

func TestDestroyParticipant(t *testing.T) {
	w := donburi.NewWorld()
	entry := CreateParticipant(w, components.PlayerData{}, mgl64.Vec3{}, 0, RigHumanoid)
	e := entry.Entity()

	DestroyParticipant(w, entry)

	if w.Valid(e) {
		t.Fatalf("participant still alive")
	}
	if count(w, tags.Bone) != 0 || count(w, tags.Avatar) != 0 {
		t.Fatalf("avatar or bones left behind")
	}
	DestroyParticipant(w, nil)
}

func TestCreateCamera(t *testing.T) {
	w := donburi.NewWorld()
	CreateCamera(w)
	entry, ok := tags.MainCamera.First(w)
	if !ok {
		t.Fatalf("expected tagged main camera")
	}
	if components.Camera.Get(entry).FovY <= 0 {
		t.Fatalf("camera fov not initialised")
	}
}
