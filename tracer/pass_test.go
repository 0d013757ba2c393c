package tracer

import (
	"image/color"
	"testing"

	cfg "github.com/automoto/doomerang-tracer/config"
	"github.com/automoto/doomerang-tracer/components"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// flatscreen harness: enabled, in a room, camera at the origin looking down +Z
func newFlatscreen(t *testing.T) *harness {
	t.Helper()
	h := newHarness(t, Options{})
	h.settings.Enabled.Set(true)
	spawnCamera(h.world, mgl64.Vec3{})
	return h
}

func TestRenderDisabledDrawsNothing(t *testing.T) {
	h := newHarness(t, Options{})
	spawnCamera(h.world, mgl64.Vec3{})
	h.join(components.PlayerData{UserID: "a"}, mgl64.Vec3{0, 0, 5}, nil)

	surf := h.render()
	if surf.begins != 0 || len(surf.segments) != 0 {
		t.Fatalf("expected no drawing while disabled, got %d begins", surf.begins)
	}
	if h.tracer.Material() != nil {
		t.Fatalf("material must not be created while disabled")
	}
}

func TestRenderNotInRoom(t *testing.T) {
	h := newFlatscreen(t)
	h.join(components.PlayerData{UserID: "a"}, mgl64.Vec3{0, 0, 5}, nil)
	h.host.inRoom = false

	if n := h.tracer.Render(&recordingSurface{}); n != 0 {
		t.Fatalf("expected 0 segments outside a room, got %d", n)
	}
}

func TestRenderFlatscreenSegment(t *testing.T) {
	h := newFlatscreen(t)
	h.join(components.PlayerData{UserID: "a"}, mgl64.Vec3{0, 0, 5}, nil)

	surf := h.render()
	if len(surf.segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(surf.segments))
	}
	seg := surf.segments[0]
	if seg.from != (mgl64.Vec3{0, 0, cfg.Tracer.FlatscreenStartOffset}) {
		t.Errorf("segment should start one offset in front of the camera, got %v", seg.from)
	}
	if seg.to != (mgl64.Vec3{0, 0, 5}) {
		t.Errorf("segment should end at the participant root, got %v", seg.to)
	}
	if seg.color != cfg.Tracer.DefaultOthersColor {
		t.Errorf("expected others color, got %v", seg.color)
	}
	if surf.pushes != 1 || surf.pops != 1 || surf.begins != 1 || surf.ends != 1 {
		t.Errorf("unbalanced surface calls: %+v", surf)
	}
}

func TestRenderFlatscreenCulling(t *testing.T) {
	tests := []struct {
		name   string
		target mgl64.Vec3
		drawn  bool
	}{
		{"ahead", mgl64.Vec3{2, 0, 6}, true},
		{"behind camera", mgl64.Vec3{0, 0, -4}, false},
		{"between camera and start", mgl64.Vec3{0, 0, 0.5}, false},
		{"level with start", mgl64.Vec3{5, 0, cfg.Tracer.FlatscreenStartOffset}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newFlatscreen(t)
			h.join(components.PlayerData{UserID: "a"}, tt.target, nil)
			if got := len(h.render().segments) == 1; got != tt.drawn {
				t.Fatalf("drawn = %v, want %v", got, tt.drawn)
			}
		})
	}
}

func TestRenderFlatscreenIgnoresTrigger(t *testing.T) {
	h := newFlatscreen(t)
	h.host.trigger = 0
	h.join(components.PlayerData{UserID: "a"}, mgl64.Vec3{0, 0, 5}, nil)

	if n := h.tracer.Render(&recordingSurface{}); n != 1 {
		t.Fatalf("flatscreen draws without trigger, got %d", n)
	}
}

func TestRenderImmersiveTriggerThreshold(t *testing.T) {
	tests := []struct {
		trigger float64
		want    int
	}{
		{0, 0},
		{0.39, 0},
		{0.4, 2},
		{1, 2},
	}
	for _, tt := range tests {
		h := newHarness(t, Options{})
		h.settings.Enabled.Set(true)
		h.host.immersive = true
		h.host.trigger = tt.trigger

		r := humanoidRig(components.BoneRightHand, components.BoneRightIndexDistal)
		h.join(components.PlayerData{UserID: "me", IsSelf: true}, mgl64.Vec3{}, &r)
		// Immersive mode does not cull, so a participant behind is still drawn
		h.join(components.PlayerData{UserID: "a"}, mgl64.Vec3{0, 0, 5}, nil)
		h.join(components.PlayerData{UserID: "b"}, mgl64.Vec3{0, 0, -5}, nil)

		if n := h.tracer.Render(&recordingSurface{}); n != tt.want {
			t.Errorf("trigger %.2f: got %d segments, want %d", tt.trigger, n, tt.want)
		}
	}
}

func TestRenderImmersiveStartsAtFingertip(t *testing.T) {
	h := newHarness(t, Options{})
	h.settings.Enabled.Set(true)
	h.host.immersive = true
	h.host.trigger = 1

	r := rig{humanoid: true, bones: map[components.HumanBone]mgl64.Vec3{
		components.BoneRightHand:        {0.2, 1.1, 0.1},
		components.BoneRightIndexDistal: {0.3, 1.2, 0.25},
	}}
	h.join(components.PlayerData{UserID: "me", IsSelf: true}, mgl64.Vec3{}, &r)
	h.join(components.PlayerData{UserID: "a"}, mgl64.Vec3{4, 0, 4}, nil)

	surf := h.render()
	if len(surf.segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(surf.segments))
	}
	if surf.segments[0].from != (mgl64.Vec3{0.3, 1.2, 0.25}) {
		t.Fatalf("expected fingertip start, got %v", surf.segments[0].from)
	}
}

func TestRenderRetriesUntilOriginResolves(t *testing.T) {
	h := newHarness(t, Options{})
	h.settings.Enabled.Set(true)
	h.join(components.PlayerData{UserID: "a"}, mgl64.Vec3{0, 0, 5}, nil)

	if n := h.tracer.Render(&recordingSurface{}); n != 0 {
		t.Fatalf("expected nothing before a camera exists, got %d", n)
	}
	if _, ok := h.tracer.Origin(); ok {
		t.Fatalf("origin must stay unresolved")
	}

	spawnCamera(h.world, mgl64.Vec3{})
	if n := h.tracer.Render(&recordingSurface{}); n != 1 {
		t.Fatalf("expected draw once the camera appears, got %d", n)
	}
}

func TestRenderSkipsRemovedParticipants(t *testing.T) {
	h := newFlatscreen(t)
	r := humanoidRig(components.BoneHips)
	gone := h.join(components.PlayerData{UserID: "gone"}, mgl64.Vec3{0, 0, 5}, &r)
	h.join(components.PlayerData{UserID: "stays"}, mgl64.Vec3{1, 0, 5}, nil)

	// Removed without a leave notification; its hips bone is still alive
	h.world.Remove(gone.Entity())

	surf := h.render()
	if len(surf.segments) != 1 || surf.segments[0].to != (mgl64.Vec3{1, 0, 5}) {
		t.Fatalf("expected only the live participant, got %+v", surf.segments)
	}
	if h.tracer.Tracked().Len() != 2 {
		t.Fatalf("render must not mutate the tracked set")
	}
}

func TestRenderSkipsRemovedTarget(t *testing.T) {
	h := newFlatscreen(t)
	r := humanoidRig(components.BoneHips)
	p := h.join(components.PlayerData{UserID: "a"}, mgl64.Vec3{0, 0, 5}, &r)

	h.world.Remove(boneEntity(h.world, p, components.BoneHips))
	if n := h.tracer.Render(&recordingSurface{}); n != 0 {
		t.Fatalf("expected dead target to be skipped, got %d", n)
	}
}

func TestRenderEndsAtHips(t *testing.T) {
	h := newFlatscreen(t)
	r := rig{humanoid: true, bones: map[components.HumanBone]mgl64.Vec3{
		components.BoneHips: {0, 1, 7},
	}}
	h.join(components.PlayerData{UserID: "a"}, mgl64.Vec3{0, 0, 7}, &r)

	surf := h.render()
	if len(surf.segments) != 1 || surf.segments[0].to != (mgl64.Vec3{0, 1, 7}) {
		t.Fatalf("expected segment to end at the hips, got %+v", surf.segments)
	}
}

func TestRenderColors(t *testing.T) {
	verified := LabelFunc(func(id Identity) string {
		if id.DisplayName == "Alder" || id.DisplayName == "Juniper" {
			return "Verified"
		}
		return ""
	})

	tests := []struct {
		name       string
		player     components.PlayerData
		prioritize bool
		want       color.RGBA
	}{
		{"other", components.PlayerData{UserID: "1", DisplayName: "Stranger"}, false, cfg.Tracer.DefaultOthersColor},
		{"friend", components.PlayerData{UserID: "2", DisplayName: "Moth", IsFriend: true}, false, cfg.Tracer.DefaultFriendsColor},
		{"marked peer", components.PlayerData{UserID: "3", DisplayName: "Alder"}, false, cfg.Tracer.DefaultMarkedPeerColor},
		{"marked friend", components.PlayerData{UserID: "4", DisplayName: "Juniper", IsFriend: true}, false, cfg.Tracer.DefaultMarkedPeerColor},
		{"marked friend prioritized", components.PlayerData{UserID: "4", DisplayName: "Juniper", IsFriend: true}, true, cfg.Tracer.DefaultFriendsColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, Options{Labels: []LabelProvider{verified}})
			h.settings.Enabled.Set(true)
			h.settings.FriendPrioritize.Set(tt.prioritize)
			spawnCamera(h.world, mgl64.Vec3{})
			h.join(tt.player, mgl64.Vec3{0, 0, 5}, nil)

			surf := h.render()
			if len(surf.segments) != 1 {
				t.Fatalf("expected 1 segment, got %d", len(surf.segments))
			}
			if surf.segments[0].color != tt.want {
				t.Fatalf("color = %v, want %v", surf.segments[0].color, tt.want)
			}
		})
	}
}

func TestRenderPicksUpSettingChanges(t *testing.T) {
	h := newFlatscreen(t)
	h.join(components.PlayerData{UserID: "a"}, mgl64.Vec3{0, 0, 5}, nil)

	custom := color.RGBA{R: 10, G: 20, B: 30, A: 128}
	h.settings.OthersColor.Set(custom)
	if got := h.render().segments[0].color; got != custom {
		t.Fatalf("expected updated color, got %v", got)
	}

	h.settings.Enabled.Set(false)
	if n := h.tracer.Render(&recordingSurface{}); n != 0 {
		t.Fatalf("expected nothing after disabling, got %d", n)
	}
}

func TestRenderMaterialCreatedOnce(t *testing.T) {
	h := newFlatscreen(t)
	h.join(components.PlayerData{UserID: "a"}, mgl64.Vec3{0, 0, 5}, nil)

	first := h.render()
	second := h.render()
	if first.material == nil || first.material != second.material {
		t.Fatalf("expected the same material across passes")
	}

	m := first.material
	if m.Blend.BlendFactorSourceRGB != ebiten.BlendFactorSourceAlpha ||
		m.Blend.BlendFactorDestinationRGB != ebiten.BlendFactorOneMinusSourceAlpha {
		t.Errorf("unexpected blend factors %+v", m.Blend)
	}
	if m.CullFaces || m.DepthWrite {
		t.Errorf("lines must not cull or write depth")
	}
}

func TestCulled(t *testing.T) {
	fwd := mgl64.Vec3{0, 0, 1}
	if Culled(mgl64.Vec3{}, fwd, mgl64.Vec3{0, 0, 1}) {
		t.Errorf("target ahead must not be culled")
	}
	if !Culled(mgl64.Vec3{}, fwd, mgl64.Vec3{0, 0, -1}) {
		t.Errorf("target behind must be culled")
	}
	if !Culled(mgl64.Vec3{}, fwd, mgl64.Vec3{1, 0, 0}) {
		t.Errorf("target exactly sideways must be culled")
	}
}
