package systems

import (
	"testing"

	"github.com/automoto/doomerang-tracer/components"
	"github.com/automoto/doomerang-tracer/session"
	"github.com/automoto/doomerang-tracer/shared/messages"
	"github.com/automoto/doomerang-tracer/shared/netcomponents"
	"github.com/automoto/doomerang-tracer/systems/factory"
	"github.com/automoto/doomerang-tracer/tags"
	"github.com/automoto/doomerang-tracer/tracer"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

type netFixture struct {
	w     donburi.World
	sync  *NetSync
	log   *eventLog
	ranks *LabelDirectory
	roles *LabelDirectory
}

func newNetFixture() *netFixture {
	hub := session.NewHub()
	log := &eventLog{}
	hub.Subscribe(log)
	ranks, roles := NewLabelDirectory(), NewLabelDirectory()
	return &netFixture{
		w:     newTestWorld(),
		sync:  NewNetSync(hub, ranks, roles, "me", []string{"Moth"}, session.Descriptor{Server: "relay:7373", World: "Plaza"}),
		log:   log,
		ranks: ranks,
		roles: roles,
	}
}

// snapshot feeds already-deserialized entity state through the same path as Apply.
func (f *netFixture) snapshot(entities map[esync.NetworkId][]any) {
	f.sync.enter(f.w)
	clear(f.sync.present)
	for id, state := range entities {
		f.sync.present[id] = true
		f.sync.ApplyEntity(f.w, id, state)
	}
	f.sync.prune(f.w)
}

func participant(userID, name string, x float64, key factory.RigKey) []any {
	return []any{
		netcomponents.NetIdentityData{UserID: userID, DisplayName: name, Rank: "", Role: ""},
		netcomponents.NetPoseData{X: x, AvatarKey: uint32(key)},
	}
}

func (f *netFixture) byUser(userID string) (*donburi.Entry, bool) {
	var found *donburi.Entry
	components.Player.Each(f.w, func(entry *donburi.Entry) {
		if components.Player.Get(entry).UserID == userID {
			found = entry
		}
	})
	return found, found != nil
}

func TestNetSyncFirstSnapshotEntersRoom(t *testing.T) {
	f := newNetFixture()
	f.snapshot(map[esync.NetworkId][]any{
		1: participant("me", "Me", 0, factory.RigHumanoid),
	})

	if !inRoom(f.w) {
		t.Fatalf("expected to be in the room")
	}
	if f.log.events[0].kind != "entered" || f.log.count("joined") != 1 {
		t.Fatalf("unexpected events %+v", f.log.events)
	}
	self, ok := f.byUser("me")
	if !ok || !components.Player.Get(self).IsSelf {
		t.Fatalf("own identity should be the local viewer")
	}
	if self.HasComponent(tags.Remote) {
		t.Fatalf("the local viewer is not remote")
	}
}

func TestNetSyncRemoteParticipants(t *testing.T) {
	f := newNetFixture()
	f.snapshot(map[esync.NetworkId][]any{
		1: participant("me", "Me", 0, factory.RigHumanoid),
		2: participant("u2", "Moth", 3, factory.RigHumanoid),
		3: participant("u3", "Wren", 5, factory.RigNonHumanoid),
	})

	moth, ok := f.byUser("u2")
	if !ok {
		t.Fatalf("missing remote participant")
	}
	if !components.Player.Get(moth).IsFriend {
		t.Fatalf("Moth is on the friends list")
	}
	wren, _ := f.byUser("u3")
	if components.Player.Get(wren).IsFriend {
		t.Fatalf("Wren is not a friend")
	}
	if !wren.HasComponent(tags.Remote) {
		t.Fatalf("remote participants need the Remote tag")
	}
}

func TestNetSyncIncompleteStateWaits(t *testing.T) {
	f := newNetFixture()
	f.snapshot(map[esync.NetworkId][]any{
		4: {netcomponents.NetIdentityData{UserID: "u4"}},
	})
	if _, ok := f.byUser("u4"); ok {
		t.Fatalf("participant created without a pose")
	}
	if f.log.count("joined") != 0 {
		t.Fatalf("no join expected")
	}
}

func TestNetSyncLabels(t *testing.T) {
	f := newNetFixture()
	f.snapshot(map[esync.NetworkId][]any{
		2: {
			netcomponents.NetIdentityData{UserID: "u2", DisplayName: "Quill", Rank: "Verified User", Role: "Moderator"},
			netcomponents.NetPoseData{},
		},
	})

	id := tracer.Identity{UserID: "u2"}
	if f.ranks.Label(id) != "Verified User" || f.roles.Label(id) != "Moderator" {
		t.Fatalf("labels not published: %q %q", f.ranks.Label(id), f.roles.Label(id))
	}

	f.snapshot(map[esync.NetworkId][]any{})
	if f.ranks.Label(id) != "" || f.roles.Label(id) != "" {
		t.Fatalf("labels should go with the participant")
	}
}

func TestNetSyncMissingEntityLeaves(t *testing.T) {
	f := newNetFixture()
	f.snapshot(map[esync.NetworkId][]any{
		2: participant("u2", "Wren", 0, factory.RigHumanoid),
	})
	entry, _ := f.byUser("u2")
	gone := entry.Entity()
	f.log.reset()

	f.snapshot(map[esync.NetworkId][]any{})

	if len(f.log.events) != 1 || f.log.events[0].kind != "left" || f.log.events[0].entity != gone {
		t.Fatalf("expected a single leave for the dropped entity, got %+v", f.log.events)
	}
	if f.w.Valid(gone) {
		t.Fatalf("dropped participant still in the world")
	}
}

func TestNetSyncAvatarSwap(t *testing.T) {
	f := newNetFixture()
	f.snapshot(map[esync.NetworkId][]any{
		2: participant("u2", "Wren", 0, factory.RigHumanoid),
	})
	entry, _ := f.byUser("u2")
	before := components.Player.Get(entry).Avatar
	f.log.reset()

	// Same key: no swap
	f.snapshot(map[esync.NetworkId][]any{
		2: participant("u2", "Wren", 1, factory.RigHumanoid),
	})
	if f.log.count("avatar") != 0 {
		t.Fatalf("unexpected avatar-ready")
	}

	f.snapshot(map[esync.NetworkId][]any{
		2: participant("u2", "Wren", 1, factory.RigHumanoidNoHips),
	})
	if f.log.count("avatar") != 1 {
		t.Fatalf("expected one avatar-ready, got %+v", f.log.events)
	}
	after := components.Player.Get(entry).Avatar
	if after == before || f.w.Valid(before) {
		t.Fatalf("old avatar should be replaced")
	}
}

func TestNetSyncLeave(t *testing.T) {
	f := newNetFixture()
	f.snapshot(map[esync.NetworkId][]any{
		1: participant("me", "Me", 0, factory.RigHumanoid),
		2: participant("u2", "Wren", 0, factory.RigHumanoid),
	})
	f.log.reset()

	f.sync.Leave(f.w)

	if inRoom(f.w) {
		t.Fatalf("still in room")
	}
	if len(f.log.events) != 1 || f.log.events[0].kind != "session-left" {
		t.Fatalf("expected only session-left, got %+v", f.log.events)
	}
	if _, ok := f.byUser("u2"); ok {
		t.Fatalf("participants should be gone")
	}
}

func TestNetInterpolation(t *testing.T) {
	f := newNetFixture()
	f.snapshot(map[esync.NetworkId][]any{
		2: participant("u2", "Wren", 0, factory.RigHumanoid),
	})
	f.snapshot(map[esync.NetworkId][]any{
		2: participant("u2", "Wren", 6, factory.RigHumanoid),
	})
	entry, _ := f.byUser("u2")

	system := NewNetInterpSystem(func() int { return 20 })
	e := ecs.NewECS(f.w)

	system(e)
	x := components.Transform.Get(entry).Position.X()
	if x <= 0 || x >= 6 {
		t.Fatalf("after one frame x = %v, want strictly between 0 and 6", x)
	}

	for i := 0; i < 5; i++ {
		system(e)
	}
	if x := components.Transform.Get(entry).Position.X(); x != 6 {
		t.Fatalf("after a full server tick x = %v, want 6", x)
	}
}

func TestPoseSender(t *testing.T) {
	f := newNetFixture()
	f.snapshot(map[esync.NetworkId][]any{
		1: participant("me", "Me", 2, factory.RigHumanoid),
	})

	var sent []messages.AvatarPose
	system := NewPoseSender(func(msg any) error {
		sent = append(sent, msg.(messages.AvatarPose))
		return nil
	})
	e := ecs.NewECS(f.w)

	system(e)
	if len(sent) != 1 || sent[0].X != 2 {
		t.Fatalf("expected the initial pose, got %+v", sent)
	}

	system(e)
	if len(sent) != 1 {
		t.Fatalf("unchanged pose should not be resent immediately")
	}

	self, _ := f.byUser("me")
	components.Transform.Get(self).Position[0] = 3
	system(e)
	if len(sent) != 2 || sent[1].X != 3 {
		t.Fatalf("moved pose should be sent, got %+v", sent)
	}
}
