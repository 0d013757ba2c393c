package systems

import (
	"log"
	"slices"

	"github.com/automoto/doomerang-tracer/components"
	"github.com/automoto/doomerang-tracer/session"
	"github.com/automoto/doomerang-tracer/shared/gamemath"
	"github.com/automoto/doomerang-tracer/shared/messages"
	"github.com/automoto/doomerang-tracer/shared/netcomponents"
	"github.com/automoto/doomerang-tracer/systems/factory"
	"github.com/automoto/doomerang-tracer/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// NetSync mirrors relay snapshots into participants and publishes the
// resulting transitions through the session hub. It runs on the frame loop.
type NetSync struct {
	hub     *session.Hub
	ranks   *LabelDirectory
	roles   *LabelDirectory
	userID  string
	friends []string
	room    session.Descriptor
	present map[esync.NetworkId]bool
}

func NewNetSync(hub *session.Hub, ranks, roles *LabelDirectory, userID string, friends []string, room session.Descriptor) *NetSync {
	return &NetSync{
		hub:     hub,
		ranks:   ranks,
		roles:   roles,
		userID:  userID,
		friends: friends,
		room:    room,
		present: make(map[esync.NetworkId]bool),
	}
}

// Apply deserializes a snapshot and reconciles the world with it.
// The first snapshot enters the room.
func (n *NetSync) Apply(w donburi.World, snapshot esync.WorldSnapshot) {
	n.enter(w)
	clear(n.present)

	for _, ent := range snapshot {
		n.present[ent.Id] = true

		var compData []any
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				log.Printf("[netsync] Warning: dropping component of entity %d: %v", ent.Id, err)
				continue
			}
			compData = append(compData, instance)
		}
		n.ApplyEntity(w, ent.Id, compData)
	}

	n.prune(w)
}

// ApplyEntity creates or updates the participant replicated as id.
func (n *NetSync) ApplyEntity(w donburi.World, id esync.NetworkId, compData []any) {
	var identity *netcomponents.NetIdentityData
	var pose *netcomponents.NetPoseData
	for _, data := range compData {
		switch v := data.(type) {
		case netcomponents.NetIdentityData:
			identity = &v
		case netcomponents.NetPoseData:
			pose = &v
		}
	}

	entity := esync.FindByNetworkId(w, id)
	if !w.Valid(entity) {
		if identity == nil || pose == nil {
			// Wait for a complete snapshot before creating anything
			return
		}
		n.present[id] = true
		n.spawn(w, id, *identity, *pose)
		return
	}

	n.present[id] = true
	entry := w.Entry(entity)
	if identity != nil {
		n.applyIdentity(entry, *identity)
	}
	if pose != nil {
		n.applyPose(w, entry, *pose)
	}
}

// Leave drops every replicated participant and leaves the room.
func (n *NetSync) Leave(w donburi.World) {
	state := sessionState(w)
	if state == nil || !state.InRoom {
		return
	}
	state.InRoom = false
	log.Printf("[netsync] left %s/%s", n.room.World, n.room.Instance)
	n.hub.SessionLeft()

	var all []*donburi.Entry
	components.Player.Each(w, func(entry *donburi.Entry) {
		all = append(all, entry)
	})
	for _, entry := range all {
		factory.DestroyParticipant(w, entry)
	}
	n.ranks.Clear()
	n.roles.Clear()
	clear(n.present)
}

func (n *NetSync) enter(w donburi.World) {
	state := sessionState(w)
	if state == nil || state.InRoom {
		return
	}
	state.InRoom = true
	state.Descriptor = n.room
	log.Printf("[netsync] entered %s on %s", n.room.World, n.room.Server)
	n.hub.SessionEntered(n.room)
}

func (n *NetSync) spawn(w donburi.World, id esync.NetworkId, identity netcomponents.NetIdentityData, pose netcomponents.NetPoseData) {
	isSelf := identity.UserID == n.userID
	extra := []donburi.IComponentType{components.NetInterp, components.NetParticipant, esync.NetworkIdComponent}
	if !isSelf {
		extra = append(extra, tags.Remote)
	}

	pos := mgl64.Vec3{pose.X, pose.Y, pose.Z}
	entry := factory.CreateParticipant(w, components.PlayerData{
		UserID:      identity.UserID,
		DisplayName: identity.DisplayName,
		IsSelf:      isSelf,
		IsFriend:    !isSelf && slices.Contains(n.friends, identity.DisplayName),
	}, pos, pose.Yaw, factory.RigKey(pose.AvatarKey), extra...)

	esync.NetworkIdComponent.SetValue(entry, id)
	components.NetParticipant.SetValue(entry, components.NetParticipantData{
		NetworkID: id,
		AvatarKey: pose.AvatarKey,
	})
	components.NetInterp.SetValue(entry, components.NetInterpData{
		PrevRoot:    pos,
		TargetRoot:  pos,
		PrevYaw:     pose.Yaw,
		TargetYaw:   pose.Yaw,
		T:           1,
		Initialized: true,
	})
	if isSelf {
		if cam, ok := tags.MainCamera.First(w); ok {
			components.Camera.Get(cam).Yaw = pose.Yaw
		}
	}

	n.applyIdentity(entry, identity)
	n.hub.EntityJoined(entry)
}

func (n *NetSync) applyIdentity(entry *donburi.Entry, identity netcomponents.NetIdentityData) {
	n.ranks.Set(identity.UserID, identity.Rank)
	n.roles.Set(identity.UserID, identity.Role)
	components.Player.Get(entry).DisplayName = identity.DisplayName
}

func (n *NetSync) applyPose(w donburi.World, entry *donburi.Entry, pose netcomponents.NetPoseData) {
	player := components.Player.Get(entry)
	net := components.NetParticipant.Get(entry)

	// The local viewer steers its own root; only follow remote poses
	if !player.IsSelf {
		interp := components.NetInterp.Get(entry)
		current := components.Transform.Get(entry).Position
		interp.PrevYaw = gamemath.LerpAngle(interp.PrevYaw, interp.TargetYaw, interp.T)
		interp.PrevRoot = current
		interp.TargetRoot = mgl64.Vec3{pose.X, pose.Y, pose.Z}
		interp.TargetYaw = pose.Yaw
		interp.T = 0
	}

	if pose.AvatarKey != net.AvatarKey {
		net.AvatarKey = pose.AvatarKey
		factory.AttachAvatar(w, entry, factory.RigKey(pose.AvatarKey))
		n.hub.AvatarReady(entry)
	}
}

func (n *NetSync) prune(w donburi.World) {
	var gone []*donburi.Entry
	esync.NetworkEntityQuery.Each(w, func(entry *donburi.Entry) {
		id := esync.GetNetworkId(entry)
		if id == nil {
			return
		}
		if !n.present[*id] {
			gone = append(gone, entry)
		}
	})
	for _, entry := range gone {
		if entry.HasComponent(components.Player) {
			userID := components.Player.Get(entry).UserID
			n.ranks.Remove(userID)
			n.roles.Remove(userID)
		}
		n.hub.EntityLeft(entry.Entity())
		factory.DestroyParticipant(w, entry)
	}
}

// NewNetInterpSystem eases remote participants toward their latest replicated
// pose over one server tick.
func NewNetInterpSystem(tickRate func() int) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		rate := tickRate()
		if rate <= 0 {
			rate = 1
		}
		step := float64(rate) * float64(tickSeconds)

		tags.Remote.Each(e.World, func(entry *donburi.Entry) {
			stepInterp(e.World, entry, step)
		})
	}
}

func stepInterp(w donburi.World, entry *donburi.Entry, step float64) {
	interp := components.NetInterp.Get(entry)
	if !interp.Initialized {
		return
	}
	interp.T = gamemath.Clamp(interp.T+step, 0, 1)

	pos := interp.PrevRoot.Add(interp.TargetRoot.Sub(interp.PrevRoot).Mul(interp.T))
	yaw := gamemath.LerpAngle(interp.PrevYaw, interp.TargetYaw, interp.T)
	*components.Transform.Get(entry) = components.NewTransform(pos, yaw)
	factory.PoseRig(w, entry)
}

const poseResendTicks = 30

// NewPoseSender streams the local viewer's root pose to the relay whenever it
// changes, and at least every poseResendTicks ticks.
func NewPoseSender(send func(any) error) func(*ecs.ECS) {
	var last messages.AvatarPose
	sinceSend := poseResendTicks

	return func(e *ecs.ECS) {
		self, ok := localViewer(e.World)
		if !ok {
			return
		}
		sinceSend++

		msg := localPose(e.World, self)
		if msg == last && sinceSend < poseResendTicks {
			return
		}
		if err := send(msg); err != nil {
			log.Printf("[netsync] Warning: pose not sent: %v", err)
			return
		}
		last = msg
		sinceSend = 0
	}
}

func localPose(w donburi.World, self *donburi.Entry) messages.AvatarPose {
	root := components.Transform.Get(self)
	msg := messages.AvatarPose{
		X: root.Position.X(),
		Y: root.Position.Y(),
		Z: root.Position.Z(),
	}
	if cam, ok := tags.MainCamera.First(w); ok {
		msg.Yaw = components.Camera.Get(cam).Yaw
	}
	if self.HasComponent(components.NetParticipant) {
		msg.AvatarKey = components.NetParticipant.Get(self).AvatarKey
	}
	return msg
}
