package factory

import (
	"github.com/automoto/doomerang-tracer/archetypes"
	"github.com/automoto/doomerang-tracer/components"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// CreateParticipant spawns a participant root at pos facing yaw, with an avatar of key.
// extra components are added to the root.
func CreateParticipant(w donburi.World, p components.PlayerData, pos mgl64.Vec3, yaw float64, key RigKey, extra ...donburi.IComponentType) *donburi.Entry {
	entry := archetypes.Participant.Spawn(w, extra...)
	p.Avatar = donburi.Null
	p.HasAvatar = false
	components.Player.SetValue(entry, p)
	components.Transform.SetValue(entry, components.NewTransform(pos, yaw))
	AttachAvatar(w, entry, key)
	return entry
}

// DestroyParticipant removes a participant together with its avatar.
func DestroyParticipant(w donburi.World, entry *donburi.Entry) {
	if entry == nil || !entry.Valid() {
		return
	}
	if entry.HasComponent(components.Player) {
		p := components.Player.Get(entry)
		if p.HasAvatar {
			DestroyAvatar(w, p.Avatar)
		}
	}
	w.Remove(entry.Entity())
}
