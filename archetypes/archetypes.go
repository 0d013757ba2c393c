package archetypes

import (
	"github.com/automoto/doomerang-tracer/components"
	"github.com/automoto/doomerang-tracer/tags"
	"github.com/yohamta/donburi"
)

var (
	Participant = newArchetype(
		tags.Player,
		components.Player,
		components.Transform,
	)
	Avatar = newArchetype(
		tags.Avatar,
		components.Skeleton,
		components.AvatarOwner,
		components.Transform,
	)
	Bone = newArchetype(
		tags.Bone,
		components.Transform,
	)
	Camera = newArchetype(
		tags.MainCamera,
		components.Camera,
		components.Transform,
	)
	Session = newArchetype(
		components.Session,
	)
	HUD = newArchetype(
		components.HUD,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	all := make([]donburi.IComponentType, 0, len(a.components)+len(cs))
	all = append(all, a.components...)
	all = append(all, cs...)
	return w.Entry(w.Create(all...))
}
