package factory

import (
	"github.com/automoto/doomerang-tracer/archetypes"
	"github.com/automoto/doomerang-tracer/components"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// RigKey identifies an avatar layout. It is replicated as a plain number.
type RigKey uint32

const (
	RigHumanoid RigKey = iota
	RigHumanoidNoHips
	RigHumanoidNoFingers
	RigNonHumanoid
	RigCount
)

// RigLayout lists the bones an avatar carries
type RigLayout struct {
	Humanoid bool
	Bones    []components.HumanBone
}

var rigLayouts = [RigCount]RigLayout{
	RigHumanoid: {
		Humanoid: true,
		Bones: []components.HumanBone{
			components.BoneHips,
			components.BoneHead,
			components.BoneRightHand,
			components.BoneRightIndexProximal,
			components.BoneRightIndexIntermediate,
			components.BoneRightIndexDistal,
		},
	},
	RigHumanoidNoHips: {
		Humanoid: true,
		Bones: []components.HumanBone{
			components.BoneHead,
			components.BoneRightHand,
			components.BoneRightIndexProximal,
			components.BoneRightIndexIntermediate,
			components.BoneRightIndexDistal,
		},
	},
	RigHumanoidNoFingers: {
		Humanoid: true,
		Bones: []components.HumanBone{
			components.BoneHips,
			components.BoneHead,
			components.BoneRightHand,
		},
	},
	// Props and pets: a single pivot that is not a humanoid rig
	RigNonHumanoid: {
		Humanoid: false,
		Bones:    []components.HumanBone{components.BoneHips},
	},
}

// Layout returns the layout for k, falling back to the full humanoid rig.
func (k RigKey) Layout() RigLayout {
	if k >= RigCount {
		return rigLayouts[RigHumanoid]
	}
	return rigLayouts[k]
}

func (k RigKey) String() string {
	switch k {
	case RigHumanoid:
		return "humanoid"
	case RigHumanoidNoHips:
		return "humanoid-no-hips"
	case RigHumanoidNoFingers:
		return "humanoid-no-fingers"
	case RigNonHumanoid:
		return "non-humanoid"
	default:
		return "unknown"
	}
}

// Bone offsets from the participant root, facing +Z. Right is -X.
var boneOffsets = [components.BoneCount]mgl64.Vec3{
	components.BoneHips:                   {0, 0.95, 0},
	components.BoneHead:                   {0, 1.65, 0},
	components.BoneRightHand:              {-0.22, 1.05, 0.30},
	components.BoneRightIndexProximal:     {-0.24, 1.05, 0.38},
	components.BoneRightIndexIntermediate: {-0.245, 1.05, 0.42},
	components.BoneRightIndexDistal:       {-0.25, 1.05, 0.45},
}

// AttachAvatar gives owner a fresh avatar with the bones of key, destroying the previous one.
func AttachAvatar(w donburi.World, owner *donburi.Entry, key RigKey) *donburi.Entry {
	player := components.Player.Get(owner)
	if player.HasAvatar {
		DestroyAvatar(w, player.Avatar)
	}

	layout := key.Layout()
	avatar := archetypes.Avatar.Spawn(w)
	skel := components.SkeletonData{
		Humanoid: layout.Humanoid,
		Bones:    make(map[components.HumanBone]donburi.Entity, len(layout.Bones)),
	}
	for _, b := range layout.Bones {
		skel.Bones[b] = archetypes.Bone.Spawn(w).Entity()
	}
	components.Skeleton.SetValue(avatar, skel)
	components.AvatarOwner.SetValue(avatar, components.AvatarOwnerData{Owner: owner.Entity()})

	player.Avatar = avatar.Entity()
	player.HasAvatar = true

	PoseRig(w, owner)
	return avatar
}

// DestroyAvatar removes an avatar and its bones. Already removed entities are ignored.
func DestroyAvatar(w donburi.World, avatar donburi.Entity) {
	if !w.Valid(avatar) {
		return
	}
	entry := w.Entry(avatar)
	if entry.HasComponent(components.Skeleton) {
		for _, bone := range components.Skeleton.Get(entry).Bones {
			if w.Valid(bone) {
				w.Remove(bone)
			}
		}
	}
	w.Remove(avatar)
}

// PoseRig places the avatar and every bone of owner relative to its root transform.
func PoseRig(w donburi.World, owner *donburi.Entry) {
	player := components.Player.Get(owner)
	if !player.HasAvatar || !w.Valid(player.Avatar) {
		return
	}
	root := components.Transform.Get(owner)
	rot := root.Rotation
	if rot.Len() == 0 {
		rot = mgl64.QuatIdent()
	}

	avatar := w.Entry(player.Avatar)
	components.Transform.SetValue(avatar, *root)

	skel := components.Skeleton.Get(avatar)
	for b, e := range skel.Bones {
		if !w.Valid(e) {
			continue
		}
		components.Transform.SetValue(w.Entry(e), components.TransformData{
			Position: root.Position.Add(rot.Rotate(boneOffsets[b])),
			Rotation: rot,
		})
	}
}
