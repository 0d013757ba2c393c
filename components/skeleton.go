package components

import (
	"github.com/yohamta/donburi"
)

// HumanBone identifies a joint of a humanoid rig
type HumanBone int

const (
	BoneHips HumanBone = iota
	BoneHead
	BoneRightHand
	BoneRightIndexProximal
	BoneRightIndexIntermediate
	BoneRightIndexDistal
	BoneCount // Must be last
)

var boneNames = [BoneCount]string{
	BoneHips:                   "Hips",
	BoneHead:                   "Head",
	BoneRightHand:              "RightHand",
	BoneRightIndexProximal:     "RightIndexProximal",
	BoneRightIndexIntermediate: "RightIndexIntermediate",
	BoneRightIndexDistal:       "RightIndexDistal",
}

func (b HumanBone) String() string {
	if b < 0 || b >= BoneCount {
		return "Unknown"
	}
	return boneNames[b]
}

// SkeletonData describes the rig of an avatar. Each bone is its own entity with a Transform.
type SkeletonData struct {
	Humanoid bool
	Bones    map[HumanBone]donburi.Entity
}

var Skeleton = donburi.NewComponentType[SkeletonData]()

// Bone returns the entity for b if the rig has it and it still exists in w.
func (s *SkeletonData) Bone(w donburi.World, b HumanBone) (donburi.Entity, bool) {
	if s == nil || s.Bones == nil {
		return donburi.Null, false
	}
	e, ok := s.Bones[b]
	if !ok || !w.Valid(e) {
		return donburi.Null, false
	}
	return e, true
}
