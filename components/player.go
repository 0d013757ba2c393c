package components

import (
	"github.com/yohamta/donburi"
)

// PlayerData identifies a session participant. The entity itself carries the root Transform.
type PlayerData struct {
	UserID      string
	DisplayName string
	IsSelf      bool
	IsFriend    bool

	// Avatar is the entity carrying the Skeleton; swapped when the participant changes avatar
	Avatar    donburi.Entity
	HasAvatar bool
}

var Player = donburi.NewComponentType[PlayerData]()

// AvatarOwnerData links an avatar entity back to its participant
type AvatarOwnerData struct {
	Owner donburi.Entity
}

var AvatarOwner = donburi.NewComponentType[AvatarOwnerData]()
