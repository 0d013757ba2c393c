package components

import (
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
)

// NetParticipantData links a local participant entity to its replicated network id
type NetParticipantData struct {
	NetworkID esync.NetworkId
	// AvatarKey identifies the rig layout last applied; a change means an avatar swap
	AvatarKey uint32
}

var NetParticipant = donburi.NewComponentType[NetParticipantData]()
