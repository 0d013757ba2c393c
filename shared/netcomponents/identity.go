package netcomponents

import "github.com/yohamta/donburi"

// NetIdentityData names the user behind a replicated participant. Rank and Role
// are free-form labels supplied by the joining client.
type NetIdentityData struct {
	UserID      string
	DisplayName string
	Rank        string
	Role        string
}

var NetIdentity = donburi.NewComponentType[NetIdentityData]()
