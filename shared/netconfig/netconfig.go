// Package netconfig defines lightweight types shared between the client, the
// relay server and the room directory. It must have zero dependencies on
// ebiten or any graphics library so the server binaries stay headless.
package netconfig

import "strings"

const (
	DefaultPort     = 7373
	DefaultTickRate = 20
	// DirectoryTTLSeconds is how long the directory keeps a room without a heartbeat
	DirectoryTTLSeconds = 90
)

// RoomInfo describes a relay server hosting one room instance.
type RoomInfo struct {
	ID         string `json:"id"`
	World      string `json:"world"`
	Instance   string `json:"instance"`
	Address    string `json:"address"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	Version    string `json:"version"`
}

// Full reports whether the room has reached its player cap. A zero cap means unlimited.
func (r RoomInfo) Full() bool {
	return r.MaxPlayers > 0 && r.Players >= r.MaxPlayers
}

// PickRoom returns the least populated open room for world, matched case-insensitively.
func PickRoom(rooms []RoomInfo, world string) (RoomInfo, bool) {
	var best RoomInfo
	found := false
	for _, r := range rooms {
		if !strings.EqualFold(r.World, world) || r.Full() {
			continue
		}
		if !found || r.Players < best.Players {
			best = r
			found = true
		}
	}
	return best, found
}
