package network

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/automoto/doomerang-tracer/shared/netconfig"
)

var directoryClient = &http.Client{Timeout: 5 * time.Second}

// ListRooms fetches the rooms the directory currently knows for world.
func ListRooms(ctx context.Context, directoryURL, world string) ([]netconfig.RoomInfo, error) {
	u := directoryURL + "/rooms"
	if world != "" {
		u += "?world=" + url.QueryEscape(world)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := directoryClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query directory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory returned status %d", resp.StatusCode)
	}

	var rooms []netconfig.RoomInfo
	if err := json.NewDecoder(resp.Body).Decode(&rooms); err != nil {
		return nil, fmt.Errorf("decode room list: %w", err)
	}
	return rooms, nil
}

// ResolveRoom picks the relay address hosting world.
func ResolveRoom(ctx context.Context, directoryURL, world string) (netconfig.RoomInfo, error) {
	rooms, err := ListRooms(ctx, directoryURL, world)
	if err != nil {
		return netconfig.RoomInfo{}, err
	}
	room, ok := netconfig.PickRoom(rooms, world)
	if !ok {
		return netconfig.RoomInfo{}, fmt.Errorf("no open room for world %q", world)
	}
	return room, nil
}
