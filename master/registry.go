package main

import (
	"crypto/rand"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"
)

// RoomInfo describes a relay hosting one room instance. The JSON shape matches
// the client's netconfig.RoomInfo.
type RoomInfo struct {
	ID         string `json:"id"`
	World      string `json:"world"`
	Instance   string `json:"instance"`
	Address    string `json:"address"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	Version    string `json:"version"`
}

type roomRecord struct {
	RoomInfo
	LastSeen time.Time
}

// Registry is an in-memory store of live rooms with TTL-based expiry.
type Registry struct {
	mu     sync.RWMutex
	rooms  map[string]*roomRecord
	ttl    time.Duration
	now    func() time.Time
	stopCh chan struct{}
	once   sync.Once
}

func NewRegistry(ttl time.Duration) *Registry {
	r := &Registry{
		rooms:  make(map[string]*roomRecord),
		ttl:    ttl,
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
	go r.cleanupLoop()
	return r
}

func (r *Registry) Stop() {
	r.once.Do(func() { close(r.stopCh) })
}

func (r *Registry) Register(info RoomInfo) string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	id := fmt.Sprintf("%x", b)

	info.ID = id

	r.mu.Lock()
	r.rooms[id] = &roomRecord{
		RoomInfo: info,
		LastSeen: r.now(),
	}
	r.mu.Unlock()

	return id
}

func (r *Registry) Heartbeat(id string, players int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.rooms[id]
	if !ok {
		return false
	}
	rec.LastSeen = r.now()
	rec.Players = players
	return true
}

// List returns the rooms of world, or all rooms when world is empty, ordered by world then instance.
func (r *Registry) List(world string) []RoomInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]RoomInfo, 0, len(r.rooms))
	for _, rec := range r.rooms {
		if world != "" && !strings.EqualFold(rec.World, world) {
			continue
		}
		result = append(result, rec.RoomInfo)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].World != result[j].World {
			return result[i].World < result[j].World
		}
		return result[i].Instance < result[j].Instance
	})
	return result
}

// Expire drops rooms not seen within the TTL and returns how many were dropped.
func (r *Registry) Expire() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	n := 0
	for id, rec := range r.rooms {
		if now.Sub(rec.LastSeen) >= r.ttl {
			log.Printf("[directory] expired %s/%s (id=%s, last seen %s ago)",
				rec.World, rec.Instance, id, now.Sub(rec.LastSeen).Round(time.Second))
			delete(r.rooms, id)
			n++
		}
	}
	return n
}

func (r *Registry) cleanupLoop() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.Expire()
		}
	}
}
