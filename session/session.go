// Package session fans host lifecycle notifications out to listeners.
//
// Everything here runs on the frame loop. Network code hands its data to the
// loop first and publishes from there.
package session

import (
	"github.com/yohamta/donburi"
)

// Descriptor names the room a client is in
type Descriptor struct {
	Server   string
	World    string
	Instance string
}

// Listener receives participant and room transitions.
type Listener interface {
	OnEntityJoined(entry *donburi.Entry)
	OnEntityLeft(entity donburi.Entity)
	// OnAvatarReady fires after a participant's avatar (and its rig) was replaced.
	OnAvatarReady(entry *donburi.Entry)
	OnSessionEntered(d Descriptor)
	OnSessionLeft()
}

// Hub publishes lifecycle events synchronously, in subscription order.
type Hub struct {
	listeners []Listener
}

func NewHub() *Hub {
	return &Hub{listeners: make([]Listener, 0, 4)}
}

func (h *Hub) Subscribe(l Listener) {
	h.listeners = append(h.listeners, l)
}

func (h *Hub) EntityJoined(entry *donburi.Entry) {
	for _, l := range h.listeners {
		l.OnEntityJoined(entry)
	}
}

func (h *Hub) EntityLeft(entity donburi.Entity) {
	for _, l := range h.listeners {
		l.OnEntityLeft(entity)
	}
}

func (h *Hub) AvatarReady(entry *donburi.Entry) {
	for _, l := range h.listeners {
		l.OnAvatarReady(entry)
	}
}

func (h *Hub) SessionEntered(d Descriptor) {
	for _, l := range h.listeners {
		l.OnSessionEntered(d)
	}
}

func (h *Hub) SessionLeft() {
	for _, l := range h.listeners {
		l.OnSessionLeft()
	}
}
