package systems

import (
	"github.com/automoto/doomerang-tracer/session"
	"github.com/yohamta/donburi"
)

type event struct {
	kind   string
	entity donburi.Entity
}

// eventLog records hub traffic in order
type eventLog struct {
	events []event
}

func (l *eventLog) OnEntityJoined(entry *donburi.Entry) {
	l.events = append(l.events, event{"joined", entry.Entity()})
}
func (l *eventLog) OnEntityLeft(e donburi.Entity) {
	l.events = append(l.events, event{"left", e})
}
func (l *eventLog) OnAvatarReady(entry *donburi.Entry) {
	l.events = append(l.events, event{"avatar", entry.Entity()})
}
func (l *eventLog) OnSessionEntered(session.Descriptor) {
	l.events = append(l.events, event{kind: "entered"})
}
func (l *eventLog) OnSessionLeft() {
	l.events = append(l.events, event{kind: "session-left"})
}

func (l *eventLog) count(kind string) int {
	n := 0
	for _, e := range l.events {
		if e.kind == kind {
			n++
		}
	}
	return n
}

func (l *eventLog) reset() { l.events = l.events[:0] }

func newTestWorld() donburi.World {
	w := donburi.NewWorld()
	CreateRoomSingletons(w)
	return w
}
