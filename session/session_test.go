package session

import (
	"testing"

	"github.com/yohamta/donburi"
)

type recorder struct {
	name string
	log  *[]string
}

func (r recorder) OnEntityJoined(*donburi.Entry)  { *r.log = append(*r.log, r.name+":joined") }
func (r recorder) OnEntityLeft(donburi.Entity)     { *r.log = append(*r.log, r.name+":left") }
func (r recorder) OnAvatarReady(*donburi.Entry)    { *r.log = append(*r.log, r.name+":avatar") }
func (r recorder) OnSessionEntered(d Descriptor)   { *r.log = append(*r.log, r.name+":entered:"+d.World) }
func (r recorder) OnSessionLeft()                  { *r.log = append(*r.log, r.name+":session-left") }

func TestHubPublishesInSubscriptionOrder(t *testing.T) {
	var log []string
	h := NewHub()
	h.Subscribe(recorder{name: "a", log: &log})
	h.Subscribe(recorder{name: "b", log: &log})

	h.SessionEntered(Descriptor{World: "w1"})
	h.EntityJoined(nil)
	h.EntityLeft(donburi.Null)
	h.SessionLeft()

	want := []string{
		"a:entered:w1", "b:entered:w1",
		"a:joined", "b:joined",
		"a:left", "b:left",
		"a:session-left", "b:session-left",
	}
	if len(log) != len(want) {
		t.Fatalf("expected %d events, got %d: %v", len(want), len(log), log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("event %d: expected %q, got %q", i, want[i], log[i])
		}
	}
}

func TestHubWithoutListeners(t *testing.T) {
	h := NewHub()
	h.EntityJoined(nil)
	h.EntityLeft(donburi.Null)
	h.AvatarReady(nil)
	h.SessionEntered(Descriptor{})
	h.SessionLeft()
}
