package tracer

import "github.com/yohamta/donburi"

// Tracked is a remote participant as seen by the render pass. Anchors and
// classification are resolved at join time and reused every frame.
type Tracked struct {
	Entity      donburi.Entity
	Participant Anchor // participant root, used for liveness
	Target      Anchor // line endpoint: hips, or the root when there is no usable rig
	Friend      bool
	MarkedPeer  bool
}

// TrackedSet keeps at most one entry per entity, in join order.
type TrackedSet struct {
	items []Tracked
	index map[donburi.Entity]int
}

func NewTrackedSet(capacity int) *TrackedSet {
	return &TrackedSet{
		items: make([]Tracked, 0, capacity),
		index: make(map[donburi.Entity]int, capacity),
	}
}

// Join inserts t, or overwrites the existing entry for the same entity.
func (s *TrackedSet) Join(t Tracked) {
	if i, ok := s.index[t.Entity]; ok {
		s.items[i] = t
		return
	}
	s.index[t.Entity] = len(s.items)
	s.items = append(s.items, t)
}

// Leave removes the entry for e. Unknown entities are ignored.
func (s *TrackedSet) Leave(e donburi.Entity) bool {
	i, ok := s.index[e]
	if !ok {
		return false
	}
	copy(s.items[i:], s.items[i+1:])
	s.items[len(s.items)-1] = Tracked{}
	s.items = s.items[:len(s.items)-1]
	delete(s.index, e)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].Entity] = j
	}
	return true
}

// Update applies fn to the entry for e, if present.
func (s *TrackedSet) Update(e donburi.Entity, fn func(*Tracked)) bool {
	i, ok := s.index[e]
	if !ok {
		return false
	}
	fn(&s.items[i])
	s.items[i].Entity = e
	return true
}

func (s *TrackedSet) Reset() {
	clear(s.items)
	s.items = s.items[:0]
	clear(s.index)
}

func (s *TrackedSet) Len() int { return len(s.items) }

func (s *TrackedSet) Contains(e donburi.Entity) bool {
	_, ok := s.index[e]
	return ok
}

func (s *TrackedSet) Get(e donburi.Entity) (Tracked, bool) {
	i, ok := s.index[e]
	if !ok {
		return Tracked{}, false
	}
	return s.items[i], true
}

// All returns the backing slice. Callers must not retain or modify it.
func (s *TrackedSet) All() []Tracked { return s.items }
