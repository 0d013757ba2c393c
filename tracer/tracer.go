// Package tracer draws line segments from the local viewer to every other
// participant in the room, colored by relationship.
//
// A Tracer is driven entirely from the frame loop: lifecycle callbacks keep
// the tracked set current, and Render emits one segment per live participant.
package tracer

import (
	"image/color"
	"log"

	cfg "github.com/automoto/doomerang-tracer/config"
	"github.com/automoto/doomerang-tracer/components"
	"github.com/automoto/doomerang-tracer/session"
	"github.com/yohamta/donburi"
)

// Host exposes the frame state the render pass is gated on
type Host interface {
	Immersive() bool
	InRoom() bool
	// TriggerValue is the hold-to-show trigger in [0,1]; only read in immersive mode.
	TriggerValue() float64
}

// Options configures a Tracer. Zero values fall back to config.Tracer.
type Options struct {
	Labels              []LabelProvider
	MarkedPeerSubstring string
	TriggerThreshold    float64
	StartOffset         float64
}

// Tracer owns the tracked participants, the cached origin and the line material.
type Tracer struct {
	host     Host
	settings *Settings
	Hotkey   *HotkeyController

	labels      []LabelProvider
	substring   string
	threshold   float64
	startOffset float64

	world    donburi.World
	resolver *AnchorResolver
	tracked  *TrackedSet

	origin    Anchor
	hasOrigin bool

	material *Material

	// Mirrors of settings, refreshed on change so the frame path never reads storage
	enabled    bool
	prioritize bool
	palette    Palette
}

var _ session.Listener = (*Tracer)(nil)

func New(host Host, s *Settings, opts Options) *Tracer {
	if opts.MarkedPeerSubstring == "" {
		opts.MarkedPeerSubstring = cfg.Tracer.MarkedPeerSubstring
	}
	if opts.TriggerThreshold == 0 {
		opts.TriggerThreshold = cfg.Tracer.TriggerThreshold
	}
	if opts.StartOffset == 0 {
		opts.StartOffset = cfg.Tracer.FlatscreenStartOffset
	}

	t := &Tracer{
		host:        host,
		settings:    s,
		Hotkey:      NewHotkeyController(s.Enabled, s.HotkeyEnabled),
		labels:      opts.Labels,
		substring:   opts.MarkedPeerSubstring,
		threshold:   opts.TriggerThreshold,
		startOffset: opts.StartOffset,
		tracked:     NewTrackedSet(32),
	}

	t.enabled = s.Enabled.Get()
	t.prioritize = s.FriendPrioritize.Get()
	t.palette = Palette{
		Friend:     s.FriendsColor.Get(),
		MarkedPeer: s.MarkedPeerColor.Get(),
		Other:      s.OthersColor.Get(),
	}
	s.Enabled.OnChanged(func(v bool) { t.enabled = v })
	s.FriendPrioritize.OnChanged(func(v bool) { t.prioritize = v })
	s.FriendsColor.OnChanged(func(c color.RGBA) { t.palette.Friend = c })
	s.MarkedPeerColor.OnChanged(func(c color.RGBA) { t.palette.MarkedPeer = c })
	s.OthersColor.OnChanged(func(c color.RGBA) { t.palette.Other = c })

	return t
}

// Bind attaches the tracer to the world participants live in and drops all cached state.
func (t *Tracer) Bind(w donburi.World) {
	t.world = w
	t.resolver = NewAnchorResolver(w)
	t.reset()
}

func (t *Tracer) Settings() *Settings    { return t.settings }
func (t *Tracer) Tracked() *TrackedSet   { return t.tracked }
func (t *Tracer) Enabled() bool          { return t.enabled }
func (t *Tracer) Palette() Palette       { return t.palette }
func (t *Tracer) Origin() (Anchor, bool) { return t.origin, t.hasOrigin }

// Material is nil until the first pass that gets past the enable, trigger and room gates.
func (t *Tracer) Material() *Material { return t.material }

func (t *Tracer) OnEntityJoined(entry *donburi.Entry) {
	if t.resolver == nil || entry == nil || !entry.Valid() || !entry.HasComponent(components.Player) {
		return
	}
	p := components.Player.Get(entry)
	if p.IsSelf {
		// The viewer is never tracked; its rig may have changed, so resolve the origin again.
		t.invalidateOrigin()
		return
	}
	id := Identity{UserID: p.UserID, DisplayName: p.DisplayName}
	t.tracked.Join(Tracked{
		Entity:      entry.Entity(),
		Participant: NewAnchor(t.world, entry.Entity()),
		Target:      t.resolver.ResolveEntityAnchor(entry),
		Friend:      p.IsFriend,
		MarkedPeer:  IsMarkedPeer(id, t.labels, t.substring),
	})
}

func (t *Tracer) OnEntityLeft(e donburi.Entity) {
	t.tracked.Leave(e)
}

func (t *Tracer) OnAvatarReady(entry *donburi.Entry) {
	if t.resolver == nil || entry == nil || !entry.Valid() || !entry.HasComponent(components.Player) {
		return
	}
	if components.Player.Get(entry).IsSelf {
		t.invalidateOrigin()
		return
	}
	target := t.resolver.ResolveEntityAnchor(entry)
	t.tracked.Update(entry.Entity(), func(tr *Tracked) {
		tr.Target = target
	})
}

func (t *Tracer) OnSessionEntered(d session.Descriptor) {
	log.Printf("[tracer] entered %s/%s, resetting", d.World, d.Instance)
	t.reset()
}

func (t *Tracer) OnSessionLeft() {
	log.Println("[tracer] left room, resetting")
	t.reset()
}

func (t *Tracer) reset() {
	t.tracked.Reset()
	t.invalidateOrigin()
}

func (t *Tracer) invalidateOrigin() {
	t.origin = Anchor{}
	t.hasOrigin = false
}
