package systems

import (
	"github.com/automoto/doomerang-tracer/components"
	cfg "github.com/automoto/doomerang-tracer/config"
	"github.com/automoto/doomerang-tracer/tracer"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// TracerHost answers the tracer's frame gates from the ECS world.
type TracerHost struct {
	World     donburi.World
	immersive bool
}

var _ tracer.Host = (*TracerHost)(nil)

func NewTracerHost(immersive bool) *TracerHost {
	return &TracerHost{immersive: immersive}
}

func (h *TracerHost) Immersive() bool { return h.immersive }

func (h *TracerHost) InRoom() bool {
	if h.World == nil {
		return false
	}
	entry, ok := components.Session.First(h.World)
	return ok && components.Session.Get(entry).InRoom
}

func (h *TracerHost) TriggerValue() float64 {
	if h.World == nil {
		return 0
	}
	entry, ok := components.Input.First(h.World)
	if !ok {
		return 0
	}
	return components.Input.Get(entry).Trigger
}

// TracerSystem polls the hotkey each tick and draws the overlay each frame.
type TracerSystem struct {
	tracer *tracer.Tracer
	host   *TracerHost
	batch  *LineBatch
}

func NewTracerSystem(t *tracer.Tracer, host *TracerHost) *TracerSystem {
	return &TracerSystem{
		tracer: t,
		host:   host,
		batch:  NewLineBatch(),
	}
}

// Bind points the tracer and its host at a new world.
func (s *TracerSystem) Bind(w donburi.World) {
	s.host.World = w
	s.tracer.Bind(w)
}

func (s *TracerSystem) Update(e *ecs.ECS) {
	input := getOrCreateInput(e.World)
	if s.tracer.Hotkey.Poll(input.HotkeyDown) {
		state := "Off"
		if s.tracer.Enabled() {
			state = "On"
		}
		ShowToast(e.World, cfg.Tracer.ToggleToastLabel+": "+state)
	}
}

func (s *TracerSystem) Draw(e *ecs.ECS, screen *ebiten.Image) {
	bounds := screen.Bounds()
	proj, ok := CameraProjector(e.World, bounds.Dx(), bounds.Dy())
	if !ok {
		return
	}
	s.batch.Reset(screen, proj)
	drawn := s.tracer.Render(s.batch)

	if entry, ok := components.HUD.First(e.World); ok {
		hud := components.HUD.Get(entry)
		hud.Segments = drawn
		hud.Tracked = s.tracer.Tracked().Len()
	}
}
