package scenes

import (
	cfg "github.com/automoto/doomerang-tracer/config"
	"github.com/automoto/doomerang-tracer/session"
	"github.com/automoto/doomerang-tracer/settings"
	"github.com/automoto/doomerang-tracer/systems"
	"github.com/automoto/doomerang-tracer/tracer"
	"github.com/automoto/doomerang-tracer/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

type SceneChanger interface {
	ChangeScene(scene interface{})
}

// Services outlive scenes: the tracer keeps its settings and hub
// subscription across room changes and is rebound to each new world.
type Services struct {
	Hub       *session.Hub
	Settings  *tracer.Settings
	Tracer    *tracer.Tracer
	Host      *systems.TracerHost
	Ranks     *systems.LabelDirectory
	Roles     *systems.LabelDirectory
	Overrides *settings.Overrides // nil without an overrides file

	overlay *settingsOverlay
}

// NewServices wires the tracer to the hub and the label directories.
func NewServices(s *settings.Store, overrides *settings.Overrides, immersive bool) *Services {
	svc := &Services{
		Hub:       session.NewHub(),
		Settings:  tracer.NewSettings(s),
		Host:      systems.NewTracerHost(immersive),
		Ranks:     systems.NewLabelDirectory(),
		Roles:     systems.NewLabelDirectory(),
		Overrides: overrides,
	}
	svc.Tracer = tracer.New(svc.Host, svc.Settings, tracer.Options{
		Labels: []tracer.LabelProvider{svc.Ranks, svc.Roles},
	})
	svc.Hub.Subscribe(svc.Tracer)
	svc.overlay = newSettingsOverlay(svc.Settings)
	return svc
}

// newRoomECS builds the world shared by every room scene. roomSystems run
// after input and camera, before the tracer.
func newRoomECS(svc *Services, roomSystems ...ecs.System) *ecs.ECS {
	world := donburi.NewWorld()
	e := ecs.NewECS(world)

	systems.CreateRoomSingletons(world)

	tracerSystem := systems.NewTracerSystem(svc.Tracer, svc.Host)
	tracerSystem.Bind(world)
	hud := systems.NewHUDSystem(svc.Tracer, svc.Host)
	overlay := svc.overlay

	e.AddSystem(systems.UpdateInput)
	e.AddSystem(systems.UpdateSettingsToggle)
	e.AddSystem(systems.UpdateCamera)
	for _, s := range roomSystems {
		e.AddSystem(s)
	}
	e.AddSystem(tracerSystem.Update)
	e.AddSystem(systems.UpdateHUD)
	e.AddSystem(overlay.Update)
	if svc.Overrides != nil {
		e.AddSystem(func(*ecs.ECS) { svc.Overrides.Poll() })
	}

	e.AddRenderer(cfg.LayerWorld, systems.DrawWorld)
	e.AddRenderer(cfg.LayerWorld, systems.DrawDebug)
	e.AddRenderer(cfg.LayerOverlay, tracerSystem.Draw)
	e.AddRenderer(cfg.LayerHUD, hud.Draw)
	e.AddRenderer(cfg.LayerHUD, overlay.Draw)

	if cfg.Debug.ShowSettings {
		systems.SetSettingsOpen(world, true)
	}
	return e
}

// settingsOverlay shows the settings UI while the HUD says it is open.
type settingsOverlay struct {
	ui    *ui.SettingsUI
	world donburi.World
}

func newSettingsOverlay(s *tracer.Settings) *settingsOverlay {
	o := &settingsOverlay{}
	o.ui = ui.NewSettingsUI(s, func() {
		if o.world != nil {
			systems.SetSettingsOpen(o.world, false)
		}
	})
	return o
}

func (o *settingsOverlay) Update(e *ecs.ECS) {
	o.world = e.World
	if systems.SettingsOpen(e.World) {
		o.ui.Update()
	}
}

func (o *settingsOverlay) Draw(e *ecs.ECS, screen *ebiten.Image) {
	if systems.SettingsOpen(e.World) {
		o.ui.Draw(screen)
	}
}
