package main

import (
	"flag"
	"image"
	"log"
	"strings"

	"github.com/automoto/doomerang-tracer/config"
	"github.com/automoto/doomerang-tracer/fonts"
	"github.com/automoto/doomerang-tracer/scenes"
	"github.com/automoto/doomerang-tracer/settings"
	"github.com/automoto/doomerang-tracer/shared/protocol"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/profile"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func NewGame(svc *scenes.Services) *Game {
	g := &Game{
		bounds: image.Rectangle{},
	}

	if config.Debug.ServerAddr != "" || config.Debug.Directory != "" {
		g.scene = scenes.NewNetworkedScene(g, svc)
	} else {
		g.scene = scenes.NewSandboxScene(svc)
	}

	return g
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func parseFlags() (cpuProfile string) {
	flag.BoolVar(&config.Debug.Immersive, "immersive", false, "Head-mounted mode: lines start at the right index finger and need the trigger held")
	flag.StringVar(&config.Debug.ServerAddr, "connect", "", "Relay server address (host:port); empty runs the offline sandbox")
	flag.StringVar(&config.Debug.Directory, "directory", "", "Room directory URL used to find a relay for -world")
	flag.StringVar(&config.Debug.World, "world", config.Debug.World, "Room to join when connecting")
	flag.StringVar(&config.Debug.UserID, "user", config.Debug.UserID, "Local user id")
	flag.StringVar(&config.Debug.DisplayName, "name", config.Debug.DisplayName, "Local display name")
	flag.StringVar(&config.Debug.Overrides, "overrides", "", "YAML file of setting overrides, re-applied when it changes")
	flag.BoolVar(&config.Debug.ShowSettings, "settings", false, "Open the settings overlay on start")
	flag.BoolVar(&config.Debug.ShowRigs, "rigs", false, "Draw rig bones and participant names")
	friends := flag.String("friends", strings.Join(config.Debug.Friends, ","), "Comma-separated display names treated as friends")
	flag.StringVar(&cpuProfile, "cpuprofile", "", "Write a CPU profile into this directory")
	flag.Parse()

	config.Debug.Friends = splitList(*friends)
	return cpuProfile
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func main() {
	cpuProfile := parseFlags()
	if cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(cpuProfile), profile.NoShutdownHook).Stop()
	}

	// Register network components for client-side deserialization
	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register network components: %v", err)
	}

	if err := fonts.LoadDefaults(); err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	store, err := settings.Open(config.SettingsStore.AppName)
	if err != nil {
		log.Printf("Warning: Could not initialize persistence, settings will not be saved: %v", err)
		store = settings.NewStore(settings.NewMemoryBackend())
	}

	svc := scenes.NewServices(store, nil, config.Debug.Immersive)
	if config.Debug.Overrides != "" {
		overrides, err := settings.WatchOverrides(config.Debug.Overrides, store)
		if err != nil {
			log.Printf("Warning: Could not watch overrides: %v", err)
		} else {
			defer overrides.Close()
			svc.Overrides = overrides
		}
	}

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle(config.C.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)

	if err := ebiten.RunGame(NewGame(svc)); err != nil {
		log.Fatal(err)
	}
}
