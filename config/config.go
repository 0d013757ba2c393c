package config

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// Config holds general window configuration
type Config struct {
	Width  int
	Height int
	Title  string
}

// TracerConfig contains line tracer tuning values
type TracerConfig struct {
	// Trigger value (0.0-1.0) that must be reached in immersive mode before lines are drawn
	TriggerThreshold float64

	// Case-insensitive substring that marks a participant as a recognised peer
	MarkedPeerSubstring string

	// Distance in front of the flatscreen camera where segments start
	FlatscreenStartOffset float64

	// Stroke width in pixels once projected
	LineWidth float32

	// Default palette, used when no persisted color exists
	DefaultFriendsColor    color.RGBA
	DefaultMarkedPeerColor color.RGBA
	DefaultOthersColor     color.RGBA

	// Settings menu placement
	MenuPage         string
	MenuCategory     string
	HotkeysPage      string
	ToggleLabel      string
	ToggleTooltip    string
	PrioritizeLabel  string
	PrioritizeTip    string
	HotkeyLabel      string
	HotkeyTooltip    string
	ToggleToastLabel string
}

// SceneConfig contains 3D scene and camera configuration
type SceneConfig struct {
	FovY        float64 // Vertical field of view in degrees
	Near        float64
	Far         float64
	EyeHeight   float64 // Camera height above the local avatar root
	MoveSpeed   float64 // Units per tick
	TurnSpeed   float64 // Radians per tick
	GridExtent  int     // Half-size of the ground grid in units
	MarkerSize  float32 // Avatar marker radius in pixels at distance 1
	GridColor   color.RGBA
	MarkerColor color.RGBA
	SelfColor   color.RGBA
}

// SandboxConfig contains offline session simulation values
type SandboxConfig struct {
	WorldName         string
	InstanceName      string
	InitialBots       int
	MaxBots           int
	SpawnEveryTicks   int     // Ticks between automatic joins
	LeaveEveryTicks   int     // Ticks between automatic leaves
	AvatarSwapTicks   int     // Ticks between avatar swaps for a random bot
	PatrolRadiusMin   float64 // Orbit radius around the world origin
	PatrolRadiusMax   float64
	PatrolDuration    float32 // Seconds for one patrol leg
	FriendNames       []string
	VerifiedNames     []string
	NonHumanoidChance float64 // Probability that a spawned avatar has no humanoid rig
	HiplessChance     float64 // Probability that a humanoid avatar lacks a hips bone
}

// HUDConfig contains status line configuration
type HUDConfig struct {
	Margin       int
	LineHeight   int
	TextColor    color.RGBA
	ToastColor   color.RGBA
	ToastSeconds float32
}

// DebugConfig contains debug/testing command-line options
type DebugConfig struct {
	Immersive    bool   // Treat the session as head-mounted: origin is the right index finger
	ServerAddr   string // Connect to a relay server instead of running the sandbox
	UserID       string
	DisplayName  string
	Overrides    string // Optional YAML overrides file, watched for changes
	ShowSettings bool   // Open the settings overlay on start
	ShowRigs     bool   // Draw rig bones and participant names
	Friends      []string
	World        string // Room to request from the relay server
	Directory    string // Room directory URL used to look up ServerAddr by World
}

// Global configuration instances
var C *Config
var Tracer TracerConfig
var Scene SceneConfig
var Sandbox SandboxConfig
var HUD HUDConfig
var Debug DebugConfig

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow       = colornames.Yellow
	Magenta      = colornames.Magenta
	LightGreen   = color.RGBA{R: 100, G: 255, B: 100, A: 255}
	BrightOrange = color.RGBA{R: 255, G: 180, B: 50, A: 255}
	DimGrey      = color.RGBA{R: 60, G: 60, B: 70, A: 255}
	SkyDark      = color.RGBA{R: 15, G: 18, B: 30, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
)

func init() {
	C = &Config{
		Width:  960,
		Height: 540,
		Title:  "Doomerang Tracer",
	}

	Tracer = TracerConfig{
		TriggerThreshold:      0.4,
		MarkedPeerSubstring:   "verified",
		FlatscreenStartOffset: 1.0,
		LineWidth:             1.5,

		DefaultFriendsColor:    Yellow,
		DefaultMarkedPeerColor: Magenta,
		DefaultOthersColor:     White,

		MenuPage:         "Visuals",
		MenuCategory:     "ESP/Highlights",
		HotkeysPage:      "Hotkeys",
		ToggleLabel:      "[VR] Line Tracer",
		ToggleTooltip:    "Hold right trigger to draw lines to each player in world",
		PrioritizeLabel:  "Prioritize Friends",
		PrioritizeTip:    "Use the friend color for recognised peers who are also friends",
		HotkeyLabel:      "Line Tracer Hotkey",
		HotkeyTooltip:    "Ctrl + T toggles the line tracer",
		ToggleToastLabel: "Line Tracer",
	}

	Scene = SceneConfig{
		FovY:        70,
		Near:        0.05,
		Far:         500,
		EyeHeight:   1.6,
		MoveSpeed:   0.08,
		TurnSpeed:   0.03,
		GridExtent:  20,
		MarkerSize:  18,
		GridColor:   DimGrey,
		MarkerColor: color.RGBA{R: 120, G: 160, B: 255, A: 255},
		SelfColor:   LightGreen,
	}

	Sandbox = SandboxConfig{
		WorldName:         "Sandbox",
		InstanceName:      "local",
		InitialBots:       6,
		MaxBots:           12,
		SpawnEveryTicks:   60 * 7,
		LeaveEveryTicks:   60 * 11,
		AvatarSwapTicks:   60 * 5,
		PatrolRadiusMin:   3,
		PatrolRadiusMax:   14,
		PatrolDuration:    4,
		FriendNames:       []string{"Kestrel", "Moth", "Juniper"},
		VerifiedNames:     []string{"Juniper", "Alder", "Quill"},
		NonHumanoidChance: 0.15,
		HiplessChance:     0.15,
	}

	HUD = HUDConfig{
		Margin:       6,
		LineHeight:   14,
		TextColor:    White,
		ToastColor:   BrightOrange,
		ToastSeconds: 1.5,
	}

	// Debug Config (defaults, can be overridden by CLI flags)
	Debug = DebugConfig{
		UserID:      "local-user",
		DisplayName: "You",
		Friends:     Sandbox.FriendNames,
		World:       "Plaza",
	}
}
