package config

import "github.com/hajimehoshi/ebiten/v2"

// ActionID represents a logical client action
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveForward
	ActionMoveBack
	ActionStrafeLeft
	ActionStrafeRight
	ActionTurnLeft
	ActionTurnRight
	ActionLookUp
	ActionLookDown
	ActionToggleSettings
	ActionToggleRoom
	ActionSpawnBot
	ActionKickBot
	ActionCount // Must be last - used for array sizing
)

// InputBinding represents a single key or button binding for an action
type InputBinding struct {
	Keys                   []ebiten.Key
	StandardGamepadButtons []ebiten.StandardGamepadButton
}

// ChordBinding is a modifier + key combination
type ChordBinding struct {
	Modifier ebiten.Key
	Key      ebiten.Key
}

// InputConfig holds all input mappings
type InputConfig struct {
	Bindings map[ActionID]InputBinding

	// Line tracer on/off hotkey
	TracerHotkey ChordBinding

	// Analog button used as the hold-to-show trigger in immersive mode
	TriggerButton ebiten.StandardGamepadButton
	// Keyboard stand-in for the trigger, reported as fully pressed
	TriggerKey ebiten.Key

	// Deadzone for analog stick input (0.0 to 1.0)
	AnalogDeadzone float64
}

// Input is the global input configuration
var Input InputConfig

func init() {
	Input = InputConfig{
		AnalogDeadzone: 0.25,
		TracerHotkey: ChordBinding{
			Modifier: ebiten.KeyControl,
			Key:      ebiten.KeyT,
		},
		TriggerButton: ebiten.StandardGamepadButtonFrontBottomRight,
		TriggerKey:    ebiten.KeyShiftRight,
		Bindings: map[ActionID]InputBinding{
			ActionMoveForward: {
				Keys: []ebiten.Key{ebiten.KeyW},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonLeftTop,
				},
			},
			ActionMoveBack: {
				Keys: []ebiten.Key{ebiten.KeyS},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonLeftBottom,
				},
			},
			ActionStrafeLeft: {
				Keys: []ebiten.Key{ebiten.KeyA},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonLeftLeft,
				},
			},
			ActionStrafeRight: {
				Keys: []ebiten.Key{ebiten.KeyD},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonLeftRight,
				},
			},
			ActionTurnLeft: {
				Keys: []ebiten.Key{ebiten.KeyLeft, ebiten.KeyQ},
			},
			ActionTurnRight: {
				Keys: []ebiten.Key{ebiten.KeyRight, ebiten.KeyE},
			},
			ActionLookUp: {
				Keys: []ebiten.Key{ebiten.KeyUp},
			},
			ActionLookDown: {
				Keys: []ebiten.Key{ebiten.KeyDown},
			},
			ActionToggleSettings: {
				Keys: []ebiten.Key{ebiten.KeyF1, ebiten.KeyEscape},
				// Start / Options button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonCenterRight,
				},
			},
			ActionToggleRoom: {
				Keys: []ebiten.Key{ebiten.KeyR},
			},
			ActionSpawnBot: {
				Keys: []ebiten.Key{ebiten.KeyN},
			},
			ActionKickBot: {
				Keys: []ebiten.Key{ebiten.KeyK},
			},
		},
	}
}
