package systems

import (
	"strings"

	"github.com/automoto/doomerang-tracer/components"
	cfg "github.com/automoto/doomerang-tracer/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Reusable slice for gamepad IDs to avoid allocations
var gamepadIDs []ebiten.GamepadID

// Cache controller types to avoid string allocation every frame
var controllerTypeCache = make(map[ebiten.GamepadID]components.InputMethod)

// UpdateInput polls raw input and updates the Input component.
// Must run before every system that reads actions.
func UpdateInput(ecs *ecs.ECS) {
	input := getOrCreateInput(ecs.World)

	// Swap buffers: current becomes previous, then zero out current
	input.Previous = input.Current
	input.Current = [cfg.ActionCount]bool{}

	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])

	var keyboardUsed, gamepadUsed bool
	var activeGamepadID ebiten.GamepadID

	for actionID, binding := range cfg.Input.Bindings {
		for _, key := range binding.Keys {
			if ebiten.IsKeyPressed(key) {
				input.Current[actionID] = true
				keyboardUsed = true
			}
		}

		for _, gpID := range gamepadIDs {
			if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
				continue
			}
			for _, btn := range binding.StandardGamepadButtons {
				if ebiten.IsStandardGamepadButtonPressed(gpID, btn) {
					input.Current[actionID] = true
					gamepadUsed = true
					activeGamepadID = gpID
				}
			}
		}
	}

	// Merge analog sticks into movement and look actions
	if sticks, gpID, ok := readSticks(gamepadIDs); ok {
		applySticks(input, sticks)
		gamepadUsed = true
		activeGamepadID = gpID
	}

	// Hold-to-show trigger: the deepest pull across pads, or full when the key stand-in is held
	input.Trigger = 0
	for _, gpID := range gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}
		if v := ebiten.StandardGamepadButtonValue(gpID, cfg.Input.TriggerButton); v > input.Trigger {
			input.Trigger = v
			if v > 0 {
				gamepadUsed = true
				activeGamepadID = gpID
			}
		}
	}
	if ebiten.IsKeyPressed(cfg.Input.TriggerKey) {
		input.Trigger = 1
		keyboardUsed = true
	}

	chord := cfg.Input.TracerHotkey
	input.HotkeyDown = ebiten.IsKeyPressed(chord.Modifier) && ebiten.IsKeyPressed(chord.Key)

	// Update last input method - gamepad takes priority if both used
	if gamepadUsed {
		input.LastInputMethod = getControllerType(activeGamepadID)
	} else if keyboardUsed {
		input.LastInputMethod = components.InputKeyboard
	}
}

// stickState is the left (move) and right (look) stick after the deadzone
type stickState struct {
	left, right, up, down bool
	lookLeft, lookRight   bool
	lookUp, lookDown      bool
}

func (s stickState) any() bool {
	return s.left || s.right || s.up || s.down || s.lookLeft || s.lookRight || s.lookUp || s.lookDown
}

// readSticks reads both analog sticks from all gamepads
func readSticks(gamepads []ebiten.GamepadID) (stickState, ebiten.GamepadID, bool) {
	deadzone := cfg.Input.AnalogDeadzone
	var s stickState
	var active ebiten.GamepadID

	for _, gpID := range gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}
		lh := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickHorizontal)
		lv := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickVertical)
		rh := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisRightStickHorizontal)
		rv := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisRightStickVertical)

		before := s
		s.left = s.left || lh < -deadzone
		s.right = s.right || lh > deadzone
		s.up = s.up || lv < -deadzone
		s.down = s.down || lv > deadzone
		s.lookLeft = s.lookLeft || rh < -deadzone
		s.lookRight = s.lookRight || rh > deadzone
		s.lookUp = s.lookUp || rv < -deadzone
		s.lookDown = s.lookDown || rv > deadzone
		if s != before {
			active = gpID
		}
	}
	return s, active, s.any()
}

func applySticks(input *components.InputData, s stickState) {
	set := func(on bool, id cfg.ActionID) {
		if on {
			input.Current[id] = true
		}
	}
	set(s.left, cfg.ActionStrafeLeft)
	set(s.right, cfg.ActionStrafeRight)
	set(s.up, cfg.ActionMoveForward)
	set(s.down, cfg.ActionMoveBack)
	set(s.lookLeft, cfg.ActionTurnLeft)
	set(s.lookRight, cfg.ActionTurnRight)
	set(s.lookUp, cfg.ActionLookUp)
	set(s.lookDown, cfg.ActionLookDown)
}

// getControllerType returns cached controller type, detecting on first access
func getControllerType(gpID ebiten.GamepadID) components.InputMethod {
	if method, ok := controllerTypeCache[gpID]; ok {
		return method
	}

	name := strings.ToLower(ebiten.GamepadName(gpID))
	var method components.InputMethod
	if strings.Contains(name, "ps4") || strings.Contains(name, "ps5") ||
		strings.Contains(name, "playstation") || strings.Contains(name, "dualshock") ||
		strings.Contains(name, "dualsense") {
		method = components.InputPlayStation
	} else {
		// Default gamepad to Xbox-style
		method = components.InputXbox
	}

	controllerTypeCache[gpID] = method
	return method
}

// getOrCreateInput returns the singleton Input component, creating if needed
func getOrCreateInput(w donburi.World) *components.InputData {
	entry, ok := components.Input.First(w)
	if !ok {
		entry = w.Entry(w.Create(components.Input))
		// Zero-value InputData is correct (all bools false)
	}
	return components.Input.Get(entry)
}

// GetAction returns the full ActionState for an action ID.
// JustPressed/JustReleased are derived from current vs previous frame.
func GetAction(input *components.InputData, id cfg.ActionID) components.ActionState {
	curr := input.Current[id]
	prev := input.Previous[id]
	return components.ActionState{
		Pressed:      curr,
		JustPressed:  curr && !prev,
		JustReleased: !curr && prev,
	}
}
