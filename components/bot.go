package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// BotData drives a simulated sandbox participant along a circular patrol
type BotData struct {
	Radius   float64
	Angle    float64 // Current angle on the patrol circle, driven by Patrol
	Patrol   *gween.Tween
	Forward  bool // Direction of the current patrol leg
	LegStart float32
	LegEnd   float32
}

var Bot = donburi.NewComponentType[BotData]()
