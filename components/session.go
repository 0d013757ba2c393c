package components

import (
	"github.com/automoto/doomerang-tracer/session"
	"github.com/yohamta/donburi"
)

// SessionData is the singleton room state
type SessionData struct {
	InRoom     bool
	Descriptor session.Descriptor
}

var Session = donburi.NewComponentType[SessionData]()
