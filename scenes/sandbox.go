package scenes

import (
	"log"
	"sync"
	"time"

	"github.com/automoto/doomerang-tracer/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// SandboxScene runs an offline room populated by simulated participants.
type SandboxScene struct {
	ecs      *ecs.ECS
	svc      *Services
	director *systems.SandboxDirector
	seed     uint64
	once     sync.Once
}

func NewSandboxScene(svc *Services) *SandboxScene {
	return &SandboxScene{svc: svc, seed: uint64(time.Now().UnixNano())}
}

func (s *SandboxScene) Update() {
	s.once.Do(s.configure)
	s.ecs.Update()
}

func (s *SandboxScene) Draw(screen *ebiten.Image) {
	if s.ecs == nil {
		return
	}
	s.ecs.Draw(screen)
}

func (s *SandboxScene) configure() {
	s.director = systems.NewSandboxDirector(s.svc.Hub, s.svc.Ranks, s.seed)
	s.ecs = newRoomECS(s.svc, s.director.Update)

	log.Printf("[sandbox] seed %d", s.seed)
	s.director.EnterRoom(s.ecs.World)
}
