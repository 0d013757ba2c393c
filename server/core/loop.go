package core

import (
	"log"
	"time"

	"github.com/leap-fish/necs/esync/srvsync"
)

// RelayLoop drives the server at a fixed tick rate.
type RelayLoop struct {
	server   *Server
	tickRate int
	ticks    uint64
	stopChan chan struct{}
}

func NewRelayLoop(server *Server, tickRate int) *RelayLoop {
	if tickRate <= 0 {
		tickRate = 1
	}
	return &RelayLoop{
		server:   server,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
	}
}

func (g *RelayLoop) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	log.Printf("Relay loop started at %d ticks/second", g.tickRate)

	for {
		select {
		case <-g.stopChan:
			log.Printf("Relay loop stopped after %d ticks", g.ticks)
			return
		case <-ticker.C:
			g.tick()
		}
	}
}

func (g *RelayLoop) Stop() {
	close(g.stopChan)
}

// tick applies queued client events, then replicates the world.
func (g *RelayLoop) tick() {
	g.ticks++
	g.server.ProcessCommands()

	if err := srvsync.DoSync(); err != nil {
		log.Printf("Sync error: %v", err)
	}
}
