package core

import (
	"fmt"
	"log"
	"sync"

	"github.com/automoto/doomerang-tracer/shared/messages"
	"github.com/automoto/doomerang-tracer/shared/netcomponents"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
)

// Config describes the room a relay hosts
type Config struct {
	TickRate   int
	World      string
	Instance   string
	Version    string // Required client version; empty accepts any
	MaxPlayers int    // Zero means unlimited
}

type commandKind int

const (
	cmdJoin commandKind = iota
	cmdPose
	cmdLeave
)

// command is a client event queued by a router goroutine for the loop goroutine
type command struct {
	kind     commandKind
	clientID string
	join     messages.JoinRequest
	pose     messages.AvatarPose
}

// Server relays participant identities and poses between the clients of one room.
// The world is only touched on the loop goroutine.
type Server struct {
	cfg       Config
	world     donburi.World
	loop      *RelayLoop
	transport *transports.WsServerTransport

	mu       sync.Mutex
	commands []command
	players  int

	// Loop goroutine only
	clientEntities map[string]donburi.Entity
	clientUsers    map[string]string
}

// NewServer creates a relay for cfg and registers the router callbacks.
func NewServer(cfg Config) *Server {
	world := donburi.NewWorld()

	s := &Server{
		cfg:            cfg,
		world:          world,
		clientEntities: make(map[string]donburi.Entity),
		clientUsers:    make(map[string]string),
	}
	s.loop = NewRelayLoop(s, cfg.TickRate)

	// Set up the world for esync
	srvsync.UseEsync(world)

	s.setupRouterCallbacks()

	return s
}

// Start begins the server on the given port
func (s *Server) Start(port uint) error {
	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	s.loop.Stop()
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		log.Printf("Client connected: %s", clientKey(client))
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		if err != nil {
			log.Printf("Client %s disconnected with error: %v", clientKey(client), err)
		} else {
			log.Printf("Client %s disconnected", clientKey(client))
		}
		s.enqueue(command{kind: cmdLeave, clientID: clientKey(client)})
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.enqueue(command{kind: cmdJoin, clientID: clientKey(client), join: req})
	})

	router.On(func(client *router.NetworkClient, pose messages.AvatarPose) {
		s.enqueue(command{kind: cmdPose, clientID: clientKey(client), pose: pose})
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("Client error: %v", err)
	})
}

func clientKey(client *router.NetworkClient) string {
	return fmt.Sprint(client.Id())
}

func (s *Server) enqueue(c command) {
	s.mu.Lock()
	s.commands = append(s.commands, c)
	s.mu.Unlock()
}

// ProcessCommands applies every queued client event in arrival order.
func (s *Server) ProcessCommands() {
	s.mu.Lock()
	pending := s.commands
	s.commands = nil
	s.mu.Unlock()

	for _, c := range pending {
		switch c.kind {
		case cmdJoin:
			s.onJoin(c.clientID, c.join)
		case cmdPose:
			s.onPose(c.clientID, c.pose)
		case cmdLeave:
			s.onLeave(c.clientID)
		}
	}

	s.mu.Lock()
	s.players = len(s.clientEntities)
	s.mu.Unlock()
}

func (s *Server) onJoin(clientID string, req messages.JoinRequest) {
	if s.cfg.Version != "" && req.Version != s.cfg.Version {
		log.Printf("Rejecting client %s: version %q, want %q", clientID, req.Version, s.cfg.Version)
		return
	}
	if req.UserID == "" {
		log.Printf("Rejecting client %s: empty user id", clientID)
		return
	}
	identity := netcomponents.NetIdentityData{
		UserID:      req.UserID,
		DisplayName: req.DisplayName,
		Rank:        req.Rank,
		Role:        req.Role,
	}

	// A repeated join from the same client only refreshes its identity
	if entity, ok := s.clientEntities[clientID]; ok && s.world.Valid(entity) {
		netcomponents.NetIdentity.SetValue(s.world.Entry(entity), identity)
		s.clientUsers[clientID] = req.UserID
		return
	}

	if s.cfg.MaxPlayers > 0 && len(s.clientEntities) >= s.cfg.MaxPlayers {
		log.Printf("Rejecting client %s: room full", clientID)
		return
	}

	// The same user joining from a new connection replaces the stale one
	for other, userID := range s.clientUsers {
		if userID == req.UserID {
			log.Printf("User %s rejoined, dropping client %s", userID, other)
			s.onLeave(other)
		}
	}

	entity := s.world.Create(netcomponents.NetIdentity, netcomponents.NetPose)
	entry := s.world.Entry(entity)
	netcomponents.NetIdentity.SetValue(entry, identity)
	netcomponents.NetPose.SetValue(entry, netcomponents.NetPoseData{AvatarKey: req.AvatarKey})

	err := srvsync.NetworkSync(s.world, &entity,
		srvsync.WithInterp(netcomponents.NetPose),
		netcomponents.NetIdentity,
	)
	if err != nil {
		log.Printf("Failed to setup network sync for %s: %v", req.UserID, err)
		s.world.Remove(entity)
		return
	}

	s.clientEntities[clientID] = entity
	s.clientUsers[clientID] = req.UserID
	log.Printf("%s (%s) joined %s/%s", req.DisplayName, req.UserID, s.cfg.World, s.cfg.Instance)
}

func (s *Server) onPose(clientID string, pose messages.AvatarPose) {
	entity, ok := s.clientEntities[clientID]
	if !ok || !s.world.Valid(entity) {
		return
	}
	netcomponents.NetPose.SetValue(s.world.Entry(entity), netcomponents.NetPoseData{
		X:         pose.X,
		Y:         pose.Y,
		Z:         pose.Z,
		Yaw:       pose.Yaw,
		AvatarKey: pose.AvatarKey,
	})
}

func (s *Server) onLeave(clientID string) {
	entity, ok := s.clientEntities[clientID]
	if !ok {
		return
	}
	delete(s.clientEntities, clientID)
	delete(s.clientUsers, clientID)

	if s.world.Valid(entity) {
		s.world.Remove(entity)
		log.Printf("Participant removed for client %s", clientID)
	}
}

// World returns the ECS world
func (s *Server) World() donburi.World {
	return s.world
}

// PlayerCount returns the number of joined participants as of the last tick.
func (s *Server) PlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.players
}

// Room describes the hosted room for the directory.
func (s *Server) Room() Config {
	return s.cfg
}
