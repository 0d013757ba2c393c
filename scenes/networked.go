package scenes

import (
	"context"
	"log"
	"sync"
	"time"

	cfg "github.com/automoto/doomerang-tracer/config"
	"github.com/automoto/doomerang-tracer/network"
	"github.com/automoto/doomerang-tracer/session"
	"github.com/automoto/doomerang-tracer/shared/messages"
	"github.com/automoto/doomerang-tracer/shared/netconfig"
	"github.com/automoto/doomerang-tracer/shared/protocol"
	"github.com/automoto/doomerang-tracer/systems"
	"github.com/automoto/doomerang-tracer/systems/factory"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

const resolveTimeout = 5 * time.Second

// NetworkedScene joins a relay room. The address comes from -connect, or is
// looked up by world in the room directory. Losing the connection falls back
// to the sandbox.
type NetworkedScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	svc          *Services
	netClient    *network.Client
	netSync      *systems.NetSync
	once         sync.Once

	resolved chan resolveResult
	joined   bool
}

type resolveResult struct {
	room netconfig.RoomInfo
	err  error
}

func NewNetworkedScene(sc SceneChanger, svc *Services) *NetworkedScene {
	return &NetworkedScene{
		sceneChanger: sc,
		svc:          svc,
		netClient:    network.NewClient(),
		resolved:     make(chan resolveResult, 1),
	}
}

func (ns *NetworkedScene) Update() {
	ns.once.Do(ns.configure)

	if !ns.joined {
		select {
		case r := <-ns.resolved:
			if r.err != nil {
				log.Printf("[networked] Warning: %v, falling back to sandbox", r.err)
				ns.fallBack()
				return
			}
			ns.connect(r.room)
		default:
		}
	} else {
		state := ns.netClient.State()
		if state == network.StateDisconnected || state == network.StateError {
			if err := ns.netClient.LastError(); err != nil {
				log.Printf("[networked] %v", err)
			}
			log.Println("[networked] disconnected, falling back to sandbox")
			ns.netSync.Leave(ns.ecs.World)
			ns.netClient.Disconnect()
			ns.fallBack()
			return
		}
		if snap := ns.netClient.LatestSnapshot(); snap != nil {
			ns.netSync.Apply(ns.ecs.World, *snap)
		}
	}

	ns.ecs.Update()
}

func (ns *NetworkedScene) Draw(screen *ebiten.Image) {
	if ns.ecs == nil {
		return
	}
	ns.ecs.Draw(screen)
}

func (ns *NetworkedScene) configure() {
	send := func(msg any) error {
		if ns.netClient.State() != network.StateConnected {
			return nil
		}
		return ns.netClient.SendMessage(msg)
	}
	tickRate := func() int { return netconfig.DefaultTickRate }

	ns.ecs = newRoomECS(ns.svc,
		systems.NewNetInterpSystem(tickRate),
		systems.NewPoseSender(send),
	)

	if cfg.Debug.ServerAddr != "" {
		ns.resolved <- resolveResult{room: netconfig.RoomInfo{
			World:   cfg.Debug.World,
			Address: cfg.Debug.ServerAddr,
		}}
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
		defer cancel()
		room, err := network.ResolveRoom(ctx, cfg.Debug.Directory, cfg.Debug.World)
		ns.resolved <- resolveResult{room: room, err: err}
	}()
}

func (ns *NetworkedScene) connect(room netconfig.RoomInfo) {
	ns.netSync = systems.NewNetSync(ns.svc.Hub, ns.svc.Ranks, ns.svc.Roles,
		cfg.Debug.UserID, cfg.Debug.Friends,
		session.Descriptor{Server: room.Address, World: room.World, Instance: room.Instance})

	log.Printf("[networked] joining %s at %s", room.World, room.Address)
	ns.netClient.Connect(room.Address, messages.JoinRequest{
		Version:     protocol.Version,
		UserID:      cfg.Debug.UserID,
		DisplayName: cfg.Debug.DisplayName,
		World:       room.World,
		AvatarKey:   uint32(factory.RigHumanoid),
	})
	ns.joined = true
}

func (ns *NetworkedScene) fallBack() {
	ns.sceneChanger.ChangeScene(NewSandboxScene(ns.svc))
}
