package systems

import (
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/automoto/doomerang-tracer/components"
	cfg "github.com/automoto/doomerang-tracer/config"
	"github.com/automoto/doomerang-tracer/session"
	"github.com/automoto/doomerang-tracer/systems/factory"
	"github.com/automoto/doomerang-tracer/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Quarter turn per patrol leg
const patrolArc = math.Pi / 2

var botNames = []string{
	"Kestrel", "Moth", "Juniper", "Alder", "Quill",
	"Wren", "Basalt", "Tamsin", "Orrin", "Pike", "Sable", "Linden",
}

// SandboxDirector simulates a room: it owns the local viewer, spawns and
// removes bots on a cadence, swaps their avatars and publishes every
// transition through the session hub.
type SandboxDirector struct {
	hub     *session.Hub
	ranks   *LabelDirectory
	rng     *rand.Rand
	tick    int
	nextBot int
	room    session.Descriptor
}

func NewSandboxDirector(hub *session.Hub, ranks *LabelDirectory, seed uint64) *SandboxDirector {
	return &SandboxDirector{
		hub:   hub,
		ranks: ranks,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		room: session.Descriptor{
			World:    cfg.Sandbox.WorldName,
			Instance: cfg.Sandbox.InstanceName,
		},
	}
}

func (d *SandboxDirector) Update(e *ecs.ECS) {
	w := e.World
	input := getOrCreateInput(w)

	if !settingsOpen(w) {
		if GetAction(input, cfg.ActionToggleRoom).JustPressed {
			if inRoom(w) {
				d.LeaveRoom(w)
			} else {
				d.EnterRoom(w)
			}
		}
		if inRoom(w) && GetAction(input, cfg.ActionSpawnBot).JustPressed {
			d.SpawnBot(w)
		}
		if inRoom(w) && GetAction(input, cfg.ActionKickBot).JustPressed {
			d.KickBot(w)
		}
	}

	if inRoom(w) {
		d.Step(w)
	}
}

// Step advances the room by one tick: cadence events, then patrols.
func (d *SandboxDirector) Step(w donburi.World) {
	d.tick++
	if d.tick%cfg.Sandbox.SpawnEveryTicks == 0 && botCount(w) < cfg.Sandbox.MaxBots {
		d.SpawnBot(w)
	}
	if d.tick%cfg.Sandbox.LeaveEveryTicks == 0 {
		d.KickBot(w)
	}
	if d.tick%cfg.Sandbox.AvatarSwapTicks == 0 {
		d.SwapAvatar(w)
	}
	updatePatrols(w)
}

// EnterRoom marks the session as in a room, spawns the viewer and the initial bots.
func (d *SandboxDirector) EnterRoom(w donburi.World) {
	state := sessionState(w)
	if state == nil || state.InRoom {
		return
	}
	state.InRoom = true
	state.Descriptor = d.room
	d.tick = 0
	log.Printf("[sandbox] entered %s/%s", d.room.World, d.room.Instance)
	d.hub.SessionEntered(d.room)

	self := factory.CreateParticipant(w, components.PlayerData{
		UserID:      cfg.Debug.UserID,
		DisplayName: cfg.Debug.DisplayName,
		IsSelf:      true,
	}, mgl64.Vec3{}, 0, factory.RigHumanoid)
	d.hub.EntityJoined(self)

	for i := 0; i < cfg.Sandbox.InitialBots; i++ {
		d.SpawnBot(w)
	}
}

// LeaveRoom tears the room down. Listeners get a single session-left, not per-participant leaves.
func (d *SandboxDirector) LeaveRoom(w donburi.World) {
	state := sessionState(w)
	if state == nil || !state.InRoom {
		return
	}
	state.InRoom = false
	log.Printf("[sandbox] left %s/%s", d.room.World, d.room.Instance)
	d.hub.SessionLeft()

	var all []*donburi.Entry
	components.Player.Each(w, func(entry *donburi.Entry) {
		all = append(all, entry)
	})
	for _, entry := range all {
		factory.DestroyParticipant(w, entry)
	}
	d.ranks.Clear()
}

// SpawnBot adds one simulated participant on a random patrol circle.
func (d *SandboxDirector) SpawnBot(w donburi.World) *donburi.Entry {
	name := botNames[d.rng.IntN(len(botNames))]
	d.nextBot++
	userID := fmt.Sprintf("bot-%03d", d.nextBot)

	radius := cfg.Sandbox.PatrolRadiusMin + d.rng.Float64()*(cfg.Sandbox.PatrolRadiusMax-cfg.Sandbox.PatrolRadiusMin)
	angle := d.rng.Float64() * 2 * math.Pi

	entry := factory.CreateParticipant(w, components.PlayerData{
		UserID:      userID,
		DisplayName: name,
		IsFriend:    slices.Contains(cfg.Debug.Friends, name),
	}, patrolPosition(radius, angle), 0, d.randomRig(), components.Bot, tags.Bot)

	bot := components.BotData{Radius: radius, Angle: angle, Forward: d.rng.IntN(2) == 0}
	startLeg(&bot)
	components.Bot.SetValue(entry, bot)
	placeBot(w, entry)

	if slices.Contains(cfg.Sandbox.VerifiedNames, name) {
		d.ranks.Set(userID, "Verified User")
	}
	d.hub.EntityJoined(entry)
	return entry
}

// KickBot removes a random bot, reporting whether one was removed.
func (d *SandboxDirector) KickBot(w donburi.World) bool {
	entry, ok := d.randomBot(w)
	if !ok {
		return false
	}
	d.ranks.Remove(components.Player.Get(entry).UserID)
	d.hub.EntityLeft(entry.Entity())
	factory.DestroyParticipant(w, entry)
	return true
}

// SwapAvatar gives a random bot a new avatar and announces it once the rig is posed.
func (d *SandboxDirector) SwapAvatar(w donburi.World) bool {
	entry, ok := d.randomBot(w)
	if !ok {
		return false
	}
	factory.AttachAvatar(w, entry, d.randomRig())
	d.hub.AvatarReady(entry)
	return true
}

func (d *SandboxDirector) randomBot(w donburi.World) (*donburi.Entry, bool) {
	var bots []*donburi.Entry
	tags.Bot.Each(w, func(entry *donburi.Entry) {
		bots = append(bots, entry)
	})
	if len(bots) == 0 {
		return nil, false
	}
	return bots[d.rng.IntN(len(bots))], true
}

func (d *SandboxDirector) randomRig() factory.RigKey {
	roll := d.rng.Float64()
	switch {
	case roll < cfg.Sandbox.NonHumanoidChance:
		return factory.RigNonHumanoid
	case roll < cfg.Sandbox.NonHumanoidChance+cfg.Sandbox.HiplessChance:
		return factory.RigHumanoidNoHips
	default:
		return factory.RigHumanoid
	}
}

// startLeg tweens the bot a quarter turn in its current direction.
func startLeg(bot *components.BotData) {
	bot.LegStart = float32(bot.Angle)
	if bot.Forward {
		bot.LegEnd = bot.LegStart + patrolArc
	} else {
		bot.LegEnd = bot.LegStart - patrolArc
	}
	bot.Patrol = gween.New(bot.LegStart, bot.LegEnd, cfg.Sandbox.PatrolDuration, ease.InOutSine)
}

func updatePatrols(w donburi.World) {
	tags.Bot.Each(w, func(entry *donburi.Entry) {
		bot := components.Bot.Get(entry)
		if bot.Patrol == nil {
			startLeg(bot)
		}
		angle, done := bot.Patrol.Update(tickSeconds)
		bot.Angle = float64(angle)
		if done {
			bot.Forward = !bot.Forward
			startLeg(bot)
		}
		placeBot(w, entry)
	})
}

func placeBot(w donburi.World, entry *donburi.Entry) {
	bot := components.Bot.Get(entry)
	// Face along the direction of travel
	yaw := -bot.Angle
	if !bot.Forward {
		yaw += math.Pi
	}
	*components.Transform.Get(entry) = components.NewTransform(patrolPosition(bot.Radius, bot.Angle), yaw)
	factory.PoseRig(w, entry)
}

func patrolPosition(radius, angle float64) mgl64.Vec3 {
	return mgl64.Vec3{radius * math.Cos(angle), 0, radius * math.Sin(angle)}
}

func botCount(w donburi.World) int {
	n := 0
	tags.Bot.Each(w, func(*donburi.Entry) { n++ })
	return n
}

func sessionState(w donburi.World) *components.SessionData {
	entry, ok := components.Session.First(w)
	if !ok {
		return nil
	}
	return components.Session.Get(entry)
}

func inRoom(w donburi.World) bool {
	s := sessionState(w)
	return s != nil && s.InRoom
}
