// Package scenes wires the netcode, network client, and systems into
// ebiten's update/draw loop.
package scenes

import (
	"image/color"
	"log"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	cfg "github.com/mtomcal/stick-rumble-client/config"
	"github.com/mtomcal/stick-rumble-client/netcode"
	"github.com/mtomcal/stick-rumble-client/network"
	"github.com/mtomcal/stick-rumble-client/systems"
)

// ArenaScene runs a networked match: one frame loop tick applies the
// latest server state, samples input and predicts the local player,
// advances corrections, and interpolates remote players, in that order.
type ArenaScene struct {
	ecsWorld  *ecs.ECS
	netClient *network.Client
	history   *netcode.InputHistory
	interp    *netcode.Interpolator
	once      sync.Once
	errLogged bool
}

func NewArenaScene(client *network.Client) *ArenaScene {
	return &ArenaScene{
		netClient: client,
		history:   netcode.NewInputHistory(),
		interp:    netcode.NewInterpolator(),
	}
}

func (as *ArenaScene) Update() {
	as.once.Do(as.configure)

	if as.netClient.State() == network.StateError && !as.errLogged {
		log.Println("[arena] connection error:", as.netClient.LastError())
		as.errLogged = true
	}

	as.ecsWorld.Update()
}

func (as *ArenaScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	if as.ecsWorld == nil {
		return
	}
	as.ecsWorld.Draw(screen)
}

func (as *ArenaScene) configure() {
	as.ecsWorld = ecs.NewECS(donburi.NewWorld())

	localID := as.netClient.PlayerID
	now := func() int64 { return time.Now().UnixMilli() }

	as.ecsWorld.AddSystem(systems.NewNetSyncSystem(as.netClient, as.history, as.interp, now))
	as.ecsWorld.AddSystem(systems.NewNetInputSystem(as.netClient, as.history, localID))
	as.ecsWorld.AddSystem(systems.NewCorrectionSystem())
	as.ecsWorld.AddSystem(systems.NewNetInterpSystem(as.interp, now))

	as.ecsWorld.AddRenderer(cfg.Default, systems.DrawArena)
	as.ecsWorld.AddRenderer(cfg.Default, systems.DrawPlayers)
	as.ecsWorld.AddRenderer(cfg.Default, systems.NewHUDRenderer(as.netClient, as.history))
}
