package systems

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"golang.org/x/image/font/basicfont"

	"github.com/mtomcal/stick-rumble-client/components"
	cfg "github.com/mtomcal/stick-rumble-client/config"
	"github.com/mtomcal/stick-rumble-client/netcode"
	"github.com/mtomcal/stick-rumble-client/network"
	"github.com/mtomcal/stick-rumble-client/shared/physics"
)

var (
	colorLocal  = color.RGBA{0x39, 0xd3, 0x53, 0xff}
	colorRemote = color.RGBA{0xd9, 0x63, 0x3b, 0xff}
	colorAim    = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorHealth = color.RGBA{0xc7, 0x2c, 0x2c, 0xff}
	colorHUD    = color.RGBA{0xb8, 0xf5, 0xc0, 0xff}
	colorArena  = color.RGBA{0x2a, 0x2a, 0x33, 0xff}
)

const aimIndicatorLength = 28.0

// DrawArena draws the arena bounds.
func DrawArena(e *ecs.ECS, screen *ebiten.Image) {
	s := float32(cfg.C.RenderScale)
	vector.StrokeRect(screen, 0, 0, float32(physics.ArenaWidth)*s, float32(physics.ArenaHeight)*s, 1, colorArena, false)
}

// DrawPlayers renders every player as a rect with an aim indicator and a
// health bar. The local player's rect includes any in-flight correction
// offset so smooth corrections are visible as easing, not teleports.
func DrawPlayers(e *ecs.ECS, screen *ebiten.Image) {
	s := cfg.C.RenderScale
	halfW := physics.PlayerWidth / 2
	halfH := physics.PlayerHeight / 2

	components.Player.Each(e.World, func(entry *donburi.Entry) {
		player := components.Player.Get(entry)
		pos := components.Position.Get(entry)

		x, y := pos.X, pos.Y
		if entry.HasComponent(components.Correction) {
			corr := components.Correction.Get(entry)
			x += corr.OffsetX * corr.Scale
			y += corr.OffsetY * corr.Scale
		}

		rectColor := colorRemote
		if player.IsLocal {
			rectColor = colorLocal
		}

		vector.DrawFilledRect(screen,
			float32((x-halfW)*s), float32((y-halfH)*s),
			float32(physics.PlayerWidth*s), float32(physics.PlayerHeight*s),
			rectColor, false)

		// Aim indicator
		ax := x + math.Cos(player.AimAngle)*aimIndicatorLength
		ay := y + math.Sin(player.AimAngle)*aimIndicatorLength
		vector.StrokeLine(screen,
			float32(x*s), float32(y*s),
			float32(ax*s), float32(ay*s),
			1, colorAim, false)

		// Health bar above the sprite
		barW := physics.PlayerWidth * s
		fill := float64(player.Health) / 100.0
		if fill < 0 {
			fill = 0
		}
		vector.DrawFilledRect(screen,
			float32((x-halfW)*s), float32((y-halfH-8)*s),
			float32(barW*fill), 3, colorHealth, false)
	})
}

// NewHUDRenderer returns a renderer showing connection state, the match
// timer, and the prediction backlog.
func NewHUDRenderer(client *network.Client, history *netcode.InputHistory) func(*ecs.ECS, *ebiten.Image) {
	face := basicfont.Face7x13
	remaining := -1
	endedLine := ""

	return func(e *ecs.ECS, screen *ebiten.Image) {
		if t := client.LatestTimer(); t != nil {
			remaining = t.RemainingSeconds
		}
		if ended := client.MatchEnded(); ended != nil {
			endedLine = "match over: " + ended.WinnerID + " wins"
		}

		status := stateLabel(client.State())
		line := fmt.Sprintf("%s  room:%s  pending:%d", status, client.RoomID(), history.Len())
		text.Draw(screen, line, face, 4, 14, colorHUD)

		if remaining >= 0 {
			text.Draw(screen, fmt.Sprintf("time %d:%02d", remaining/60, remaining%60), face, 4, 28, colorHUD)
		}
		if endedLine != "" {
			text.Draw(screen, endedLine, face, 4, 42, colorHUD)
		}
	}
}

func stateLabel(s network.ClientState) string {
	switch s {
	case network.StateConnecting:
		return "connecting"
	case network.StateConnected:
		return "waiting for room"
	case network.StateInRoom:
		return "online"
	case network.StateError:
		return "error"
	default:
		return "offline"
	}
}
