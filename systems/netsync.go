package systems

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/mtomcal/stick-rumble-client/components"
	cfg "github.com/mtomcal/stick-rumble-client/config"
	"github.com/mtomcal/stick-rumble-client/netcode"
	"github.com/mtomcal/stick-rumble-client/shared/messages"
)

// SnapshotSource is the inbound half of the network client.
type SnapshotSource interface {
	LatestMove() *messages.PlayerMoveData
	DrainPlayerLeft() []messages.PlayerLeftData
	PlayerID() string
}

// NewNetSyncSystem returns the system that applies authoritative server
// state each tick. The local player's snapshot goes through prediction
// reconciliation; every other player's snapshot is stamped with the arrival
// time and fed to the interpolator. Departed players are torn down.
func NewNetSyncSystem(src SnapshotSource, history *netcode.InputHistory, interp *netcode.Interpolator, now func() int64) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		world := e.World

		for _, left := range src.DrainPlayerLeft() {
			interp.ClearEntity(left.PlayerID)
			if entry, ok := findPlayer(world, left.PlayerID); ok {
				entry.Remove()
			}
		}

		move := src.LatestMove()
		if move == nil {
			return
		}

		localID := src.PlayerID()
		nowMs := now()

		for _, snap := range move.Players {
			entry := findOrCreatePlayer(world, snap.ID)

			player := components.Player.Get(entry)
			player.Health = snap.Health
			player.IsLocal = snap.ID == localID

			if player.IsLocal {
				reconcileLocal(entry, snap, history)
			} else {
				player.AimAngle = snap.AimAngle
				interp.AddSnapshot(snap.ID, netcode.PositionSnapshot{
					Position:  snap.Position,
					Velocity:  snap.Velocity,
					Timestamp: nowMs,
				})
			}
		}
	}
}

// reconcileLocal corrects the local player's predicted state against the
// server's. With no processed input yet the server is trusted outright
// (initial spawn, or a server that does not ack sequences). Otherwise the
// unacknowledged inputs are replayed on top of the server state, and the
// visual difference is either snapped (large error) or eased out through
// the Correction component (small error).
func reconcileLocal(entry *donburi.Entry, snap messages.PlayerSnapshot, history *netcode.InputHistory) {
	pos := components.Position.Get(entry)
	vel := components.Velocity.Get(entry)
	corr := components.Correction.Get(entry)

	if snap.LastProcessedSeq == 0 {
		pos.X, pos.Y = snap.Position.X, snap.Position.Y
		vel.X, vel.Y = snap.Velocity.X, snap.Velocity.Y
		corr.Tween = nil
		corr.Scale = 0
		return
	}

	pending := history.Unacked(snap.LastProcessedSeq)
	corrected := netcode.Reconcile(snap.Position, snap.Velocity, snap.LastProcessedSeq, pending)
	history.PruneAcked(snap.LastProcessedSeq)

	predicted := vecOf(pos.X, pos.Y)
	displayedX := pos.X + corr.OffsetX*corr.Scale
	displayedY := pos.Y + corr.OffsetY*corr.Scale

	pos.X, pos.Y = corrected.Position.X, corrected.Position.Y
	vel.X, vel.Y = corrected.Velocity.X, corrected.Velocity.Y

	if netcode.NeedsInstantCorrection(predicted, corrected.Position) {
		// Too far to bridge visually: teleport.
		corr.Tween = nil
		corr.Scale = 0
		return
	}

	if netcode.CorrectionDistance(predicted, corrected.Position) > 0.001 {
		corr.OffsetX = displayedX - corrected.Position.X
		corr.OffsetY = displayedY - corrected.Position.Y
		corr.Tween = gween.New(1, 0, float32(cfg.C.CorrectionTweenSeconds), ease.OutQuad)
		corr.Scale = 1
	}
}

func findOrCreatePlayer(world donburi.World, id string) *donburi.Entry {
	if entry, ok := findPlayer(world, id); ok {
		return entry
	}
	entity := world.Create(
		components.Player, components.Position,
		components.Velocity, components.Correction,
	)
	entry := world.Entry(entity)
	components.Player.Get(entry).ID = id
	return entry
}
