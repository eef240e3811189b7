// Package components defines the donburi component types for networked
// entities. Every player in the room, local or remote, is one entity
// carrying Position, Velocity, and Player.
package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

type PositionData struct {
	X, Y float64
}

var Position = donburi.NewComponentType[PositionData]()

type VelocityData struct {
	X, Y float64
}

var Velocity = donburi.NewComponentType[VelocityData]()

// PlayerData carries the non-positional state of a player snapshot plus the
// local-player flag that selects the prediction path over interpolation.
type PlayerData struct {
	ID       string
	Health   int
	AimAngle float64
	IsLocal  bool
}

var Player = donburi.NewComponentType[PlayerData]()

// CorrectionData smooths reconciliation corrections on the local player.
// The simulation position snaps to the reconciled state immediately; the
// renderer adds Offset scaled by the tween so the visible sprite converges
// instead of popping. Instant corrections skip the tween entirely.
type CorrectionData struct {
	OffsetX, OffsetY float64
	Tween            *gween.Tween // nil when no correction is in flight
	Scale            float64      // current tween value, 1 → full offset, 0 → none
}

var Correction = donburi.NewComponentType[CorrectionData]()
