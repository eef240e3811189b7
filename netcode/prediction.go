// Package netcode implements client-side prediction with server
// reconciliation for the local player, and snapshot interpolation for
// remote players. Everything here is synchronous and allocation-light:
// one Predict/Reconcile call and one Sample per entity per frame, driven
// by the host's frame loop. Nothing in this package locks; a host that
// feeds it from a network goroutine must serialize access itself.
package netcode

import (
	"github.com/mtomcal/stick-rumble-client/shared/gamemath"
	"github.com/mtomcal/stick-rumble-client/shared/physics"
)

// InstantCorrectionThreshold is the prediction error, in pixels, at which
// the renderer should teleport to the server position instead of smoothly
// converging. Past this distance a visual lerp reads as rubber-banding.
const InstantCorrectionThreshold = 100.0

// Predict advances the local player's predicted state by one step. Called
// once per frame with the newest sampled input.
func Predict(pos, vel gamemath.Vector2, input PendingInput, dt float64) physics.PredictionResult {
	return physics.Step(pos, vel, input.Input, dt)
}

// Reconcile recomputes the correct current predicted state from an
// authoritative server snapshot: starting at the server's position and
// velocity, it replays every pending input the server had not yet processed,
// in ascending sequence order. Each input is stepped with the elapsed time
// between it and the previous input; entries without a usable timestamp
// delta fall back to the fixed tick interval.
//
// With no pending inputs the server state is returned unchanged. The call
// is idempotent: the same snapshot and the same pending list always produce
// the same result.
func Reconcile(serverPos, serverVel gamemath.Vector2, lastProcessedSeq uint64, pending []PendingInput) physics.PredictionResult {
	pos := gamemath.Sanitize(serverPos)
	vel := gamemath.Sanitize(serverVel)

	prevTimestamp := int64(0)
	for _, in := range pending {
		if in.Sequence <= lastProcessedSeq {
			prevTimestamp = in.Timestamp
			continue
		}

		dt := physics.TickInterval
		if prevTimestamp > 0 && in.Timestamp > prevTimestamp {
			dt = float64(in.Timestamp-prevTimestamp) / 1000.0
		}
		prevTimestamp = in.Timestamp

		result := physics.Step(pos, vel, in.Input, dt)
		pos = result.Position
		vel = result.Velocity
	}

	return physics.PredictionResult{Position: pos, Velocity: vel}
}

// CorrectionDistance returns the Euclidean distance between the predicted
// and authoritative positions.
func CorrectionDistance(predicted, server gamemath.Vector2) float64 {
	return gamemath.Distance(predicted, server)
}

// NeedsInstantCorrection reports whether the prediction error is large
// enough that the renderer should teleport rather than smoothly converge.
func NeedsInstantCorrection(predicted, server gamemath.Vector2) bool {
	return CorrectionDistance(predicted, server) >= InstantCorrectionThreshold
}
