// Package physics is the client-side copy of the server's movement
// simulation. Step must be behaviorally identical to the server's
// Physics.UpdatePlayer movement path: client-side prediction only works if
// replaying the same inputs produces the same positions on both ends.
package physics

import (
	"math"

	"github.com/mtomcal/stick-rumble-client/shared/gamemath"
	"github.com/mtomcal/stick-rumble-client/shared/messages"
)

// PredictionResult is the state produced by one simulation step.
type PredictionResult struct {
	Position gamemath.Vector2
	Velocity gamemath.Vector2
}

// Step advances position and velocity by dt seconds under the given input.
// It is pure: no side effects, and identical arguments always produce
// identical results. Zero or negative dt returns the state unchanged.
func Step(position, velocity gamemath.Vector2, input messages.InputState, dt float64) PredictionResult {
	if dt <= 0 {
		return PredictionResult{Position: position, Velocity: velocity}
	}

	dir := gamemath.Vector2{}
	if input.Left {
		dir.X -= 1
	}
	if input.Right {
		dir.X += 1
	}
	if input.Up {
		dir.Y -= 1
	}
	if input.Down {
		dir.Y += 1
	}
	// Normalize so diagonal movement is not faster than axis-aligned.
	dir = dir.Normalized()

	moveSpeed := MovementSpeed
	if input.IsSprinting {
		moveSpeed = SprintSpeed
	}

	if dir.X != 0 || dir.Y != 0 {
		target := dir.Scale(moveSpeed)
		velocity = accelerateToward(velocity, target, Acceleration, dt)
	} else {
		velocity = accelerateToward(velocity, gamemath.Vector2{}, Deceleration, dt)
		if velocity.Length() < StopEpsilon {
			velocity = gamemath.Vector2{}
		}
	}

	// Cap speed, preserving direction. accelerateToward never overshoots its
	// target, but the cap still matters when sprint is released at full
	// sprint speed.
	if speed := velocity.Length(); speed > moveSpeed {
		velocity = velocity.Scale(moveSpeed / speed)
	}

	position = position.Add(velocity.Scale(dt))
	position = clampToArena(position)

	return PredictionResult{Position: position, Velocity: velocity}
}

// accelerateToward moves current toward target by at most accel*dt, snapping
// to target once within range. Mirrors the server's accelerateToward.
func accelerateToward(current, target gamemath.Vector2, accel, dt float64) gamemath.Vector2 {
	diff := target.Sub(current)
	maxChange := accel * dt

	diffLength := diff.Length()
	if diffLength <= maxChange {
		return target
	}

	return current.Add(diff.Scale(maxChange / diffLength))
}

// clampToArena keeps the player's center inside the arena, accounting for
// the player's half extents. Mirrors the server's clampToArena.
func clampToArena(pos gamemath.Vector2) gamemath.Vector2 {
	halfWidth := PlayerWidth / 2
	halfHeight := PlayerHeight / 2

	return gamemath.Vector2{
		X: math.Max(halfWidth, math.Min(pos.X, ArenaWidth-halfWidth)),
		Y: math.Max(halfHeight, math.Min(pos.Y, ArenaHeight-halfHeight)),
	}
}
