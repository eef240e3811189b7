package systems

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/mtomcal/stick-rumble-client/components"
	"github.com/mtomcal/stick-rumble-client/netcode"
)

// NewNetInterpSystem returns the system that moves every remote player to
// its interpolated position each frame. Entities the interpolator has no
// data for keep their last position; the sample result drives velocity too
// so a future animation layer can blend walk cycles from it.
func NewNetInterpSystem(interp *netcode.Interpolator, now func() int64) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		nowMs := now()
		components.Player.Each(e.World, func(entry *donburi.Entry) {
			player := components.Player.Get(entry)
			if player.IsLocal {
				return
			}

			result, ok := interp.Sample(player.ID, nowMs)
			if !ok {
				return
			}

			pos := components.Position.Get(entry)
			vel := components.Velocity.Get(entry)
			pos.X, pos.Y = result.Position.X, result.Position.Y
			vel.X, vel.Y = result.Velocity.X, result.Velocity.Y
		})
	}
}
