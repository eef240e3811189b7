// Package systems contains the donburi systems that drive the networked
// client: input capture with prediction, authoritative snapshot
// application, correction smoothing, remote interpolation sampling, and
// rendering.
package systems

import (
	"github.com/yohamta/donburi"

	"github.com/mtomcal/stick-rumble-client/components"
	"github.com/mtomcal/stick-rumble-client/shared/gamemath"
)

// findPlayer returns the entity entry for the given player id.
func findPlayer(world donburi.World, id string) (*donburi.Entry, bool) {
	var found *donburi.Entry
	components.Player.Each(world, func(entry *donburi.Entry) {
		if found == nil && components.Player.Get(entry).ID == id {
			found = entry
		}
	})
	return found, found != nil
}

func vecOf(x, y float64) gamemath.Vector2 {
	return gamemath.Vector2{X: x, Y: y}
}
