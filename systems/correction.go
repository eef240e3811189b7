package systems

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/mtomcal/stick-rumble-client/components"
	"github.com/mtomcal/stick-rumble-client/shared/physics"
)

// NewCorrectionSystem returns the system that advances in-flight smooth
// corrections. Each tick the tween eases the render offset toward zero;
// once done the offset is dropped and rendering tracks the simulation
// position exactly.
func NewCorrectionSystem() func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		components.Correction.Each(e.World, func(entry *donburi.Entry) {
			corr := components.Correction.Get(entry)
			if corr.Tween == nil {
				return
			}

			scale, done := corr.Tween.Update(float32(physics.TickInterval))
			corr.Scale = float64(scale)
			if done {
				corr.Tween = nil
				corr.Scale = 0
				corr.OffsetX, corr.OffsetY = 0, 0
			}
		})
	}
}
