package netcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtomcal/stick-rumble-client/shared/gamemath"
)

func snap(x, y, vx, vy float64, ts int64) PositionSnapshot {
	return PositionSnapshot{
		Position:  gamemath.Vector2{X: x, Y: y},
		Velocity:  gamemath.Vector2{X: vx, Y: vy},
		Timestamp: ts,
	}
}

func TestSampleUnknownEntity(t *testing.T) {
	ip := NewInterpolator()

	_, ok := ip.Sample("ghost", 1000)

	assert.False(t, ok)
}

func TestSampleExactAtSnapshotTimestamp(t *testing.T) {
	ip := NewInterpolator()
	ip.AddSnapshot("p1", snap(250, 130, 40, 0, 1000))
	ip.AddSnapshot("p1", snap(300, 130, 40, 0, 1050))

	// Query so renderTime lands exactly on each snapshot's timestamp.
	first, ok := ip.Sample("p1", 1000+BufferDelayMs)
	require.True(t, ok)
	assert.Equal(t, gamemath.Vector2{X: 250, Y: 130}, first.Position)
	assert.Equal(t, gamemath.Vector2{X: 40, Y: 0}, first.Velocity)

	second, ok := ip.Sample("p1", 1050+BufferDelayMs)
	require.True(t, ok)
	assert.Equal(t, gamemath.Vector2{X: 300, Y: 130}, second.Position)
	assert.Equal(t, gamemath.Vector2{X: 40, Y: 0}, second.Velocity)
}

func TestSampleMidpointInterpolation(t *testing.T) {
	ip := NewInterpolator()
	ip.AddSnapshot("p1", snap(0, 0, 0, 0, 0))
	ip.AddSnapshot("p1", snap(100, 0, 100, 0, 100))

	result, ok := ip.Sample("p1", 50+BufferDelayMs)

	require.True(t, ok)
	assert.InDelta(t, 50, result.Position.X, 1e-9)
	assert.InDelta(t, 50, result.Velocity.X, 1e-9, "velocity interpolates alongside position")
}

func TestSampleBeforeBufferStart(t *testing.T) {
	ip := NewInterpolator()
	ip.AddSnapshot("p1", snap(80, 90, 10, 20, 5000))

	result, ok := ip.Sample("p1", 4000)

	require.True(t, ok)
	assert.Equal(t, gamemath.Vector2{X: 80, Y: 90}, result.Position)
	assert.Equal(t, gamemath.Vector2{X: 10, Y: 20}, result.Velocity)
}

func TestSampleExtrapolatesPastNewest(t *testing.T) {
	ip := NewInterpolator()
	ip.AddSnapshot("p1", snap(0, 0, 100, 0, 0))
	ip.AddSnapshot("p1", snap(100, 0, 100, 0, 100))

	// Render time 150: 50 ms past the newest snapshot.
	result, ok := ip.Sample("p1", 250)

	require.True(t, ok)
	assert.InDelta(t, 105, result.Position.X, 1e-9)
	assert.Equal(t, gamemath.Vector2{X: 100, Y: 0}, result.Velocity)
}

func TestSampleExtrapolationCapped(t *testing.T) {
	ip := NewInterpolator()
	ip.AddSnapshot("p1", snap(0, 0, 100, 0, 0))
	ip.AddSnapshot("p1", snap(100, 0, 100, 0, 100))

	// Render time 250: 150 ms past the newest snapshot, over the 100 ms cap.
	result, ok := ip.Sample("p1", 350)

	require.True(t, ok)
	assert.InDelta(t, 110, result.Position.X, 1e-9, "extrapolation distance is capped")
}

func TestSampleFreezesAfterThreshold(t *testing.T) {
	ip := NewInterpolator()
	ip.AddSnapshot("p1", snap(100, 200, 50, 50, 0))

	// Render time 300: past FreezeThresholdMs, hold position and report
	// zero velocity so the animation layer stops the walk cycle.
	result, ok := ip.Sample("p1", 400)

	require.True(t, ok)
	assert.Equal(t, gamemath.Vector2{X: 100, Y: 200}, result.Position)
	assert.Equal(t, gamemath.Vector2{}, result.Velocity)
}

func TestBufferEvictsOldestBeyondCapacity(t *testing.T) {
	ip := NewInterpolator()
	for i := 0; i < 15; i++ {
		ip.AddSnapshot("p1", snap(float64(i*10), 0, 0, 0, int64(i*50)))
	}

	// Snapshots 0..4 are gone; the oldest retained is number 5 at t=250.
	// Querying a render time that corresponds to an evicted snapshot must
	// fall back to the oldest retained one, not crash.
	result, ok := ip.Sample("p1", 100+BufferDelayMs)

	require.True(t, ok)
	assert.Equal(t, 50.0, result.Position.X)
}

func TestClearEntityDropsBuffer(t *testing.T) {
	ip := NewInterpolator()
	ip.AddSnapshot("p1", snap(10, 10, 0, 0, 0))
	ip.ClearEntity("p1")

	_, ok := ip.Sample("p1", BufferDelayMs)
	assert.False(t, ok)

	// Clearing again is a no-op, not an error.
	ip.ClearEntity("p1")
}
