package netcode

import "github.com/mtomcal/stick-rumble-client/shared/gamemath"

const (
	// snapshotBufferCap is the number of snapshots retained per entity.
	// At the server's 20 Hz update rate this covers half a second.
	snapshotBufferCap = 10

	// BufferDelayMs is the deliberate render lag. Remote entities are drawn
	// this far in the past so two already-received snapshots normally
	// bracket the render time, which is what makes interpolation possible
	// instead of guessing about the future. 100 ms covers roughly two
	// server updates at 20 Hz.
	BufferDelayMs = 100

	// ExtrapolationMaxMs caps how far past the newest snapshot a position
	// is projected using last-known velocity.
	ExtrapolationMaxMs = 100

	// FreezeThresholdMs is the gap past the newest snapshot after which the
	// entity freezes in place with zero velocity instead of extrapolating.
	FreezeThresholdMs = 200
)

// PositionSnapshot is one timestamped authoritative observation of a remote
// entity. Timestamps are milliseconds on the caller's clock and must be
// supplied in non-decreasing order; the buffer does not sort.
type PositionSnapshot struct {
	Position  gamemath.Vector2
	Velocity  gamemath.Vector2
	Timestamp int64
}

// InterpolationResult is the smoothed state for one render frame. Velocity
// is interpolated alongside position so animation blending gets a smooth
// signal too. Recomputed fresh on every Sample, never cached.
type InterpolationResult struct {
	Position gamemath.Vector2
	Velocity gamemath.Vector2
}

// snapshotRing is a fixed-capacity FIFO of snapshots, oldest evicted first.
type snapshotRing struct {
	buf   [snapshotBufferCap]PositionSnapshot
	start int
	count int
}

func (r *snapshotRing) push(s PositionSnapshot) {
	if r.count < snapshotBufferCap {
		r.buf[(r.start+r.count)%snapshotBufferCap] = s
		r.count++
		return
	}
	r.buf[r.start] = s
	r.start = (r.start + 1) % snapshotBufferCap
}

func (r *snapshotRing) at(i int) PositionSnapshot {
	return r.buf[(r.start+i)%snapshotBufferCap]
}

// Interpolator smooths remote entity motion by buffering server snapshots
// per entity and sampling them at a delayed render time. It exclusively
// owns its buffers; callers interact only through AddSnapshot, Sample, and
// ClearEntity.
type Interpolator struct {
	entities map[string]*snapshotRing
}

// NewInterpolator returns an Interpolator with no tracked entities.
func NewInterpolator() *Interpolator {
	return &Interpolator{entities: make(map[string]*snapshotRing)}
}

// AddSnapshot appends a snapshot to the entity's buffer, creating the buffer
// on first sight of the entity and evicting the oldest entry once full.
func (ip *Interpolator) AddSnapshot(entityID string, snap PositionSnapshot) {
	ring, ok := ip.entities[entityID]
	if !ok {
		ring = &snapshotRing{}
		ip.entities[entityID] = ring
	}
	snap.Position = gamemath.Sanitize(snap.Position)
	snap.Velocity = gamemath.Sanitize(snap.Velocity)
	ring.push(snap)
}

// ClearEntity discards the entity's entire buffer. Used on disconnect and
// despawn. Clearing an unknown entity is a no-op.
func (ip *Interpolator) ClearEntity(entityID string) {
	delete(ip.entities, entityID)
}

// Sample computes the smoothed state for an entity at render time
// nowMs - BufferDelayMs. It returns false when the entity is unknown or has
// no snapshots. Ahead of the oldest snapshot it returns that snapshot
// verbatim; between snapshots it interpolates position and velocity
// linearly; past the newest snapshot it extrapolates along the last known
// velocity for up to ExtrapolationMaxMs, then freezes in place with zero
// velocity once the gap exceeds FreezeThresholdMs.
func (ip *Interpolator) Sample(entityID string, nowMs int64) (InterpolationResult, bool) {
	ring, ok := ip.entities[entityID]
	if !ok || ring.count == 0 {
		return InterpolationResult{}, false
	}

	renderTime := nowMs - BufferDelayMs

	oldest := ring.at(0)
	if renderTime <= oldest.Timestamp {
		return InterpolationResult{Position: oldest.Position, Velocity: oldest.Velocity}, true
	}

	for i := 0; i < ring.count-1; i++ {
		prev := ring.at(i)
		next := ring.at(i + 1)
		if prev.Timestamp <= renderTime && renderTime < next.Timestamp {
			t := 0.0
			if span := next.Timestamp - prev.Timestamp; span > 0 {
				t = float64(renderTime-prev.Timestamp) / float64(span)
			}
			return InterpolationResult{
				Position: gamemath.Lerp(prev.Position, next.Position, t),
				Velocity: gamemath.Lerp(prev.Velocity, next.Velocity, t),
			}, true
		}
	}

	newest := ring.at(ring.count - 1)
	gap := renderTime - newest.Timestamp

	if gap > FreezeThresholdMs {
		// Updates stopped arriving: hold position, report no motion.
		return InterpolationResult{Position: newest.Position}, true
	}

	extraMs := gap
	if extraMs > ExtrapolationMaxMs {
		extraMs = ExtrapolationMaxMs
	}
	return InterpolationResult{
		Position: newest.Position.Add(newest.Velocity.Scale(float64(extraMs) / 1000.0)),
		Velocity: newest.Velocity,
	}, true
}
