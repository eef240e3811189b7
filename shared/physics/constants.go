package physics

// Movement constants. These must match the server's exactly; any
// divergence shows up as correction jitter on every snapshot.
const (
	// MovementSpeed is the maximum movement speed in pixels per second.
	MovementSpeed = 200.0

	// SprintSpeed is the maximum speed while sprinting in pixels per second.
	SprintSpeed = 300.0

	// Acceleration is the rate velocity closes on its target, in pixels per
	// second squared.
	Acceleration = 50.0

	// Deceleration is the rate velocity closes on zero when there is no
	// input, in pixels per second squared.
	Deceleration = 50.0

	// StopEpsilon is the speed below which a decelerating player snaps to a
	// full stop instead of asymptotically drifting.
	StopEpsilon = 0.1
)

// Arena bounds, same values as the server.
const (
	ArenaWidth  = 1920.0
	ArenaHeight = 1080.0

	PlayerWidth  = 32.0
	PlayerHeight = 64.0
)

// Network update rates.
const (
	// ServerTickRate is the server physics tick rate in Hz.
	ServerTickRate = 60

	// ClientUpdateRate is the rate at which the server broadcasts position
	// updates in Hz.
	ClientUpdateRate = 20

	// TickInterval is the fixed simulation step in seconds, used when an
	// input carries no usable timestamp delta.
	TickInterval = 1.0 / float64(ServerTickRate)
)
