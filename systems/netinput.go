package systems

import (
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"

	"github.com/mtomcal/stick-rumble-client/components"
	cfg "github.com/mtomcal/stick-rumble-client/config"
	"github.com/mtomcal/stick-rumble-client/netcode"
	"github.com/mtomcal/stick-rumble-client/shared/messages"
	"github.com/mtomcal/stick-rumble-client/shared/physics"
)

// resendInterval is how often an unchanged input state is re-sent so the
// server recovers from a lost input:state without waiting for a key change.
const resendInterval = 50 * time.Millisecond

// InputSender is the outbound half of the network client.
type InputSender interface {
	SendInput(messages.InputState) error
}

type netInputState struct {
	lastSent     messages.InputState
	lastSendTime time.Time
}

// NewNetInputSystem returns a system that samples the keyboard and mouse
// each tick, stamps the input with the next sequence number, records it in
// the pending-input history, advances the local player's predicted state by
// one fixed tick, and sends the input to the server when it changed or the
// resend interval elapsed.
func NewNetInputSystem(send InputSender, history *netcode.InputHistory, localID func() string) func(*ecs.ECS) {
	state := &netInputState{}

	return func(e *ecs.ECS) {
		id := localID()
		if id == "" {
			return
		}
		entry, ok := findPlayer(e.World, id)
		if !ok {
			return
		}

		pos := components.Position.Get(entry)
		vel := components.Velocity.Get(entry)

		input := messages.InputState{
			Up:          keyHeld(ebiten.KeyW, ebiten.KeyArrowUp),
			Down:        keyHeld(ebiten.KeyS, ebiten.KeyArrowDown),
			Left:        keyHeld(ebiten.KeyA, ebiten.KeyArrowLeft),
			Right:       keyHeld(ebiten.KeyD, ebiten.KeyArrowRight),
			IsSprinting: keyHeld(ebiten.KeyShiftLeft, ebiten.KeyShiftRight),
			AimAngle:    aimAngle(pos.X, pos.Y),
		}
		input.Sequence = history.NextSequence()

		pending := netcode.PendingInput{
			Sequence:  input.Sequence,
			Input:     input,
			Timestamp: time.Now().UnixMilli(),
		}
		history.Push(pending)

		// Predict locally every frame with the fixed tick: ebiten drives
		// Update at the same 60 Hz the server simulates at.
		result := netcode.Predict(
			vecOf(pos.X, pos.Y), vecOf(vel.X, vel.Y),
			pending, physics.TickInterval,
		)
		pos.X, pos.Y = result.Position.X, result.Position.Y
		vel.X, vel.Y = result.Velocity.X, result.Velocity.Y

		// Only send when the input changed or the resend interval elapsed.
		now := time.Now()
		if sameIntent(input, state.lastSent) && now.Sub(state.lastSendTime) < resendInterval {
			return
		}
		if err := send.SendInput(input); err != nil {
			log.Printf("[netinput] send error: %v", err)
			return
		}
		state.lastSent = input
		state.lastSendTime = now
	}
}

// sameIntent compares two inputs ignoring sequence, which always differs.
func sameIntent(a, b messages.InputState) bool {
	a.Sequence, b.Sequence = 0, 0
	return a == b
}

func keyHeld(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// aimAngle returns the angle in radians from the player to the cursor.
func aimAngle(playerX, playerY float64) float64 {
	cx, cy := ebiten.CursorPosition()
	worldX := float64(cx) / cfg.C.RenderScale
	worldY := float64(cy) / cfg.C.RenderScale
	return math.Atan2(worldY-playerY, worldX-playerX)
}
