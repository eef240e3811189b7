package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/mtomcal/stick-rumble-client/components"
	"github.com/mtomcal/stick-rumble-client/netcode"
	"github.com/mtomcal/stick-rumble-client/shared/gamemath"
	"github.com/mtomcal/stick-rumble-client/shared/messages"
)

type fakeSource struct {
	move *messages.PlayerMoveData
	left []messages.PlayerLeftData
	id   string
}

func (f *fakeSource) LatestMove() *messages.PlayerMoveData {
	m := f.move
	f.move = nil
	return m
}

func (f *fakeSource) DrainPlayerLeft() []messages.PlayerLeftData {
	l := f.left
	f.left = nil
	return l
}

func (f *fakeSource) PlayerID() string { return f.id }

func moveData(players ...messages.PlayerSnapshot) *messages.PlayerMoveData {
	return &messages.PlayerMoveData{Players: players}
}

func fixedNow(ms int64) func() int64 {
	return func() int64 { return ms }
}

func TestNetSyncCreatesRemotePlayersAndFeedsInterpolator(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	src := &fakeSource{id: "me"}
	history := netcode.NewInputHistory()
	interp := netcode.NewInterpolator()

	src.move = moveData(messages.PlayerSnapshot{
		ID:       "other",
		Position: gamemath.Vector2{X: 700, Y: 400},
		Velocity: gamemath.Vector2{X: 200, Y: 0},
		Health:   80,
	})
	NewNetSyncSystem(src, history, interp, fixedNow(1000))(e)

	entry, ok := findPlayer(e.World, "other")
	require.True(t, ok, "a snapshot for an unseen player must create its entity")
	assert.False(t, components.Player.Get(entry).IsLocal)
	assert.Equal(t, 80, components.Player.Get(entry).Health)

	result, ok := interp.Sample("other", 1000)
	require.True(t, ok)
	assert.Equal(t, 700.0, result.Position.X)
}

func TestNetSyncLocalTrustsServerWithoutProcessedInput(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	src := &fakeSource{id: "me"}
	history := netcode.NewInputHistory()
	interp := netcode.NewInterpolator()

	src.move = moveData(messages.PlayerSnapshot{
		ID:       "me",
		Position: gamemath.Vector2{X: 960, Y: 540},
		Velocity: gamemath.Vector2{X: 12, Y: 0},
	})
	NewNetSyncSystem(src, history, interp, fixedNow(0))(e)

	entry, ok := findPlayer(e.World, "me")
	require.True(t, ok)
	assert.True(t, components.Player.Get(entry).IsLocal)
	assert.Equal(t, 960.0, components.Position.Get(entry).X)
	assert.Equal(t, 12.0, components.Velocity.Get(entry).X)

	_, tracked := interp.Sample("me", 1000)
	assert.False(t, tracked, "the local player never enters the interpolator")
}

func TestNetSyncLocalSmoothCorrection(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	src := &fakeSource{id: "me"}
	history := netcode.NewInputHistory()
	interp := netcode.NewInterpolator()
	sync := NewNetSyncSystem(src, history, interp, fixedNow(0))

	// Spawn at the server position first.
	src.move = moveData(messages.PlayerSnapshot{
		ID: "me", Position: gamemath.Vector2{X: 960, Y: 540},
	})
	sync(e)

	for seq := uint64(1); seq <= 4; seq++ {
		history.Push(netcode.PendingInput{
			Sequence: seq,
			Input:    messages.InputState{Right: true, Sequence: seq},
		})
	}

	// The server is slightly ahead of prediction and has processed seq 2.
	src.move = moveData(messages.PlayerSnapshot{
		ID:               "me",
		Position:         gamemath.Vector2{X: 965, Y: 540},
		LastProcessedSeq: 2,
	})
	sync(e)

	entry, _ := findPlayer(e.World, "me")
	pos := components.Position.Get(entry)
	corr := components.Correction.Get(entry)

	assert.InDelta(t, 965.04, pos.X, 0.05, "position adopts the replayed server state")
	require.NotNil(t, corr.Tween, "a small error converges through a tween")
	assert.Equal(t, 1.0, corr.Scale)
	assert.InDelta(t, -5.0, corr.OffsetX, 0.1)
	assert.Equal(t, 2, history.Len(), "acked inputs are pruned after reconciliation")
}

func TestNetSyncLocalInstantCorrectionTeleports(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	src := &fakeSource{id: "me"}
	history := netcode.NewInputHistory()
	interp := netcode.NewInterpolator()
	sync := NewNetSyncSystem(src, history, interp, fixedNow(0))

	src.move = moveData(messages.PlayerSnapshot{
		ID: "me", Position: gamemath.Vector2{X: 960, Y: 540},
	})
	sync(e)

	history.Push(netcode.PendingInput{Sequence: 1, Input: messages.InputState{Sequence: 1}})

	src.move = moveData(messages.PlayerSnapshot{
		ID:               "me",
		Position:         gamemath.Vector2{X: 1400, Y: 540},
		LastProcessedSeq: 1,
	})
	sync(e)

	entry, _ := findPlayer(e.World, "me")
	corr := components.Correction.Get(entry)

	assert.Equal(t, 1400.0, components.Position.Get(entry).X)
	assert.Nil(t, corr.Tween, "an error past the threshold teleports without easing")
	assert.Equal(t, 0.0, corr.Scale)
}

func TestNetSyncPlayerLeftTearsDownEntity(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	src := &fakeSource{id: "me"}
	history := netcode.NewInputHistory()
	interp := netcode.NewInterpolator()
	sync := NewNetSyncSystem(src, history, interp, fixedNow(500))

	src.move = moveData(messages.PlayerSnapshot{
		ID: "other", Position: gamemath.Vector2{X: 100, Y: 100},
	})
	sync(e)

	src.left = []messages.PlayerLeftData{{PlayerID: "other"}}
	sync(e)

	_, ok := findPlayer(e.World, "other")
	assert.False(t, ok)
	_, tracked := interp.Sample("other", 1000)
	assert.False(t, tracked, "the departed player's snapshot buffer is discarded")
}

func TestNetInterpSystemMovesRemotePlayers(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	src := &fakeSource{id: "me"}
	history := netcode.NewInputHistory()
	interp := netcode.NewInterpolator()

	src.move = moveData(messages.PlayerSnapshot{
		ID:       "other",
		Position: gamemath.Vector2{X: 0, Y: 0},
		Velocity: gamemath.Vector2{X: 100, Y: 0},
	})
	NewNetSyncSystem(src, history, interp, fixedNow(0))(e)

	interp.AddSnapshot("other", netcode.PositionSnapshot{
		Position:  gamemath.Vector2{X: 100, Y: 0},
		Velocity:  gamemath.Vector2{X: 100, Y: 0},
		Timestamp: 100,
	})

	// Render time 50: midway between the two snapshots.
	NewNetInterpSystem(interp, fixedNow(50+netcode.BufferDelayMs))(e)

	entry, _ := findPlayer(e.World, "other")
	assert.InDelta(t, 50.0, components.Position.Get(entry).X, 1e-9)
	assert.InDelta(t, 100.0, components.Velocity.Get(entry).X, 1e-9)
}
