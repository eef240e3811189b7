// Package messages defines the JSON wire types exchanged with the server.
// Field names and the envelope layout must match the server's schemas in
// internal/network; the server validates every inbound payload against them.
package messages

import "github.com/mtomcal/stick-rumble-client/shared/gamemath"

// Message is the envelope wrapping every message in both directions.
type Message struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
}

// Message type constants for the subset of the protocol the client speaks.
const (
	TypeInputState = "input:state"
	TypeRoomJoined = "room:joined"
	TypePlayerMove = "player:move"
	TypePlayerLeft = "player:left"
	TypeMatchTimer = "match:timer"
	TypeMatchEnded = "match:ended"
)

// InputState is one sampling of player intent, sent as input:state data.
// Sequence is strictly increasing per session and is the correlation key
// for prediction reconciliation. Immutable once created.
type InputState struct {
	Up          bool    `json:"up"`
	Down        bool    `json:"down"`
	Left        bool    `json:"left"`
	Right       bool    `json:"right"`
	AimAngle    float64 `json:"aimAngle"`
	IsSprinting bool    `json:"isSprinting"`
	Sequence    uint64  `json:"sequence"`
}

// PlayerSnapshot is one authoritative observation of a player inside a
// player:move broadcast.
type PlayerSnapshot struct {
	ID       string           `json:"id"`
	Position gamemath.Vector2 `json:"position"`
	Velocity gamemath.Vector2 `json:"velocity"`
	AimAngle float64          `json:"aimAngle"`
	Health   int              `json:"health"`

	// LastProcessedSeq is the highest input sequence the server had applied
	// when this snapshot was taken. Zero means the server has not yet
	// processed any input for this player.
	LastProcessedSeq uint64 `json:"lastProcessedSeq"`
}

// PlayerMoveData is the payload of a player:move broadcast.
type PlayerMoveData struct {
	Players []PlayerSnapshot `json:"players"`
}

// RoomJoinedData is the payload of room:joined, received once when the
// server pairs this client into a room.
type RoomJoinedData struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
}

// PlayerLeftData is the payload of player:left.
type PlayerLeftData struct {
	PlayerID string `json:"playerId"`
}

// MatchTimerData is the payload of match:timer.
type MatchTimerData struct {
	RemainingSeconds int `json:"remainingSeconds"`
}

// MatchEndedData is the payload of match:ended.
type MatchEndedData struct {
	WinnerID string `json:"winnerId"`
	Reason   string `json:"reason"`
}
