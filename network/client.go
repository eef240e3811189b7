// Package network manages the WebSocket connection to the game server and
// converts its JSON protocol into typed messages the frame loop consumes.
// It performs no interpretation of game state: snapshots are handed to the
// netcode layer untouched.
package network

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/coder/websocket"
	"golang.org/x/time/rate"

	"github.com/mtomcal/stick-rumble-client/shared/messages"
	"github.com/mtomcal/stick-rumble-client/shared/physics"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateInRoom
	StateError
)

// envelope mirrors messages.Message with the payload left raw so it can be
// decoded per type.
type envelope struct {
	Type      string          `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Client manages a WebSocket connection to the game server.
// All shared fields are protected by mu (the read loop runs on its own
// goroutine); game data crosses to the frame loop through channels only.
type Client struct {
	mu sync.RWMutex

	state     ClientState
	lastError error
	playerID  string
	roomID    string
	conn      *websocket.Conn

	// inputLimiter caps outbound input:state volume independently of the
	// caller's resend policy. Marginally above the tick rate so a full
	// 60 Hz stream of changing inputs is never throttled.
	inputLimiter *rate.Limiter

	moveCh  chan messages.PlayerMoveData // size-1 buffered; latest wins
	leftCh  chan messages.PlayerLeftData
	timerCh chan messages.MatchTimerData // size-1 buffered; latest wins
	endedCh chan messages.MatchEndedData
}

func NewClient() *Client {
	return &Client{
		state:        StateDisconnected,
		inputLimiter: rate.NewLimiter(rate.Limit(physics.ServerTickRate+10), physics.ServerTickRate),
		moveCh:       make(chan messages.PlayerMoveData, 1),
		leftCh:       make(chan messages.PlayerLeftData, 4),
		timerCh:      make(chan messages.MatchTimerData, 1),
		endedCh:      make(chan messages.MatchEndedData, 1),
	}
}

// Connect dials the server's /ws endpoint in a background goroutine and
// starts the read loop. Connection progress is observable through State.
func (c *Client) Connect(ctx context.Context, address string) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.mu.Unlock()

	go func() {
		dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		conn, _, err := websocket.Dial(dialCtx, "ws://"+address+"/ws", nil)
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
			return
		}

		log.Println("[network] connected to server")
		c.mu.Lock()
		c.conn = conn
		c.state = StateConnected
		c.mu.Unlock()

		c.readLoop(ctx, conn)
	}()
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		_, raw, err := conn.Read(ctx)
		if err != nil {
			log.Printf("[network] disconnected: %v", err)
			c.mu.Lock()
			if c.state != StateError {
				c.state = StateDisconnected
			}
			c.conn = nil
			c.mu.Unlock()
			return
		}
		c.handleRaw(raw)
	}
}

// handleRaw decodes one server message and routes it to the matching
// channel. Unknown types are ignored; the server broadcasts more of its
// protocol than this client consumes.
func (c *Client) handleRaw(raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("[network] failed to parse message: %v", err)
		return
	}

	switch env.Type {
	case messages.TypeRoomJoined:
		var data messages.RoomJoinedData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			log.Printf("[network] bad room:joined payload: %v", err)
			return
		}
		log.Printf("[network] joined room %s as %s", data.RoomID, data.PlayerID)
		c.mu.Lock()
		c.playerID = data.PlayerID
		c.roomID = data.RoomID
		c.state = StateInRoom
		c.mu.Unlock()

	case messages.TypePlayerMove:
		var data messages.PlayerMoveData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			log.Printf("[network] bad player:move payload: %v", err)
			return
		}
		select { // drain stale, push latest
		case <-c.moveCh:
		default:
		}
		c.moveCh <- data

	case messages.TypePlayerLeft:
		var data messages.PlayerLeftData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return
		}
		select {
		case c.leftCh <- data:
		default:
		}

	case messages.TypeMatchTimer:
		var data messages.MatchTimerData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return
		}
		select {
		case <-c.timerCh:
		default:
		}
		c.timerCh <- data

	case messages.TypeMatchEnded:
		var data messages.MatchEndedData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return
		}
		select {
		case c.endedCh <- data:
		default:
		}
	}
}

// SendInput sends an input:state message. Sends beyond the rate ceiling are
// dropped without error; the input system resends current state within one
// resend interval anyway.
func (c *Client) SendInput(input messages.InputState) error {
	if !c.inputLimiter.Allow() {
		return nil
	}
	return c.send(messages.Message{
		Type:      messages.TypeInputState,
		Timestamp: time.Now().UnixMilli(),
		Data:      input,
	})
}

func (c *Client) send(msg messages.Message) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected")
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("serialize %s: %w", msg.Type, err)
	}

	return conn.Write(context.Background(), websocket.MessageText, payload)
}

// Disconnect closes the connection, if any, and resets state.
func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

// PlayerID returns the server-assigned identifier for the local player,
// empty until room:joined has been received.
func (c *Client) PlayerID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerID
}

func (c *Client) RoomID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roomID
}

// LatestMove returns the most recent player:move payload, or nil.
// Non-blocking; broadcasts overtaken by a newer one are intentionally
// skipped, reconciliation only ever wants the freshest authoritative state.
func (c *Client) LatestMove() *messages.PlayerMoveData {
	select {
	case data := <-c.moveCh:
		return &data
	default:
		return nil
	}
}

// DrainPlayerLeft returns all pending player:left events, non-blocking.
func (c *Client) DrainPlayerLeft() []messages.PlayerLeftData {
	var out []messages.PlayerLeftData
	for {
		select {
		case v := <-c.leftCh:
			out = append(out, v)
		default:
			return out
		}
	}
}

// LatestTimer returns the most recent match:timer payload, or nil.
func (c *Client) LatestTimer() *messages.MatchTimerData {
	select {
	case data := <-c.timerCh:
		return &data
	default:
		return nil
	}
}

// MatchEnded returns the match:ended payload once received, or nil.
func (c *Client) MatchEnded() *messages.MatchEndedData {
	select {
	case data := <-c.endedCh:
		return &data
	default:
		return nil
	}
}

func (c *Client) setError(err error) {
	log.Printf("[network] error: %v", err)
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}
