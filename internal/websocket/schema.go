package websocket

import (
	"github.com/cetprep/cetprep-backend/internal/exam"
)

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventTick    Event = "tick"
	EventExpired Event = "expired"
	EventError   Event = "error"
	EventPong    Event = "pong"
)

// TickEvent carries one countdown reading. Sent once on connect and then
// once per second.
type TickEvent struct {
	Event Event         `json:"event"`
	Timer exam.Snapshot `json:"timer"`
}

// ExpiredEvent marks the deadline. Sent exactly once, after the final tick;
// the server closes the stream after it.
type ExpiredEvent struct {
	Event Event `json:"event"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
