package models

import "time"

// StreamEventType identifies the kind of event pushed to stream clients
type StreamEventType string

const (
	EventConnected StreamEventType = "connected"
	EventUpdate    StreamEventType = "update"
	EventError     StreamEventType = "error"
)

// StreamEvent is the payload pushed over SSE and WebSocket connections.
// Update events carry the full current game list plus diff flags so
// clients never need to reconstruct state from partial deltas.
type StreamEvent struct {
	Type      StreamEventType `json:"type"`
	Games     []GameSnapshot  `json:"games,omitempty"`
	Changes   []GameDiff      `json:"changes,omitempty"`
	LiveCount int             `json:"live_count,omitempty"`
	Message   string          `json:"message,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// ErrorResponse is the standard JSON error body
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
