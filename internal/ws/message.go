package ws

import (
	"time"

	"github.com/HerbHall/pitstop/pkg/analytics"
)

// MessageType discriminates WebSocket messages.
type MessageType string

const (
	MessageAlertRaised MessageType = "bi.alert"
	MessageHello       MessageType = "hello"
)

// Message is the envelope for all WebSocket messages.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      any         `json:"data,omitempty"`
}

// AlertData is the payload of bi.alert messages.
type AlertData struct {
	Alert analytics.Alert `json:"alert"`
}

// HelloData greets a client once its stream is open.
type HelloData struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
