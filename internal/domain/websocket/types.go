// internal/domain/websocket/types.go
package websocket

import (
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"
)

// EventType represents different real-time event types
type EventType string

const (
	// Connection events
	EventTypePing         EventType = "ping"
	EventTypePong         EventType = "pong"
	EventTypeConnected    EventType = "connected"
	EventTypeDisconnected EventType = "disconnected"
	EventTypeError        EventType = "error"

	// Inbox events
	EventTypeMessageNew     EventType = "message:new"
	EventTypeMessageList    EventType = "message:list"
	EventTypeMessageDeleted EventType = "message:deleted"

	// Session events
	EventTypeSessionInvalid EventType = "session:invalid"

	// Subscription events
	EventTypeSubscribe   EventType = "subscribe"
	EventTypeUnsubscribe EventType = "unsubscribe"
)

// WSMessage is the universal message format
type WSMessage struct {
	Type      EventType       `json:"type"`
	Data      interface{}     `json:"data,omitempty"`
	Raw       json.RawMessage `json:"-"`
	Timestamp time.Time       `json:"timestamp"`
	ID        string          `json:"id,omitempty"`
}

// Subscription channels that clients can subscribe to
type ChannelType string

const (
	ChannelMessages ChannelType = "messages"
	ChannelSystem   ChannelType = "system"
)

// SubscribeRequest sent by client to subscribe to specific channels
type SubscribeRequest struct {
	Channels []ChannelType `json:"channels"`
}

// UnsubscribeRequest sent by client to unsubscribe from channels
type UnsubscribeRequest struct {
	Channels []ChannelType `json:"channels"`
}

// ListRequest asks for the latest inbox messages.
type ListRequest struct {
	Limit int `json:"limit"`
}

// ErrorData for error events
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Helper to create messages
func NewMessage(eventType EventType, data interface{}) *WSMessage {
	return &WSMessage{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now(),
		ID:        ulid.Make().String(),
	}
}

func (m *WSMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage decodes a client frame; Raw keeps the undecoded data payload.
func ParseMessage(data []byte) (*WSMessage, error) {
	var frame struct {
		Type EventType       `json:"type"`
		Data json.RawMessage `json:"data"`
		ID   string          `json:"id"`
	}
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, err
	}
	return &WSMessage{
		Type:      frame.Type,
		Raw:       frame.Data,
		Timestamp: time.Now(),
		ID:        frame.ID,
	}, nil
}

// Decode unmarshals the raw data payload into target.
func (m *WSMessage) Decode(target interface{}) error {
	if len(m.Raw) == 0 {
		return nil
	}
	return json.Unmarshal(m.Raw, target)
}
