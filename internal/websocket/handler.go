// internal/websocket/handler.go
package websocket

import (
	"context"
	"fmt"
	"sort"
	"sync"

	wstypes "realty-service/internal/domain/websocket"
)

// MessageHandler serves one group of client events.
type MessageHandler interface {
	HandleMessage(ctx context.Context, client *Client, msg *wstypes.WSMessage) error
	SupportedEvents() []wstypes.EventType
}

// HandlerRegistry routes client events to the handler that claimed them.
type HandlerRegistry struct {
	mu       sync.RWMutex
	handlers map[wstypes.EventType]MessageHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{
		handlers: make(map[wstypes.EventType]MessageHandler),
	}
}

// Register claims every event the handler supports. An event can only be
// claimed once; built-in events cannot be claimed at all.
func (r *HandlerRegistry) Register(handler MessageHandler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, eventType := range handler.SupportedEvents() {
		if builtinEvents[eventType] {
			return fmt.Errorf("event %s is handled by the hub", eventType)
		}
		if _, taken := r.handlers[eventType]; taken {
			return fmt.Errorf("event %s already has a handler", eventType)
		}
	}
	for _, eventType := range handler.SupportedEvents() {
		r.handlers[eventType] = handler
	}
	return nil
}

func (r *HandlerRegistry) GetHandler(eventType wstypes.EventType) (MessageHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handler, exists := r.handlers[eventType]
	return handler, exists
}

// Events lists the claimed events in sorted order.
func (r *HandlerRegistry) Events() []wstypes.EventType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]wstypes.EventType, 0, len(r.handlers))
	for e := range r.handlers {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i] < events[j] })
	return events
}

var builtinEvents = map[wstypes.EventType]bool{
	wstypes.EventTypePing:        true,
	wstypes.EventTypeSubscribe:   true,
	wstypes.EventTypeUnsubscribe: true,
}
