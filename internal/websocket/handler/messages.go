// internal/websocket/handler/messages.go
package handler

import (
	"context"
	"fmt"

	"realty-service/internal/domain/message"
	wstypes "realty-service/internal/domain/websocket"
	ws "realty-service/internal/websocket"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// MessageLister reads the inbox, newest first.
type MessageLister interface {
	List(ctx context.Context, limit int) ([]*message.Message, error)
}

type MessagesHandler struct {
	messages MessageLister
}

func NewMessagesHandler(messages MessageLister) *MessagesHandler {
	return &MessagesHandler{messages: messages}
}

func (h *MessagesHandler) SupportedEvents() []wstypes.EventType {
	return []wstypes.EventType{wstypes.EventTypeMessageList}
}

func (h *MessagesHandler) HandleMessage(ctx context.Context, client *ws.Client, msg *wstypes.WSMessage) error {
	switch msg.Type {
	case wstypes.EventTypeMessageList:
		return h.handleList(ctx, client, msg)
	default:
		return fmt.Errorf("unsupported event type: %s", msg.Type)
	}
}

func (h *MessagesHandler) handleList(ctx context.Context, client *ws.Client, msg *wstypes.WSMessage) error {
	var req wstypes.ListRequest
	if err := msg.Decode(&req); err != nil {
		client.SendError("invalid_request", "Invalid list request", "")
		return nil
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	messages, err := h.messages.List(ctx, limit)
	if err != nil {
		return fmt.Errorf("list messages: %w", err)
	}

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeMessageList, map[string]interface{}{
		"messages": messages,
		"count":    len(messages),
	}))
	return nil
}
