// internal/websocket/hub.go
package websocket

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"realty-service/internal/domain/message"
	wstypes "realty-service/internal/domain/websocket"
	xerrors "realty-service/internal/pkg/errors"
	authsvc "realty-service/internal/service/auth"

	"go.uber.org/zap"
)

const defaultRevalidateEvery = time.Minute

// Authenticator re-derives a session from a token, enforcing the session version.
type Authenticator interface {
	RefreshSession(ctx context.Context, token string) (*authsvc.Session, error)
}

type Hub struct {
	// Registered clients by admin ID
	clients map[int64]map[*Client]bool
	mu      sync.RWMutex

	Register   chan *Client
	unregister chan *Client
	broadcast  chan *BroadcastMessage
	done       chan struct{}
	closeOnce  sync.Once

	handlerRegistry *HandlerRegistry

	auth            Authenticator
	logger          *zap.Logger
	revalidateEvery time.Duration
	revalidating    atomic.Bool
}

type BroadcastMessage struct {
	AdminIDs []int64
	Channel  wstypes.ChannelType
	Message  *wstypes.WSMessage
}

func NewHub(auth Authenticator, logger *zap.Logger) *Hub {
	return &Hub{
		clients:         make(map[int64]map[*Client]bool),
		Register:        make(chan *Client),
		unregister:      make(chan *Client),
		broadcast:       make(chan *BroadcastMessage, 256),
		done:            make(chan struct{}),
		handlerRegistry: NewHandlerRegistry(),
		auth:            auth,
		logger:          logger,
		revalidateEvery: defaultRevalidateEvery,
	}
}

// AuthenticateClient admits only verified admins holding a current session.
func (h *Hub) AuthenticateClient(ctx context.Context, token string) (*ClientAuth, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	sess, err := h.auth.RefreshSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if !sess.Admin.IsVerified {
		return nil, ErrNotVerified
	}

	return &ClientAuth{
		AdminID: sess.Admin.ID,
		Email:   sess.Admin.Email,
		Token:   sess.Token,
	}, nil
}

func (h *Hub) RegisterHandler(handler MessageHandler) error {
	return h.handlerRegistry.Register(handler)
}

func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.revalidateEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.BroadcastMessage(msg)

		case <-ticker.C:
			if h.revalidating.CompareAndSwap(false, true) {
				go func() {
					defer h.revalidating.Store(false)
					h.revalidate(ctx)
				}()
			}
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.adminID] == nil {
		h.clients[client.adminID] = make(map[*Client]bool)
	}
	h.clients[client.adminID][client] = true
	client.Subscribe(wstypes.ChannelSystem)

	h.logger.Info("websocket client connected",
		zap.Int64("admin_id", client.adminID),
		zap.Int("total", h.totalClients()),
	)

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeConnected, map[string]interface{}{
		"admin_id": client.adminID,
		"email":    client.email,
		"channels": []wstypes.ChannelType{wstypes.ChannelMessages, wstypes.ChannelSystem},
	}))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.adminID]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}

	delete(clients, client)
	client.Close()
	if len(clients) == 0 {
		delete(h.clients, client.adminID)
	}

	h.logger.Info("websocket client disconnected",
		zap.Int64("admin_id", client.adminID),
		zap.Int("total", h.totalClients()),
	)
}

// requestUnregister never blocks, so it is safe while the hub lock is held.
func (h *Hub) requestUnregister(client *Client) {
	go func() {
		select {
		case h.unregister <- client:
		case <-h.done:
		}
	}()
}

func (h *Hub) BroadcastMessage(msg *BroadcastMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	send := func(clients map[*Client]bool) {
		for client := range clients {
			if client.IsSubscribed(msg.Channel) {
				client.SendMessage(msg.Message)
			}
		}
	}

	if msg.AdminIDs == nil {
		for _, clients := range h.clients {
			send(clients)
		}
		return
	}
	for _, id := range msg.AdminIDs {
		send(h.clients[id])
	}
}

func (h *Hub) enqueue(msg *BroadcastMessage) {
	select {
	case h.broadcast <- msg:
	case <-h.done:
	default:
		h.logger.Warn("broadcast queue full, dropping event", zap.String("type", string(msg.Message.Type)))
	}
}

// PublishNewMessage pushes a fresh inquiry to every admin watching the inbox.
func (h *Hub) PublishNewMessage(m *message.Message) {
	h.enqueue(&BroadcastMessage{
		Channel: wstypes.ChannelMessages,
		Message: wstypes.NewMessage(wstypes.EventTypeMessageNew, m),
	})
}

func (h *Hub) PublishMessageDeleted(id int64) {
	h.enqueue(&BroadcastMessage{
		Channel: wstypes.ChannelMessages,
		Message: wstypes.NewMessage(wstypes.EventTypeMessageDeleted, map[string]interface{}{"id": id}),
	})
}

// RevokeAdmin tells every connection of adminID that its session ended and closes them.
func (h *Hub) RevokeAdmin(adminID int64, reason string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[adminID]
	if !ok {
		return
	}

	notice := wstypes.NewMessage(wstypes.EventTypeSessionInvalid, map[string]interface{}{"reason": reason})
	for client := range clients {
		client.SendMessage(notice)
		h.removeLocked(client)
	}
	h.logger.Info("revoked websocket sessions", zap.Int64("admin_id", adminID), zap.String("reason", reason))
}

// revalidate drops connections whose session was superseded since they connected.
func (h *Hub) revalidate(ctx context.Context) {
	h.mu.RLock()
	snapshot := make([]*Client, 0, h.totalClients())
	for _, clients := range h.clients {
		for client := range clients {
			snapshot = append(snapshot, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range snapshot {
		sess, err := h.auth.RefreshSession(ctx, client.Token())
		switch {
		case err == nil:
			client.setToken(sess.Token)
		case errors.Is(err, xerrors.ErrSessionInvalid):
			client.SendMessage(wstypes.NewMessage(wstypes.EventTypeSessionInvalid, map[string]interface{}{
				"reason": "session superseded",
			}))
			h.requestUnregister(client)
		default:
			h.logger.Warn("websocket session check failed", zap.Int64("admin_id", client.adminID), zap.Error(err))
		}
	}
}

func (h *Hub) GetConnectedClients(adminID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[adminID])
}

func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.totalClients()
}

func (h *Hub) totalClients() int {
	total := 0
	for _, clients := range h.clients {
		total += len(clients)
	}
	return total
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			client.Close()
		}
	}
	h.clients = make(map[int64]map[*Client]bool)
	h.closeOnce.Do(func() { close(h.done) })
}
