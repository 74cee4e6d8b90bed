// internal/websocket/client.go
package websocket

import (
	"context"
	"sync"
	"time"

	wstypes "realty-service/internal/domain/websocket"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// ClientAuth holds authentication information
type ClientAuth struct {
	AdminID int64
	Email   string
	Token   string
}

type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	adminID int64
	email   string

	// token is the latest refreshed session token, used for revalidation
	token   string
	tokenMu sync.RWMutex

	subscriptions map[wstypes.ChannelType]bool
	subMutex      sync.RWMutex

	// guards send against writes after close
	sendMu sync.Mutex
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
}

func NewClient(hub *Hub, conn *websocket.Conn, auth *ClientAuth) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		hub:           hub,
		conn:          conn,
		send:          make(chan []byte, 256),
		adminID:       auth.AdminID,
		email:         auth.Email,
		token:         auth.Token,
		subscriptions: make(map[wstypes.ChannelType]bool),
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Subscribe to a known channel
func (c *Client) Subscribe(channel wstypes.ChannelType) bool {
	switch channel {
	case wstypes.ChannelMessages, wstypes.ChannelSystem:
	default:
		return false
	}

	c.subMutex.Lock()
	defer c.subMutex.Unlock()
	c.subscriptions[channel] = true
	return true
}

func (c *Client) Unsubscribe(channel wstypes.ChannelType) {
	c.subMutex.Lock()
	defer c.subMutex.Unlock()
	delete(c.subscriptions, channel)
}

func (c *Client) IsSubscribed(channel wstypes.ChannelType) bool {
	c.subMutex.RLock()
	defer c.subMutex.RUnlock()
	return c.subscriptions[channel]
}

func (c *Client) Token() string {
	c.tokenMu.RLock()
	defer c.tokenMu.RUnlock()
	return c.token
}

func (c *Client) setToken(token string) {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()
	c.token = token
}

// ReadPump handles incoming messages from client
func (c *Client) ReadPump() {
	defer func() {
		c.hub.requestUnregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket read error", zap.Int64("admin_id", c.adminID), zap.Error(err))
			}
			return
		}
		c.handleMessage(data)
	}
}

// WritePump handles outgoing messages to client. Queued frames are flushed
// before the close frame once the send channel is closed.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.cancel()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(data []byte) {
	msg, err := wstypes.ParseMessage(data)
	if err != nil {
		c.SendError("invalid_message", "Failed to parse message", "")
		return
	}

	switch msg.Type {
	case wstypes.EventTypePing:
		c.SendMessage(wstypes.NewMessage(wstypes.EventTypePong, nil))

	case wstypes.EventTypeSubscribe:
		var req wstypes.SubscribeRequest
		if err := msg.Decode(&req); err != nil {
			c.SendError("invalid_subscribe", "Invalid subscribe request", "")
			return
		}
		accepted := []wstypes.ChannelType{}
		for _, channel := range req.Channels {
			if c.Subscribe(channel) {
				accepted = append(accepted, channel)
			}
		}
		c.SendMessage(wstypes.NewMessage(wstypes.EventTypeSubscribe, map[string]interface{}{
			"channels": accepted,
			"status":   "subscribed",
		}))

	case wstypes.EventTypeUnsubscribe:
		var req wstypes.UnsubscribeRequest
		if err := msg.Decode(&req); err != nil {
			c.SendError("invalid_unsubscribe", "Invalid unsubscribe request", "")
			return
		}
		for _, channel := range req.Channels {
			c.Unsubscribe(channel)
		}
		c.SendMessage(wstypes.NewMessage(wstypes.EventTypeUnsubscribe, map[string]interface{}{
			"channels": req.Channels,
			"status":   "unsubscribed",
		}))

	default:
		handler, ok := c.hub.handlerRegistry.GetHandler(msg.Type)
		if !ok {
			c.SendError("unknown_event", "Unsupported event type", string(msg.Type))
			return
		}
		if err := handler.HandleMessage(c.ctx, c, msg); err != nil {
			c.hub.logger.Warn("websocket handler failed",
				zap.String("type", string(msg.Type)),
				zap.Int64("admin_id", c.adminID),
				zap.Error(err),
			)
			c.SendError("handler_error", "Failed to process message", "")
		}
	}
}

// SendMessage queues msg without blocking. A client that cannot keep up is dropped.
func (c *Client) SendMessage(msg *wstypes.WSMessage) {
	data, err := msg.ToJSON()
	if err != nil {
		c.hub.logger.Error("failed to marshal websocket message", zap.Error(err))
		return
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return
	}

	select {
	case c.send <- data:
	default:
		c.closed = true
		close(c.send)
		c.hub.requestUnregister(c)
	}
}

func (c *Client) SendError(code, message, details string) {
	c.SendMessage(wstypes.NewMessage(wstypes.EventTypeError, wstypes.ErrorData{
		Code:    code,
		Message: message,
		Details: details,
	}))
}

// Close ends the send stream; WritePump flushes what is queued and closes the socket.
func (c *Client) Close() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}
