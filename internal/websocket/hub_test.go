package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"realty-service/internal/domain/admin"
	"realty-service/internal/domain/message"
	wstypes "realty-service/internal/domain/websocket"
	xerrors "realty-service/internal/pkg/errors"
	authsvc "realty-service/internal/service/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAuth struct {
	sessions map[string]*authsvc.Session
	err      error
}

func (f *fakeAuth) RefreshSession(_ context.Context, token string) (*authsvc.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	sess, ok := f.sessions[token]
	if !ok {
		return nil, xerrors.Wrap(xerrors.ErrSessionInvalid, "refresh")
	}
	return sess, nil
}

func newTestHub(auth Authenticator) *Hub {
	return NewHub(auth, zap.NewNop())
}

func newTestClient(h *Hub, adminID int64, token string) *Client {
	return NewClient(h, nil, &ClientAuth{AdminID: adminID, Email: "a@example.com", Token: token})
}

func nextEvent(t *testing.T, c *Client) *wstypes.WSMessage {
	t.Helper()
	select {
	case data, ok := <-c.send:
		require.True(t, ok, "send channel closed")
		var msg wstypes.WSMessage
		require.NoError(t, json.Unmarshal(data, &msg))
		return &msg
	case <-time.After(time.Second):
		t.Fatal("no event queued")
		return nil
	}
}

type stubHandler struct{ events []wstypes.EventType }

func (s *stubHandler) HandleMessage(context.Context, *Client, *wstypes.WSMessage) error { return nil }
func (s *stubHandler) SupportedEvents() []wstypes.EventType                           { return s.events }

func TestHandlerRegistry(t *testing.T) {
	r := NewHandlerRegistry()

	require.NoError(t, r.Register(&stubHandler{events: []wstypes.EventType{wstypes.EventTypeMessageList}}))
	_, ok := r.GetHandler(wstypes.EventTypeMessageList)
	assert.True(t, ok)

	assert.Error(t, r.Register(&stubHandler{events: []wstypes.EventType{wstypes.EventTypeMessageList}}), "duplicate claim")
	assert.Error(t, r.Register(&stubHandler{events: []wstypes.EventType{wstypes.EventTypePing}}), "built-in event")
	assert.Equal(t, []wstypes.EventType{wstypes.EventTypeMessageList}, r.Events())
}

func TestHub_RegisterSendsConnected(t *testing.T) {
	h := newTestHub(&fakeAuth{})
	defer h.shutdown()
	c := newTestClient(h, 7, "tok")

	h.registerClient(c)

	msg := nextEvent(t, c)
	assert.Equal(t, wstypes.EventTypeConnected, msg.Type)
	assert.Equal(t, 1, h.GetConnectedClients(7))
	assert.True(t, c.IsSubscribed(wstypes.ChannelSystem))
	assert.False(t, c.IsSubscribed(wstypes.ChannelMessages))
}

func TestHub_PublishReachesSubscribersOnly(t *testing.T) {
	h := newTestHub(&fakeAuth{})
	defer h.shutdown()

	watching := newTestClient(h, 1, "a")
	idle := newTestClient(h, 2, "b")
	h.registerClient(watching)
	h.registerClient(idle)
	nextEvent(t, watching)
	nextEvent(t, idle)
	require.True(t, watching.Subscribe(wstypes.ChannelMessages))

	h.PublishNewMessage(&message.Message{ID: 42, Name: "Jane", Email: "jane@example.com", Message: "hi"})
	h.BroadcastMessage(<-h.broadcast)

	msg := nextEvent(t, watching)
	assert.Equal(t, wstypes.EventTypeMessageNew, msg.Type)
	assert.Empty(t, idle.send)

	h.PublishMessageDeleted(42)
	h.BroadcastMessage(<-h.broadcast)
	msg = nextEvent(t, watching)
	assert.Equal(t, wstypes.EventTypeMessageDeleted, msg.Type)
	assert.Equal(t, float64(42), msg.Data.(map[string]interface{})["id"])
}

func TestClient_SubscribeUnknownChannel(t *testing.T) {
	h := newTestHub(&fakeAuth{})
	c := newTestClient(h, 1, "a")
	assert.False(t, c.Subscribe("wallets"))
	assert.False(t, c.IsSubscribed("wallets"))
}

func TestHub_RevokeAdmin(t *testing.T) {
	h := newTestHub(&fakeAuth{})
	defer h.shutdown()

	c := newTestClient(h, 3, "tok")
	other := newTestClient(h, 4, "tok2")
	h.registerClient(c)
	h.registerClient(other)
	nextEvent(t, c)

	h.RevokeAdmin(3, "account deleted")

	msg := nextEvent(t, c)
	assert.Equal(t, wstypes.EventTypeSessionInvalid, msg.Type)
	_, open := <-c.send
	assert.False(t, open)
	assert.Equal(t, 0, h.GetConnectedClients(3))
	assert.Equal(t, 1, h.GetConnectedClients(4))
}

func TestClient_SlowConsumerIsDropped(t *testing.T) {
	h := newTestHub(&fakeAuth{})
	defer h.shutdown()
	c := newTestClient(h, 1, "a")

	for i := 0; i < cap(c.send)+1; i++ {
		c.SendMessage(wstypes.NewMessage(wstypes.EventTypePong, nil))
	}

	select {
	case got := <-h.unregister:
		assert.Same(t, c, got)
	case <-time.After(time.Second):
		t.Fatal("client was not unregistered")
	}

	// further sends and closes are no-ops
	c.SendMessage(wstypes.NewMessage(wstypes.EventTypePong, nil))
	c.Close()
}

func TestHub_RevalidateDropsSupersededSessions(t *testing.T) {
	auth := &fakeAuth{sessions: map[string]*authsvc.Session{
		"current": {Admin: &admin.Admin{ID: 1, IsVerified: true}, Token: "current-2"},
	}}
	h := newTestHub(auth)
	defer h.shutdown()

	fresh := newTestClient(h, 1, "current")
	stale := newTestClient(h, 1, "stale")
	h.registerClient(fresh)
	h.registerClient(stale)
	nextEvent(t, fresh)
	nextEvent(t, stale)

	h.revalidate(context.Background())

	assert.Equal(t, "current-2", fresh.Token())
	assert.Empty(t, fresh.send)

	msg := nextEvent(t, stale)
	assert.Equal(t, wstypes.EventTypeSessionInvalid, msg.Type)
	select {
	case got := <-h.unregister:
		assert.Same(t, stale, got)
	case <-time.After(time.Second):
		t.Fatal("stale client was not unregistered")
	}
}

func TestHub_RevalidateKeepsClientsWhenStoreDown(t *testing.T) {
	h := newTestHub(&fakeAuth{err: xerrors.Unavailable(assert.AnError, "lookup")})
	defer h.shutdown()

	c := newTestClient(h, 1, "tok")
	h.registerClient(c)
	nextEvent(t, c)

	h.revalidate(context.Background())
	assert.Empty(t, c.send)
	assert.Equal(t, 1, h.TotalClients())
}

func TestHub_AuthenticateClient(t *testing.T) {
	auth := &fakeAuth{sessions: map[string]*authsvc.Session{
		"ok":         {Admin: &admin.Admin{ID: 9, Email: "v@example.com", IsVerified: true}, Token: "ok-2"},
		"unverified": {Admin: &admin.Admin{ID: 10, Email: "u@example.com"}, Token: "u-2"},
	}}
	h := newTestHub(auth)
	ctx := context.Background()

	got, err := h.AuthenticateClient(ctx, "ok")
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.AdminID)
	assert.Equal(t, "ok-2", got.Token)

	_, err = h.AuthenticateClient(ctx, "")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = h.AuthenticateClient(ctx, "unverified")
	assert.ErrorIs(t, err, ErrNotVerified)

	_, err = h.AuthenticateClient(ctx, "nope")
	assert.ErrorIs(t, err, xerrors.ErrSessionInvalid)
}
