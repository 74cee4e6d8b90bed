package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessage(t *testing.T) {
	msg, err := ParseMessage([]byte(`{"type":"subscribe","data":{"channels":["messages"]}}`))
	require.NoError(t, err)
	assert.Equal(t, EventTypeSubscribe, msg.Type)

	var req SubscribeRequest
	require.NoError(t, msg.Decode(&req))
	assert.Equal(t, []ChannelType{ChannelMessages}, req.Channels)

	_, err = ParseMessage([]byte(`not json`))
	assert.Error(t, err)
}

func TestNewMessage_HasID(t *testing.T) {
	a := NewMessage(EventTypePing, nil)
	b := NewMessage(EventTypePing, nil)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}
