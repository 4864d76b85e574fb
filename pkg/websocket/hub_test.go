package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openride/ride-server/pkg/logger"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "error", Format: "json"})
	require.NoError(t, err)

	hub := NewHub(log)
	go hub.Run()
	return hub
}

func registerTestClient(t *testing.T, hub *Hub, userID, userType string) *Client {
	t.Helper()
	before := hub.ActiveConnections()
	client := NewClient(hub, nil, userID, userType, hub.logger)
	hub.Register(client)

	require.Eventually(t, func() bool {
		return hub.ActiveConnections() == before+1
	}, time.Second, 5*time.Millisecond)
	return client
}

func receiveEvent(t *testing.T, client *Client) Event {
	t.Helper()
	select {
	case raw := <-client.Send:
		var event Event
		require.NoError(t, json.Unmarshal(raw, &event))
		return event
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

// TestBroadcastToRide tests that only subscribed clients receive ride events
func TestBroadcastToRide(t *testing.T) {
	hub := newTestHub(t)

	subscriber := registerTestClient(t, hub, "user-1", "passenger")
	bystander := registerTestClient(t, hub, "user-2", "driver")

	subscriber.Subscribe("ride-42")
	hub.BroadcastToRide("ride-42", Event{Type: "message", Data: "hello"})

	event := receiveEvent(t, subscriber)
	assert.Equal(t, "message", event.Type)
	assert.Equal(t, "hello", event.Data)

	select {
	case <-bystander.Send:
		t.Fatal("unsubscribed client received a ride event")
	case <-time.After(50 * time.Millisecond):
	}
}

// TestUnsubscribe tests that unsubscribing stops delivery
func TestUnsubscribe(t *testing.T) {
	hub := newTestHub(t)
	client := registerTestClient(t, hub, "user-1", "passenger")

	client.Subscribe("ride-42")
	assert.True(t, client.IsSubscribedToRide("ride-42"))

	client.Unsubscribe("ride-42")
	assert.False(t, client.IsSubscribedToRide("ride-42"))

	hub.BroadcastToRide("ride-42", Event{Type: "message"})
	select {
	case <-client.Send:
		t.Fatal("unsubscribed client received a ride event")
	case <-time.After(50 * time.Millisecond):
	}
}

// TestSendToUser tests direct per-user delivery
func TestSendToUser(t *testing.T) {
	hub := newTestHub(t)
	alice := registerTestClient(t, hub, "alice", "passenger")
	bob := registerTestClient(t, hub, "bob", "driver")

	hub.SendToUser("alice", Event{Type: "ride_update"})

	event := receiveEvent(t, alice)
	assert.Equal(t, "ride_update", event.Type)

	select {
	case <-bob.Send:
		t.Fatal("event leaked to another user")
	case <-time.After(50 * time.Millisecond):
	}
}

// TestUnregister tests connection teardown
func TestUnregister(t *testing.T) {
	hub := newTestHub(t)
	client := registerTestClient(t, hub, "alice", "passenger")

	hub.Unregister(client)

	require.Eventually(t, func() bool {
		return hub.ActiveConnections() == 0
	}, time.Second, 5*time.Millisecond)

	_, open := <-client.Send
	assert.False(t, open, "send channel is closed on unregister")
}

// TestHandleMessage_SubscribeControl tests the subscribe control message
func TestHandleMessage_SubscribeControl(t *testing.T) {
	hub := newTestHub(t)
	client := registerTestClient(t, hub, "alice", "passenger")

	client.handleMessage([]byte(`{"type": "subscribe", "ride_id": "ride-7"}`))
	assert.True(t, client.IsSubscribedToRide("ride-7"))

	client.handleMessage([]byte(`{"type": "unsubscribe", "ride_id": "ride-7"}`))
	assert.False(t, client.IsSubscribedToRide("ride-7"))

	client.handleMessage([]byte(`{"type": "ping"}`))
	event := receiveEvent(t, client)
	assert.Equal(t, "pong", event.Type)

	// malformed input is logged and dropped
	client.handleMessage([]byte(`not json`))
	client.handleMessage([]byte(`{"type": "unknown"}`))
}
