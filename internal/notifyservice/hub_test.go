package notifyservice

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHubServer(t *testing.T) (*Hub, *httptest.Server) {
	hub := NewHub(testLogger())
	go hub.Run()

	upgrader := websocket.Upgrader{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		client := NewClient(hub, conn, testLogger())
		hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	}))
	t.Cleanup(ts.Close)

	return hub, ts
}

func dialHub(t *testing.T, ts *httptest.Server) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(ts.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	var envelope Envelope
	require.NoError(t, json.Unmarshal(message, &envelope))

	return envelope
}

func TestHubBroadcast(t *testing.T) {
	hub, ts := newHubServer(t)

	first := dialHub(t, ts)
	second := dialHub(t, ts)

	// a third client that disconnects before the broadcast
	gone := dialHub(t, ts)
	require.NoError(t, gone.Close())

	// let the hub observe the register/unregister events
	time.Sleep(100 * time.Millisecond)

	err := hub.Broadcast(Envelope{Type: EventNewBlog, Data: map[string]any{"id": 1}})
	require.NoError(t, err)

	for _, conn := range []*websocket.Conn{first, second} {
		envelope := readEnvelope(t, conn)
		assert.Equal(t, EventNewBlog, envelope.Type)
	}
}

func TestHubPrunesClosedConnections(t *testing.T) {
	hub, ts := newHubServer(t)

	stays := dialHub(t, ts)
	leaves := dialHub(t, ts)

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, leaves.Close())
	time.Sleep(100 * time.Millisecond)

	// a closed connection mid-set must not break the broadcast
	require.NoError(t, hub.Broadcast(Envelope{Type: EventNewBlog}))
	envelope := readEnvelope(t, stays)
	assert.Equal(t, EventNewBlog, envelope.Type)

	// exactly one message was delivered
	require.NoError(t, stays.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := stays.ReadMessage()
	assert.Error(t, err)
}

func TestHubBroadcastSendOrder(t *testing.T) {
	hub, ts := newHubServer(t)

	conn := dialHub(t, ts)
	time.Sleep(100 * time.Millisecond)

	for i := 1; i <= 3; i++ {
		require.NoError(t, hub.Broadcast(Envelope{Type: EventNewBlog, Data: i}))
	}

	for i := 1; i <= 3; i++ {
		envelope := readEnvelope(t, conn)
		assert.EqualValues(t, i, envelope.Data)
	}
}
