package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"gitlab.com/examproctor-2025.net/internal/adapter/logging"
	"gitlab.com/examproctor-2025.net/internal/domain"
)

type staticSecret string

func (s staticSecret) VerifySecret(_ context.Context, secret string) bool {
	return secret == string(s)
}

type received struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

func newTestHub(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub(staticSecret("letmein"), logging.NewNopLogger())
	srv := httptest.NewServer(hub)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) received {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg received
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func joinSession(t *testing.T, conn *websocket.Conn, sessionID string) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]string{"type": MsgJoinSession, "sessionId": sessionID}))
	msg := read(t, conn)
	require.Equal(t, EventJoined, msg.Event)
	require.JSONEq(t, `{"room":"`+sessionID+`"}`, string(msg.Payload))
}

func TestSessionRoomReceivesOnlyItsEvents(t *testing.T) {
	hub, url := newTestHub(t)
	a := dial(t, url)
	b := dial(t, url)
	joinSession(t, a, "s1")
	joinSession(t, b, "s2")

	require.NoError(t, hub.NotifySession(context.Background(), "s2", domain.EventViolationWarning,
		domain.ViolationWarningPayload{Count: 1, Reason: "tab switch"}))
	require.NoError(t, hub.NotifySession(context.Background(), "s1", domain.EventAutoSubmit,
		domain.AutoSubmitPayload{Reason: domain.ReasonManual, Score: 3}))

	msg := read(t, a)
	require.Equal(t, domain.EventAutoSubmit, msg.Event)
	require.JSONEq(t, `{"reason":"manual","score":3}`, string(msg.Payload))

	msg = read(t, b)
	require.Equal(t, domain.EventViolationWarning, msg.Event)
	require.JSONEq(t, `{"count":1,"reason":"tab switch"}`, string(msg.Payload))
}

func TestAdminJoinRequiresSecret(t *testing.T) {
	hub, url := newTestHub(t)
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": MsgJoinAdmin, "secret": "wrong"}))
	msg := read(t, conn)
	require.Equal(t, EventError, msg.Event)
	require.Equal(t, 0, hub.RoomSize(domain.AudienceRoom))

	require.NoError(t, conn.WriteJSON(map[string]string{"type": MsgJoinAdmin, "secret": "letmein"}))
	msg = read(t, conn)
	require.Equal(t, EventJoined, msg.Event)
	require.Equal(t, 1, hub.RoomSize(domain.AudienceRoom))

	require.NoError(t, hub.NotifyAudience(context.Background(), domain.EventAdminUpdate, nil))
	msg = read(t, conn)
	require.Equal(t, domain.EventAdminUpdate, msg.Event)
	require.Empty(t, msg.Payload)
}

func TestRejectsUnknownAndMalformedMessages(t *testing.T) {
	_, url := newTestHub(t)
	conn := dial(t, url)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{")))
	require.Equal(t, EventError, read(t, conn).Event)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "leave"}))
	require.Equal(t, EventError, read(t, conn).Event)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": MsgJoinSession, "sessionId": domain.AudienceRoom}))
	require.Equal(t, EventError, read(t, conn).Event)
}

func TestDisconnectLeavesRooms(t *testing.T) {
	hub, url := newTestHub(t)
	conn := dial(t, url)
	joinSession(t, conn, "s1")
	require.Equal(t, 1, hub.RoomSize("s1"))

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.RoomSize("s1") == 0 }, 2*time.Second, 10*time.Millisecond)

	// delivering to an empty room is a no-op
	hub.Deliver("s1", domain.EventAdminUpdate, nil)
}
