package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"gitlab.com/examproctor-2025.net/internal/core/ports/primary"
	"gitlab.com/examproctor-2025.net/internal/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 32
)

// Client message types
const (
	MsgJoinSession = "join:session"
	MsgJoinAdmin   = "join:admin"
)

// Server message types sent in reply to join messages
const (
	EventJoined = "joined"
	EventError  = "error"
)

// SecretVerifier checks the shared admin secret
type SecretVerifier interface {
	VerifySecret(ctx context.Context, secret string) bool
}

type joinMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId"`
	Secret    string `json:"secret"`
}

type outbound struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type joinedPayload struct {
	Room string `json:"room"`
}

// Hub keeps websocket clients grouped in rooms. A room is either a session id or
// the admin audience. Delivery is at-most-once: a client whose buffer is full
// misses the event.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*client]struct{}
	rooms    map[string]map[*client]struct{}
	auth     SecretVerifier
	logger   primary.Logger
	upgrader websocket.Upgrader
}

func NewHub(auth SecretVerifier, logger primary.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		rooms:   make(map[string]map[*client]struct{}),
		auth:    auth,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection and serves it until the peer goes away
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	c := &client{
		conn:  conn,
		send:  make(chan []byte, sendBuffer),
		rooms: make(map[string]struct{}),
	}
	h.register(c)
	go c.writePump(h.logger)
	h.readPump(r.Context(), c)
}

// Deliver sends an event to every client in room
func (h *Hub) Deliver(room, event string, payload interface{}) {
	data, err := json.Marshal(outbound{Event: event, Payload: payload})
	if err != nil {
		h.logger.Error("Failed to marshal event", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[room] {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("Dropping event for slow client", "room", room, "event", event)
		}
	}
}

// NotifySession delivers to the clients of this instance only
func (h *Hub) NotifySession(_ context.Context, sessionID string, event string, payload interface{}) error {
	h.Deliver(sessionID, event, payload)
	return nil
}

func (h *Hub) NotifyAudience(_ context.Context, event string, payload interface{}) error {
	h.Deliver(domain.AudienceRoom, event, payload)
	return nil
}

// RoomSize returns the number of clients joined to room
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Close drops every connection. Hijacked connections are not closed by http.Server.Shutdown.
func (h *Hub) Close() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		_ = c.conn.Close()
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	for room := range c.rooms {
		members := h.rooms[room]
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	close(c.send)
}

func (h *Hub) join(c *client, room string) {
	h.mu.Lock()
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*client]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
	c.rooms[room] = struct{}{}
	h.mu.Unlock()

	h.reply(c, EventJoined, joinedPayload{Room: room})
}

func (h *Hub) reply(c *client, event string, payload interface{}) {
	data, err := json.Marshal(outbound{Event: event, Payload: payload})
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (h *Hub) readPump(ctx context.Context, c *client) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("Websocket closed", "error", err)
			}
			return
		}
		var msg joinMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.reply(c, EventError, errorPayload{Message: "malformed message"})
			continue
		}
		h.handle(ctx, c, msg)
	}
}

func (h *Hub) handle(ctx context.Context, c *client, msg joinMessage) {
	switch msg.Type {
	case MsgJoinSession:
		if msg.SessionID == "" || msg.SessionID == domain.AudienceRoom {
			h.reply(c, EventError, errorPayload{Message: "invalid session id"})
			return
		}
		h.join(c, msg.SessionID)
	case MsgJoinAdmin:
		if !h.auth.VerifySecret(ctx, msg.Secret) {
			h.logger.Warn("Rejected admin join")
			h.reply(c, EventError, errorPayload{Message: "unauthorized"})
			return
		}
		h.join(c, domain.AudienceRoom)
	default:
		h.reply(c, EventError, errorPayload{Message: "unknown message type"})
	}
}
