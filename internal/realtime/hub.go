package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

// Channels clients may subscribe to. Events carry no row data; clients
// refetch through the REST API.
const (
	ChannelServiceRecords = "service_records"
	ChannelUsers          = "users"
	ChannelAuditLogs      = "audit_logs"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // Allow all origins (configure in prod)
}

// ChangeEvent tells subscribers that something on a channel changed.
type ChangeEvent struct {
	Type    string `json:"type"`
	Channel string `json:"channel"`
}

const EventChange = "change"

type connection struct {
	userID   string
	conn     *websocket.Conn
	send     chan []byte
	channels map[string]bool
}

// Hub fans change notifications out to subscribed WebSocket clients.
// Notifications on the same channel are coalesced: a burst of writes within
// the debounce window produces a single event.
type Hub struct {
	mu          sync.Mutex
	connections map[*connection]bool
	pending     map[string]*time.Timer
	debounce    time.Duration
}

func NewHub(debounce time.Duration) *Hub {
	return &Hub{
		connections: make(map[*connection]bool),
		pending:     make(map[string]*time.Timer),
		debounce:    debounce,
	}
}

// Notify schedules a change event on the channel. Calls arriving while one
// is already scheduled are absorbed into it.
func (h *Hub) Notify(channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, scheduled := h.pending[channel]; scheduled {
		return
	}
	if h.debounce <= 0 {
		h.broadcastLocked(channel)
		return
	}
	h.pending[channel] = time.AfterFunc(h.debounce, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.pending, channel)
		h.broadcastLocked(channel)
	})
}

func (h *Hub) broadcastLocked(channel string) {
	data, err := json.Marshal(&ChangeEvent{Type: EventChange, Channel: channel})
	if err != nil {
		return
	}
	for c := range h.connections {
		if !c.channels[channel] {
			continue
		}
		select {
		case c.send <- data:
		default:
			// Client too slow — skip
		}
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c] = true
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.connections[c] {
		delete(h.connections, c)
		close(c.send)
	}
}

// ServeWS registers a new connection and starts read/write loops. Blocks
// until the client disconnects.
func (h *Hub) ServeWS(conn *websocket.Conn, userID string) {
	c := &connection{
		userID:   userID,
		conn:     conn,
		send:     make(chan []byte, 64),
		channels: make(map[string]bool),
	}

	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var event struct {
			Type    string `json:"type"`
			Channel string `json:"channel"`
		}
		if err := json.Unmarshal(msg, &event); err != nil {
			continue
		}
		if !validChannel(event.Channel) {
			continue
		}

		switch event.Type {
		case "subscribe":
			h.mu.Lock()
			c.channels[event.Channel] = true
			h.mu.Unlock()
		case "unsubscribe":
			h.mu.Lock()
			delete(c.channels, event.Channel)
			h.mu.Unlock()
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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

func validChannel(name string) bool {
	switch name {
	case ChannelServiceRecords, ChannelUsers, ChannelAuditLogs:
		return true
	}
	return false
}
