package live

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	MessageMatchUpdated     = "MATCH_UPDATED"
	MessageEventAdded       = "EVENT_ADDED"
	MessageEventDeleted     = "EVENT_DELETED"
	MessageStandingsUpdated = "STANDINGS_UPDATED"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 64
)

type Message struct {
	Type    string `json:"type"`
	Room    string `json:"room"`
	Payload any    `json:"payload"`
}

func MatchRoom(matchID int64) string {
	return fmt.Sprintf("match:%d", matchID)
}

func DivisionRoom(divisionID int64) string {
	return fmt.Sprintf("division:%d", divisionID)
}

func CupRoom(cupID int64) string {
	return fmt.Sprintf("cup:%d", cupID)
}

type client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	room string
	send chan []byte
}

// Hub fans messages out to the websocket clients subscribed to a room.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[*client]struct{}
	closed bool
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*client]struct{})}
}

// Run blocks until ctx is done and then disconnects every client.
func (h *Hub) Run(ctx context.Context) error {
	<-ctx.Done()
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for room, clients := range h.rooms {
		for c := range clients {
			close(c.send)
		}
		delete(h.rooms, room)
	}
	return nil
}

// Broadcast sends a message to every client in room. Slow clients whose
// buffer is full miss the message.
func (h *Hub) Broadcast(room, messageType string, payload any) {
	if h == nil {
		return
	}
	data, err := json.Marshal(Message{Type: messageType, Room: room, Payload: payload})
	if err != nil {
		log.Error().Err(err).Str("room", room).Str("type", messageType).Msg("Failed to encode live message")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[room] {
		select {
		case c.send <- data:
		default:
			log.Warn().Str("room", room).Str("client_id", c.id).Msg("Live client buffer full; dropping message")
		}
	}
}

func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

func (h *Hub) register(conn *websocket.Conn, room string) (*client, bool) {
	c := &client{
		id:   uuid.NewString(),
		hub:  h,
		conn: conn,
		room: room,
		send: make(chan []byte, sendBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, false
	}
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*client]struct{})
	}
	h.rooms[room][c] = struct{}{}
	log.Debug().Str("room", room).Str("client_id", c.id).Int("clients", len(h.rooms[room])).Msg("Live client joined")
	return c, true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.rooms[c.room]
	if !ok {
		return
	}
	if _, ok := clients[c]; !ok {
		return
	}
	delete(clients, c)
	close(c.send)
	if len(clients) == 0 {
		delete(h.rooms, c.room)
	}
	log.Debug().Str("room", c.room).Str("client_id", c.id).Msg("Live client left")
}

// readPump discards client messages and handles pongs until the connection drops.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Str("room", c.room).Msg("Live connection closed unexpectedly")
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
