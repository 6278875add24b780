package ws

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// Conn is the subset of *websocket.Conn the hub needs.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Event is the envelope pushed to clients on entity changes.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// inboundMessage wraps raw client text re-broadcast to all connections.
type inboundMessage struct {
	Message string `json:"message"`
}

// Hub owns the set of live connections. Registration, removal and broadcast
// all go through its run loop; nothing else touches the client set.
type Hub struct {
	clients    map[Conn]bool
	Register   chan Conn
	Unregister chan Conn
	Broadcast  chan []byte
	mu         sync.Mutex
	log        *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[Conn]bool),
		Register:   make(chan Conn),
		Unregister: make(chan Conn),
		Broadcast:  make(chan []byte),
		log:        log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.add(conn)
		case conn := <-h.Unregister:
			h.remove(conn)
		case message := <-h.Broadcast:
			h.send(message)
		}
	}
}

// BroadcastEvent serializes an entity event and fans it out to every client.
func (h *Hub) BroadcastEvent(event string, data interface{}) {
	msg, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		h.log.Error("failed to marshal broadcast event", zap.String("event", event), zap.Error(err))
		return
	}
	h.Broadcast <- msg
}

// BroadcastMessage echoes raw client text to every client.
func (h *Hub) BroadcastMessage(text string) {
	msg, err := json.Marshal(inboundMessage{Message: text})
	if err != nil {
		return
	}
	h.Broadcast <- msg
}

func (h *Hub) add(conn Conn) {
	h.mu.Lock()
	h.clients[conn] = true
	count := len(h.clients)
	h.mu.Unlock()
	h.log.Info("websocket client connected", zap.Int("clients", count))
}

// remove is a no-op for unknown connections.
func (h *Hub) remove(conn Conn) {
	h.mu.Lock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
	h.mu.Unlock()
}

// send writes to every client. A failed write drops that one connection;
// the remaining clients still receive the message.
func (h *Hub) send(message []byte) {
	h.mu.Lock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			conn.Close()
			delete(h.clients, conn)
			h.log.Warn("dropping dead websocket client", zap.Error(err))
		}
	}
	h.mu.Unlock()
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
