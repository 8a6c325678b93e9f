package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-console/utils"
)

// Websocket message events
const (
	EventChange    = "change"
	EventConnected = "connected"
)

// Message is the envelope written to websocket clients.
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// ChangeEvent describes one captured row change. Consumers treat it as
// "something changed" and refetch; the payload carries no row data.
type ChangeEvent struct {
	Schema          string    `json:"schema"`
	Table           string    `json:"table"`
	Action          string    `json:"action"`
	RecordID        string    `json:"record_id"`
	RestaurantID    string    `json:"restaurant_id,omitempty"`
	CommitTimestamp time.Time `json:"commit_timestamp"`
	Origin          string    `json:"origin,omitempty"`
}

// Forwarder ships locally published events to other instances.
type Forwarder interface {
	Forward(evt ChangeEvent) error
}

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type client struct {
	restaurantID string
	role         string
	mu           sync.Mutex
}

// Hub fans change events out to in-process subscribers and websocket
// dashboard clients.
type Hub struct {
	id string

	mu          sync.RWMutex
	subscribers map[uint64]func(ChangeEvent)
	nextID      uint64
	clients     map[Conn]*client
	forwarder   Forwarder
}

func NewHub() *Hub {
	return &Hub{
		id:          uuid.NewString(),
		subscribers: make(map[uint64]func(ChangeEvent)),
		clients:     make(map[Conn]*client),
	}
}

// ID identifies this hub instance on the event bridge.
func (h *Hub) ID() string {
	return h.id
}

func (h *Hub) SetForwarder(f Forwarder) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.forwarder = f
}

// Subscribe registers fn for every delivered event. The returned function
// removes it and is safe to call more than once.
func (h *Hub) Subscribe(fn func(ChangeEvent)) func() {
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.subscribers[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers, id)
			h.mu.Unlock()
		})
	}
}

func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Publish delivers an event locally and forwards it to the bridge, if any.
func (h *Hub) Publish(evt ChangeEvent) {
	if evt.Origin == "" {
		evt.Origin = h.id
	}
	h.Deliver(evt)

	h.mu.RLock()
	fwd := h.forwarder
	h.mu.RUnlock()
	if fwd == nil {
		return
	}
	if err := fwd.Forward(evt); err != nil {
		utils.ErrorLogger.WithFields(logrus.Fields{
			"table":  evt.Table,
			"record": evt.RecordID,
		}).Errorf("Error forwarding change event: %v", err)
	}
}

// Deliver hands an event to local subscribers and websocket clients only.
func (h *Hub) Deliver(evt ChangeEvent) {
	h.mu.RLock()
	subs := make([]func(ChangeEvent), 0, len(h.subscribers))
	for _, fn := range h.subscribers {
		subs = append(subs, fn)
	}
	h.mu.RUnlock()

	// callbacks may unsubscribe, so they run outside the lock
	for _, fn := range subs {
		fn(evt)
	}

	h.broadcast(evt.RestaurantID, Message{Event: EventChange, Data: evt})
}

// RegisterClient adds a websocket connection scoped to a tenant.
func (h *Hub) RegisterClient(conn Conn, restaurantID, role string) {
	h.mu.Lock()
	h.clients[conn] = &client{restaurantID: restaurantID, role: role}
	h.mu.Unlock()

	h.send(conn, Message{Event: EventConnected, Data: map[string]string{"restaurant_id": restaurantID}})
}

// UnregisterClient releases a connection.
func (h *Hub) UnregisterClient(conn Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// broadcast sends msg to clients of the tenant. Events without a tenant
// reach subscribers only, never websocket clients.
func (h *Hub) broadcast(restaurantID string, msg Message) {
	if restaurantID == "" {
		return
	}
	h.mu.RLock()
	targets := make([]Conn, 0, len(h.clients))
	for conn, cl := range h.clients {
		if cl.restaurantID == restaurantID {
			targets = append(targets, conn)
		}
	}
	h.mu.RUnlock()

	for _, conn := range targets {
		h.send(conn, msg)
	}
}

func (h *Hub) send(conn Conn, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling message: %v", err)
		return
	}

	h.mu.RLock()
	cl := h.clients[conn]
	h.mu.RUnlock()
	if cl == nil {
		return
	}

	cl.mu.Lock()
	defer cl.mu.Unlock()
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		utils.ErrorLogger.Printf("Error sending message to client with role %s: %v", cl.role, err)
	}
}
