package events

import "sync"

// Conn is the writable side of a websocket connection.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
}

// client wraps a connection with a write lock: the websocket layer does
// not permit concurrent writers, and publishes come from many request
// goroutines.
type client struct {
	conn Conn
	mu   sync.Mutex
}

func (c *client) write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(messageType, data)
}

// Hub tracks connected websocket clients keyed by client ID.
type Hub struct {
	clients map[string]*client
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*client),
	}
}

func (h *Hub) Register(clientID string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[clientID] = &client{conn: conn}
}

func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, clientID)
}

// each calls fn for every connected client while holding the read lock.
func (h *Hub) each(fn func(clientID string, c *client)) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, c := range h.clients {
		fn(id, c)
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
