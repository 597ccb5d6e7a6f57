package api

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// BroadcastEvent describes websocket payloads emitted when SOS broadcasts
// are raised or resolved.
type BroadcastEvent struct {
	Type      string        `json:"type"`
	Broadcast *BroadcastDTO `json:"broadcast,omitempty"`
	Message   string        `json:"message,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// wsClient wraps a websocket connection with write locking.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// BroadcastNotifier keeps track of active websocket clients and pushes
// broadcast events to all of them.
type BroadcastNotifier struct {
	mu        sync.Mutex
	clients   map[*wsClient]struct{}
	lastEvent *BroadcastEvent
}

// NewBroadcastNotifier constructs a notifier instance.
func NewBroadcastNotifier() *BroadcastNotifier {
	return &BroadcastNotifier{clients: make(map[*wsClient]struct{})}
}

// Register attaches a websocket connection and returns a client handle.
// A newly registered client immediately receives the latest active event
// so it does not miss an ongoing SOS.
func (n *BroadcastNotifier) Register(conn *websocket.Conn) *wsClient {
	client := &wsClient{conn: conn}
	n.mu.Lock()
	n.clients[client] = struct{}{}
	last := n.lastEvent
	n.mu.Unlock()

	if last != nil {
		_ = client.writeJSON(*last)
	}
	return client
}

// Unregister removes the websocket client and closes the socket.
func (n *BroadcastNotifier) Unregister(client *wsClient) {
	if client == nil {
		return
	}
	n.mu.Lock()
	delete(n.clients, client)
	n.mu.Unlock()
	if client.conn != nil {
		_ = client.conn.Close()
	}
}

// Publish sends the supplied event to all registered websocket clients.
func (n *BroadcastNotifier) Publish(event BroadcastEvent) {
	event.Timestamp = time.Now().UTC()

	n.mu.Lock()
	if event.Type == "raised" {
		snapshot := event
		n.lastEvent = &snapshot
	}
	if event.Type == "resolved" {
		n.lastEvent = nil
	}
	for client := range n.clients {
		if err := client.writeJSON(event); err != nil {
			delete(n.clients, client)
			_ = client.conn.Close()
		}
	}
	n.mu.Unlock()
}

func (c *wsClient) writeJSON(payload interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.conn.WriteJSON(payload)
}
