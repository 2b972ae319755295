package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"trazot/internal/infrastructure/events"
	"trazot/pkg/logger"
)

// Client represents a connected event observer.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
}

// Manager fans store/sync events out to every connected observer so other
// sessions can refresh their derived state when the store changes.
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the manager's main loop in a goroutine, consuming the event bus
// until ctx is canceled.
func (m *Manager) Start(ctx context.Context, bus *events.Bus) {
	evts, cancel := bus.Subscribe()

	go func() {
		defer cancel()
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.ID] = client
				m.mutex.Unlock()
				logger.Debug("Observer registered: %s", client.ID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if _, ok := m.clients[client.ID]; ok {
					delete(m.clients, client.ID)
					close(client.Send)
				}
				m.mutex.Unlock()
				logger.Debug("Observer unregistered: %s", client.ID)

			case event, ok := <-evts:
				if !ok {
					return
				}
				m.broadcast(event)

			case <-ctx.Done():
				return
			}
		}
	}()
}

func (m *Manager) broadcast(event events.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to encode event: %v", err)
		return
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	for id, client := range m.clients {
		select {
		case client.Send <- payload:
		default:
			close(client.Send)
			delete(m.clients, id)
		}
	}
}

// ReadPump drains the connection until the peer goes away; observers never
// send meaningful frames.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Debug("Observer read error: %v", err)
			}
			break
		}
	}
}

// WritePump forwards queued events to the connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
