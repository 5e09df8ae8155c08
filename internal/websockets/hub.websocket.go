package websockets

import (
	"encoding/json"
	"sync"

	"meeplelog/internal/events"
	"meeplelog/internal/logger"
	"meeplelog/internal/models"

	"github.com/gofiber/websocket/v2"
)

// Manager pushes change events to every connected UI so it can re-render its
// views. There is no inbound protocol beyond the connection itself; clients
// only listen.
type Manager struct {
	clients map[string]*websocket.Conn
	mutex   sync.RWMutex
	log     logger.Logger
}

func New(eventBus *events.EventBus) *Manager {
	manager := &Manager{
		clients: make(map[string]*websocket.Conn),
		log:     logger.New("websockets"),
	}

	go manager.relay(eventBus.Subscribe())
	return manager
}

// HandleWebSocket blocks for the life of the connection; fiber's websocket
// handler runs it per-client.
func (m *Manager) HandleWebSocket(conn *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")

	clientID := models.NewID()
	m.mutex.Lock()
	m.clients[clientID] = conn
	m.mutex.Unlock()

	log.Info("Client connected", "clientID", clientID)

	defer func() {
		m.mutex.Lock()
		delete(m.clients, clientID)
		m.mutex.Unlock()
		_ = conn.Close()
		log.Info("Client disconnected", "clientID", clientID)
	}()

	// Drain reads until the peer goes away; inbound payloads are ignored.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (m *Manager) relay(eventCh <-chan events.Event) {
	for event := range eventCh {
		m.broadcast(event)
	}
}

func (m *Manager) broadcast(event events.Event) {
	log := m.log.Function("broadcast")

	payload, err := json.Marshal(event)
	if err != nil {
		log.Er("failed to marshal event", err, "type", event.Type)
		return
	}

	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for clientID, conn := range m.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Warn("failed to push event to client", "clientID", clientID, "error", err)
		}
	}
}

// ClientCount reports connected clients, used by the health endpoint.
func (m *Manager) ClientCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}
