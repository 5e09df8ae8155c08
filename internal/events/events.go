// Package events is a small in-process bus. Mutations publish change events;
// the websocket layer subscribes and tells connected UIs to re-render.
package events

import (
	"sync"
	"time"

	"meeplelog/internal/logger"
)

type EventType string

const (
	CollectionChanged EventType = "collection.changed"
	SessionsChanged   EventType = "sessions.changed"
	DataImported      EventType = "data.imported"
)

type Event struct {
	Type      EventType `json:"type"`
	EntityID  string    `json:"entityId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type EventBus struct {
	subscribers []chan Event
	mutex       sync.RWMutex
	log         logger.Logger
}

func New() *EventBus {
	return &EventBus{
		log: logger.New("events"),
	}
}

// Subscribe returns a channel receiving every future event. The channel is
// buffered; a subscriber that stops draining loses events rather than
// blocking publishers.
func (b *EventBus) Subscribe() <-chan Event {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	ch := make(chan Event, 16)
	b.subscribers = append(b.subscribers, ch)
	return ch
}

func (b *EventBus) Publish(eventType EventType, entityID string) {
	event := Event{
		Type:      eventType,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
	}

	b.mutex.RLock()
	defer b.mutex.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			b.log.Warn("dropping event for slow subscriber", "type", eventType)
		}
	}
}
