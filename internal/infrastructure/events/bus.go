package events

import (
	"sync"
	"time"
)

const (
	TypeStoreChanged = "store_changed"
	TypeSyncStatus   = "sync_status"
	TypeSecurity     = "security_event"
)

// Event is a store/sync change notification delivered to in-process
// observers (and fanned out to websocket clients).
type Event struct {
	Type    string      `json:"type"`
	Key     string      `json:"key,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
	At      time.Time   `json:"at"`
}

// Bus is a fan-out broadcaster. Slow subscribers are skipped rather than
// blocking a publisher, the same drop-on-full behavior the websocket
// broadcast loop uses.
type Bus struct {
	mu   sync.RWMutex
	subs map[int]chan Event
	next int
}

func NewBus() *Bus {
	return &Bus{
		subs: make(map[int]chan Event),
	}
}

// Subscribe returns a receive channel and an unsubscribe func.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan Event, 32)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
