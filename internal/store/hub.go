package store

import (
	"encoding/json"
	"sync"
	"sync/atomic"
)

const subscriptionBuffer = 64

// Event reports a change made through one Store to every other Store that
// shares the same Hub.
type Event struct {
	Key     string
	Value   json.RawMessage
	Removed bool
	Origin  string
}

// Hub fans change events out between stores opened on the same physical
// database. A store never receives its own events.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]*Subscription
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[int]*Subscription)}
}

// Subscription receives events for a set of logical keys, or for every key
// when the set is empty.
type Subscription struct {
	C <-chan Event

	ch       chan Event
	id       int
	origin   string
	keys     map[string]bool
	hub      *Hub
	overflow atomic.Bool
	once     sync.Once
}

func (h *Hub) subscribe(origin string, keys []string) *Subscription {
	ch := make(chan Event, subscriptionBuffer)
	sub := &Subscription{C: ch, ch: ch, origin: origin, hub: h}
	if len(keys) > 0 {
		sub.keys = make(map[string]bool, len(keys))
		for _, k := range keys {
			sub.keys[k] = true
		}
	}

	h.mu.Lock()
	h.nextID++
	sub.id = h.nextID
	h.subs[sub.id] = sub
	h.mu.Unlock()
	return sub
}

func (h *Hub) publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.subs {
		if sub.origin == ev.Origin {
			continue
		}
		if sub.keys != nil && !sub.keys[ev.Key] {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			sub.overflow.Store(true)
		}
	}
}

// Unsubscribe detaches the subscription and closes C. Safe to call more
// than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs, s.id)
		s.hub.mu.Unlock()
		close(s.ch)
	})
}

// Overflowed reports, and clears, whether events were dropped because C was
// full. Consumers should treat everything they watch as stale when it
// returns true.
func (s *Subscription) Overflowed() bool {
	return s.overflow.Swap(false)
}
