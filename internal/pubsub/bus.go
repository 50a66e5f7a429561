package pubsub

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/classboard/classboard-api/internal/observability"
)

// Listener receives events published on a topic.
type Listener func(Event)

type registration struct {
	id       uint64
	listener Listener
}

// Bus is an in-process publish/subscribe register. Listeners for a
// topic are invoked synchronously on the publishing goroutine, in
// registration order. A panicking listener interrupts the publish; the
// bus does not isolate listener failures.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	topics map[Topic][]registration
	logger zerolog.Logger
}

// NewBus creates an empty bus.
func NewBus(logger zerolog.Logger) *Bus {
	return &Bus{
		topics: make(map[Topic][]registration),
		logger: logger.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe registers a listener for a topic and returns a capability
// that removes exactly that listener. Calling it more than once is a
// no-op after the first call.
func (b *Bus) Subscribe(topic Topic, listener Listener) func() {
	id := b.subscribe(topic, listener)

	var once sync.Once
	return func() {
		once.Do(func() {
			b.remove(topic, id)
		})
	}
}

// Publish delivers an event to every listener currently registered for
// the topic, in registration order.
func (b *Bus) Publish(topic Topic, event Event) {
	b.publishExcept(topic, event, 0)
}

func (b *Bus) subscribe(topic Topic, listener Listener) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.topics[topic] = append(b.topics[topic], registration{id: b.nextID, listener: listener})
	return b.nextID
}

// publishExcept fans out an event, skipping the listener with the given
// registration id. The relay uses it to inject remote events without
// echoing them back out through its own bridge listener.
func (b *Bus) publishExcept(topic Topic, event Event, except uint64) {
	b.mu.Lock()
	registrations := append([]registration(nil), b.topics[topic]...)
	b.mu.Unlock()

	delivered := 0
	for _, reg := range registrations {
		if reg.id == except {
			continue
		}
		reg.listener(event)
		delivered++
	}

	observability.EventsPublished().WithLabelValues(string(topic)).Inc()
	b.logger.Debug().Str("topic", string(topic)).Int("listeners", delivered).Msg("event published")
}

func (b *Bus) remove(topic Topic, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	registrations := b.topics[topic]
	for i, reg := range registrations {
		if reg.id == id {
			b.topics[topic] = append(registrations[:i], registrations[i+1:]...)
			return
		}
	}
}
