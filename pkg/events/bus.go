package events

import (
	"sync/atomic"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// Name identifies an event emitted by the sink
type Name string

const (
	// Logged fires after a record was successfully inserted. The payload
	// is the original record as supplied by the caller.
	Logged Name = "logged"
	// Error fires when an insert failed. The payload is the error.
	Error Name = "error"
)

// Handler consumes one event payload. Handlers run on their own
// goroutine; emitting never blocks the write path.
type Handler func(payload any)

type registration struct {
	id uint64
	fn Handler
}

// Bus is a fire-and-forget publish/subscribe fan-out keyed by event name
type Bus struct {
	handlers cmap.ConcurrentMap[string, []registration]
	nextID   atomic.Uint64
}

// NewBus creates a new Bus instance
func NewBus() *Bus {
	return &Bus{
		handlers: cmap.New[[]registration](),
	}
}

// Subscribe registers a handler for an event name.
// Returns an unsubscribe function.
func (b *Bus) Subscribe(name Name, handler Handler) func() {
	id := b.nextID.Add(1)

	// Registration slices are copy-on-write: Emit iterates whatever slice
	// it fetched without holding the shard lock, so a published slice must
	// never be mutated afterwards.
	b.handlers.Upsert(string(name), nil, func(exists bool, current, _ []registration) []registration {
		out := make([]registration, 0, len(current)+1)
		out = append(out, current...)
		return append(out, registration{id: id, fn: handler})
	})

	return func() {
		b.handlers.Upsert(string(name), nil, func(exists bool, current, _ []registration) []registration {
			out := make([]registration, 0, len(current))
			for _, reg := range current {
				if reg.id != id {
					out = append(out, reg)
				}
			}
			return out
		})
	}
}

// Emit delivers the payload to every handler registered for the event.
// Delivery is asynchronous with no backpressure contract.
func (b *Bus) Emit(name Name, payload any) {
	regs, ok := b.handlers.Get(string(name))
	if !ok || len(regs) == 0 {
		return
	}

	for _, reg := range regs {
		go reg.fn(payload)
	}
}
