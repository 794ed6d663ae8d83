package event

import "log/slog"

// Handler reacts to a published event. Handlers run synchronously on the
// publisher's goroutine and must not mutate simulation state.
type Handler func(Event)

// Bus is a synchronous publish/subscribe channel with a durable, ordered
// history. It is owned by a single simulation instance and is not safe for
// concurrent use; the engine publishes only from its own tick loop.
type Bus struct {
	subscribers map[Type][]Handler
	history     []Event
	logger      *slog.Logger
}

// NewBus creates an empty bus. A nil logger falls back to slog.Default.
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		subscribers: make(map[Type][]Handler),
		logger:      logger,
	}
}

// Subscribe registers a handler for one event type. All handlers for a type
// run on every matching publish, in subscription order.
func (b *Bus) Subscribe(t Type, h Handler) {
	b.subscribers[t] = append(b.subscribers[t], h)
}

// Publish appends the event to the history — even with zero subscribers —
// then invokes every matching handler. A panicking handler is recovered and
// logged; it never stops later handlers or corrupts the history.
func (b *Bus) Publish(e Event) {
	b.history = append(b.history, e)
	for _, h := range b.subscribers[e.Type] {
		b.invoke(h, e)
	}
}

func (b *Bus) invoke(h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				"event", e.Type.String(),
				"tick", e.Tick,
				"panic", r,
			)
		}
	}()
	h(e)
}

// History returns a copy of the ordered publish history. Mutating the
// returned slice never affects the bus.
func (b *Bus) History() []Event {
	out := make([]Event, len(b.history))
	copy(out, b.history)
	return out
}

// SinceTick returns a copy of the history entries at or after the tick.
func (b *Bus) SinceTick(tick uint64) []Event {
	var out []Event
	for _, e := range b.history {
		if e.Tick >= tick {
			out = append(out, e)
		}
	}
	return out
}

// Clear empties the history without touching subscriptions.
func (b *Bus) Clear() {
	b.history = nil
}
