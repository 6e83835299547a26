package events

import (
	"sync"

	"github.com/admesh-labs/adunit/pkg/log"
)

// Handler is a host callback bound to an event name. listener is the opaque
// value supplied at subscription time (the host object the callback belongs
// to); data is the event payload, nil for events that carry none.
type Handler func(listener any, data any)

type binding struct {
	handler  Handler
	listener any
}

// Bus is a single-slot-per-event-name callback registry. The ad unit is
// the sole producer; the host is the sole consumer.
//
// Emissions are synchronous: Emit returns after the bound callback has run.
type Bus struct {
	mu       sync.Mutex
	bindings map[string]binding
	logger   log.Logger
}

// New creates an empty bus. A nil logger defaults to the no-op logger.
func New(logger log.Logger) *Bus {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Bus{
		bindings: make(map[string]binding),
		logger:   logger,
	}
}

// Subscribe binds handler (with its listener value) to the event name,
// replacing any prior binding for that name. A nil handler is ignored.
func (b *Bus) Subscribe(event string, handler Handler, listener any) {
	if handler == nil {
		b.logger.Warn("ignoring nil handler", log.String("event", event))
		return
	}

	b.mu.Lock()
	_, replaced := b.bindings[event]
	b.bindings[event] = binding{handler: handler, listener: listener}
	b.mu.Unlock()

	if replaced {
		b.logger.Debug("subscription replaced", log.String("event", event))
	}
}

// Unsubscribe removes the binding for the event name if present.
// Removing an absent binding is a safe no-op.
func (b *Bus) Unsubscribe(event string) {
	b.mu.Lock()
	delete(b.bindings, event)
	b.mu.Unlock()
}

// Emit invokes the bound callback synchronously with data. If no binding
// exists for the event name the emission is silently dropped.
func (b *Bus) Emit(event string, data any) {
	b.mu.Lock()
	bound, ok := b.bindings[event]
	b.mu.Unlock()

	if !ok {
		b.logger.Debug("no subscriber", log.String("event", event))
		return
	}

	// Invoke outside the lock so the callback may re-enter the bus.
	bound.handler(bound.listener, data)
}
