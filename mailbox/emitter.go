// Package mailbox implements FlowSim's port fabric (spec.md §2 row B):
// typed one-way Emitters that fan a value out to every connected
// subscriber, and typed request-reply Requestors bound to exactly one
// remote handler. Stock and Process wire their four data-flow edges —
// request-state, withdraw, push, state-change-notify (spec.md §3) —
// out of these two primitives rather than calling each other directly,
// so a Stock or Process never holds a concrete reference to its peer's
// type, only to a port.
//
// Everything here runs synchronously on the caller's goroutine: Emit
// and Request call their subscribers/handler in place, resolving at
// the scheduler's current virtual time (spec.md §4.6 Suspension
// points), the way the teacher's in-memory event bus delivers
// synchronous subscriptions inline rather than through a worker pool.
package mailbox

// subscriber pairs a connection's id (used to find it again on
// disconnect) with the handler it registered.
type subscriber[T any] struct {
	id      uint64
	handler func(T)
}

// Emitter is a one-way, fan-out port: Emit calls every connected
// handler, in the order it was connected, matching the teacher's
// memory event bus's per-topic subscriber map (modules/eventbus/
// memory.go) but without goroutines or channels, since FlowSim is
// single-threaded and cooperative (spec.md §2).
type Emitter[T any] struct {
	subscribers []subscriber[T]
	nextID      uint64
}

// Connect registers handler to run on every future Emit call, and
// returns a disconnect function that removes it. Calling the returned
// function more than once is a no-op.
func (e *Emitter[T]) Connect(handler func(T)) (disconnect func()) {
	id := e.nextID
	e.nextID++
	e.subscribers = append(e.subscribers, subscriber[T]{id: id, handler: handler})

	disconnected := false
	return func() {
		if disconnected {
			return
		}
		disconnected = true
		for i, s := range e.subscribers {
			if s.id == id {
				e.subscribers = append(e.subscribers[:i], e.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Emit calls every connected handler with value, in connection order.
func (e *Emitter[T]) Emit(value T) {
	for _, s := range e.subscribers {
		s.handler(value)
	}
}

// Connected reports whether anything is currently connected.
func (e *Emitter[T]) Connected() bool { return len(e.subscribers) > 0 }
