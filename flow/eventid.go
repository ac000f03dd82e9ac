package flow

import "fmt"

// EventID is an opaque short tag uniquely identifying one logged
// event, of the form "<element_code>_<counter>" (spec.md §3). Every
// operation that performs observable work consumes an incoming EventID
// (the cause) and produces a fresh one (the effect), letting a log
// reader reconstruct the causal event graph from SourceEventID chains
// alone.
type EventID string

// InitEventID is the root cause used for the very first update_state
// call a model issues, before any real event has occurred.
const InitEventID EventID = "INIT_000000"

// SchedulerEventID is used when a wake-up is attributed to the
// scheduler itself rather than to another model's event (e.g. a
// self-triggered delay-mode transition with no other cause).
const SchedulerEventID EventID = "SCH_000000"

// eventCounter issues the auto-incrementing suffix for one element's
// EventIDs. FlowSim is single-threaded and cooperative (spec.md §5),
// so a plain counter needs no synchronization.
type eventCounter struct {
	code string
	n    uint64
}

func newEventCounter(code string) *eventCounter {
	return &eventCounter{code: code}
}

// Next returns a fresh EventID for this element.
func (c *eventCounter) Next() EventID {
	c.n++
	return EventID(fmt.Sprintf("%s_%06d", c.code, c.n))
}
