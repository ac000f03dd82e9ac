package flow

import (
	"github.com/flowsim/flowsim/clock"
	"github.com/flowsim/flowsim/mailbox"
	"github.com/flowsim/flowsim/resource"
)

// Stock holds a resource value between two capacity limits and emits a
// deduplicated state-change notification whenever its occupancy band
// changes (spec.md §4.3). It owns its resource exclusively: only its
// own add/remove handlers ever mutate it (spec.md §5 Shared-resource
// policy), so no locking is needed.
type Stock struct {
	ElementName string
	ElementCode string
	ElementType string

	LowCapacity float64
	MaxCapacity float64

	resource resource.Resource
	band     resource.Band

	// StateEmitter fans the new band out to every connected Process's
	// UpdateState method, ported from DefaultStock's state_emitter in
	// core.rs.
	StateEmitter mailbox.Emitter[stateChangeNotice]

	sched     *clock.Scheduler
	events    *eventCounter
	log       EventLog
	scheduled *clock.CancelKey
}

// stateChangeNotice is what a Stock emits through StateEmitter: the
// new band and the event id that caused it.
type stateChangeNotice struct {
	Band    resource.Band
	CauseID EventID
}

// NewStock builds a Stock holding initial, classified against
// [lowCapacity, maxCapacity]. It panics with a *ConfigurationError
// wrapping ErrInvalidCapacity if lowCapacity exceeds maxCapacity,
// since that is a build-time
// configuration error (spec.md §7) the caller should fix before wiring
// continues, not a runtime condition to recover from mid-run.
func NewStock(sched *clock.Scheduler, elementName, elementCode, elementType string, lowCapacity, maxCapacity float64, initial resource.Resource, log EventLog) *Stock {
	if lowCapacity > maxCapacity {
		panic(&ConfigurationError{ElementName: elementName, Err: ErrInvalidCapacity})
	}
	s := &Stock{
		ElementName: elementName,
		ElementCode: elementCode,
		ElementType: elementType,
		LowCapacity: lowCapacity,
		MaxCapacity: maxCapacity,
		resource:    initial,
		sched:       sched,
		events:      newEventCounter(elementCode),
		log:         log,
	}
	s.band = resource.Classify(s.resource.Total(), s.LowCapacity, s.MaxCapacity)
	return s
}

// Band returns the Stock's last-computed occupancy classification.
func (s *Stock) Band() resource.Band { return s.band }

// Total returns the Stock's current resource quantity.
func (s *Stock) Total() float64 { return s.resource.Total() }

// ServeState answers a request-state query (spec.md §3's
// request-state edge): it is the handler a Process's upstream/
// downstream state Requestor connects to.
func (s *Stock) ServeState(struct{}) resource.Band {
	return s.band
}

// ServeWithdraw answers a withdraw request (spec.md §3's withdraw
// edge): the handler a Process's upstream transfer Requestor connects
// to.
func (s *Stock) ServeWithdraw(req transferRequest) transferResponse {
	removed, eventID := s.Remove(req.Parameter, req.CauseID)
	return transferResponse{Resource: removed, EventID: eventID}
}

// ServePush answers a push request (spec.md §3's push edge): the
// handler a Process's downstream transfer Requestor connects to.
func (s *Stock) ServePush(req transferRequest) transferResponse {
	eventID := s.Add(req.Payload, req.CauseID)
	return transferResponse{EventID: eventID}
}

// Add combines payload into the Stock's resource and logs the
// mutation, then schedules a deferred state-change emission if the
// band changed (spec.md §4.3's two-phase add/post-add).
func (s *Stock) Add(payload resource.Resource, causeID EventID) EventID {
	prevBand := s.band
	s.resource.Add(payload)
	eventID := s.events.Next()
	logIfSet(s.log, LogRecord{
		Time: s.sched.Now(), EventID: eventID, SourceEventID: causeID,
		ElementName: s.ElementName, ElementCode: s.ElementCode, ElementType: s.ElementType,
		EventType: EventAdd, Quantity: payload.Total(), VectorComponents: vectorComponentsOf(payload),
	})
	s.postMutate(prevBand, eventID)
	return eventID
}

// Remove withdraws parameter's worth of resource (a float64 quantity
// for continuous resources, nil or a key for discrete ones — see
// resource.Resource.Remove), logs the mutation, and returns the
// withdrawn Resource (spec.md §4.3's two-phase remove/post-remove).
func (s *Stock) Remove(parameter any, causeID EventID) (resource.Resource, EventID) {
	prevBand := s.band
	removed := s.resource.Remove(parameter)
	eventID := s.events.Next()
	logIfSet(s.log, LogRecord{
		Time: s.sched.Now(), EventID: eventID, SourceEventID: causeID,
		ElementName: s.ElementName, ElementCode: s.ElementCode, ElementType: s.ElementType,
		EventType: EventRemove, Quantity: removed.Total(), VectorComponents: vectorComponentsOf(removed),
	})
	s.postMutate(prevBand, eventID)
	return removed, eventID
}

// vectorComponentsOf returns r's per-component breakdown when r is a
// *resource.Vector, and nil otherwise (spec.md §6's "vector components"
// payload field is only meaningful for vector-shaped resources; a
// Scalar or discrete item carries its detail in Quantity alone, ported
// from core.rs's VectorStockLogType::Add{balance, vector}).
func vectorComponentsOf(r resource.Resource) []float64 {
	v, ok := r.(*resource.Vector)
	if !ok {
		return nil
	}
	components := make([]float64, len(v.Values))
	copy(components, v.Values)
	return components
}

// postMutate recomputes the band after a mutation and, if it changed
// variant, schedules emitChange one virtual nanosecond in the future —
// never immediately — so a Process awaiting the very call that
// triggered this mutation observes a fully settled Stock rather than
// re-entering mid-mutation (spec.md §4.3's rationale for the 1ns
// delay). Only one pending emission is ever scheduled at a time: a
// mutation that lands before a previously scheduled emission fires
// simply rides along with it, since both observe the same final band.
func (s *Stock) postMutate(prevBand resource.Band, causeID EventID) {
	newBand := resource.Classify(s.resource.Total(), s.LowCapacity, s.MaxCapacity)
	s.band = newBand
	if newBand == prevBand {
		return
	}
	if s.scheduled != nil {
		return
	}
	at := s.sched.Now().Add(1)
	s.scheduled = s.sched.ScheduleKeyedEvent(at, func() {
		s.scheduled = nil
		s.emitChange(causeID)
	})
}

// emitChange logs StateChange and fans the current band out to every
// connected Process.
func (s *Stock) emitChange(causeID EventID) {
	eventID := s.events.Next()
	logIfSet(s.log, LogRecord{
		Time: s.sched.Now(), EventID: eventID, SourceEventID: causeID,
		ElementName: s.ElementName, ElementCode: s.ElementCode, ElementType: s.ElementType,
		EventType: EventStateChange, Band: s.band.String(),
	})
	s.StateEmitter.Emit(stateChangeNotice{Band: s.band, CauseID: eventID})
}
