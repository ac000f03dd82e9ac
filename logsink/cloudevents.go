package logsink

import (
	"context"
	"fmt"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"

	"github.com/flowsim/flowsim/flow"
)

// Event type constants for the CloudEvents sink, dotted reverse-domain
// strings matching the teacher's modules/scheduler/events.go
// convention (com.modular.scheduler.* there, com.flowsim.flow.* here).
const (
	EventTypeStockMutation    = "com.flowsim.flow.stock.mutation"
	EventTypeStockStateChange = "com.flowsim.flow.stock.statechange"
	EventTypeProcessLifecycle = "com.flowsim.flow.process.lifecycle"
	EventTypeProcessDelay     = "com.flowsim.flow.process.delay"
)

func eventTypeFor(kind flow.EventType) string {
	switch kind {
	case flow.EventAdd, flow.EventRemove:
		return EventTypeStockMutation
	case flow.EventStateChange:
		return EventTypeStockStateChange
	case flow.EventDelayStart, flow.EventDelayEnd:
		return EventTypeProcessDelay
	default:
		return EventTypeProcessLifecycle
	}
}

// EventEmitter is the CloudEventSink's outbound seam, the same
// single-method shape as the teacher's modules/scheduler.EventEmitter —
// an embedding program wires this to its own event bus (e.g.
// modules/eventbus, or any CloudEvents-speaking transport).
type EventEmitter interface {
	EmitEvent(ctx context.Context, event cloudevents.Event) error
}

// CloudEventRecordPayload is the JSON body of every CloudEvent the sink
// emits: a flow.LogRecord's payload fields plus the run identifier that
// ties every event of one simulation run together.
type CloudEventRecordPayload struct {
	RunID         string `json:"runId"`
	Time          string `json:"time"`
	EventID       string `json:"eventId"`
	SourceEventID string `json:"sourceEventId"`
	ElementName   string `json:"elementName"`
	ElementCode   string `json:"elementCode"`
	ElementType   string `json:"elementType"`
	EventType     string `json:"eventType"`

	Quantity         float64   `json:"quantity,omitempty"`
	VectorComponents []float64 `json:"vectorComponents,omitempty"`
	Reason           string    `json:"reason,omitempty"`
	DelayName        string    `json:"delayName,omitempty"`
	Band             string    `json:"band,omitempty"`
}

// CloudEventSink converts each flow.LogRecord into a cloudevents.Event,
// ported from GoCodeAlone-modular/observer_cloudevents.go's
// NewCloudEvent(eventType, source, data, metadata), and hands it to an
// EventEmitter. The emitter's context is fixed at construction since
// flow.EventLog.Log carries no context of its own (FlowSim's control
// loop is synchronous, not request-scoped).
type CloudEventSink struct {
	ctx     context.Context
	emitter EventEmitter
	source  string
	runID   string

	// OnEmitError receives any error EmitEvent returns. Nil is
	// permitted, matching the teacher's nil-checked Logger convention;
	// records are then silently dropped on emit failure, the same
	// tolerance HandleEventEmissionError documents for the teacher's
	// "no subject available" case.
	OnEmitError func(err error)
}

// NewCloudEventSink builds a sink that emits through emitter, tagging
// every event's CloudEvents source with source and its runId extension
// with runID (ordinarily a flowsim.Simulation's RunID).
func NewCloudEventSink(ctx context.Context, emitter EventEmitter, source, runID string) *CloudEventSink {
	return &CloudEventSink{ctx: ctx, emitter: emitter, source: source, runID: runID}
}

// Log converts record and emits it. It satisfies flow.EventLog.
func (s *CloudEventSink) Log(record flow.LogRecord) {
	payload := CloudEventRecordPayload{
		RunID:            s.runID,
		Time:             record.Time.ISO8601(),
		EventID:          string(record.EventID),
		SourceEventID:    string(record.SourceEventID),
		ElementName:      record.ElementName,
		ElementCode:      record.ElementCode,
		ElementType:      record.ElementType,
		EventType:        string(record.EventType),
		Quantity:         record.Quantity,
		VectorComponents: record.VectorComponents,
		Reason:           record.Reason,
		DelayName:        record.DelayName,
		Band:             record.Band,
	}

	evt := cloudevents.NewEvent()
	evt.SetID(uuid.NewString())
	evt.SetSource(s.source)
	evt.SetType(eventTypeFor(record.EventType))
	evt.SetTime(time.Now())
	evt.SetSpecVersion(cloudevents.VersionV1)
	_ = evt.SetData(cloudevents.ApplicationJSON, payload)
	evt.SetExtension("runid", s.runID)
	evt.SetExtension("elementcode", record.ElementCode)

	if err := s.emitter.EmitEvent(s.ctx, evt); err != nil && s.OnEmitError != nil {
		s.OnEmitError(fmt.Errorf("logsink: emitting CloudEvent for %s: %w", record.EventID, err))
	}
}
