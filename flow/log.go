package flow

import "github.com/flowsim/flowsim/clock"

// EventType names one kind of logged simulation event (spec.md §6).
type EventType string

const (
	EventAdd             EventType = "Add"
	EventRemove          EventType = "Remove"
	EventStateChange     EventType = "StateChange"
	EventWithdrawRequest EventType = "WithdrawRequest"
	EventProcessStart    EventType = "ProcessStart"
	EventProcessFinish   EventType = "ProcessFinish"
	EventProcessNonStart EventType = "ProcessNonStart"
	EventDelayStart      EventType = "DelayStart"
	EventDelayEnd        EventType = "DelayEnd"
	EventProcessStopped  EventType = "ProcessStopped"
	EventProcessContinue EventType = "ProcessContinue"
)

// Fixed ProcessNonStart reason vocabulary (spec.md §4.2 Step 4).
const (
	ReasonUpstreamEmpty          = "Upstream is empty"
	ReasonUpstreamNotConnected   = "Upstream is not connected"
	ReasonDownstreamFull         = "Downstream is full"
	ReasonDownstreamNotConnected = "Downstream is not connected"
)

// LogRecord is one causally-tagged row of the event log (spec.md §6):
// "time, event_id, source_event_id, element_name, element_type,
// event_type, payload fields specific to the kind". The payload fields
// are all present on every record and simply left at their zero value
// when not applicable to EventType, which keeps EventLog.Log a single
// flat method rather than one overload per event kind — the shape a
// CSV row or a CloudEvent's data payload both want.
type LogRecord struct {
	Time             clock.Time
	EventID          EventID
	SourceEventID    EventID
	ElementName      string
	ElementCode      string
	ElementType      string
	EventType        EventType
	Quantity         float64   `json:"quantity,omitempty"`
	VectorComponents []float64 `json:"vector_components,omitempty"`
	Reason           string    `json:"reason,omitempty"`
	DelayName        string    `json:"delay_name,omitempty"`
	Band             string    `json:"band,omitempty"`
}

// EventLog receives LogRecords as a simulation runs. Stock and Process
// hold one nil-able EventLog each, following the teacher's nil-checked
// Logger convention (modules/scheduler/scheduler.go) rather than
// requiring every caller to wire a no-op sink.
type EventLog interface {
	Log(record LogRecord)
}

func logIfSet(sink EventLog, record LogRecord) {
	if sink != nil {
		sink.Log(record)
	}
}
