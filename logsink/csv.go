// Package logsink provides reference flow.EventLog sinks: a CSV writer
// and a CloudEvents emitter, grounded on the teacher's eventlogger
// output-target shape and its observer_cloudevents.go CloudEvent
// builder, respectively. Neither is the out-of-scope "CSV log writer"
// spec.md §1 excludes — that exclusion names bespoke per-example-model
// writers; this is a reference sink for the core's own flow.LogRecord
// type, the way the teacher ships a working modules/eventlogger rather
// than leaving every module to roll its own.
package logsink

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/flowsim/flowsim/flow"
)

// CSVSink writes every flow.LogRecord as one flat CSV row, in the
// column order spec.md §6 enumerates, with element_code added after
// element_name: time, event_id, source_event_id, element_name,
// element_code, element_type, event_type, then the kind-specific
// payload fields. It buffers nothing beyond encoding/csv's own
// internal buffer; callers own flushing via Flush.
type CSVSink struct {
	mu     sync.Mutex
	w      *csv.Writer
	header bool
}

var csvHeader = []string{
	"time", "event_id", "source_event_id", "element_name", "element_code",
	"element_type", "event_type", "quantity", "vector_components",
	"reason", "delay_name", "band",
}

// NewCSVSink wraps w in a CSVSink, writing the header row immediately.
func NewCSVSink(w io.Writer) (*CSVSink, error) {
	s := &CSVSink{w: csv.NewWriter(w)}
	if err := s.w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("logsink: writing CSV header: %w", err)
	}
	s.header = true
	return s, nil
}

// Log writes one row. It satisfies flow.EventLog.
func (s *CSVSink) Log(record flow.LogRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := []string{
		record.Time.ISO8601(),
		string(record.EventID),
		string(record.SourceEventID),
		record.ElementName,
		record.ElementCode,
		record.ElementType,
		string(record.EventType),
		formatFloat(record.Quantity),
		formatVector(record.VectorComponents),
		record.Reason,
		record.DelayName,
		record.Band,
	}
	// A write error here has nowhere safe to surface from inside the
	// simulation's hot path (Log has no error return); Flush/Err lets a
	// caller check for it after the run.
	_ = s.w.Write(row)
}

// Flush flushes any buffered rows to the underlying writer.
func (s *CSVSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w.Flush()
	return s.w.Error()
}

func formatFloat(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatVector(v []float64) string {
	if len(v) == 0 {
		return ""
	}
	out := make([]string, len(v))
	for i, x := range v {
		out[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	s := ""
	for i, x := range out {
		if i > 0 {
			s += ";"
		}
		s += x
	}
	return s
}
