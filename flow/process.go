package flow

import (
	"reflect"

	"github.com/flowsim/flowsim/clock"
	"github.com/flowsim/flowsim/distribution"
	"github.com/flowsim/flowsim/resource"
)

// inFlightWork is a Process's single in-flight operation: the
// resource already withdrawn from upstream, counting down to
// completion (spec.md §4.2's process_state, §8 invariant 4: at most
// one in flight at a time — enforced here simply by process_state
// being a single pointer rather than a collection).
type inFlightWork struct {
	TimeRemaining clock.Duration
	Resource      resource.Resource
}

// Process is FlowSim's reactive control loop: the state machine
// specified in spec.md §4.2, parameterized over however many upstream/
// downstream ports a concrete variant needs (one of each for a plain
// Process, N upstreams for a Combiner, N downstreams for a Splitter,
// zero of one side for a Source/Sink). One implementation serves every
// variant, per spec.md §9's "replace macro-generated families with one
// parameterized implementation" design note.
type Process struct {
	ElementName string
	ElementCode string
	ElementType string

	TimeDistr     distribution.Sampler
	QuantityDistr distribution.Sampler

	upstreams    []port
	downstreams  []port
	isSource     bool
	isSink       bool
	sourceDraw   func(parameter any) resource.Resource
	splitRatios  []float64
	resourceType reflect.Type

	env      *Environment
	envState EnvState

	delayModes *DelayModes
	inFlight   *inFlightWork

	previousCheckTime clock.Time
	scheduled         *clock.CancelKey
	scheduledAt       clock.Time
	hasScheduled      bool

	sched  *clock.Scheduler
	events *eventCounter
	log    EventLog
}

// NewProcess builds a plain Process with one upstream and one
// downstream port, neither yet connected. It panics with a
// *ConfigurationError wrapping ErrMissingTimeDistr if timeDistr is nil,
// since a Process that can never sample a duration can never start
// (spec.md §7).
func NewProcess(sched *clock.Scheduler, elementName, elementCode, elementType string, timeDistr, quantityDistr distribution.Sampler, log EventLog) *Process {
	return newProcess(sched, elementName, elementCode, elementType, timeDistr, quantityDistr, log, 1, 1)
}

// NewCombinerProcess builds a Process with nUpstreams upstream ports
// and one downstream port (spec.md §4.5): on start it withdraws the
// sampled quantity from every upstream port and combines them into one
// in-flight resource.
func NewCombinerProcess(sched *clock.Scheduler, elementName, elementCode, elementType string, nUpstreams int, timeDistr, quantityDistr distribution.Sampler, log EventLog) *Process {
	return newProcess(sched, elementName, elementCode, elementType, timeDistr, quantityDistr, log, nUpstreams, 1)
}

// NewSplitterProcess builds a Process with one upstream port and
// nDownstreams downstream ports (spec.md §4.5): on completion it splits
// the in-flight resource across the downstream ports by ratios, which
// must sum to 1 (within floating-point tolerance). The last port always
// receives whatever remains after the others are split off, so
// accumulated rounding error lands there instead of being lost.
func NewSplitterProcess(sched *clock.Scheduler, elementName, elementCode, elementType string, ratios []float64, timeDistr, quantityDistr distribution.Sampler, log EventLog) (*Process, error) {
	var sum float64
	for _, r := range ratios {
		sum += r
	}
	if sum < 0.999999 || sum > 1.000001 {
		return nil, &ConfigurationError{ElementName: elementName, Err: ErrSplitRatiosMustSumToOne}
	}
	p := newProcess(sched, elementName, elementCode, elementType, timeDistr, quantityDistr, log, 1, len(ratios))
	p.splitRatios = ratios
	return p, nil
}

// NewSourceProcess builds a Process with no upstream port: its
// in-flight resource always comes from draw, a caller-supplied pull
// function modeling an internal item factory (discrete) or a
// configured source vector (continuous) (spec.md §4.4). draw is called
// with the sampled quantity (or nil, for discrete pulls with no
// QuantityDistr) each time the Source starts new work.
func NewSourceProcess(sched *clock.Scheduler, elementName, elementCode, elementType string, draw func(parameter any) resource.Resource, timeDistr, quantityDistr distribution.Sampler, log EventLog) *Process {
	p := newProcess(sched, elementName, elementCode, elementType, timeDistr, quantityDistr, log, 0, 1)
	p.isSource = true
	p.sourceDraw = draw
	return p
}

// NewSinkProcess builds a Process with no downstream port: whatever it
// withdraws from upstream is destroyed on completion rather than
// pushed anywhere (spec.md §4.4).
func NewSinkProcess(sched *clock.Scheduler, elementName, elementCode, elementType string, timeDistr, quantityDistr distribution.Sampler, log EventLog) *Process {
	p := newProcess(sched, elementName, elementCode, elementType, timeDistr, quantityDistr, log, 1, 0)
	p.isSink = true
	return p
}

func newProcess(sched *clock.Scheduler, elementName, elementCode, elementType string, timeDistr, quantityDistr distribution.Sampler, log EventLog, nUpstreams, nDownstreams int) *Process {
	if timeDistr == nil {
		panic(&ConfigurationError{ElementName: elementName, Err: ErrMissingTimeDistr})
	}
	return &Process{
		ElementName:       elementName,
		ElementCode:       elementCode,
		ElementType:       elementType,
		TimeDistr:         timeDistr,
		QuantityDistr:     quantityDistr,
		upstreams:         make([]port, nUpstreams),
		downstreams:       make([]port, nDownstreams),
		envState:          EnvNormal,
		previousCheckTime: sched.Now(),
		sched:             sched,
		events:            newEventCounter(elementCode),
		log:               log,
	}
}

// SetDelayModes attaches a DelayModes sub-state-machine to the
// process. A Process with none configured never enters a delay.
func (p *Process) SetDelayModes(dm *DelayModes) { p.delayModes = dm }

// Kick runs an initial update_state to seed the Process's first
// scheduling decision, for use right after build (spec.md §6's
// "optional pre-step initial kicks").
func (p *Process) Kick() { p.UpdateState(InitEventID) }
