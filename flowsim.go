// Package flowsim is the embedding program's build/run API (spec.md
// §6): construct Stocks and Processes, connect them, then drive the
// virtual clock forward. It is the thin outer layer over clock, flow,
// resource, mailbox and distribution — the model-wiring convenience the
// teacher's builder.go/application.go provide over modules/scheduler
// and modules/eventbus, without carrying over the teacher's full
// module-lifecycle/DI machinery, which has no FlowSim analogue (a
// FlowSim model has no config sections, no tenants, no HTTP routes to
// register).
package flowsim

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/flowsim/flowsim/clock"
	"github.com/flowsim/flowsim/flow"
)

// Logger is FlowSim's structured-logging seam, identical in shape to
// the teacher's modular.Logger so the same slog/zap/logrus adapter a
// host application already has for the rest of its stack can be reused
// here without writing a new one.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
}

// ConfigurationError and WiringError re-export flow's build-time error
// kinds (spec.md §7) at the package embedders actually import, so
// callers need not reach into flowsim/flow for the taxonomy their
// error-handling switches on.
type ConfigurationError = flow.ConfigurationError

// WiringError re-exports flow.WiringError; see ConfigurationError.
type WiringError = flow.WiringError

// Simulation is one constructed model: its virtual-time scheduler plus
// the identity (RunID) that ties every log record and CloudEvent this
// run produces together. RunID generation mirrors the teacher's
// scheduler.go job-ID convention (uuid.New().String()) — it identifies
// the *run*, not any individual flow.EventID, which stays the spec's
// short deterministic causal tag.
type Simulation struct {
	RunID     string
	Scheduler *clock.Scheduler

	logger Logger
}

// Option configures a Simulation at construction, following the
// teacher's functional-options convention (builder.go's Option,
// scheduler.go's SchedulerOption) rather than a config struct with many
// optional zero fields threaded positionally.
type Option func(*Simulation)

// WithLogger attaches a Logger a Simulation's own lifecycle messages
// (currently just Init) are logged through. Stock/Process logging goes
// through flow.EventLog, a separate seam, since model event records and
// FlowSim's own operational logging are different concerns.
func WithLogger(logger Logger) Option {
	return func(s *Simulation) { s.logger = logger }
}

// Init builds a Simulation whose virtual clock starts at startTime
// (spec.md §6's "init(start_time) -> (Simulation, Scheduler)"). The
// scheduler is also reachable as Simulation.Scheduler so callers can
// pass it straight to flow.NewStock/flow.NewProcess.
func Init(startTime clock.Time, opts ...Option) *Simulation {
	sim := &Simulation{
		RunID:     uuid.New().String(),
		Scheduler: clock.NewScheduler(startTime),
	}
	for _, opt := range opts {
		opt(sim)
	}
	if sim.logger != nil {
		sim.logger.Info("simulation initialized", "runId", sim.RunID, "startTime", int64(startTime))
	}
	return sim
}

// StepUntil advances the simulation's virtual clock to target,
// executing every due action along the way (spec.md §6's run-time
// "step_until(target_time)").
func (s *Simulation) StepUntil(target clock.Time) {
	s.Scheduler.StepUntil(target)
}

// Now returns the simulation's current virtual time.
func (s *Simulation) Now() clock.Time { return s.Scheduler.Now() }

// Connect wires a Process's upstream port n to Stock s (spec.md §6's
// build-time "connect(a, b[, n])" operation, specialized to the
// upstream direction since Go has no single polymorphic connect the
// way the original's macro-generated families did). portIndex is 0 for
// every Process variant except a Combiner, which has one upstream port
// per input.
func Connect(upstream *flow.Stock, p *flow.Process, portIndex int) error {
	if err := flow.ConnectUpstream(p, portIndex, upstream); err != nil {
		return fmt.Errorf("flowsim: connecting %q as upstream port %d: %w", upstream.ElementName, portIndex, err)
	}
	return nil
}

// ConnectDownstream wires Stock s as Process p's downstream port n
// (spec.md §6's connect operation, downstream direction). portIndex is
// 0 for every Process variant except a Splitter, which has one
// downstream port per output.
func ConnectDownstream(p *flow.Process, portIndex int, downstream *flow.Stock) error {
	if err := flow.ConnectDownstream(p, portIndex, downstream); err != nil {
		return fmt.Errorf("flowsim: connecting %q as downstream port %d: %w", downstream.ElementName, portIndex, err)
	}
	return nil
}

// ConnectEnvironment wires env as p's environment gate (spec.md §4.2's
// env_state), so Stop/Resume calls on env pause and resume p.
func ConnectEnvironment(p *flow.Process, env *flow.Environment) {
	flow.ConnectEnvironment(p, env)
}

// Kick seeds each of procs's first scheduling decision (spec.md §6's
// "optional pre-step initial kicks to seed each Process's first
// update_state"), for use once a model is fully wired and before the
// first StepUntil.
func Kick(procs ...*flow.Process) {
	for _, p := range procs {
		p.Kick()
	}
}
