// Package features holds FlowSim's godog BDD coverage, grounded on
// modules/scheduler/scheduler_module_bdd_test.go's
// ScenarioInitializer/godog.TestSuite shape, scaled down to the two
// spec.md §8 end-to-end scenarios a single feature file can cover as
// living documentation of the control loop.
package features

import (
	"fmt"
	"testing"

	"github.com/cucumber/godog"
	"github.com/stretchr/testify/require"

	"github.com/flowsim/flowsim"
	"github.com/flowsim/flowsim/clock"
	"github.com/flowsim/flowsim/distribution"
	"github.com/flowsim/flowsim/flow"
	"github.com/flowsim/flowsim/resource"
)

// recordingLog is an in-memory flow.EventLog the step definitions
// inspect after stepping the simulation, standing in for the
// CSVSink/CloudEventSink a real embedder would wire.
type recordingLog struct {
	records []flow.LogRecord
}

func (r *recordingLog) Log(record flow.LogRecord) {
	r.records = append(r.records, record)
}

func (r *recordingLog) countByType(kind flow.EventType) int {
	n := 0
	for _, rec := range r.records {
		if rec.EventType == kind {
			n++
		}
	}
	return n
}

func (r *recordingLog) hasWithReason(kind flow.EventType, reason string) bool {
	for _, rec := range r.records {
		if rec.EventType == kind && rec.Reason == reason {
			return true
		}
	}
	return false
}

// flowsimBDDContext holds per-scenario state, reset when each scenario
// is initialized.
type flowsimBDDContext struct {
	sim    *flowsim.Simulation
	log    *recordingLog
	stocks map[string]*flow.Stock
	proc   *flow.Process
}

func (c *flowsimBDDContext) reset() {
	c.sim = flowsim.Init(clock.Zero)
	c.log = &recordingLog{}
	c.stocks = make(map[string]*flow.Stock)
	c.proc = nil
}

func (c *flowsimBDDContext) stockWithCapacity(name string, low, high, initial float64) error {
	code := name
	c.stocks[name] = flow.NewStock(c.sim.Scheduler, "Stock "+name, code, "stock", low, high, resource.NewScalar(initial), c.log)
	return nil
}

func (c *flowsimBDDContext) processConnecting(name string, processTime, quantity float64, upstreamName, downstreamName string) error {
	proc := flow.NewProcess(c.sim.Scheduler, "Process "+name, name, "process",
		&distribution.Constant{Value: processTime},
		&distribution.Constant{Value: quantity},
		c.log,
	)
	if err := flowsim.Connect(c.stocks[upstreamName], proc, 0); err != nil {
		return err
	}
	if err := flowsim.ConnectDownstream(proc, 0, c.stocks[downstreamName]); err != nil {
		return err
	}
	c.proc = proc
	flowsim.Kick(proc)
	return nil
}

func (c *flowsimBDDContext) simulationStepsTo(seconds float64) error {
	c.sim.StepUntil(clock.Zero.Add(clock.FromSeconds(seconds)))
	return nil
}

func (c *flowsimBDDContext) stockHolds(name string, expected float64) error {
	got := c.stocks[name].Total()
	if got != expected {
		return fmt.Errorf("stock %q holds %v units, expected %v", name, got, expected)
	}
	return nil
}

func (c *flowsimBDDContext) exactlyNEventsLogged(n int, kind string) error {
	got := c.log.countByType(flow.EventType(kind))
	if got != n {
		return fmt.Errorf("expected exactly %d %q events, got %d", n, kind, got)
	}
	return nil
}

func (c *flowsimBDDContext) eventWithReasonLogged(kind, reason string) error {
	if !c.log.hasWithReason(flow.EventType(kind), reason) {
		return fmt.Errorf("expected a %q event with reason %q, found none", kind, reason)
	}
	return nil
}

func TestFlowSimBDD(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: func(s *godog.ScenarioContext) {
			ctx := &flowsimBDDContext{}
			ctx.reset()

			s.Given(`^a stock "([^"]+)" with capacity (\d+) to (\d+) holding (\d+) units$`,
				func(name string, low, high, initial float64) error {
					return ctx.stockWithCapacity(name, low, high, initial)
				})

			s.Given(`^a process "([^"]+)" with constant process time (\d+)s and constant quantity (\d+) connecting "([^"]+)" to "([^"]+)"$`,
				func(name string, processTime, quantity float64, upstream, downstream string) error {
					return ctx.processConnecting(name, processTime, quantity, upstream, downstream)
				})

			s.When(`^the simulation steps to (\d+)s$`, ctx.simulationStepsTo)

			s.Then(`^stock "([^"]+)" holds (\d+) units$`, ctx.stockHolds)

			s.Then(`^exactly (\d+) "([^"]+)" events were logged$`, ctx.exactlyNEventsLogged)

			s.Then(`^a "([^"]+)" event with reason "([^"]+)" was logged$`, ctx.eventWithReasonLogged)
		},
		Options: &godog.Options{
			Format: "progress",
			Paths:  []string{"flowsim.feature"},
		},
	}

	require.Equal(t, 0, suite.Run(), "one or more BDD scenarios failed")
}
