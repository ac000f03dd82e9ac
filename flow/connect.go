package flow

import "reflect"

// checkResourceType is FlowSim's connect-time resource-type wiring
// check (spec.md §7's "Wiring error ... resource types mismatch"
// example). A Process's upstream and downstream neighbours are
// expected to exchange the same concrete Resource shape, since a
// Process forwards (or, for a Combiner/Splitter, combines/splits)
// whatever it withdraws without converting it. The first successful
// connect on either side fixes p's expected type; every later connect
// is checked against it.
func checkResourceType(p *Process, s *Stock) error {
	t := reflect.TypeOf(s.resource)
	if p.resourceType == nil {
		p.resourceType = t
		return nil
	}
	if p.resourceType != t {
		return wiringErrorf("%q expects resource type %s, got %s from %q", p.ElementName, p.resourceType, t, s.ElementName)
	}
	return nil
}

// ConnectUpstream wires Stock s as Process p's upstream neighbour at
// the given port index (0 for every Process except a Combiner, which
// has one port per upstream). It binds all three upstream-facing
// edges from spec.md §3 — request-state, withdraw, state-notify — in
// one call, which is FlowSim's `connect(a, b[, n])` build-time
// operation (spec.md §6) specialized to a concrete direction: Go's
// lack of the original's single polymorphic connect makes one
// explicitly-named function per direction the idiomatic choice here.
//
// It returns a *WiringError if p is a Source (which has no upstream
// port to wire) or if portIndex is out of range.
func ConnectUpstream(p *Process, portIndex int, s *Stock) error {
	if p.isSource {
		return wiringErrorf("%q is a source process and has no upstream port", p.ElementName)
	}
	if portIndex < 0 || portIndex >= len(p.upstreams) {
		return wiringErrorf("%q has no upstream port %d", p.ElementName, portIndex)
	}
	if err := checkResourceType(p, s); err != nil {
		return err
	}
	port := &p.upstreams[portIndex]
	port.state.Connect(s.ServeState)
	port.transfer.Connect(s.ServeWithdraw)
	s.StateEmitter.Connect(func(notice stateChangeNotice) {
		p.UpdateState(notice.CauseID)
	})
	return nil
}

// ConnectDownstream wires Stock s as Process p's downstream neighbour
// at the given port index (0 for every Process except a Splitter,
// which has one port per downstream). See ConnectUpstream for the
// edges it binds.
func ConnectDownstream(p *Process, portIndex int, s *Stock) error {
	if p.isSink {
		return wiringErrorf("%q is a sink process and has no downstream port", p.ElementName)
	}
	if portIndex < 0 || portIndex >= len(p.downstreams) {
		return wiringErrorf("%q has no downstream port %d", p.ElementName, portIndex)
	}
	if err := checkResourceType(p, s); err != nil {
		return err
	}
	port := &p.downstreams[portIndex]
	port.state.Connect(s.ServeState)
	port.transfer.Connect(s.ServePush)
	s.StateEmitter.Connect(func(notice stateChangeNotice) {
		p.UpdateState(notice.CauseID)
	})
	return nil
}

// ConnectEnvironment wires env as p's environment gate. A Process
// never connected to an Environment is always EnvNormal (spec.md §4.4
// style "absent port is always available" rule, applied to the
// environment gate).
func ConnectEnvironment(p *Process, env *Environment) {
	p.env = env
	p.envState = env.State()
	env.onChange(func() {
		p.UpdateState(SchedulerEventID)
	})
}
