package mailbox

// Requestor is a typed request-reply port bound to exactly one remote
// handler, used for FlowSim's request-state, withdraw and push edges
// (spec.md §3), each of which addresses the single Stock on one
// upstream or downstream port rather than fanning out.
type Requestor[Req any, Resp any] struct {
	handler func(Req) Resp
	gen     uint64
}

// Connect binds handler as the Requestor's target, replacing any
// previous binding, and returns a disconnect function that clears it.
// Calling the returned function after a newer Connect has superseded it
// is a no-op: it only clears the binding it installed, identified by a
// generation counter rather than func identity (Go func values are not
// comparable, and two closures over the same literal would otherwise
// look identical).
func (r *Requestor[Req, Resp]) Connect(handler func(Req) Resp) (disconnect func()) {
	r.gen++
	myGen := r.gen
	r.handler = handler
	return func() {
		if r.gen == myGen {
			r.handler = nil
		}
	}
}

// Request invokes the connected handler with req and returns its
// response. It panics with ErrNotConnected if nothing is connected,
// since an unconnected Requestor in a running simulation is a wiring
// bug (spec.md §7), not a recoverable runtime condition.
func (r *Requestor[Req, Resp]) Request(req Req) Resp {
	if r.handler == nil {
		panic(ErrNotConnected)
	}
	return r.handler(req)
}

// Connected reports whether a handler is currently bound.
func (r *Requestor[Req, Resp]) Connected() bool { return r.handler != nil }
