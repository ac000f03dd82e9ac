package flow

import "github.com/flowsim/flowsim/resource"

// upstreamBand reports the worst (most restrictive) band across every
// upstream port, and whether all of them are connected. A Source has
// no ports and is always reported as Full — "always available" per
// spec.md §4.4 — since it never runs dry the way a Stock can.
func (p *Process) upstreamBand() (resource.Band, bool) {
	if p.isSource {
		return resource.Full, true
	}
	worst := resource.Full
	for i := range p.upstreams {
		port := &p.upstreams[i]
		if !port.connected() {
			return resource.Empty, false
		}
		band := port.state.Request(struct{}{})
		if band == resource.Empty {
			worst = resource.Empty
		} else if band == resource.Normal && worst != resource.Empty {
			worst = resource.Normal
		}
	}
	return worst, true
}

// downstreamBand reports the worst (most restrictive) band across
// every downstream port, and whether all of them are connected. A Sink
// has no ports and is always reported as Empty — it never backs up.
func (p *Process) downstreamBand() (resource.Band, bool) {
	if p.isSink {
		return resource.Empty, true
	}
	worst := resource.Empty
	for i := range p.downstreams {
		port := &p.downstreams[i]
		if !port.connected() {
			return resource.Full, false
		}
		band := port.state.Request(struct{}{})
		if band == resource.Full {
			worst = resource.Full
		} else if band == resource.Normal && worst != resource.Full {
			worst = resource.Normal
		}
	}
	return worst, true
}

// withdrawFromUpstreams pulls the sampled quantity (or nil when there
// is no QuantityDistr, as for a pop-front ItemQueue withdrawal) from
// every upstream port —
// or from the Source's draw function — and combines the results into
// one Resource (identity for a plain Process's single upstream;
// Resource.Add-folded for a Combiner's several).
func (p *Process) withdrawFromUpstreams(causeID EventID) (resource.Resource, EventID) {
	var parameter any
	if p.QuantityDistr != nil {
		parameter = p.QuantityDistr.Sample()
	}

	if p.isSource {
		drawn := p.sourceDraw(parameter)
		return drawn, causeID
	}

	var combined resource.Resource
	var lastEventID EventID
	for i := range p.upstreams {
		resp := p.upstreams[i].transfer.Request(transferRequest{Parameter: parameter, CauseID: causeID})
		lastEventID = resp.EventID
		if combined == nil {
			combined = resp.Resource
			continue
		}
		combined.Add(resp.Resource)
	}
	return combined, lastEventID
}

// pushDownstream delivers resource downstream. A Sink destroys it (no
// call is made). A plain Process or Combiner pushes the whole thing to
// its one downstream port. A Splitter divides it across its ports by
// splitRatios, each computed against the pre-split total so rounding
// error accumulates in the last port rather than being lost; the last
// port always receives whatever remains rather than a computed share.
func (p *Process) pushDownstream(payload resource.Resource, causeID EventID) {
	if p.isSink {
		return
	}
	if len(p.downstreams) == 1 {
		p.downstreams[0].transfer.Request(transferRequest{Payload: payload, CauseID: causeID})
		return
	}

	total := payload.Total()
	for i := range p.downstreams {
		if i == len(p.downstreams)-1 {
			p.downstreams[i].transfer.Request(transferRequest{Payload: payload, CauseID: causeID})
			break
		}
		share := payload.Remove(total * p.splitRatios[i])
		p.downstreams[i].transfer.Request(transferRequest{Payload: share, CauseID: causeID})
	}
}
