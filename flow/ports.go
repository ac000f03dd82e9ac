package flow

import (
	"github.com/flowsim/flowsim/mailbox"
	"github.com/flowsim/flowsim/resource"
)

// transferRequest is the payload carried across a Process's withdraw
// or push Requestor (spec.md §3's withdraw/push edges share one shape:
// a parameter describing a withdrawal, or a resource being pushed, plus
// the causing EventID).
type transferRequest struct {
	Parameter any
	Payload   resource.Resource
	CauseID   EventID
}

// transferResponse is withdraw's reply (the withdrawn Resource and the
// Stock's own EventID for the mutation) or push's reply (no resource,
// just the EventID).
type transferResponse struct {
	Resource resource.Resource
	EventID  EventID
}

// port bundles the two Requestors a Process uses to talk to one
// neighbouring Stock: a state query and a withdraw-or-push transfer.
// Both are unconnected zero values until Connect wires them, at which
// point connected starts reporting true.
type port struct {
	state    mailbox.Requestor[struct{}, resource.Band]
	transfer mailbox.Requestor[transferRequest, transferResponse]
}

func (p *port) connected() bool {
	return p.state.Connected() && p.transfer.Connected()
}
