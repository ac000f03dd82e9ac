package mailbox

import "errors"

// ErrNotConnected is the panic value when a Requestor receives a Request
// before anything has Connect-ed to serve it. Per spec.md §4.6 this is
// a wiring error: a Process should never hold a live reference to a
// Requestor that was never connected during build.
var ErrNotConnected = errors.New("mailbox: requestor has no connected handler")
