package clock

import "errors"

// Scheduler errors. These mark programming errors (spec.md §4.1's
// "Failure model") rather than recoverable conditions, matching the
// teacher's practice of keeping module-local errors in one sentinel
// block (modules/scheduler/errors.go).
var (
	// ErrScheduleInPast is returned (or, from panicking call sites,
	// wrapped into the panic value) when an action is scheduled strictly
	// before the scheduler's current virtual time. Scheduling at the
	// current time is allowed.
	ErrScheduleInPast = errors.New("clock: cannot schedule an action in the past")

	// ErrZeroDelay names a zero relative scheduling delay. No function in
	// this package returns or panics with it: Scheduler only takes
	// absolute times, and the flow control loop panics with its own
	// flow.ErrZeroNextEvent for a zero next-event duration (spec.md
	// §4.2 Step 6).
	ErrZeroDelay = errors.New("clock: cannot schedule an action with zero delay")
)
