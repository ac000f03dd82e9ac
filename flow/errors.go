package flow

import (
	"errors"
	"fmt"
)

// Configuration errors (spec.md §7): detected at build time, abort
// model construction.
var (
	ErrMissingTimeDistr        = errors.New("flow: process requires a process_time_distr")
	ErrInvalidCapacity         = errors.New("flow: stock low_capacity must not exceed max_capacity")
	ErrSplitRatiosMustSumToOne = errors.New("flow: splitter ratios must sum to 1")
)

// ConfigurationError names a build-time configuration failure,
// wrapping the offending element's identity around one of the
// sentinels above (or a bespoke message), per spec.md §7's
// "Configuration error" kind.
type ConfigurationError struct {
	ElementName string
	Err         error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("flow: configuration error for %q: %v", e.ElementName, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// WiringError names a connect-time failure to bind two incompatible
// components, per spec.md §7's "Wiring error" kind.
type WiringError struct {
	Msg string
}

func (e *WiringError) Error() string { return "flow: wiring error: " + e.Msg }

func wiringErrorf(format string, args ...any) error {
	return &WiringError{Msg: fmt.Sprintf(format, args...)}
}

// Invariant violations (spec.md §7): programming errors that abort the
// simulation via panic rather than returning an error, matching the
// clock package's treatment of ErrScheduleInPast.
var (
	ErrZeroNextEvent      = errors.New("flow: computed a zero-duration next event")
	ErrTwoActiveFixes     = errors.New("flow: two delay modes simultaneously in TimeUntilFix")
	ErrDoubleInFlightWork = errors.New("flow: process already has in-flight work")
)
