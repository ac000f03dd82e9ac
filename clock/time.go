// Package clock implements the virtual-time scheduler FlowSim runs on:
// a monotonic clock, a binary-heap priority queue of time-stamped
// actions, and keyed (cancellable) actions used for self-rescheduling.
package clock

import "time"

// Time is a point on the simulation's virtual clock, in nanoseconds
// from the virtual-time origin Zero (a run may start at any Time). It
// never relates to wall-clock time.
type Time int64

// Duration is a span of virtual time, in nanoseconds.
type Duration int64

// Zero is the virtual-time origin.
const Zero Time = 0

// Add returns t advanced by d. d may be negative.
func (t Time) Add(d Duration) Time {
	return t + Time(d)
}

// Sub returns the duration elapsed from u to t (t - u).
func (t Time) Sub(u Time) Duration {
	return Duration(t - u)
}

// Before reports whether t occurs strictly earlier than u.
func (t Time) Before(u Time) bool { return t < u }

// After reports whether t occurs strictly later than u.
func (t Time) After(u Time) bool { return t > u }

// ISO8601 renders t as an ISO-8601 timestamp, treating the virtual
// clock's nanosecond count as an offset from the Unix epoch (spec.md
// §6's event-log "time (ISO-8601 string)" field, ported from the
// original's now.to_chrono_date_time(0) in core.rs).
func (t Time) ISO8601() string {
	return time.Unix(0, int64(t)).UTC().Format(time.RFC3339Nano)
}

// FromDuration converts a time.Duration into a virtual Duration,
// truncating to nanosecond resolution.
func FromDuration(d time.Duration) Duration {
	return Duration(d.Nanoseconds())
}

// FromSeconds converts a non-negative number of seconds (as sampled by
// a distribution.Sampler) into a virtual Duration.
func FromSeconds(seconds float64) Duration {
	return Duration(seconds * float64(time.Second))
}

// Seconds returns d expressed as a floating-point number of seconds.
func (d Duration) Seconds() float64 {
	return float64(d) / float64(time.Second)
}

// IsZero reports whether d is exactly zero.
func (d Duration) IsZero() bool { return d == 0 }

// Saturating subtracts other from d, floored at zero.
func (d Duration) SaturatingSub(other Duration) Duration {
	if other >= d {
		return 0
	}
	return d - other
}

// Min returns the smaller of a and b.
func Min(a, b Duration) Duration {
	if a < b {
		return a
	}
	return b
}
