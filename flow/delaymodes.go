package flow

import (
	"github.com/flowsim/flowsim/clock"
	"github.com/flowsim/flowsim/distribution"
)

// delayStateKind distinguishes a DelayMode's two possible states
// (ports DelayState in delays.rs, which pairs the kind with its own
// Duration; here the kind and the remaining time are split so the
// remaining time can be stored once in DelayModes.remaining).
type delayStateKind int

const (
	stateUntilDelay delayStateKind = iota
	stateUntilFix
)

// DelayMode is one named induced-failure mode: how long until it next
// triggers, and how long the fix takes once triggered.
type DelayMode struct {
	Name            string
	UntilDelayDistr distribution.Sampler
	UntilFixDistr   distribution.Sampler
}

// DelayTransition reports, for one Advance call, the mode that was in
// TimeUntilFix when the call began (From) and the mode in TimeUntilFix
// when it returned (To). A fix still in progress therefore reports the
// same name in both, which Changed treats as no change. Names are
// empty when there was no such mode (ports DelayStateTransition's
// Option<String> pair in delays.rs).
type DelayTransition struct {
	From string
	To   string
}

// Changed reports whether this transition represents an observable
// change in delay-mode state (ports DelayStateTransition::has_changed).
func (t DelayTransition) Changed() bool {
	return t.From != t.To
}

// DelayModes is the sub-state-machine each Process uses to model
// induced failures (spec.md §4.6): a set of named modes, each either
// counting down to its next failure (TimeUntilDelay) or counting down
// to being fixed (TimeUntilFix). At most one mode is ever in
// TimeUntilFix. Modes are kept in insertion order (ports the Rust
// IndexMap) because the "first in insertion order" tie-break in
// Advance's step 3 depends on it.
type DelayModes struct {
	order  []string
	modes  map[string]DelayMode
	state  map[string]delayStateKind
	remain map[string]clock.Duration
}

// NewDelayModes builds an empty DelayModes with no modes configured.
func NewDelayModes() *DelayModes {
	return &DelayModes{
		modes:  make(map[string]DelayMode),
		state:  make(map[string]delayStateKind),
		remain: make(map[string]clock.Duration),
	}
}

// Add registers a new delay mode, sampling its first until_delay_distr
// draw to seed its initial countdown (ports DelayModeChange::Add).
func (d *DelayModes) Add(mode DelayMode) {
	if _, exists := d.modes[mode.Name]; !exists {
		d.order = append(d.order, mode.Name)
	}
	d.modes[mode.Name] = mode
	d.state[mode.Name] = stateUntilDelay
	d.remain[mode.Name] = clock.FromSeconds(mode.UntilDelayDistr.Sample())
}

// Remove drops a delay mode by name (ports DelayModeChange::Remove).
func (d *DelayModes) Remove(name string) {
	delete(d.modes, name)
	delete(d.state, name)
	delete(d.remain, name)
	for i, n := range d.order {
		if n == name {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// RemoveAll drops every configured delay mode (ports
// DelayModeChange::RemoveAll).
func (d *DelayModes) RemoveAll() {
	d.order = nil
	d.modes = make(map[string]DelayMode)
	d.state = make(map[string]delayStateKind)
	d.remain = make(map[string]clock.Duration)
}

// activeFix returns the name and remaining time of the mode currently
// in TimeUntilFix, if any (ports DelayModes::active_delay).
func (d *DelayModes) activeFix() (name string, remaining clock.Duration, ok bool) {
	for _, n := range d.order {
		if d.state[n] == stateUntilFix {
			return n, d.remain[n], true
		}
	}
	return "", 0, false
}

// Advance decrements the active fix (if any) or every pending delay
// countdown (if not) by elapsed, resampling and flipping states at
// zero per spec.md §4.6. It panics with ErrTwoActiveFixes if it ever
// finds more than one mode in TimeUntilFix, which Advance's own logic
// should never produce but which the invariant checker in §8 expects
// to be caught loudly rather than silently tolerated.
func (d *DelayModes) Advance(elapsed clock.Duration) DelayTransition {
	var transition DelayTransition

	if activeName, remaining, ok := d.activeFix(); ok {
		remaining = remaining.SaturatingSub(elapsed)
		d.remain[activeName] = remaining
		if remaining.IsZero() {
			mode := d.modes[activeName]
			d.state[activeName] = stateUntilDelay
			d.remain[activeName] = clock.FromSeconds(mode.UntilDelayDistr.Sample())
		}
		transition.From = activeName
	} else {
		for _, n := range d.order {
			if d.state[n] == stateUntilDelay {
				d.remain[n] = d.remain[n].SaturatingSub(elapsed)
			}
		}
	}

	if activeName, _, ok := d.activeFix(); ok {
		transition.To = activeName
	} else {
		for _, n := range d.order {
			if d.state[n] == stateUntilDelay && d.remain[n].IsZero() {
				mode := d.modes[n]
				d.state[n] = stateUntilFix
				d.remain[n] = clock.FromSeconds(mode.UntilFixDistr.Sample())
				transition.To = n
				break
			}
		}
	}

	d.assertAtMostOneFix()
	return transition
}

func (d *DelayModes) assertAtMostOneFix() {
	count := 0
	for _, n := range d.order {
		if d.state[n] == stateUntilFix {
			count++
		}
	}
	if count > 1 {
		panic(ErrTwoActiveFixes)
	}
}

// NextEventTime returns the soonest time a delay-mode transition will
// occur: the active fix's remaining time, or the smallest pending
// delay countdown, or false if there are no configured modes (ports
// DelayModes::get_next_event, returning only the duration half of its
// result since the caller only needs the timing to schedule a
// wake-up).
func (d *DelayModes) NextEventTime() (clock.Duration, bool) {
	if _, remaining, ok := d.activeFix(); ok {
		return remaining, true
	}
	var (
		min   clock.Duration
		found bool
	)
	for _, n := range d.order {
		if d.state[n] != stateUntilDelay {
			continue
		}
		r := d.remain[n]
		if !found || r < min {
			min = r
			found = true
		}
	}
	return min, found
}
