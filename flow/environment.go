package flow

// EnvState is the environment gate's two-valued band: Normal lets
// Processes run; Stopped blocks them from starting or progressing
// in-flight work (spec.md §4.2 env_blocked).
type EnvState int

const (
	EnvNormal EnvState = iota
	EnvStopped
)

// Environment is an external stop/resume switch a Process can be
// wired to. A Process with no connected Environment is always
// EnvNormal (spec.md §4.4's "treat missing port as always available"
// rule, applied here to the environment gate rather than a Stock
// port).
type Environment struct {
	state     EnvState
	listeners []func()
}

// NewEnvironment builds an Environment starting in EnvNormal.
func NewEnvironment() *Environment {
	return &Environment{state: EnvNormal}
}

// State returns the environment's current band.
func (e *Environment) State() EnvState { return e.state }

// Stop transitions the environment to Stopped and wakes every
// connected Process so it re-polls on its next update_state.
func (e *Environment) Stop() {
	e.state = EnvStopped
	e.notify()
}

// Resume transitions the environment to Normal and wakes every
// connected Process.
func (e *Environment) Resume() {
	e.state = EnvNormal
	e.notify()
}

// onChange registers a callback invoked after Stop or Resume.
func (e *Environment) onChange(fn func()) {
	e.listeners = append(e.listeners, fn)
}

func (e *Environment) notify() {
	for _, fn := range e.listeners {
		fn()
	}
}
