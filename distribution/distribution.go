// Package distribution implements FlowSim's stochastic duration/
// quantity sampling contract (spec.md §6): a Sampler interface plus the
// family of distributions the core's Process config recognizes. Only
// the contract and the families are specified here — loading a
// Distribution from a model's serialized config file is explicitly out
// of scope (spec.md §1 Non-goals); callers build a Config value however
// they like (by hand, or by unmarshalling one with the `yaml` tags
// below) and hand it to a Factory.
package distribution

// Sampler returns a fresh duration or quantity each time it is called.
// Constant and Exponential with non-negative parameters, and Uniform,
// Triangular and TruncNormal with non-negative bounds, only return
// non-negative values; Normal can return negative ones. Process
// configuration holds a Sampler for
// process_time_distr (seconds) and, when the Process withdraws a
// measured quantity, for process_quantity_distr (resource-specific
// units).
type Sampler interface {
	Sample() float64
}

// Config is the serializable description of a Sampler, mirroring the
// teacher's config-struct convention (yaml tags, doc-comment per
// field) even though FlowSim's core never reads one off disk itself —
// Factory.Create is the seam an embedding program's YAML/JSON loader
// hands a Config to.
type Config struct {
	// Kind selects which distribution family this Config describes:
	// one of "constant", "uniform", "triangular", "normal",
	// "trunc_normal", "exponential".
	Kind string `yaml:"kind"`

	Value float64 `yaml:"value,omitempty"` // Constant

	Min float64 `yaml:"min,omitempty"` // Uniform, Triangular, TruncNormal (optional)
	Max float64 `yaml:"max,omitempty"` // Uniform, Triangular, TruncNormal (optional)

	Mode float64 `yaml:"mode,omitempty"` // Triangular

	Mean float64 `yaml:"mean,omitempty"` // Normal, TruncNormal, Exponential
	Std  float64 `yaml:"std,omitempty"`  // Normal, TruncNormal

	HasMin bool `yaml:"has_min,omitempty"` // TruncNormal: whether Min is set
	HasMax bool `yaml:"has_max,omitempty"` // TruncNormal: whether Max is set
}

const (
	KindConstant    = "constant"
	KindUniform     = "uniform"
	KindTriangular  = "triangular"
	KindNormal      = "normal"
	KindTruncNormal = "trunc_normal"
	KindExponential = "exponential"
)
