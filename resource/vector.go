package resource

// Vector is a continuous resource made of several positional components
// that are withdrawn proportionally to their current share of the
// total — e.g. an ore stockpile tracked by mineral fraction. It ports
// the original's VectorArithmetic::subtract_parts (new_core.rs), which
// keeps component ratios stable across partial removals instead of
// draining components in a fixed order.
type Vector struct {
	Values []float64
}

// NewVector builds a Vector with the given component values.
func NewVector(values ...float64) *Vector {
	v := make([]float64, len(values))
	copy(v, values)
	return &Vector{Values: v}
}

// Total returns the sum of all components.
func (v *Vector) Total() float64 {
	var total float64
	for _, x := range v.Values {
		total += x
	}
	return total
}

// Add combines other's components into v, element-wise. other must be
// a *Vector of the same length.
func (v *Vector) Add(other Resource) {
	o, ok := other.(*Vector)
	if !ok {
		panic(&TypeMismatchError{Op: "Vector.Add", Expected: "*Vector", Got: other})
	}
	if len(o.Values) != len(v.Values) {
		panic(&TypeMismatchError{Op: "Vector.Add", Expected: "matching component count", Got: other})
	}
	for i, x := range o.Values {
		v.Values[i] += x
	}
}

// Remove withdraws min(quantity, v.Total()) from v, splitting the
// withdrawal across components in proportion to their current share of
// the total, and returns the withdrawn amounts as a new *Vector.
// quantity is parameter.(float64). When v.Total() is zero, nothing is
// withdrawn regardless of quantity.
func (v *Vector) Remove(parameter any) Resource {
	quantity, ok := parameter.(float64)
	if !ok {
		panic(&TypeMismatchError{Op: "Vector.Remove", Expected: "float64 parameter", Got: v})
	}
	removed := make([]float64, len(v.Values))
	total := v.Total()
	if quantity <= 0 || total <= 0 {
		return &Vector{Values: removed}
	}
	if quantity > total {
		quantity = total
	}
	for i, x := range v.Values {
		share := quantity * (x / total)
		removed[i] = share
		v.Values[i] -= share
	}
	return &Vector{Values: removed}
}
