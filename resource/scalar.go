package resource

// Scalar is a continuous resource with a single quantity, e.g. a tank
// of liquid or a pile measured by weight (ports the original's f64
// ContinuousResource impl in core.rs).
type Scalar struct {
	Value float64
}

// NewScalar builds a Scalar holding value.
func NewScalar(value float64) *Scalar {
	return &Scalar{Value: value}
}

// Total returns the scalar's quantity.
func (s *Scalar) Total() float64 { return s.Value }

// Add combines other's quantity into s. other must be a *Scalar.
func (s *Scalar) Add(other Resource) {
	o, ok := other.(*Scalar)
	if !ok {
		panic(&TypeMismatchError{Op: "Scalar.Add", Expected: "*Scalar", Got: other})
	}
	s.Value += o.Value
}

// Remove withdraws min(quantity, s.Value) from s and returns it as a
// new *Scalar, where quantity is parameter.(float64). A negative or
// zero quantity withdraws nothing.
func (s *Scalar) Remove(parameter any) Resource {
	quantity, ok := parameter.(float64)
	if !ok {
		panic(&TypeMismatchError{Op: "Scalar.Remove", Expected: "float64 parameter", Got: s})
	}
	if quantity <= 0 {
		return &Scalar{}
	}
	if quantity > s.Value {
		quantity = s.Value
	}
	s.Value -= quantity
	return &Scalar{Value: quantity}
}
