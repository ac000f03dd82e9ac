package resource

// Weighted is implemented by discrete items held in an ItemQueue or
// ItemMap so their containing Stock can report a Total() the same way
// a continuous Scalar or Vector does (ports HasWeight in
// components/discrete.rs).
type Weighted interface {
	Weight() float64
}

// HasUniqueKey is implemented by items stored in an ItemMap, giving
// each item the key it is addressed by (ports HasUniqueKey in
// components/discrete.rs).
type HasUniqueKey[K comparable] interface {
	Weighted
	UniqueKey() K
}
