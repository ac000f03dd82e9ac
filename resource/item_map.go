package resource

// ItemMap is a keyed discrete resource: items addressable by an
// intrinsic key rather than FIFO order, e.g. railcars tracked by car
// number regardless of arrival sequence (ports ItemMap in
// components/discrete.rs).
type ItemMap[K comparable, T HasUniqueKey[K]] struct {
	Items map[K]T
}

// NewItemMap builds an ItemMap keyed by each item's UniqueKey.
func NewItemMap[K comparable, T HasUniqueKey[K]](items ...T) *ItemMap[K, T] {
	m := make(map[K]T, len(items))
	for _, item := range items {
		m[item.UniqueKey()] = item
	}
	return &ItemMap[K, T]{Items: m}
}

// Total returns the sum of every held item's Weight.
func (m *ItemMap[K, T]) Total() float64 {
	var total float64
	for _, item := range m.Items {
		total += item.Weight()
	}
	return total
}

// Add merges other's entries into m, keyed by each item's UniqueKey. An
// item whose key already exists in m overwrites the existing entry.
// other must be an *ItemMap[K, T].
func (m *ItemMap[K, T]) Add(other Resource) {
	o, ok := other.(*ItemMap[K, T])
	if !ok {
		panic(&TypeMismatchError{Op: "ItemMap.Add", Expected: "*ItemMap[K, T]", Got: other})
	}
	for key, item := range o.Items {
		m.Items[key] = item
	}
}

// Remove withdraws the item keyed by parameter.(K), if present, and
// returns it wrapped in a new single-entry ItemMap. A missing key
// returns an empty ItemMap.
func (m *ItemMap[K, T]) Remove(parameter any) Resource {
	key, ok := parameter.(K)
	if !ok {
		panic(&TypeMismatchError{Op: "ItemMap.Remove", Expected: "key parameter", Got: m})
	}
	item, present := m.Items[key]
	if !present {
		return &ItemMap[K, T]{Items: map[K]T{}}
	}
	delete(m.Items, key)
	return &ItemMap[K, T]{Items: map[K]T{key: item}}
}

// Len reports how many items m currently holds.
func (m *ItemMap[K, T]) Len() int { return len(m.Items) }
