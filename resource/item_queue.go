package resource

// ItemQueue is a FIFO discrete resource: a queue of whole items, such
// as pallets or batches, that move through a Stock one at a time
// rather than by continuous quantity (ports ItemDeque in
// components/discrete.rs).
type ItemQueue[T Weighted] struct {
	Items []T
}

// NewItemQueue builds an ItemQueue holding items, in the order given
// (front of the queue first).
func NewItemQueue[T Weighted](items ...T) *ItemQueue[T] {
	q := make([]T, len(items))
	copy(q, items)
	return &ItemQueue[T]{Items: q}
}

// Total returns the sum of every held item's Weight.
func (q *ItemQueue[T]) Total() float64 {
	var total float64
	for _, item := range q.Items {
		total += item.Weight()
	}
	return total
}

// Add appends other's items to the back of q, preserving their
// relative order. other must be an *ItemQueue[T].
func (q *ItemQueue[T]) Add(other Resource) {
	o, ok := other.(*ItemQueue[T])
	if !ok {
		panic(&TypeMismatchError{Op: "ItemQueue.Add", Expected: "*ItemQueue[T]", Got: other})
	}
	q.Items = append(q.Items, o.Items...)
}

// Remove pops the front item off q and returns it wrapped in a new
// single-item ItemQueue. parameter is ignored; a FIFO pop takes no
// argument. Removing from an empty queue returns an empty ItemQueue.
func (q *ItemQueue[T]) Remove(parameter any) Resource {
	if len(q.Items) == 0 {
		return &ItemQueue[T]{}
	}
	item := q.Items[0]
	q.Items = q.Items[1:]
	return &ItemQueue[T]{Items: []T{item}}
}

// Peek returns the front item without removing it, and whether one was
// present.
func (q *ItemQueue[T]) Peek() (item T, ok bool) {
	if len(q.Items) == 0 {
		return item, false
	}
	return q.Items[0], true
}

// Len reports how many items q currently holds.
func (q *ItemQueue[T]) Len() int { return len(q.Items) }
