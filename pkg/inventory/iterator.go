package inventory

// Iterator walks a snapshot of a Table in ascending ID order.
type Iterator[T1 any] struct {
	current int
	keys    []int64
	values  []T1
}

func (r *Iterator[T1]) Value() T1 {
	return r.values[r.current]
}

func (r *Iterator[T1]) ID() int64 {
	return r.keys[r.current]
}

func (r *Iterator[T1]) Next() bool {
	r.current++
	return r.current < len(r.keys)
}
