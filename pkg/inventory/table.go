package inventory

import (
	"sync"

	"github.com/emirpasic/gods/v2/maps/treemap"
)

// Table holds entries keyed by ID, iterated in ascending ID order.
type Table[T1 any] interface {
	Upsert(id int64, fn UpsertFn[T1]) T1
	Iterate() *Iterator[T1]
	Count() int
}

// UpsertFn returns the new entry for an id given its current entry, if any.
type UpsertFn[T1 any] func(d T1, exists bool) T1

func NewTable[T1 any]() Table[T1] {
	return &table[T1]{
		m:     new(sync.RWMutex),
		table: treemap.New[int64, T1](),
	}
}

type table[T1 any] struct {
	m     *sync.RWMutex
	table *treemap.Map[int64, T1]
}

func (r *table[T1]) Upsert(id int64, fn UpsertFn[T1]) T1 {
	r.m.Lock()
	defer r.m.Unlock()

	d, exists := r.table.Get(id)
	d = fn(d, exists)
	r.table.Put(id, d)
	return d
}

// Iterate returns an iterator over a snapshot of the table.
func (r *table[T1]) Iterate() *Iterator[T1] {
	r.m.RLock()
	defer r.m.RUnlock()

	keys := make([]int64, 0, r.table.Size())
	values := make([]T1, 0, r.table.Size())

	iter := r.table.Iterator()
	for iter.Next() {
		keys = append(keys, iter.Key())
		values = append(values, iter.Value())
	}
	return &Iterator[T1]{current: -1, keys: keys, values: values}
}

func (r *table[T1]) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.table.Size()
}
