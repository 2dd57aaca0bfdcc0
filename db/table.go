package db

import (
	"sync"

	"cmscore/ids"

	"github.com/samber/lo"
)

// table is an id keyed store shared by the repositories. Rows are listed in
// id order.
type table[T any] struct {
	mu    sync.RWMutex
	ids   *ids.Allocator
	rows  map[int64]T
	order []int64
}

func newTable[T any]() *table[T] {
	return &table[T]{
		ids:  ids.NewAllocator(),
		rows: make(map[int64]T),
	}
}

// insert allocates an id and stores the row built for it
func (t *table[T]) insert(build func(id int64) T) T {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.ids.Next()
	row := build(id)
	t.rows[id] = row
	t.order = append(t.order, id)
	return row
}

// insertUnless behaves like insert unless an existing row conflicts, in which
// case the conflicting row is returned with false.
func (t *table[T]) insertUnless(conflict func(T) bool, build func(id int64) T) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, id := range t.order {
		if row := t.rows[id]; conflict(row) {
			return row, false
		}
	}

	id := t.ids.Next()
	row := build(id)
	t.rows[id] = row
	t.order = append(t.order, id)
	return row, true
}

func (t *table[T]) get(id int64) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) all() []T {
	return t.filter(func(T) bool { return true })
}

func (t *table[T]) filter(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rows := lo.Map(t.order, func(id int64, _ int) T { return t.rows[id] })
	return lo.Filter(rows, func(row T, _ int) bool { return keep(row) })
}

func (t *table[T]) find(match func(T) bool) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, id := range t.order {
		if row := t.rows[id]; match(row) {
			return row, true
		}
	}
	var zero T
	return zero, false
}

func (t *table[T]) remove(id int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	t.order = lo.Without(t.order, id)
	return true
}

func (t *table[T]) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}
