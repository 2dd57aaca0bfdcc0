// Package ids hands out entity identifiers
package ids

import "sync/atomic"

// Allocator issues monotonically increasing identifiers starting at 1.
// It is safe for concurrent use.
type Allocator struct {
	last atomic.Int64
}

func NewAllocator() *Allocator {
	return &Allocator{}
}

func (a *Allocator) Next() int64 {
	return a.last.Add(1)
}

// Last returns the most recently issued id, 0 if none
func (a *Allocator) Last() int64 {
	return a.last.Load()
}
