// Package pool provides a small generic free-list used to recycle game
// entities (platforms, debris) instead of allocating one per spawn.
package pool

// Pool recycles values of a single entity kind.
// It is not safe for concurrent use; each session owns its pools.
type Pool[T any] struct {
	kind    string
	newFn   func() T
	resetFn func(T)
	free    []T
	created int
}

// New creates a pool for the given entity kind.
// newFn allocates a fresh value; resetFn (optional) clears a value on release.
func New[T any](kind string, newFn func() T, resetFn func(T)) *Pool[T] {
	return &Pool[T]{
		kind:    kind,
		newFn:   newFn,
		resetFn: resetFn,
	}
}

// Prefill allocates n values up front.
func (p *Pool[T]) Prefill(n int) {
	for i := 0; i < n; i++ {
		p.free = append(p.free, p.newFn())
		p.created++
	}
}

// Acquire returns a recycled value, or a new one when the pool is empty.
func (p *Pool[T]) Acquire() T {
	if n := len(p.free); n > 0 {
		v := p.free[n-1]
		var zero T
		p.free[n-1] = zero
		p.free = p.free[:n-1]
		return v
	}
	p.created++
	return p.newFn()
}

// Release returns a value to the pool.
func (p *Pool[T]) Release(v T) {
	if p.resetFn != nil {
		p.resetFn(v)
	}
	p.free = append(p.free, v)
}

// Kind returns the entity kind this pool recycles.
func (p *Pool[T]) Kind() string { return p.kind }

// Free returns the number of values waiting to be reused.
func (p *Pool[T]) Free() int { return len(p.free) }

// Created returns how many values the pool has allocated in total.
func (p *Pool[T]) Created() int { return p.created }
