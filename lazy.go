// Copyright ©2024 The decomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

// lazyCache wraps a producer function so that it runs at most once: the
// first call to get evaluates and stores the producer's result, and every
// later call returns the stored value without calling the producer again.
// There is no locking: a Solver's caches are still empty when
// Executor.Apply returns it, and the first get on each cache writes its
// slot without synchronization, so concurrent first calls on the same
// Solver race. Once a cache has been populated, get only reads it.
type lazyCache[T any] struct {
	produce func() T
	done    bool
	value   T
}

func newLazyCache[T any](produce func() T) *lazyCache[T] {
	return &lazyCache[T]{produce: produce}
}

// get evaluates the producer on first call, then returns the cached value.
func (c *lazyCache[T]) get() T {
	if !c.done {
		c.value = c.produce()
		c.done = true
		c.produce = nil
	}
	return c.value
}
