package aggregate

import (
	"github.com/lguimbarda/pushflow/flow/core"
)

// Batch creates a Transformer that collects items into batches of the specified size.
// When a batch is full it is delivered as a new slice. The final partial batch is
// delivered only if the upstream ran to completion; a stop from downstream
// discards it.
// Panics if size <= 0.
func Batch[T any](size int) core.Transformer[T, []T] {
	if size <= 0 {
		panic("aggregate.Batch: size must be > 0")
	}
	return core.TransformerFunc[T, []T](func(s core.Stream[T]) core.Stream[[]T] {
		return func(r core.Consumer[[]T]) bool {
			batch := make([]T, 0, size)
			done := s(func(v T) bool {
				batch = append(batch, v)
				if len(batch) < size {
					return true
				}
				full := batch
				batch = make([]T, 0, size)
				return r(full)
			})
			if !done {
				return false
			}
			if len(batch) > 0 {
				return r(batch)
			}
			return true
		}
	})
}

// Chunk is an alias for Batch - creates fixed-size chunks from the stream.
func Chunk[T any](size int) core.Transformer[T, []T] {
	return Batch[T](size)
}

// Window creates a sliding window Transformer that emits overlapping windows of items.
// Each window contains 'size' items, and windows slide by 'step' items.
// For example, Window(3, 1) on [1,2,3,4,5] produces [[1,2,3], [2,3,4], [3,4,5]].
// Incomplete trailing windows are not emitted.
// If size <= 0 or step <= 0, panics.
func Window[T any](size, step int) core.Transformer[T, []T] {
	if size <= 0 {
		panic("Window size must be > 0")
	}
	if step <= 0 {
		panic("Window step must be > 0")
	}

	return core.TransformerFunc[T, []T](func(s core.Stream[T]) core.Stream[[]T] {
		return func(r core.Consumer[[]T]) bool {
			window := make([]T, 0, size)
			skipCount := 0

			return s(func(v T) bool {
				// Handle step > size case (skip items between windows)
				if skipCount > 0 {
					skipCount--
					return true
				}

				window = append(window, v)
				if len(window) < size {
					return true
				}

				windowCopy := make([]T, size)
				copy(windowCopy, window)

				// Slide window
				if step >= size {
					window = window[:0]
					skipCount = step - size
				} else {
					window = append(window[:0], window[step:]...)
				}
				return r(windowCopy)
			})
		}
	})
}

// Partition splits the items into those matching the predicate and the rest.
// This is a collecting terminal - it consumes the entire stream.
func Partition[T any](s core.Stream[T], predicate func(T) bool) (matched, unmatched []T) {
	s(func(v T) bool {
		if predicate(v) {
			matched = append(matched, v)
		} else {
			unmatched = append(unmatched, v)
		}
		return true
	})
	return matched, unmatched
}

// GroupBy collects the items into slices keyed by keyFn.
// Items keep their stream order within each group.
// This is a collecting terminal - it consumes the entire stream.
func GroupBy[T any, K comparable](s core.Stream[T], keyFn func(T) K) map[K][]T {
	groups := make(map[K][]T)
	s(func(v T) bool {
		key := keyFn(v)
		groups[key] = append(groups[key], v)
		return true
	})
	return groups
}
