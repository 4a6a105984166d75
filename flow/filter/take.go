package filter

import (
	"github.com/lguimbarda/pushflow/flow/core"
)

// Take creates a Transformer that passes through only the first n items.
// Once the nth item has been delivered the upstream is told to stop. The
// result still reports true: only a stop from the consumer makes it false.
// If n <= 0, the upstream is never invoked and the stream is empty.
func Take[T any](n int) core.Transformer[T, T] {
	return core.TransformerFunc[T, T](func(s core.Stream[T]) core.Stream[T] {
		return func(r core.Consumer[T]) bool {
			if n <= 0 {
				return true
			}
			count := 0
			stopped := false
			s(func(v T) bool {
				count++
				if !r(v) {
					stopped = true
					return false
				}
				return count < n
			})
			return !stopped
		}
	})
}

// TakeWhile creates a Transformer that passes through items while the predicate returns true.
// The first item failing the predicate stops the upstream and is not delivered.
func TakeWhile[T any](predicate func(T) bool) core.Transformer[T, T] {
	return core.TransformerFunc[T, T](func(s core.Stream[T]) core.Stream[T] {
		return func(r core.Consumer[T]) bool {
			stopped := false
			s(func(v T) bool {
				if !predicate(v) {
					return false
				}
				if !r(v) {
					stopped = true
					return false
				}
				return true
			})
			return !stopped
		}
	})
}

// Skip creates a Transformer that skips the first n items, then passes through the rest.
// If n <= 0, all items are passed through.
func Skip[T any](n int) core.Transformer[T, T] {
	return core.TransformerFunc[T, T](func(s core.Stream[T]) core.Stream[T] {
		return func(r core.Consumer[T]) bool {
			skipped := 0
			return s(func(v T) bool {
				if skipped < n {
					skipped++
					return true
				}
				return r(v)
			})
		}
	})
}

// SkipWhile creates a Transformer that drops items while the predicate returns true,
// then passes through every remaining item.
func SkipWhile[T any](predicate func(T) bool) core.Transformer[T, T] {
	return core.TransformerFunc[T, T](func(s core.Stream[T]) core.Stream[T] {
		return func(r core.Consumer[T]) bool {
			skipping := true
			return s(func(v T) bool {
				if skipping && predicate(v) {
					return true
				}
				skipping = false
				return r(v)
			})
		}
	})
}

// EveryNth creates a Transformer that passes through every nth item,
// starting with the first. Panics if n <= 0.
func EveryNth[T any](n int) core.Transformer[T, T] {
	if n <= 0 {
		panic("filter.EveryNth: n must be positive")
	}
	return core.TransformerFunc[T, T](func(s core.Stream[T]) core.Stream[T] {
		return func(r core.Consumer[T]) bool {
			i := 0
			return s(func(v T) bool {
				keep := i%n == 0
				i++
				if keep {
					return r(v)
				}
				return true
			})
		}
	})
}

// DistinctUntilChanged creates a Transformer that drops items equal to the
// item delivered just before them.
func DistinctUntilChanged[T comparable]() core.Transformer[T, T] {
	return core.TransformerFunc[T, T](func(s core.Stream[T]) core.Stream[T] {
		return func(r core.Consumer[T]) bool {
			var last T
			seen := false
			return s(func(v T) bool {
				if seen && v == last {
					return true
				}
				last, seen = v, true
				return r(v)
			})
		}
	})
}
