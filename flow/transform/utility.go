// Package transform provides stream transformation operators that reshape,
// prepend, append or deduplicate the values of a push stream.
package transform

import (
	"github.com/lguimbarda/pushflow/flow/core"
)

// Pairwise creates a Transformer that emits pairs of consecutive items.
// Each emission (except the first) includes the previous and current item.
func Pairwise[T any]() core.Transformer[T, [2]T] {
	return core.TransformerFunc[T, [2]T](func(s core.Stream[T]) core.Stream[[2]T] {
		return func(r core.Consumer[[2]T]) bool {
			var prev T
			hasPrev := false
			return s(func(curr T) bool {
				if !hasPrev {
					prev, hasPrev = curr, true
					return true
				}
				pair := [2]T{prev, curr}
				prev = curr
				return r(pair)
			})
		}
	})
}

// StartWith creates a Transformer that prepends the specified values before
// emitting items from the source stream.
// The source is not invoked if the consumer stops during the prepended values.
func StartWith[T any](values ...T) core.Transformer[T, T] {
	return core.TransformerFunc[T, T](func(s core.Stream[T]) core.Stream[T] {
		return func(r core.Consumer[T]) bool {
			for _, v := range values {
				if !r(v) {
					return false
				}
			}
			return s(r)
		}
	})
}

// EndWith creates a Transformer that appends the specified values after
// the source stream completes.
func EndWith[T any](values ...T) core.Transformer[T, T] {
	return core.TransformerFunc[T, T](func(s core.Stream[T]) core.Stream[T] {
		return func(r core.Consumer[T]) bool {
			if !s(r) {
				return false
			}
			for _, v := range values {
				if !r(v) {
					return false
				}
			}
			return true
		}
	})
}

// DefaultIfEmpty creates a Transformer that emits the specified default value
// if the source stream completes without emitting any items.
func DefaultIfEmpty[T any](defaultValue T) core.Transformer[T, T] {
	return core.TransformerFunc[T, T](func(s core.Stream[T]) core.Stream[T] {
		return func(r core.Consumer[T]) bool {
			empty := true
			if !s(func(v T) bool {
				empty = false
				return r(v)
			}) {
				return false
			}
			if empty {
				return r(defaultValue)
			}
			return true
		}
	})
}

// ConcatMap creates a Transformer that projects each source value to a Stream,
// then pushes each inner Stream to completion before moving to the next source
// value. A stop inside an inner Stream stops the source as well.
func ConcatMap[IN, OUT any](project func(IN) core.Stream[OUT]) core.Transformer[IN, OUT] {
	return core.TransformerFunc[IN, OUT](func(s core.Stream[IN]) core.Stream[OUT] {
		return core.SelectMany(s, project)
	})
}

// Repeat creates a Transformer that runs the source stream count times in a
// row. If count is 0 or negative, the source is repeated until the consumer
// stops. Nothing is buffered: every repetition invokes the source again.
func Repeat[T any](count int) core.Transformer[T, T] {
	return core.TransformerFunc[T, T](func(s core.Stream[T]) core.Stream[T] {
		return func(r core.Consumer[T]) bool {
			for i := 0; count <= 0 || i < count; i++ {
				if !s(r) {
					return false
				}
			}
			return true
		}
	})
}

// IgnoreElements creates a Transformer that drains the source without
// emitting anything, preserving only whether it completed.
func IgnoreElements[T any]() core.Transformer[T, T] {
	return core.TransformerFunc[T, T](func(s core.Stream[T]) core.Stream[T] {
		return func(core.Consumer[T]) bool {
			return s(func(T) bool { return true })
		}
	})
}

// ToSlice creates a Transformer that collects all items into a single slice.
// The slice is emitted when the source stream completes.
func ToSlice[T any]() core.Transformer[T, []T] {
	return core.TransformerFunc[T, []T](func(s core.Stream[T]) core.Stream[[]T] {
		return func(r core.Consumer[[]T]) bool {
			return r(core.ToArray(s))
		}
	})
}

// ToMap creates a Transformer that collects all items into a map using the
// key function. Later items overwrite earlier ones with the same key.
// The map is emitted when the source stream completes.
func ToMap[T any, K comparable](keyFn func(T) K) core.Transformer[T, map[K]T] {
	return core.TransformerFunc[T, map[K]T](func(s core.Stream[T]) core.Stream[map[K]T] {
		return func(r core.Consumer[map[K]T]) bool {
			m := make(map[K]T)
			s(func(v T) bool {
				m[keyFn(v)] = v
				return true
			})
			return r(m)
		}
	})
}

// ToSet creates a Transformer that collects all unique items into a map[T]struct{}.
func ToSet[T comparable]() core.Transformer[T, map[T]struct{}] {
	return core.TransformerFunc[T, map[T]struct{}](func(s core.Stream[T]) core.Stream[map[T]struct{}] {
		return func(r core.Consumer[map[T]struct{}]) bool {
			set := make(map[T]struct{})
			s(func(v T) bool {
				set[v] = struct{}{}
				return true
			})
			return r(set)
		}
	})
}

// Distinct creates a Transformer that only emits items that haven't been seen before.
// Uses a map to track seen values, so T must be comparable.
// The seen set is fresh on every invocation.
func Distinct[T comparable]() core.Transformer[T, T] {
	return DistinctBy(func(v T) T { return v })
}

// DistinctBy creates a Transformer that only emits items whose key (derived
// by the keyFn) hasn't been seen before.
func DistinctBy[T any, K comparable](keyFn func(T) K) core.Transformer[T, T] {
	return core.TransformerFunc[T, T](func(s core.Stream[T]) core.Stream[T] {
		return func(r core.Consumer[T]) bool {
			seen := make(map[K]struct{})
			return s(func(v T) bool {
				key := keyFn(v)
				if _, exists := seen[key]; exists {
					return true
				}
				seen[key] = struct{}{}
				return r(v)
			})
		}
	})
}

// Indexed pairs a value with its 0-based position in the stream.
type Indexed[T any] struct {
	Index int
	Value T
}

// WithIndex creates a Transformer that wraps each item with its 0-based index.
func WithIndex[T any]() core.Transformer[T, Indexed[T]] {
	return core.TransformerFunc[T, Indexed[T]](func(s core.Stream[T]) core.Stream[Indexed[T]] {
		return func(r core.Consumer[Indexed[T]]) bool {
			index := 0
			return s(func(v T) bool {
				indexed := Indexed[T]{Index: index, Value: v}
				index++
				return r(indexed)
			})
		}
	})
}
