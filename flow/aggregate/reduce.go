// Package aggregate provides terminals that fold a stream into a single
// value, and transformers that group values as they pass.
package aggregate

import (
	"github.com/lguimbarda/pushflow/flow/core"
)

// Numeric is a constraint for numeric types that support arithmetic operations.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Reduce combines all items using the reducer, the first item being the
// initial accumulator. The boolean is false if the stream is empty.
func Reduce[T any](s core.Stream[T], reducer func(acc, item T) T) (T, bool) {
	var acc T
	hasAcc := false
	s(func(v T) bool {
		if hasAcc {
			acc = reducer(acc, v)
		} else {
			acc, hasAcc = v, true
		}
		return true
	})
	return acc, hasAcc
}

// Fold reduces the stream with an initial value. It is core.Aggregate with
// the seed first, matching the usual fold signature.
func Fold[T, R any](initial R, s core.Stream[T], folder func(acc R, item T) R) R {
	return core.Aggregate(s, folder, initial)
}

// Scan creates a Transformer that emits the running accumulation after each item.
// The accumulator restarts from initial on every invocation.
func Scan[T, R any](initial R, scanner func(acc R, item T) R) core.Transformer[T, R] {
	return core.TransformerFunc[T, R](func(s core.Stream[T]) core.Stream[R] {
		return func(r core.Consumer[R]) bool {
			acc := initial
			return s(func(v T) bool {
				acc = scanner(acc, v)
				return r(acc)
			})
		}
	})
}

// Count returns the number of items in the stream.
func Count[T any](s core.Stream[T]) int {
	return core.Count(s)
}

// CountIf returns the number of items matching the predicate.
func CountIf[T any](s core.Stream[T], predicate func(T) bool) int {
	return core.Count(core.Where(s, predicate))
}

// Sum adds up the values of the stream. An empty stream sums to 0.
func Sum[T Numeric](s core.Stream[T]) T {
	return core.Aggregate(s, func(acc, v T) T { return acc + v }, 0)
}

// Average returns the arithmetic mean of the values, or 0 for an empty stream.
func Average[T Numeric](s core.Stream[T]) float64 {
	var sum float64
	count := 0
	s(func(v T) bool {
		sum += float64(v)
		count++
		return true
	})
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// Min returns the smallest item according to less.
// When several items are equally small, the first one wins.
func Min[T any](s core.Stream[T], less func(a, b T) bool) (T, bool) {
	return Reduce(s, func(acc, v T) T {
		if less(v, acc) {
			return v
		}
		return acc
	})
}

// Max returns the largest item according to less.
// When several items are equally large, the first one wins.
func Max[T any](s core.Stream[T], less func(a, b T) bool) (T, bool) {
	return Reduce(s, func(acc, v T) T {
		if less(acc, v) {
			return v
		}
		return acc
	})
}

// All reports whether every item matches the predicate.
// It stops at the first item that does not. An empty stream yields true.
func All[T any](s core.Stream[T], predicate func(T) bool) bool {
	return core.All(s, predicate)
}

// Any reports whether at least one item matches the predicate.
// It stops at the first match.
func Any[T any](s core.Stream[T], predicate func(T) bool) bool {
	return core.Any(s, predicate)
}

// None reports whether no item matches the predicate.
// It stops at the first match.
func None[T any](s core.Stream[T], predicate func(T) bool) bool {
	return !core.Any(s, predicate)
}
