package core

import (
	"iter"
	"slices"
)

// Teminal functions are sinks that drive a stream and produce a final
// result, such as a folded value, a slice of values or the first value.

// Aggregate folds every value of s into an accumulator, left to right,
// starting from seed: combine(combine(seed, v1), v2)...
// It never asks the stream to stop.
func Aggregate[T, S any](s Stream[T], combine func(S, T) S, seed S) S {
	acc := seed
	s(func(v T) bool {
		acc = combine(acc, v)
		return true
	})
	return acc
}

// ToArray drives s to completion and returns its values in emission order.
// The result is never nil and its capacity equals its length.
func ToArray[T any](s Stream[T]) []T {
	return ToArrayWith(s)
}

// ToArrayWith is ToArray with options for the collecting buffer.
func ToArrayWith[T any](s Stream[T], opts ...ArrayOption) []T {
	cfg := applyArrayOptions(opts...)
	buf := make([]T, 0, cfg.Capacity)
	s(func(v T) bool {
		buf = append(buf, v)
		return true
	})
	return slices.Clip(buf)
}

// First returns the first value of s and stops the stream right after it.
// The boolean is false when s is empty.
func First[T any](s Stream[T]) (T, bool) {
	var first T
	found := false
	s(func(v T) bool {
		first = v
		found = true
		return false
	})
	return first, found
}

// Any reports whether some value of s satisfies predicate.
// It stops the stream at the first match.
func Any[T any](s Stream[T], predicate func(T) bool) bool {
	found := false
	s(func(v T) bool {
		found = predicate(v)
		return !found
	})
	return found
}

// All reports whether every value of s satisfies predicate.
// It stops the stream at the first value that does not.
func All[T any](s Stream[T], predicate func(T) bool) bool {
	failed := false
	s(func(v T) bool {
		failed = !predicate(v)
		return !failed
	})
	return !failed
}

// Count returns the number of values in s.
func Count[T any](s Stream[T]) int {
	n := 0
	s(func(T) bool {
		n++
		return true
	})
	return n
}

// ForEach calls fn for every value of s.
func ForEach[T any](s Stream[T], fn func(T)) {
	s(func(v T) bool {
		fn(v)
		return true
	})
}

// Seq adapts s to a range-over-func iterator. Breaking out of the loop
// stops the stream.
func Seq[T any](s Stream[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		s(yield)
	}
}
