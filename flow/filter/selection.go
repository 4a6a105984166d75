package filter

import (
	"github.com/lguimbarda/pushflow/flow/core"
)

// The lookups below are terminals. They stop the stream as soon as the
// answer is known.

// Find returns the first item matching the predicate.
func Find[T any](s core.Stream[T], predicate func(T) bool) (T, bool) {
	return core.First(core.Where(s, predicate))
}

// FindIndex returns the index of the first item matching the predicate, or -1.
func FindIndex[T any](s core.Stream[T], predicate func(T) bool) int {
	index, i := -1, 0
	s(func(v T) bool {
		if predicate(v) {
			index = i
			return false
		}
		i++
		return true
	})
	return index
}

// Contains reports whether the stream contains value.
func Contains[T comparable](s core.Stream[T], value T) bool {
	return core.Any(s, func(v T) bool { return v == value })
}

// IndexOf returns the index of the first occurrence of value, or -1.
func IndexOf[T comparable](s core.Stream[T], value T) int {
	return FindIndex(s, func(v T) bool { return v == value })
}

// IsEmpty reports whether the stream produces no items. At most one item is pulled.
func IsEmpty[T any](s core.Stream[T]) bool {
	_, ok := core.First(s)
	return !ok
}

// ElementAt returns the item at the given zero-based index.
// Panics if index is negative.
func ElementAt[T any](s core.Stream[T], index int) (T, bool) {
	if index < 0 {
		panic("filter.ElementAt: negative index")
	}
	return core.First(Skip[T](index).Apply(s))
}

// Last returns the last item of the stream. It has to consume the whole stream.
func Last[T any](s core.Stream[T]) (T, bool) {
	var last T
	found := false
	s(func(v T) bool {
		last, found = v, true
		return true
	})
	return last, found
}

// Single returns the only item matching the predicate. The boolean is false
// if there is no match or more than one; the stream stops at the second match.
func Single[T any](s core.Stream[T], predicate func(T) bool) (T, bool) {
	var match T
	n := 0
	s(func(v T) bool {
		if !predicate(v) {
			return true
		}
		n++
		match = v
		return n < 2
	})
	if n != 1 {
		var zero T
		return zero, false
	}
	return match, true
}
