// Package filter provides stream operators that decide which values pass
// through, and the short-circuiting lookups built on them.
package filter

import (
	"github.com/lguimbarda/pushflow/flow/core"
)

// Where creates a Transformer that only passes through items matching the predicate.
// Items that don't match are silently dropped and never stop the stream.
func Where[T any](predicate func(T) bool) core.Transformer[T, T] {
	return core.TransformerFunc[T, T](func(s core.Stream[T]) core.Stream[T] {
		return core.Where(s, predicate)
	})
}

// MapWhere creates a Transformer that both filters and maps in a single pass.
// The function returns (value, true) to include the transformed value,
// or (_, false) to drop the item.
func MapWhere[IN, OUT any](fn func(IN) (OUT, bool)) core.Transformer[IN, OUT] {
	return core.TransformerFunc[IN, OUT](func(s core.Stream[IN]) core.Stream[OUT] {
		return func(r core.Consumer[OUT]) bool {
			return s(func(v IN) bool {
				if mapped, ok := fn(v); ok {
					return r(mapped)
				}
				return true
			})
		}
	})
}

// Exclude creates a Transformer that filters out items matching the predicate.
// This is the inverse of Where.
func Exclude[T any](predicate func(T) bool) core.Transformer[T, T] {
	return Where(func(v T) bool { return !predicate(v) })
}
