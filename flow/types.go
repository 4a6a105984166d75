// Package flow provides push streams: pipelines in which the producer
// drives iteration and the consumer stops it by returning false.
//
// This package is the primary user-facing API. Most users should only
// need to import this package. The flow/core subpackage contains
// the underlying contracts and is rarely needed directly.
package flow

import (
	"iter"

	"github.com/lguimbarda/pushflow/flow/core"
)

// Type aliases for core stream abstractions.
// These allow users to work with the framework without importing core directly.
type (
	// Consumer receives values and returns false to stop the stream.
	Consumer[T any] = core.Consumer[T]

	// Stream pushes values into a Consumer and reports whether it ran to completion.
	Stream[T any] = core.Stream[T]

	// Transformer transforms a Stream of type IN into a Stream of type OUT.
	Transformer[IN, OUT any] = core.Transformer[IN, OUT]

	// TransformerFunc adapts a function to the Transformer interface.
	TransformerFunc[IN, OUT any] = core.TransformerFunc[IN, OUT]

	// Result carries a value or the error that prevented producing it.
	Result[T any] = core.Result[T]

	// Mapper transforms individual items (1:1 cardinality) and implements Transformer.
	Mapper[IN, OUT any] = core.Mapper[IN, OUT]

	// FlatMapper transforms individual items (1:N cardinality) and implements Transformer.
	FlatMapper[IN, OUT any] = core.FlatMapper[IN, OUT]

	// Hooks holds observation callbacks for Observe.
	Hooks[T any] = core.Hooks[T]

	// ErrPanic is a recovered panic carried as an error.
	ErrPanic = core.ErrPanic
)

// Result constructors - wrappers around core functions.

// Ok creates a successful Result containing the given value.
func Ok[T any](value T) Result[T] {
	return core.Ok(value)
}

// Err creates an error Result.
func Err[T any](err error) Result[T] {
	return core.Err[T](err)
}

// Combinators.

// Where keeps the values for which predicate returns true.
func Where[T any](s Stream[T], predicate func(T) bool) Stream[T] {
	return core.Where(s, predicate)
}

// Select maps every value through mapper.
func Select[IN, OUT any](s Stream[IN], mapper func(IN) OUT) Stream[OUT] {
	return core.Select(s, mapper)
}

// SelectMany maps every value to a Stream and flattens the results.
func SelectMany[IN, OUT any](s Stream[IN], project func(IN) Stream[OUT]) Stream[OUT] {
	return core.SelectMany(s, project)
}

// Tap calls fn for every value before passing it on.
func Tap[T any](s Stream[T], fn func(T)) Stream[T] {
	return core.Tap(s, fn)
}

// Observe reports the lifecycle of each invocation of s to hooks.
func Observe[T any](s Stream[T], hooks ...Hooks[T]) Stream[T] {
	return core.Observe(s, hooks...)
}

// Map creates a Mapper from a transformation function.
func Map[IN, OUT any](fn func(IN) OUT) Mapper[IN, OUT] {
	return core.Map(fn)
}

// FlatMap creates a FlatMapper from a function returning a slice.
func FlatMap[IN, OUT any](fn func(IN) []OUT) FlatMapper[IN, OUT] {
	return core.FlatMap(fn)
}

// Terminal operations.

// Aggregate left-folds the stream into a single value starting from seed.
func Aggregate[T, S any](s Stream[T], combine func(S, T) S, seed S) S {
	return core.Aggregate(s, combine, seed)
}

// ToArray collects all stream values into a slice.
func ToArray[T any](s Stream[T]) []T {
	return core.ToArray(s)
}

// ToArrayWith collects all stream values using the given buffer options.
func ToArrayWith[T any](s Stream[T], opts ...core.ArrayOption) []T {
	return core.ToArrayWith(s, opts...)
}

// WithCapacity sets the initial capacity used by ToArrayWith.
func WithCapacity(n int) core.ArrayOption {
	return core.WithCapacity(n)
}

// First returns the first value of the stream, stopping it afterwards.
func First[T any](s Stream[T]) (T, bool) {
	return core.First(s)
}

// Any reports whether some value satisfies predicate.
func Any[T any](s Stream[T], predicate func(T) bool) bool {
	return core.Any(s, predicate)
}

// All reports whether every value satisfies predicate.
func All[T any](s Stream[T], predicate func(T) bool) bool {
	return core.All(s, predicate)
}

// Count returns the number of values in the stream.
func Count[T any](s Stream[T]) int {
	return core.Count(s)
}

// ForEach calls fn for every value of the stream.
func ForEach[T any](s Stream[T], fn func(T)) {
	core.ForEach(s, fn)
}

// Seq returns a range-over-func iterator over the stream.
func Seq[T any](s Stream[T]) iter.Seq[T] {
	return core.Seq(s)
}
