package combine

import (
	"github.com/lguimbarda/pushflow/flow/core"
)

// Broadcast calls every handler with each item, in handler order, before
// passing the item downstream.
// Useful for side effects like logging, metrics, or caching.
func Broadcast[T any](handlers ...func(T)) core.Transformer[T, T] {
	return core.TransformerFunc[T, T](func(s core.Stream[T]) core.Stream[T] {
		return core.Tap(s, func(v T) {
			for _, h := range handlers {
				h(v)
			}
		})
	})
}

// Tee returns two streams that both emit every item of stream.
// Streams are re-invokable values, so each side simply runs stream again.
func Tee[T any](stream core.Stream[T]) (core.Stream[T], core.Stream[T]) {
	return stream, stream
}

// PartitionStream creates two streams based on a predicate.
// Items matching the predicate go to the first stream, others to the second.
// Unlike aggregate.Partition, which collects all items, nothing is buffered:
// each side runs the source and filters it.
func PartitionStream[T any](predicate func(T) bool, stream core.Stream[T]) (matched core.Stream[T], unmatched core.Stream[T]) {
	matched = core.Where(stream, predicate)
	unmatched = core.Where(stream, func(v T) bool { return !predicate(v) })
	return matched, unmatched
}
