// Package combine joins several push streams into one.
//
// Every combinator here is sequential: streams are run one after another, or
// stepped in lockstep through iter.Pull, never concurrently.
package combine

import (
	"iter"

	"github.com/lguimbarda/pushflow/flow/core"
)

// Concat concatenates multiple streams sequentially.
// Items from the second stream only start emitting after the first completes, etc.
// If the consumer stops, the remaining streams are never invoked.
func Concat[T any](streams ...core.Stream[T]) core.Stream[T] {
	return func(r core.Consumer[T]) bool {
		for _, s := range streams {
			if !s(r) {
				return false
			}
		}
		return true
	}
}

// Pair holds one item from each side of a Zip.
type Pair[A, B any] struct {
	A A
	B B
}

// Zip combines items from two streams pairwise.
// Emits pairs until either stream is exhausted. Extra items from the longer stream are dropped.
func Zip[A, B any](streamA core.Stream[A], streamB core.Stream[B]) core.Stream[Pair[A, B]] {
	return ZipWith(streamA, streamB, func(a A, b B) Pair[A, B] {
		return Pair[A, B]{A: a, B: b}
	})
}

// ZipWith combines items from two streams using a combiner function.
// streamA drives the iteration; streamB is stepped through iter.Pull and
// released as soon as the zipped stream returns.
// Running out of either side ends the zipped stream normally; it reports
// false only when the consumer stopped it.
func ZipWith[A, B, C any](streamA core.Stream[A], streamB core.Stream[B], combiner func(A, B) C) core.Stream[C] {
	return func(r core.Consumer[C]) bool {
		next, stop := iter.Pull(core.Seq(streamB))
		defer stop()

		stopped := false
		streamA(func(a A) bool {
			b, ok := next()
			if !ok {
				return false
			}
			if !r(combiner(a, b)) {
				stopped = true
				return false
			}
			return true
		})
		return !stopped
	}
}

// OptionalPair holds one item from each side of a ZipLongest.
// HasA and HasB report which side still had an item.
type OptionalPair[A, B any] struct {
	A    A
	B    B
	HasA bool
	HasB bool
}

// ZipLongest combines items from two streams, using zero values for the
// shorter stream. Continues until both streams are exhausted.
func ZipLongest[A, B any](streamA core.Stream[A], streamB core.Stream[B]) core.Stream[OptionalPair[A, B]] {
	return func(r core.Consumer[OptionalPair[A, B]]) bool {
		nextA, stopA := iter.Pull(core.Seq(streamA))
		defer stopA()
		nextB, stopB := iter.Pull(core.Seq(streamB))
		defer stopB()

		for {
			a, okA := nextA()
			b, okB := nextB()
			if !okA && !okB {
				return true
			}
			if !r(OptionalPair[A, B]{A: a, B: b, HasA: okA, HasB: okB}) {
				return false
			}
		}
	}
}

// Interleave alternates items from multiple streams in round-robin fashion.
// Exhausted streams drop out of the rotation; continues until all are exhausted.
func Interleave[T any](streams ...core.Stream[T]) core.Stream[T] {
	return func(r core.Consumer[T]) bool {
		nexts := make([]func() (T, bool), 0, len(streams))
		for _, s := range streams {
			next, stop := iter.Pull(core.Seq(s))
			defer stop()
			nexts = append(nexts, next)
		}

		for len(nexts) > 0 {
			live := nexts[:0]
			for _, next := range nexts {
				v, ok := next()
				if !ok {
					continue
				}
				if !r(v) {
					return false
				}
				live = append(live, next)
			}
			nexts = live
		}
		return true
	}
}

// SequenceEqual reports whether both streams emit the same items in the
// same order. It stops both streams at the first difference.
func SequenceEqual[T comparable](streamA, streamB core.Stream[T]) bool {
	next, stop := iter.Pull(core.Seq(streamB))
	defer stop()

	differs := false
	streamA(func(a T) bool {
		b, ok := next()
		differs = !ok || a != b
		return !differs
	})
	if differs {
		return false
	}
	_, more := next()
	return !more
}

// Fork applies multiple transformers to the same stream, returning one
// result stream per transformer. Each result invokes stream independently.
func Fork[IN, OUT any](stream core.Stream[IN], transformers ...core.Transformer[IN, OUT]) []core.Stream[OUT] {
	if len(transformers) == 0 {
		return nil
	}
	outputs := make([]core.Stream[OUT], len(transformers))
	for i, t := range transformers {
		outputs[i] = t.Apply(stream)
	}
	return outputs
}

// Gather applies multiple transformers to the same stream and concatenates
// their results in transformer order.
func Gather[IN, OUT any](stream core.Stream[IN], transformers ...core.Transformer[IN, OUT]) core.Stream[OUT] {
	return Concat(Fork(stream, transformers...)...)
}

// IfEmpty returns a stream that switches to an alternative if the source is empty.
func IfEmpty[T any](source core.Stream[T], alternative core.Stream[T]) core.Stream[T] {
	return func(r core.Consumer[T]) bool {
		emitted := false
		if !source(func(v T) bool {
			emitted = true
			return r(v)
		}) {
			return false
		}
		if emitted {
			return true
		}
		return alternative(r)
	}
}
