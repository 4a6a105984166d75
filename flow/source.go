package flow

import (
	"iter"
)

// Range creates a Stream of count consecutive integers starting at start.
// A count of zero or less yields an empty stream.
// start+count must not overflow int.
func Range(start, count int) Stream[int] {
	return func(r Consumer[int]) bool {
		end := start + count
		for i := start; i < end; i++ {
			if !r(i) {
				return false
			}
		}
		return true
	}
}

// FromArray creates a Stream that emits each element of values in order.
// The slice is read on every invocation, not copied.
func FromArray[T any](values []T) Stream[T] {
	return func(r Consumer[T]) bool {
		for _, v := range values {
			if !r(v) {
				return false
			}
		}
		return true
	}
}

// FromSlice is FromArray under the name used by the rest of the Go ecosystem.
func FromSlice[T any](values []T) Stream[T] {
	return FromArray(values)
}

// Of creates a Stream of the given values.
func Of[T any](values ...T) Stream[T] {
	return FromArray(values)
}

// Empty creates a Stream that emits no values and completes immediately.
func Empty[T any]() Stream[T] {
	return func(Consumer[T]) bool {
		return true
	}
}

// Once creates a Stream that emits a single value.
func Once[T any](value T) Stream[T] {
	return func(r Consumer[T]) bool {
		return r(value)
	}
}

// Repeat creates a Stream that emits value n times.
// A negative n repeats until the consumer stops.
func Repeat[T any](value T, n int) Stream[T] {
	return func(r Consumer[T]) bool {
		for i := 0; n < 0 || i < n; i++ {
			if !r(value) {
				return false
			}
		}
		return true
	}
}

// Generate creates a Stream whose i-th value is produced by fn(i).
// The stream ends when fn returns false. The index restarts at 0 on every
// invocation.
func Generate[T any](fn func(i int) (T, bool)) Stream[T] {
	return func(r Consumer[T]) bool {
		for i := 0; ; i++ {
			v, ok := fn(i)
			if !ok {
				return true
			}
			if !r(v) {
				return false
			}
		}
	}
}

// FromIter creates a Stream from a Go 1.23+ iterator sequence.
// Re-invoking the stream ranges over seq again, so it replays only if seq does.
func FromIter[T any](seq iter.Seq[T]) Stream[T] {
	return func(r Consumer[T]) bool {
		done := true
		for v := range seq {
			if !r(v) {
				done = false
				break
			}
		}
		return done
	}
}

// RangeStep creates a Stream from start towards end (exclusive) in steps
// of step. A zero step, or a step pointing away from end, yields an empty
// stream.
func RangeStep(start, end, step int) Stream[int] {
	return func(r Consumer[int]) bool {
		switch {
		case step > 0:
			for i := start; i < end; i += step {
				if !r(i) {
					return false
				}
			}
		case step < 0:
			for i := start; i > end; i += step {
				if !r(i) {
					return false
				}
			}
		}
		return true
	}
}

// Unfold creates a Stream by repeatedly applying fn to a state.
// fn returns the value to emit, the next state and whether to continue.
// Every invocation starts again from seed.
func Unfold[S, T any](seed S, fn func(S) (T, S, bool)) Stream[T] {
	return func(r Consumer[T]) bool {
		state := seed
		for {
			v, next, ok := fn(state)
			if !ok {
				return true
			}
			if !r(v) {
				return false
			}
			state = next
		}
	}
}

// Iterate creates an infinite Stream seed, fn(seed), fn(fn(seed)), ...
// It only ends when the consumer stops it.
func Iterate[T any](seed T, fn func(T) T) Stream[T] {
	return func(r Consumer[T]) bool {
		for v := seed; ; v = fn(v) {
			if !r(v) {
				return false
			}
		}
	}
}

// Defer creates a Stream that calls factory on every invocation and pushes
// the values of the Stream it returns.
func Defer[T any](factory func() Stream[T]) Stream[T] {
	return func(r Consumer[T]) bool {
		return factory()(r)
	}
}
