// Package flowerrors provides opt-in error handling for push streams.
//
// The core never recovers panics and has no error channel: a stream whose
// per-item work can fail emits core.Result values instead. The transformers
// here operate on such Result streams; Try and SafeMap turn panics into
// core.ErrPanic errors.
package flowerrors

import (
	"fmt"

	"github.com/lguimbarda/pushflow/flow/core"
)

// resultStage is the Transformer shape shared by every operator in this package.
type resultStage[T any] = core.TransformerFunc[core.Result[T], core.Result[T]]

// Try runs fn and converts a panic raised anywhere inside it into an
// core.ErrPanic. fn is typically a terminal call such as ToArray or ForEach.
func Try(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = core.NewPanicError(r)
		}
	}()
	fn()
	return nil
}

// Values collects the values of a Result stream. It stops the stream at the
// first error and returns the values gathered so far together with that error.
func Values[T any](s core.Stream[core.Result[T]]) ([]T, error) {
	values := make([]T, 0, core.DefaultCapacity)
	var err error
	s(func(res core.Result[T]) bool {
		if res.IsError() {
			err = res.Error()
			return false
		}
		values = append(values, res.Value())
		return true
	})
	return values, err
}

// SafeMap creates a Transformer that applies mapper to every item and emits
// the outcome as a Result. A panic in mapper becomes an Err holding a
// core.ErrPanic; the stream keeps going.
func SafeMap[IN, OUT any](mapper func(IN) OUT) core.Transformer[IN, core.Result[OUT]] {
	return core.TransformerFunc[IN, core.Result[OUT]](func(s core.Stream[IN]) core.Stream[core.Result[OUT]] {
		return core.Select(s, func(v IN) (res core.Result[OUT]) {
			defer func() {
				if r := recover(); r != nil {
					res = core.Err[OUT](core.NewPanicError(r))
				}
			}()
			return core.Ok(mapper(v))
		})
	})
}

// TryMap creates a Transformer that applies a fallible operation to every
// item and emits the outcome as a Result.
func TryMap[IN, OUT any](operation func(IN) (OUT, error)) core.Transformer[IN, core.Result[OUT]] {
	return core.TransformerFunc[IN, core.Result[OUT]](func(s core.Stream[IN]) core.Stream[core.Result[OUT]] {
		return core.Select(s, func(v IN) core.Result[OUT] {
			out, err := operation(v)
			if err != nil {
				return core.Err[OUT](err)
			}
			return core.Ok(out)
		})
	})
}

// OnError creates a Transformer that calls a handler function when an error occurs.
// The handler is called for side effects; the error still passes through the stream.
func OnError[T any](handler func(error)) core.Transformer[core.Result[T], core.Result[T]] {
	return resultStage[T](func(s core.Stream[core.Result[T]]) core.Stream[core.Result[T]] {
		return core.Tap(s, func(res core.Result[T]) {
			if res.IsError() {
				handler(res.Error())
			}
		})
	})
}

// CatchError creates a Transformer that catches errors matching a predicate and handles them.
// If the handler returns a value, it replaces the error. If the handler returns an error,
// that error propagates. Non-matching errors pass through unchanged.
func CatchError[T any](predicate func(error) bool, handler func(error) (T, error)) core.Transformer[core.Result[T], core.Result[T]] {
	return resultStage[T](func(s core.Stream[core.Result[T]]) core.Stream[core.Result[T]] {
		return core.Select(s, func(res core.Result[T]) core.Result[T] {
			if !res.IsError() || !predicate(res.Error()) {
				return res
			}
			value, err := handler(res.Error())
			if err != nil {
				return core.Err[T](err)
			}
			return core.Ok(value)
		})
	})
}

// FilterErrors creates a Transformer that filters out errors matching a predicate.
// Matching errors are silently dropped; non-matching errors pass through.
func FilterErrors[T any](predicate func(error) bool) core.Transformer[core.Result[T], core.Result[T]] {
	return resultStage[T](func(s core.Stream[core.Result[T]]) core.Stream[core.Result[T]] {
		return core.Where(s, func(res core.Result[T]) bool {
			return !res.IsError() || !predicate(res.Error())
		})
	})
}

// IgnoreErrors creates a Transformer that drops all error results.
// Only values pass through.
func IgnoreErrors[T any]() core.Transformer[core.Result[T], core.Result[T]] {
	return FilterErrors[T](func(error) bool { return true })
}

// MapErrors creates a Transformer that transforms errors using a mapping function.
// Values pass through unchanged.
func MapErrors[T any](mapper func(error) error) core.Transformer[core.Result[T], core.Result[T]] {
	return resultStage[T](func(s core.Stream[core.Result[T]]) core.Stream[core.Result[T]] {
		return core.Select(s, func(res core.Result[T]) core.Result[T] {
			if res.IsError() {
				return core.Err[T](mapper(res.Error()))
			}
			return res
		})
	})
}

// WrapError creates a Transformer that wraps every error with a message,
// keeping the original reachable through errors.Is and errors.As.
func WrapError[T any](msg string) core.Transformer[core.Result[T], core.Result[T]] {
	return MapErrors[T](func(err error) error {
		return fmt.Errorf("%s: %w", msg, err)
	})
}

// ErrorsOnly creates a Transformer that only passes through error results.
// Values are dropped. Useful for error-focused processing.
func ErrorsOnly[T any]() core.Transformer[core.Result[T], core.Result[T]] {
	return resultStage[T](func(s core.Stream[core.Result[T]]) core.Stream[core.Result[T]] {
		return core.Where(s, core.Result[T].IsError)
	})
}

// CountErrors creates a Transformer that counts errors and adds the count to a provided counter.
// Errors still pass through the stream.
func CountErrors[T any](counter *int64) core.Transformer[core.Result[T], core.Result[T]] {
	return OnError[T](func(error) { *counter++ })
}

// ThrowOnError creates a Transformer that stops the stream on the first error.
// The error itself is still delivered before upstream is told to stop.
func ThrowOnError[T any]() core.Transformer[core.Result[T], core.Result[T]] {
	return resultStage[T](func(s core.Stream[core.Result[T]]) core.Stream[core.Result[T]] {
		return func(r core.Consumer[core.Result[T]]) bool {
			stopped := false
			s(func(res core.Result[T]) bool {
				if !r(res) {
					stopped = true
					return false
				}
				return !res.IsError()
			})
			return !stopped
		}
	})
}
