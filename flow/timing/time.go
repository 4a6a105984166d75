// Package timing provides time-based stream operators.
//
// Every operator runs on the goroutine that drives the stream: delays block
// that goroutine and no timers or background goroutines are started. Time
// is read from a Clock, SystemClock unless WithClock says otherwise.
package timing

import (
	"time"

	"github.com/lguimbarda/pushflow/flow/core"
)

// Delay creates a Transformer that waits for the specified duration before
// passing on each item.
func Delay[T any](duration time.Duration, opts ...Option) core.Transformer[T, T] {
	return DelayWhen(func(T) time.Duration { return duration }, opts...)
}

// DelayWhen creates a Transformer that delays each item by a duration determined
// by the provided function. This allows dynamic delay based on item value.
// Non-positive delays pass the item on immediately.
func DelayWhen[T any](delayFn func(T) time.Duration, opts ...Option) core.Transformer[T, T] {
	cfg := newConfig(opts)
	return core.TransformerFunc[T, T](func(s core.Stream[T]) core.Stream[T] {
		return func(r core.Consumer[T]) bool {
			return s(func(v T) bool {
				if d := delayFn(v); d > 0 {
					cfg.Clock.Sleep(d)
				}
				return r(v)
			})
		}
	})
}

// Throttle creates a Transformer that limits emissions to at most one per duration.
// The first item passes through immediately, then subsequent items are dropped
// until the duration has elapsed.
func Throttle[T any](duration time.Duration, opts ...Option) core.Transformer[T, T] {
	cfg := newConfig(opts)
	return core.TransformerFunc[T, T](func(s core.Stream[T]) core.Stream[T] {
		return func(r core.Consumer[T]) bool {
			var lastEmit time.Time
			emitted := false
			return s(func(v T) bool {
				now := cfg.Clock.Now()
				if emitted && now.Sub(lastEmit) < duration {
					return true
				}
				emitted = true
				lastEmit = now
				return r(v)
			})
		}
	})
}

// RateLimit creates a Transformer that lets at most n items through per
// window of the given length. An item that would exceed the rate waits for
// the next window. n <= 0 is treated as 1.
func RateLimit[T any](n int, per time.Duration, opts ...Option) core.Transformer[T, T] {
	if n <= 0 {
		n = 1
	}
	cfg := newConfig(opts)
	return core.TransformerFunc[T, T](func(s core.Stream[T]) core.Stream[T] {
		return func(r core.Consumer[T]) bool {
			var windowStart time.Time
			inWindow := 0
			return s(func(v T) bool {
				now := cfg.Clock.Now()
				if inWindow == 0 || now.Sub(windowStart) >= per {
					windowStart, inWindow = now, 0
				}
				if inWindow == n {
					cfg.Clock.Sleep(windowStart.Add(per).Sub(now))
					windowStart, inWindow = cfg.Clock.Now(), 0
				}
				inWindow++
				return r(v)
			})
		}
	})
}

// TakeFor creates a Transformer that passes items on until duration has
// passed since the invocation started, then stops upstream. The deadline is
// checked when an item arrives.
func TakeFor[T any](duration time.Duration, opts ...Option) core.Transformer[T, T] {
	cfg := newConfig(opts)
	return core.TransformerFunc[T, T](func(s core.Stream[T]) core.Stream[T] {
		return func(r core.Consumer[T]) bool {
			deadline := cfg.Clock.Now().Add(duration)
			stopped := false
			s(func(v T) bool {
				if !cfg.Clock.Now().Before(deadline) {
					return false
				}
				if !r(v) {
					stopped = true
					return false
				}
				return true
			})
			return !stopped
		}
	})
}

// Interval creates a Stream that emits sequential integers at fixed time intervals.
// The first value (0) is emitted after the first interval.
// The stream continues until the consumer stops it.
func Interval(d time.Duration, opts ...Option) core.Stream[int] {
	cfg := newConfig(opts)
	return func(r core.Consumer[int]) bool {
		for i := 0; ; i++ {
			cfg.Clock.Sleep(d)
			if !r(i) {
				return false
			}
		}
	}
}

// Once creates a Stream that emits a single value (0) after the specified
// duration, then completes.
func Once(d time.Duration, opts ...Option) core.Stream[int] {
	return OnceWith(d, 0, opts...)
}

// OnceWith creates a Stream that emits the specified value after the
// specified duration, then completes.
func OnceWith[T any](d time.Duration, value T, opts ...Option) core.Stream[T] {
	cfg := newConfig(opts)
	return func(r core.Consumer[T]) bool {
		cfg.Clock.Sleep(d)
		return r(value)
	}
}

// Timestamped wraps each item with its emission timestamp.
type Timestamped[T any] struct {
	Value     T
	Timestamp time.Time
}

// Stamped creates a Transformer that wraps each item with the time it was received.
func Stamped[T any](opts ...Option) core.Transformer[T, Timestamped[T]] {
	cfg := newConfig(opts)
	return core.TransformerFunc[T, Timestamped[T]](func(s core.Stream[T]) core.Stream[Timestamped[T]] {
		return core.Select(s, func(v T) Timestamped[T] {
			return Timestamped[T]{Value: v, Timestamp: cfg.Clock.Now()}
		})
	})
}

// TimeInterval represents the interval between consecutive emissions.
type TimeInterval[T any] struct {
	Value    T
	Interval time.Duration
}

// Elapsed creates a Transformer that wraps each item with the duration since
// the previous item (or since the invocation started for the first item).
func Elapsed[T any](opts ...Option) core.Transformer[T, TimeInterval[T]] {
	cfg := newConfig(opts)
	return core.TransformerFunc[T, TimeInterval[T]](func(s core.Stream[T]) core.Stream[TimeInterval[T]] {
		return func(r core.Consumer[TimeInterval[T]]) bool {
			last := cfg.Clock.Now()
			return s(func(v T) bool {
				now := cfg.Clock.Now()
				interval := now.Sub(last)
				last = now
				return r(TimeInterval[T]{Value: v, Interval: interval})
			})
		}
	})
}
