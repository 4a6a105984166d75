package flowerrors

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/lguimbarda/pushflow/flow/core"
	"github.com/lguimbarda/pushflow/flow/timing"
)

// ErrMaxRetries is returned when the maximum number of retries has been exceeded.
var ErrMaxRetries = errors.New("max retries exceeded")

// ErrCircuitOpen is returned when a circuit breaker is in the open state.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// Retry creates a Transformer that retries failed items up to maxRetries times.
// If an item still fails after all retries, the last error is emitted wrapped
// in ErrMaxRetries. Error results from upstream pass through without being retried.
func Retry[T any](maxRetries int, operation func(T) (T, error)) core.Transformer[core.Result[T], core.Result[T]] {
	return RetryWhen(maxRetries, func(error, int) bool { return true }, operation)
}

// BackoffStrategy defines how to calculate delay between retries.
type BackoffStrategy func(attempt int) time.Duration

// ConstantBackoff returns a BackoffStrategy that always waits the same duration.
func ConstantBackoff(delay time.Duration) BackoffStrategy {
	return func(attempt int) time.Duration {
		return delay
	}
}

// LinearBackoff returns a BackoffStrategy that increases delay linearly.
func LinearBackoff(initialDelay time.Duration) BackoffStrategy {
	return func(attempt int) time.Duration {
		return time.Duration(attempt+1) * initialDelay
	}
}

// ExponentialBackoff returns a BackoffStrategy that doubles delay each attempt.
// The delay is capped at maxDelay if provided (use 0 for no cap).
func ExponentialBackoff(initialDelay, maxDelay time.Duration) BackoffStrategy {
	return func(attempt int) time.Duration {
		delay := initialDelay * time.Duration(math.Pow(2, float64(attempt)))
		if maxDelay > 0 && delay > maxDelay {
			return maxDelay
		}
		return delay
	}
}

// RetryWithBackoff creates a Transformer that retries failed items with configurable backoff.
// The delay blocks the invoking goroutine; streams have no other way to wait.
// timing.WithClock replaces the clock that sleeps between attempts.
func RetryWithBackoff[T any](maxRetries int, backoff BackoffStrategy, operation func(T) (T, error), opts ...timing.Option) core.Transformer[core.Result[T], core.Result[T]] {
	return retry(maxRetries, func(error, int) bool { return true }, backoff, timing.ClockFrom(opts...), operation)
}

// RetryWhen creates a Transformer that retries based on a predicate function.
// The predicate receives the error and attempt number (0-indexed) and returns true to retry.
// If the predicate returns false the error is emitted as is; if maxRetries is
// exceeded it is wrapped in ErrMaxRetries.
func RetryWhen[T any](maxRetries int, shouldRetry func(err error, attempt int) bool, operation func(T) (T, error)) core.Transformer[core.Result[T], core.Result[T]] {
	return retry(maxRetries, shouldRetry, nil, nil, operation)
}

func retry[T any](maxRetries int, shouldRetry func(error, int) bool, backoff BackoffStrategy, clock timing.Clock, operation func(T) (T, error)) core.Transformer[core.Result[T], core.Result[T]] {
	maxRetries = max(maxRetries, 0)

	return resultStage[T](func(s core.Stream[core.Result[T]]) core.Stream[core.Result[T]] {
		return core.Select(s, func(res core.Result[T]) core.Result[T] {
			if res.IsError() {
				return res
			}

			value := res.Value()
			for attempt := 0; ; attempt++ {
				result, err := operation(value)
				if err == nil {
					return core.Ok(result)
				}
				if !shouldRetry(err, attempt) {
					return core.Err[T](err)
				}
				if attempt >= maxRetries {
					return core.Err[T](errors.Join(ErrMaxRetries, err))
				}
				if backoff != nil {
					clock.Sleep(backoff(attempt))
				}
			}
		})
	})
}

// CircuitState represents the state of a circuit breaker.
type CircuitState int

const (
	CircuitClosed CircuitState = iota
	CircuitOpen
	CircuitHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreaker wraps an operation with circuit breaker pattern.
// - failureThreshold: number of failures before opening the circuit
// - resetTimeout: duration to wait before trying half-open state
// - halfOpenSuccesses: number of successes in half-open before fully closing
//
// A CircuitBreaker may be shared by several streams.
type CircuitBreaker[T any] struct {
	operation         func(T) (T, error)
	clock             timing.Clock
	failureThreshold  int
	resetTimeout      time.Duration
	halfOpenSuccesses int
	state             CircuitState
	failures          int
	successes         int
	lastFailure       time.Time
	mu                sync.RWMutex
}

// NewCircuitBreaker creates a new circuit breaker with the given configuration.
// timing.WithClock replaces the clock used to measure resetTimeout.
func NewCircuitBreaker[T any](
	operation func(T) (T, error),
	failureThreshold int,
	resetTimeout time.Duration,
	halfOpenSuccesses int,
	opts ...timing.Option,
) *CircuitBreaker[T] {
	if failureThreshold <= 0 {
		failureThreshold = 5
	}
	if resetTimeout <= 0 {
		resetTimeout = 30 * time.Second
	}
	if halfOpenSuccesses <= 0 {
		halfOpenSuccesses = 1
	}

	return &CircuitBreaker[T]{
		operation:         operation,
		clock:             timing.ClockFrom(opts...),
		failureThreshold:  failureThreshold,
		resetTimeout:      resetTimeout,
		halfOpenSuccesses: halfOpenSuccesses,
		state:             CircuitClosed,
	}
}

// Execute runs the operation through the circuit breaker.
func (cb *CircuitBreaker[T]) Execute(value T) (T, error) {
	cb.mu.Lock()
	if cb.state == CircuitOpen && cb.clock.Now().Sub(cb.lastFailure) >= cb.resetTimeout {
		cb.state = CircuitHalfOpen
		cb.successes = 0
	}
	if cb.state == CircuitOpen {
		cb.mu.Unlock()
		var zero T
		return zero, ErrCircuitOpen
	}
	cb.mu.Unlock()

	result, err := cb.operation(value)

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.failures++
		cb.lastFailure = cb.clock.Now()

		// Any failure in half-open goes back to open
		if cb.state == CircuitHalfOpen || cb.failures >= cb.failureThreshold {
			cb.state = CircuitOpen
		}
		return result, err
	}

	if cb.state == CircuitHalfOpen {
		cb.successes++
		if cb.successes >= cb.halfOpenSuccesses {
			cb.state = CircuitClosed
			cb.failures = 0
		}
	} else {
		cb.failures = 0
	}

	return result, nil
}

// State returns the current circuit state.
func (cb *CircuitBreaker[T]) State() CircuitState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// WithCircuitBreaker creates a Transformer that applies a circuit breaker to operations.
func WithCircuitBreaker[T any](cb *CircuitBreaker[T]) core.Transformer[core.Result[T], core.Result[T]] {
	return resultStage[T](func(s core.Stream[core.Result[T]]) core.Stream[core.Result[T]] {
		return core.Select(s, func(res core.Result[T]) core.Result[T] {
			if res.IsError() {
				return res
			}
			result, err := cb.Execute(res.Value())
			if err != nil {
				return core.Err[T](err)
			}
			return core.Ok(result)
		})
	})
}

// Fallback creates a Transformer that replaces an error with a value computed
// from the last good value and the error. An error before any good value has
// been seen passes through. The last good value is reset on every invocation.
func Fallback[T any](fallbackFn func(T, error) T) core.Transformer[core.Result[T], core.Result[T]] {
	return resultStage[T](func(s core.Stream[core.Result[T]]) core.Stream[core.Result[T]] {
		return func(r core.Consumer[core.Result[T]]) bool {
			var lastValue T
			hasValue := false
			return s(func(res core.Result[T]) bool {
				if !res.IsError() {
					lastValue, hasValue = res.Value(), true
					return r(res)
				}
				if !hasValue {
					return r(res)
				}
				return r(core.Ok(fallbackFn(lastValue, res.Error())))
			})
		}
	})
}

// FallbackValue creates a Transformer that replaces errors with a default value.
func FallbackValue[T any](defaultValue T) core.Transformer[core.Result[T], core.Result[T]] {
	return Recover(func(error) (T, error) {
		return defaultValue, nil
	})
}

// Recover creates a Transformer that recovers from errors using a recovery function.
// The recovery function can return a new value or return an error to propagate.
func Recover[T any](recoverFn func(error) (T, error)) core.Transformer[core.Result[T], core.Result[T]] {
	return CatchError(func(error) bool { return true }, recoverFn)
}

// RecoverPanic creates a Transformer that specifically recovers from panic errors.
// It checks if the error is an ErrPanic and applies the recovery function.
func RecoverPanic[T any](recoverFn func(panicValue any) (T, error)) core.Transformer[core.Result[T], core.Result[T]] {
	return Recover(func(err error) (T, error) {
		var panicErr core.ErrPanic
		if errors.As(err, &panicErr) {
			return recoverFn(panicErr.Value)
		}
		var zero T
		return zero, err
	})
}
