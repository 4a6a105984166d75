package flowerrors

import (
	"sync"
	"sync/atomic"

	"github.com/lguimbarda/pushflow/flow/core"
)

// This file provides hooks-based error observation utilities.
// These hooks observe errors for logging, counting, and collection purposes.
// They do not modify the data flow - for error transformation (retry, fallback, catch),
// use the transformer-based operators in error.go and resilience.go.
//
// Attach the returned hooks with core.Observe (or flow.Observe).

// ErrorCounter counts errors that match a predicate.
type ErrorCounter struct {
	predicate func(error) bool
	count     atomic.Int64
}

// Count returns the number of errors counted.
func (c *ErrorCounter) Count() int64 {
	return c.count.Load()
}

// WithErrorCounter returns hooks counting the error results of a stream,
// and the counter they feed. If predicate is nil, all errors are counted.
func WithErrorCounter[T any](predicate func(error) bool) (core.Hooks[core.Result[T]], *ErrorCounter) {
	if predicate == nil {
		predicate = func(error) bool { return true }
	}
	counter := &ErrorCounter{predicate: predicate}
	hooks := core.Hooks[core.Result[T]]{
		OnValue: func(res core.Result[T]) {
			if res.IsError() && counter.predicate(res.Error()) {
				counter.count.Add(1)
			}
		},
	}
	return hooks, counter
}

// ErrorCollector collects errors for later inspection.
type ErrorCollector struct {
	mu        sync.Mutex
	errors    []error
	predicate func(error) bool
	maxErrors int // 0 = unlimited
}

// ErrorCollectorOption configures an ErrorCollector.
type ErrorCollectorOption func(*ErrorCollector)

// WithPredicate filters which errors to collect.
func WithPredicate(predicate func(error) bool) ErrorCollectorOption {
	return func(c *ErrorCollector) {
		c.predicate = predicate
	}
}

// WithMaxErrors limits the number of errors to collect.
func WithMaxErrors(max int) ErrorCollectorOption {
	return func(c *ErrorCollector) {
		c.maxErrors = max
	}
}

// Errors returns a copy of all collected errors.
func (c *ErrorCollector) Errors() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]error, len(c.errors))
	copy(result, c.errors)
	return result
}

// Count returns the number of collected errors.
func (c *ErrorCollector) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.errors)
}

func (c *ErrorCollector) add(err error) {
	if !c.predicate(err) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.maxErrors > 0 && len(c.errors) >= c.maxErrors {
		return
	}
	c.errors = append(c.errors, err)
}

// WithErrorCollector returns hooks collecting the error results of a stream,
// and the collector they feed.
func WithErrorCollector[T any](opts ...ErrorCollectorOption) (core.Hooks[core.Result[T]], *ErrorCollector) {
	collector := &ErrorCollector{
		predicate: func(error) bool { return true },
	}
	for _, opt := range opts {
		opt(collector)
	}

	hooks := core.Hooks[core.Result[T]]{
		OnValue: func(res core.Result[T]) {
			if res.IsError() {
				collector.add(res.Error())
			}
		},
	}
	return hooks, collector
}

// OnErrorDo returns hooks calling handler for each error result.
func OnErrorDo[T any](handler func(error)) core.Hooks[core.Result[T]] {
	return core.Hooks[core.Result[T]]{
		OnValue: func(res core.Result[T]) {
			if res.IsError() {
				handler(res.Error())
			}
		},
	}
}

// CircuitBreakerMonitor monitors consecutive errors and trips when a threshold is reached.
// For a full circuit breaker implementation with retry logic, see CircuitBreaker in resilience.go.
type CircuitBreakerMonitor struct {
	threshold      int
	failureCount   atomic.Int64
	isOpen         atomic.Bool
	onThresholdHit func()
}

// IsOpen returns true if the circuit breaker has tripped.
func (cb *CircuitBreakerMonitor) IsOpen() bool {
	return cb.isOpen.Load()
}

// FailureCount returns the current failure count.
func (cb *CircuitBreakerMonitor) FailureCount() int64 {
	return cb.failureCount.Load()
}

// Reset resets the circuit breaker to closed state.
func (cb *CircuitBreakerMonitor) Reset() {
	cb.failureCount.Store(0)
	cb.isOpen.Store(false)
}

// WithCircuitBreakerMonitor returns hooks tracking consecutive errors and the
// monitor they feed. A successful value resets the count.
func WithCircuitBreakerMonitor[T any](threshold int, onThresholdHit func()) (core.Hooks[core.Result[T]], *CircuitBreakerMonitor) {
	cb := &CircuitBreakerMonitor{
		threshold:      threshold,
		onThresholdHit: onThresholdHit,
	}

	hooks := core.Hooks[core.Result[T]]{
		OnValue: func(res core.Result[T]) {
			if !res.IsError() {
				cb.failureCount.Store(0)
				return
			}
			if cb.isOpen.Load() {
				return
			}
			if int(cb.failureCount.Add(1)) >= cb.threshold {
				cb.isOpen.Store(true)
				if cb.onThresholdHit != nil {
					cb.onThresholdHit()
				}
			}
		},
	}
	return hooks, cb
}
