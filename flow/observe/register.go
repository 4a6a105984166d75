package observe

import (
	"sync/atomic"

	"github.com/lguimbarda/pushflow/flow/core"
)

// This file provides convenience constructors for typed hooks.
// The hooks are type-parameterized, so observers must be built for the
// specific element type they watch.
//
// Usage pattern:
//
//	hooks, counter := WithCounter[int]()
//	s = core.Observe(s, hooks, WithValueHook(func(v int) { fmt.Println("Value:", v) }))
//	s.ToArray()
//	fmt.Println(counter.Values())

// WithValueHook returns hooks whose callback fires for each value emitted.
func WithValueHook[T any](callback func(T)) core.Hooks[T] {
	return core.Hooks[T]{OnValue: callback}
}

// WithStartHook returns hooks whose callback fires when an invocation starts.
func WithStartHook[T any](callback func()) core.Hooks[T] {
	return core.Hooks[T]{OnStart: callback}
}

// WithStopHook returns hooks whose callback fires when the consumer refuses
// a value, with that value.
func WithStopHook[T any](callback func(T)) core.Hooks[T] {
	return core.Hooks[T]{OnStop: callback}
}

// WithCompleteHook returns hooks whose callback fires when an invocation
// returns, with the stream's result.
func WithCompleteHook[T any](callback func(done bool)) core.Hooks[T] {
	return core.Hooks[T]{OnComplete: callback}
}

// Counter provides thread-safe counting of invocations, values and stops.
type Counter struct {
	runs   atomic.Int64
	values atomic.Int64
	stops  atomic.Int64
}

// Runs returns the number of invocations started.
func (c *Counter) Runs() int64 { return c.runs.Load() }

// Values returns the count of values processed.
func (c *Counter) Values() int64 { return c.values.Load() }

// Stops returns the number of invocations stopped by the consumer.
func (c *Counter) Stops() int64 { return c.stops.Load() }

// WithCounter returns counting hooks for type T and the counter they feed.
func WithCounter[T any]() (core.Hooks[T], *Counter) {
	counter := &Counter{}
	hooks := core.Hooks[T]{
		OnStart: func() { counter.runs.Add(1) },
		OnValue: func(T) { counter.values.Add(1) },
		OnStop:  func(T) { counter.stops.Add(1) },
	}
	return hooks, counter
}

// ValueCounter counts only values.
type ValueCounter struct {
	count atomic.Int64
}

// Count returns the current count.
func (c *ValueCounter) Count() int64 { return c.count.Load() }

// WithValueCounter returns a value counting hook for type T and the counter.
func WithValueCounter[T any]() (core.Hooks[T], *ValueCounter) {
	counter := &ValueCounter{}
	return core.Hooks[T]{OnValue: func(T) { counter.count.Add(1) }}, counter
}
