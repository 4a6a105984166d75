// Package observe provides observability operators for monitoring, metrics,
// logging and debugging push streams.
//
// Every operator here is a pass-through stage built on core.Observe: values
// reach the consumer unchanged, and a stop from downstream is reported before
// being propagated upstream.
package observe

import (
	"maps"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lguimbarda/pushflow/flow/core"
)

// StreamMetrics holds statistics about one invocation of a stream.
type StreamMetrics struct {
	// Counts
	TotalItems int64

	// Outcome
	Stopped   bool // downstream returned false
	Completed bool // upstream ran to completion

	// Timing
	StartTime     time.Time
	EndTime       time.Time
	FirstItemTime time.Time
	LastItemTime  time.Time

	// Throughput
	ItemsPerSecond float64

	// Latency (time between items)
	MinLatency time.Duration
	MaxLatency time.Duration
	AvgLatency time.Duration
}

// Duration returns how long the invocation took.
func (m StreamMetrics) Duration() time.Duration {
	return m.EndTime.Sub(m.StartTime)
}

// Meter creates a Transformer that collects metrics about the stream.
// The onComplete callback is called with the final metrics when an invocation
// returns, whether it completed or was stopped.
func Meter[T any](onComplete func(StreamMetrics)) core.Transformer[T, T] {
	return core.TransformerFunc[T, T](func(s core.Stream[T]) core.Stream[T] {
		return func(r core.Consumer[T]) bool {
			metrics := StreamMetrics{
				StartTime:  time.Now(),
				MinLatency: time.Duration(1<<63 - 1), // Max duration
			}
			var totalLatency time.Duration

			done := core.Observe(s, core.Hooks[T]{
				OnValue: func(T) {
					now := time.Now()
					metrics.TotalItems++
					if metrics.TotalItems == 1 {
						metrics.FirstItemTime = now
					} else {
						latency := now.Sub(metrics.LastItemTime)
						metrics.MinLatency = min(metrics.MinLatency, latency)
						metrics.MaxLatency = max(metrics.MaxLatency, latency)
						totalLatency += latency
					}
					metrics.LastItemTime = now
				},
				OnStop: func(T) { metrics.Stopped = true },
			})(r)

			metrics.Completed = done
			metrics.EndTime = time.Now()
			if metrics.TotalItems < 2 {
				metrics.MinLatency = 0
			} else {
				metrics.AvgLatency = totalLatency / time.Duration(metrics.TotalItems-1)
			}
			if seconds := metrics.Duration().Seconds(); metrics.TotalItems > 0 && seconds > 0 {
				metrics.ItemsPerSecond = float64(metrics.TotalItems) / seconds
			}
			if onComplete != nil {
				onComplete(metrics)
			}
			return done
		}
	})
}

// LiveMetrics holds running totals that can be read concurrently with the
// stream, for example by a progress reporter on another goroutine.
type LiveMetrics struct {
	totalItems   atomic.Int64
	runs         atomic.Int64
	stops        atomic.Int64
	startTime    atomic.Int64 // Unix nano
	lastItemTime atomic.Int64 // Unix nano
}

// TotalItems returns the total number of items processed.
func (m *LiveMetrics) TotalItems() int64 { return m.totalItems.Load() }

// Runs returns how many invocations have started.
func (m *LiveMetrics) Runs() int64 { return m.runs.Load() }

// Stops returns how many invocations were stopped by the consumer.
func (m *LiveMetrics) Stops() int64 { return m.stops.Load() }

// StartTime returns when the latest invocation started.
func (m *LiveMetrics) StartTime() time.Time {
	return time.Unix(0, m.startTime.Load())
}

// LastItemTime returns when the last item was processed.
func (m *LiveMetrics) LastItemTime() time.Time {
	return time.Unix(0, m.lastItemTime.Load())
}

// Duration returns how long the latest invocation has been running.
func (m *LiveMetrics) Duration() time.Duration {
	start := m.startTime.Load()
	if start == 0 {
		return 0
	}
	return time.Since(time.Unix(0, start))
}

// ItemsPerSecond returns the current throughput.
func (m *LiveMetrics) ItemsPerSecond() float64 {
	d := m.Duration().Seconds()
	if d <= 0 {
		return 0
	}
	return float64(m.totalItems.Load()) / d
}

// MeterLive creates a Transformer that updates live metrics that can be
// read concurrently while the stream is running.
func MeterLive[T any](metrics *LiveMetrics) core.Transformer[T, T] {
	return hooksStage(func() core.Hooks[T] {
		return core.Hooks[T]{
			OnStart: func() {
				metrics.runs.Add(1)
				metrics.startTime.Store(time.Now().UnixNano())
			},
			OnValue: func(T) {
				metrics.totalItems.Add(1)
				metrics.lastItemTime.Store(time.Now().UnixNano())
			},
			OnStop: func(T) { metrics.stops.Add(1) },
		}
	})
}

// ProgressReport holds information for progress reporting.
type ProgressReport struct {
	Processed int64
	Total     int64 // -1 if unknown
	Percent   float64
	Elapsed   time.Duration
	Remaining time.Duration // Estimated, -1 if unknown
}

// Progress creates a Transformer that reports progress.
// If total is known, pass it; otherwise pass -1.
// The onProgress callback is called at most once per interval while items
// flow (on every item if interval is 0), and once more when the invocation returns.
func Progress[T any](total int64, interval time.Duration, onProgress func(ProgressReport)) core.Transformer[T, T] {
	return hooksStage(func() core.Hooks[T] {
		var processed int64
		var startTime, lastReport time.Time

		report := func() {
			elapsed := time.Since(startTime)
			r := ProgressReport{
				Processed: processed,
				Total:     total,
				Elapsed:   elapsed,
				Remaining: -1,
			}
			if total > 0 {
				r.Percent = float64(processed) / float64(total) * 100
				if processed > 0 && elapsed > 0 {
					rate := float64(processed) / elapsed.Seconds()
					remaining := float64(total-processed) / rate
					r.Remaining = time.Duration(remaining * float64(time.Second))
				}
			}
			if onProgress != nil {
				onProgress(r)
			}
		}

		return core.Hooks[T]{
			OnStart: func() {
				startTime = time.Now()
				lastReport = startTime
			},
			OnValue: func(T) {
				processed++
				if time.Since(lastReport) >= interval {
					report()
					lastReport = time.Now()
				}
			},
			OnComplete: func(bool) { report() },
		}
	})
}

// DebugEvent represents different events in a stream's lifecycle.
type DebugEvent int

const (
	DebugEventStart DebugEvent = iota
	DebugEventValue
	DebugEventStop
	DebugEventComplete
)

func (e DebugEvent) String() string {
	switch e {
	case DebugEventStart:
		return "start"
	case DebugEventValue:
		return "value"
	case DebugEventStop:
		return "stop"
	case DebugEventComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// DebugInfo contains information about a debug event.
type DebugInfo[T any] struct {
	Event     DebugEvent
	Value     T
	Done      bool // only meaningful for DebugEventComplete
	Timestamp time.Time
	Index     int64
}

// Debug creates a Transformer that provides detailed debugging information
// for each event in the stream's lifecycle.
func Debug[T any](handler func(DebugInfo[T])) core.Transformer[T, T] {
	return hooksStage(func() core.Hooks[T] {
		var index int64
		emit := func(info DebugInfo[T]) {
			if handler != nil {
				info.Timestamp = time.Now()
				info.Index = index
				handler(info)
			}
		}
		return core.Hooks[T]{
			OnStart: func() { emit(DebugInfo[T]{Event: DebugEventStart}) },
			OnValue: func(v T) {
				index++
				emit(DebugInfo[T]{Event: DebugEventValue, Value: v})
			},
			OnStop:     func(v T) { emit(DebugInfo[T]{Event: DebugEventStop, Value: v}) },
			OnComplete: func(done bool) { emit(DebugInfo[T]{Event: DebugEventComplete, Done: done}) },
		}
	})
}

// RateMeter tracks the rate of items per second over a sliding window.
type RateMeter struct {
	mu         sync.Mutex
	window     time.Duration
	counts     []int64
	times      []time.Time
	totalCount int64
}

// NewRateMeter creates a new rate meter with the specified window size.
func NewRateMeter(window time.Duration) *RateMeter {
	return &RateMeter{
		window: window,
	}
}

// Add records a new item.
func (r *RateMeter) Add(count int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.counts = append(r.counts, count)
	r.times = append(r.times, now)
	r.totalCount += count

	// Remove old entries
	cutoff := now.Add(-r.window)
	for len(r.times) > 0 && r.times[0].Before(cutoff) {
		r.totalCount -= r.counts[0]
		r.counts = r.counts[1:]
		r.times = r.times[1:]
	}
}

// Rate returns the current rate per second.
func (r *RateMeter) Rate() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.times) == 0 {
		return 0
	}

	duration := time.Since(r.times[0]).Seconds()
	if duration <= 0 {
		return 0
	}

	return float64(r.totalCount) / duration
}

// TotalCount returns the total count within the window.
func (r *RateMeter) TotalCount() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.totalCount
}

// MeterRate creates a Transformer that tracks the rate of items using a RateMeter.
func MeterRate[T any](meter *RateMeter) core.Transformer[T, T] {
	return hooksStage(func() core.Hooks[T] {
		return core.Hooks[T]{OnValue: func(T) { meter.Add(1) }}
	})
}

// Histogram tracks the distribution of values.
type Histogram[T comparable] struct {
	mu     sync.RWMutex
	counts map[T]int64
	total  int64
}

// NewHistogram creates a new histogram.
func NewHistogram[T comparable]() *Histogram[T] {
	return &Histogram[T]{
		counts: make(map[T]int64),
	}
}

// Add records a value.
func (h *Histogram[T]) Add(value T) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.counts[value]++
	h.total++
}

// Count returns the count for a specific value.
func (h *Histogram[T]) Count(value T) int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.counts[value]
}

// Total returns the total count.
func (h *Histogram[T]) Total() int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.total
}

// Counts returns a copy of all counts.
func (h *Histogram[T]) Counts() map[T]int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return maps.Clone(h.counts)
}

// MeterHistogram creates a Transformer that tracks value distribution.
func MeterHistogram[T comparable](histogram *Histogram[T]) core.Transformer[T, T] {
	return hooksStage(func() core.Hooks[T] {
		return core.Hooks[T]{OnValue: histogram.Add}
	})
}

// hooksStage builds a pass-through Transformer that observes every
// invocation with a fresh set of hooks from newHooks.
func hooksStage[T any](newHooks func() core.Hooks[T]) core.Transformer[T, T] {
	return core.TransformerFunc[T, T](func(s core.Stream[T]) core.Stream[T] {
		return func(r core.Consumer[T]) bool {
			return core.Observe(s, newHooks())(r)
		}
	})
}
